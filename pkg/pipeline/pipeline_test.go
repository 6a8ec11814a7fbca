// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package pipeline_test

import (
	"testing"

	"github.com/cfgkit/jobcfg/pkg/pipeline"
	"github.com/cfgkit/jobcfg/pkg/yamldoc"
	"github.com/stretchr/testify/require"
)

const validPipeline = `$schema: https://azuremlschemas.azureedge.net/latest/pipelineJob.schema.json
type: pipeline
display_name: train-and-score
experiment_name: fraud
inputs:
  raw_data:
    type: uri_folder
    path: azureml:raw-data:1
    mode: ro_mount
outputs:
  scores:
    type: uri_file
    mode: rw_mount
settings:
  default_compute: azureml:cpu-cluster
  continue_on_step_failure: false
jobs:
  prep:
    type: command
    command: python prep.py --in ${{inputs.raw}} --out ${{outputs.clean}}
    code: ./src
    environment: azureml:train-env:3
    inputs:
      raw: ${{parent.inputs.raw_data}}
    outputs:
      clean:
  train:
    type: command
    command: python train.py --data ${{inputs.clean}} --out ${{outputs.model}}
    code: ./src
    environment: azureml:train-env:3
    inputs:
      clean: ${{parent.jobs.prep.outputs.clean}}
    outputs:
      model:
  score:
    type: command
    command: python score.py --model ${{inputs.model}} --out ${{outputs.result}}
    code: ./src
    environment: azureml:train-env:3
    inputs:
      model: ${{parent.jobs.train.outputs.model}}
    outputs:
      result: ${{parent.outputs.scores}}
`

func parsePipeline(t *testing.T, data string) (*pipeline.Job, string) {
	t.Helper()

	docSet, err := yamldoc.NewParser().ParseBytes([]byte(data), "pipeline.yml")
	require.NoError(t, err)

	job, chk := pipeline.NewFromDocument(docSet.Items[0])
	return job, chk.Error()
}

func TestPipelineDecode(t *testing.T) {
	job, decodeErrs := parsePipeline(t, validPipeline)
	require.Empty(t, decodeErrs)

	require.Equal(t, "pipeline", job.Type.Value)
	require.Equal(t, "train-and-score", job.DisplayName.Value)

	require.Len(t, job.Inputs, 1)
	require.Equal(t, "raw_data", job.Inputs[0].Name)
	require.Equal(t, "uri_folder", job.Inputs[0].Type.Value)
	require.Equal(t, "ro_mount", job.Inputs[0].Mode.Value)

	require.Equal(t, "azureml:cpu-cluster", job.Settings.DefaultCompute.Value)

	require.Equal(t, []string{"prep", "train", "score"}, job.StepNames())
	prep := job.Step("prep")
	require.NotNil(t, prep)
	require.Equal(t, "command", prep.Type.Value)
	require.Len(t, prep.Inputs, 1)
	require.Equal(t, "raw", prep.Inputs[0].Name)
}

func TestPipelineValidJobChecks(t *testing.T) {
	job, decodeErrs := parsePipeline(t, validPipeline)
	require.Empty(t, decodeErrs)

	chk := job.Check()
	require.Falsef(t, chk.HasViolations(), "unexpected violations: %s", chk.Error())
	require.Empty(t, chk.Warnings)
}

func TestPipelineExecutionOrder(t *testing.T) {
	job, _ := parsePipeline(t, validPipeline)

	order, err := job.ExecutionOrder()
	require.NoError(t, err)
	require.Equal(t, []string{"prep", "train", "score"}, order)
}

func TestPipelineExecutionOrderReordersDocumentOrder(t *testing.T) {
	job, _ := parsePipeline(t, `type: pipeline
jobs:
  second:
    type: command
    command: echo run
    inputs:
      dep: ${{parent.jobs.first.outputs.out}}
  first:
    type: command
    command: echo run
    outputs:
      out:
`)
	order, err := job.ExecutionOrder()
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, order)
}

func TestPipelineUnresolvedStepReference(t *testing.T) {
	job, _ := parsePipeline(t, `type: pipeline
jobs:
  train:
    type: command
    command: echo run
    outputs:
      model:
  score:
    type: command
    command: echo run
    inputs:
      model: ${{parent.jobs.tarin.outputs.model}}
`)
	chk := job.Check()
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "UNRESOLVED REFERENCE")
	require.Contains(t, chk.Violations[0].Error(), "found: parent.jobs.tarin.outputs.model")
	require.Contains(t, chk.Violations[0].Error(), "did you mean 'train'?")
}

func TestPipelineUnresolvedIOName(t *testing.T) {
	job, _ := parsePipeline(t, `type: pipeline
inputs:
  raw_data:
    type: uri_folder
jobs:
  prep:
    type: command
    command: echo run
    inputs:
      raw: ${{parent.inputs.raw_dta}}
`)
	chk := job.Check()
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "found: parent.inputs.raw_dta")
	require.Contains(t, chk.Violations[0].Error(), "did you mean 'raw_data'?")
}

func TestPipelineCycleDetection(t *testing.T) {
	job, _ := parsePipeline(t, `type: pipeline
jobs:
  a:
    type: command
    command: echo run
    inputs:
      in: ${{parent.jobs.b.outputs.out}}
    outputs:
      out:
  b:
    type: command
    command: echo run
    inputs:
      in: ${{parent.jobs.a.outputs.out}}
    outputs:
      out:
`)
	chk := job.Check()
	require.True(t, chk.HasViolations())
	require.Contains(t, chk.Error(), "steps depend on each other in a cycle")

	_, err := job.ExecutionOrder()
	require.Error(t, err)
}

func TestPipelineSelfReference(t *testing.T) {
	job, _ := parsePipeline(t, `type: pipeline
jobs:
  a:
    type: command
    command: echo run
    inputs:
      in: ${{parent.jobs.a.outputs.out}}
    outputs:
      out:
`)
	chk := job.Check()
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "step references itself")
}

func TestPipelineStepIOValuesMustBindThroughParent(t *testing.T) {
	job, _ := parsePipeline(t, `type: pipeline
jobs:
  a:
    type: command
    command: echo run
    inputs:
      in: ${{inputs.other}}
`)
	chk := job.Check()
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "step io values bind through the pipeline")
	require.Contains(t, chk.Violations[0].Error(), "expected: a parent.* reference")
}

func TestPipelineMalformedExpression(t *testing.T) {
	job, _ := parsePipeline(t, `type: pipeline
jobs:
  a:
    type: command
    command: echo ${{inputs.in
    inputs:
      in: abc
`)
	chk := job.Check()
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "MALFORMED EXPRESSION")
	require.Contains(t, chk.Violations[0].Error(), "unterminated expression")
}

func TestPipelineUnboundOutputWarning(t *testing.T) {
	job, _ := parsePipeline(t, `type: pipeline
outputs:
  scores:
    type: uri_file
jobs:
  a:
    type: command
    command: echo run
`)
	chk := job.Check()
	require.False(t, chk.HasViolations())
	require.Len(t, chk.Warnings, 1)
	require.Contains(t, chk.Warnings[0].Error(), "pipeline output is not bound by any step")
}

func TestPipelineCommandStepRequiresCommand(t *testing.T) {
	job, _ := parsePipeline(t, `type: pipeline
jobs:
  a:
    type: command
    code: ./src
`)
	chk := job.Check()
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "command step 'a' requires this key")
	require.Contains(t, chk.Violations[0].Error(), "expected: command")
}

func TestPipelineSparkStep(t *testing.T) {
	job, decodeErrs := parsePipeline(t, `type: pipeline
jobs:
  etl:
    type: spark
    entry:
      file: etl.py
    py_files:
      - utils.zip
    conf:
      spark.driver.cores: 1
      spark.executor.instances: 2
    args: --in ${{inputs.raw}}
    inputs:
      raw: ${{parent.inputs.raw}}
inputs:
  raw:
    type: uri_folder
`)
	require.Empty(t, decodeErrs)

	chk := job.Check()
	require.Falsef(t, chk.HasViolations(), "unexpected violations: %s", chk.Error())

	etl := job.Step("etl")
	require.Equal(t, "etl.py", etl.EntryFile.Value)
	require.Len(t, etl.PyFiles, 1)
}

func TestPipelineSparkConfKeys(t *testing.T) {
	job, _ := parsePipeline(t, `type: pipeline
jobs:
  etl:
    type: spark
    entry:
      file: etl.py
    conf:
      executor.instances: 2
`)
	chk := job.Check()
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "conf key is not an engine setting")
	require.Contains(t, chk.Violations[0].Error(), "expected: a dotted spark.* name")
}

func TestPipelineInstanceCountBound(t *testing.T) {
	job, _ := parsePipeline(t, `type: pipeline
jobs:
  a:
    type: command
    command: echo run
    resources:
      instance_count: 0
`)
	chk := job.Check()
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "instance_count must be at least 1")
}

func TestPipelineBadIOTypeAndMode(t *testing.T) {
	job, _ := parsePipeline(t, `type: pipeline
inputs:
  raw:
    type: folder
    mode: mount
jobs:
  a:
    type: command
    command: echo run
`)
	chk := job.Check()
	require.Len(t, chk.Violations, 2)
	require.Contains(t, chk.Error(), "this io type is not supported")
	require.Contains(t, chk.Error(), "this access mode is not supported")
}

func TestPipelineNonPipelineType(t *testing.T) {
	job, _ := parsePipeline(t, `type: sweep
jobs:
  a:
    type: command
    command: echo run
`)
	chk := job.Check()
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "job type is not supported")
	require.Contains(t, chk.Violations[0].Error(), "expected: pipeline")
}
