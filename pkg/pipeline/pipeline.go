// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"github.com/cfgkit/jobcfg/pkg/checks"
	"github.com/cfgkit/jobcfg/pkg/filepos"
	"github.com/cfgkit/jobcfg/pkg/yamldoc"
)

// Job is a parsed pipeline job document.
type Job struct {
	Schema         checks.String // $schema
	Type           checks.String
	DisplayName    checks.String
	ExperimentName checks.String
	Description    checks.String

	Inputs   []IO
	Outputs  []IO
	Settings Settings
	Steps    []Step

	Position *filepos.Position
}

// IO is one named entry of the pipeline's inputs or outputs.
type IO struct {
	Name    string
	NamePos *filepos.Position

	Type checks.String
	Path checks.String
	Mode checks.String

	Position *filepos.Position
}

type Settings struct {
	DefaultCompute        checks.String
	DefaultDatastore      checks.String
	ContinueOnStepFailure bool
}

// Step is one named entry of the jobs mapping.
type Step struct {
	Name    string
	NamePos *filepos.Position

	Type        checks.String
	Command     checks.String
	Code        checks.String
	Environment checks.String
	Compute     checks.String

	EntryFile checks.String
	PyFiles   []checks.String
	Jars      []checks.String
	Files     []checks.String
	Args      checks.String

	// Conf holds engine configuration key-values, in document order.
	Conf *yamldoc.Map

	Resources Resources

	Inputs  []StepIO
	Outputs []StepIO

	Position *filepos.Position
}

// StepIO is one named entry of a step's inputs or outputs: either a
// literal scalar or a string carrying "${{ }}" binding expressions.
type StepIO struct {
	Name    string
	NamePos *filepos.Position

	Value    interface{}
	Position *filepos.Position
}

// StringValue returns the io value as a string when it is one.
func (s StepIO) StringValue() (string, bool) {
	str, ok := s.Value.(string)
	return str, ok
}

type Resources struct {
	InstanceType     checks.String
	InstanceCount    int
	InstanceCountPos *filepos.Position
	RuntimeVersion   checks.String
}

// NewFromDocument decodes a pipeline job document, recording shape
// violations as it goes.
func NewFromDocument(doc *yamldoc.Document) (*Job, checks.Check) {
	var chk checks.Check

	root, ok := doc.Value.(*yamldoc.Map)
	if !ok {
		chk.Add(checks.NewMismatchedTypeError(doc.Position, checks.TypeOf(doc.Value), "map"))
		return nil, chk
	}

	job := &Job{Position: doc.Position}

	checks.DisallowUnknownKeys(&chk, root,
		"$schema", "kind", "type", "display_name", "experiment_name", "description",
		"inputs", "outputs", "settings", "jobs")

	job.Schema, _ = checks.StringAt(&chk, root, "$schema")
	job.Type, _ = checks.RequiredStringAt(&chk, root, "type", "a pipeline job")
	job.DisplayName, _ = checks.StringAt(&chk, root, "display_name")
	job.ExperimentName, _ = checks.StringAt(&chk, root, "experiment_name")
	job.Description, _ = checks.StringAt(&chk, root, "description")

	job.Inputs = parseIOMap(&chk, root, "inputs")
	job.Outputs = parseIOMap(&chk, root, "outputs")

	if settings := checks.MapAt(&chk, root, "settings"); settings != nil {
		checks.DisallowUnknownKeys(&chk, settings,
			"default_compute", "default_datastore", "continue_on_step_failure")
		job.Settings.DefaultCompute, _ = checks.StringAt(&chk, settings, "default_compute")
		job.Settings.DefaultDatastore, _ = checks.StringAt(&chk, settings, "default_datastore")
		job.Settings.ContinueOnStepFailure, _ = checks.BoolAt(&chk, settings, "continue_on_step_failure")
	}

	if jobs := checks.RequiredMapAt(&chk, root, "jobs", "a pipeline job"); jobs != nil {
		for _, item := range jobs.Items {
			name, ok := item.Key.(string)
			if !ok {
				chk.Add(checks.NewMismatchedTypeError(item.Position, checks.TypeOf(item.Key), "string key"))
				continue
			}
			stepMap, ok := item.Value.(*yamldoc.Map)
			if !ok {
				chk.Add(checks.NewMismatchedTypeError(item.Position, checks.TypeOf(item.Value), "map"))
				continue
			}
			job.Steps = append(job.Steps, parseStep(&chk, name, item.Position, stepMap))
		}
	}

	return job, chk
}

func parseIOMap(chk *checks.Check, root *yamldoc.Map, key string) []IO {
	ioMap := checks.MapAt(chk, root, key)
	if ioMap == nil {
		return nil
	}

	var result []IO
	for _, item := range ioMap.Items {
		name, ok := item.Key.(string)
		if !ok {
			chk.Add(checks.NewMismatchedTypeError(item.Position, checks.TypeOf(item.Key), "string key"))
			continue
		}
		entryMap, ok := item.Value.(*yamldoc.Map)
		if !ok {
			chk.Add(checks.NewMismatchedTypeError(item.Position, checks.TypeOf(item.Value), "map"))
			continue
		}

		checks.DisallowUnknownKeys(chk, entryMap, "type", "path", "mode")

		entry := IO{Name: name, NamePos: item.Position, Position: entryMap.GetPosition()}
		entry.Type, _ = checks.RequiredStringAt(chk, entryMap, "type", "an io entry")
		entry.Path, _ = checks.StringAt(chk, entryMap, "path")
		entry.Mode, _ = checks.StringAt(chk, entryMap, "mode")

		result = append(result, entry)
	}
	return result
}

func parseStep(chk *checks.Check, name string, namePos *filepos.Position, m *yamldoc.Map) Step {
	step := Step{Name: name, NamePos: namePos, Position: m.GetPosition()}

	checks.DisallowUnknownKeys(chk, m,
		"type", "command", "code", "environment", "compute",
		"entry", "py_files", "jars", "files", "args", "conf",
		"resources", "inputs", "outputs")

	step.Type, _ = checks.RequiredStringAt(chk, m, "type", "a step")
	step.Command, _ = checks.StringAt(chk, m, "command")
	step.Code, _ = checks.StringAt(chk, m, "code")
	step.Environment, _ = checks.StringAt(chk, m, "environment")
	step.Compute, _ = checks.StringAt(chk, m, "compute")

	if entry := checks.MapAt(chk, m, "entry"); entry != nil {
		checks.DisallowUnknownKeys(chk, entry, "file")
		step.EntryFile, _ = checks.RequiredStringAt(chk, entry, "file", "an entry block")
	}

	step.PyFiles = checks.StringsAt(chk, m, "py_files")
	step.Jars = checks.StringsAt(chk, m, "jars")
	step.Files = checks.StringsAt(chk, m, "files")
	step.Args, _ = checks.StringAt(chk, m, "args")

	step.Conf = checks.StringMapAt(chk, m, "conf")

	if resources := checks.MapAt(chk, m, "resources"); resources != nil {
		checks.DisallowUnknownKeys(chk, resources,
			"instance_type", "instance_count", "runtime_version")
		step.Resources.InstanceType, _ = checks.StringAt(chk, resources, "instance_type")
		step.Resources.InstanceCount = 1
		if count, pos, ok := checks.IntAt(chk, resources, "instance_count"); ok {
			step.Resources.InstanceCount = count
			step.Resources.InstanceCountPos = pos
		}
		step.Resources.RuntimeVersion, _ = checks.StringAt(chk, resources, "runtime_version")
	}

	step.Inputs = parseStepIO(chk, m, "inputs")
	step.Outputs = parseStepIO(chk, m, "outputs")

	return step
}

func parseStepIO(chk *checks.Check, m *yamldoc.Map, key string) []StepIO {
	ioMap := checks.MapAt(chk, m, key)
	if ioMap == nil {
		return nil
	}

	var result []StepIO
	for _, item := range ioMap.Items {
		name, ok := item.Key.(string)
		if !ok {
			chk.Add(checks.NewMismatchedTypeError(item.Position, checks.TypeOf(item.Key), "string key"))
			continue
		}
		switch item.Value.(type) {
		case *yamldoc.Map, *yamldoc.Array:
			chk.Add(checks.NewMismatchedTypeError(item.Position, checks.TypeOf(item.Value), "scalar or binding"))
			continue
		}
		result = append(result, StepIO{Name: name, NamePos: item.Position, Value: item.Value, Position: item.Position})
	}
	return result
}

// Step returns the named step, when present.
func (j *Job) Step(name string) *Step {
	for i := range j.Steps {
		if j.Steps[i].Name == name {
			return &j.Steps[i]
		}
	}
	return nil
}

// StepNames returns the names of all steps, in document order.
func (j *Job) StepNames() []string {
	var names []string
	for _, step := range j.Steps {
		names = append(names, step.Name)
	}
	return names
}
