// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
	"strings"

	"github.com/cfgkit/jobcfg/pkg/checks"
)

var (
	ioTypes     = []string{"uri_file", "uri_folder", "mltable"}
	inputModes  = []string{"ro_mount", "rw_mount", "download", "upload", "direct"}
	outputModes = []string{"rw_mount", "upload", "direct"}
	stepTypes   = []string{"command", "spark", "parallel"}
)

// Check runs every check over a decoded pipeline job: field-level checks,
// binding resolution, and the step graph. Unbound top-level outputs are
// reported as warnings.
func (j *Job) Check() checks.Check {
	chk := j.checkFields()
	chk.Merge(j.ResolveBindings())
	return chk
}

func (j *Job) checkFields() checks.Check {
	var chk checks.Check

	if j.Type.Value != "" && j.Type.Value != "pipeline" {
		chk.Add(checks.NewInvalidValueError(j.Type.Position,
			"job type is not supported:", j.Type.Value, "pipeline"))
	}

	for _, entry := range j.Inputs {
		chk.Merge(entry.check(inputModes))
	}
	for _, entry := range j.Outputs {
		chk.Merge(entry.check(outputModes))
	}

	if compute := j.Settings.DefaultCompute; compute.Value != "" {
		if !strings.HasPrefix(compute.Value, "azureml:") {
			chk.Add(checks.NewInvalidValueError(compute.Position,
				"default_compute is not a compute reference:", compute.Value, "an azureml:-prefixed name"))
		}
	}

	for _, step := range j.Steps {
		chk.Merge(step.checkFields())
	}

	return chk
}

func (entry IO) check(modes []string) checks.Check {
	var chk checks.Check

	if entry.Type.Value != "" {
		checks.OneOf(&chk, entry.Type, ioTypes, "this io type")
	}
	if entry.Mode.Value != "" {
		checks.OneOf(&chk, entry.Mode, modes, "this access mode")
	}

	return chk
}

func (s Step) checkFields() checks.Check {
	var chk checks.Check

	if s.Type.Value == "" {
		return chk
	}

	if !checks.OneOf(&chk, s.Type, stepTypes, "this step type") {
		return chk
	}

	switch s.Type.Value {
	case "command":
		if strings.TrimSpace(s.Command.Value) == "" {
			chk.Add(checks.NewMissingKeyError(s.Position, "command",
				fmt.Sprintf("command step '%s'", s.Name)))
		}

	case "spark":
		if s.EntryFile.Value == "" {
			chk.Add(checks.NewMissingKeyError(s.Position, "entry.file",
				fmt.Sprintf("spark step '%s'", s.Name)))
		}
		if s.Conf != nil {
			for _, item := range s.Conf.Items {
				key, ok := item.Key.(string)
				if !ok {
					continue
				}
				if !strings.HasPrefix(key, "spark.") {
					chk.Add(checks.NewInvalidValueError(item.Position,
						"conf key is not an engine setting:", key, "a dotted spark.* name"))
				}
			}
		}
	}

	if s.Resources.InstanceCountPos != nil && s.Resources.InstanceCount < 1 {
		chk.Add(checks.NewInvalidValueError(s.Resources.InstanceCountPos,
			"instance_count must be at least 1:",
			fmt.Sprintf("%d", s.Resources.InstanceCount), ""))
	}

	if compute := s.Compute; compute.Value != "" {
		if !strings.HasPrefix(compute.Value, "azureml:") && !strings.Contains(compute.Value, "${{") {
			chk.Add(checks.NewInvalidValueError(compute.Position,
				"compute is not a compute reference:", compute.Value, "an azureml:-prefixed name"))
		}
	}

	return chk
}
