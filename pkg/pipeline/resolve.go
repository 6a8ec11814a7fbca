// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
	"strings"

	"github.com/cfgkit/jobcfg/pkg/checks"
	"github.com/cfgkit/jobcfg/pkg/exprs"
	"github.com/cfgkit/jobcfg/pkg/filepos"
	"github.com/cfgkit/jobcfg/pkg/spell"
)

// ResolveBindings checks every "${{ }}" expression in the pipeline:
// syntax, resolvability against declared io, and the acyclicity of the
// step graph the bindings induce. Top-level outputs no step binds are
// reported as warnings.
func (j *Job) ResolveBindings() checks.Check {
	var chk checks.Check

	topInputs := ioNames(j.Inputs)
	topOutputs := ioNames(j.Outputs)
	boundOutputs := map[string]bool{}

	// edges[a] holds the steps that must run before a
	edges := map[string][]string{}

	for _, step := range j.Steps {
		for _, entry := range append(append([]StepIO{}, step.Inputs...), step.Outputs...) {
			str, ok := entry.StringValue()
			if !ok || !strings.Contains(str, "${{") {
				continue
			}

			for _, ref := range j.parseBindings(&chk, str, entry.Position) {
				if !ref.Parent {
					chk.Add(checks.NewInvalidValueError(entry.Position,
						"step io values bind through the pipeline:", ref.Binding.Raw,
						"a parent.* reference"))
					continue
				}
				j.resolveParentRef(&chk, ref, step, entry.Position, topInputs, topOutputs, boundOutputs, edges)
			}
		}

		for _, embedded := range []checks.String{step.Command, step.Args} {
			if !strings.Contains(embedded.Value, "${{") {
				continue
			}
			for _, ref := range j.parseBindings(&chk, embedded.Value, embedded.Position) {
				if ref.Parent {
					j.resolveParentRef(&chk, ref, step, embedded.Position, topInputs, topOutputs, boundOutputs, edges)
					continue
				}
				j.resolveOwnRef(&chk, ref, step, embedded.Position)
			}
		}
	}

	chk.Merge(j.checkGraph(edges))

	for _, entry := range j.Outputs {
		if !boundOutputs[entry.Name] {
			chk.Warn(checks.NewInvalidValueError(entry.NamePos,
				"pipeline output is not bound by any step:", entry.Name,
				"a step output bound via ${{parent.outputs."+entry.Name+"}}"))
		}
	}

	return chk
}

func (j *Job) parseBindings(chk *checks.Check, str string, pos *filepos.Position) []exprs.Ref {
	bindings, errs := exprs.ScanBindings(str)
	for _, err := range errs {
		chk.Add(malformedExpression(pos, err))
	}

	var refs []exprs.Ref
	for _, binding := range bindings {
		ref, err := exprs.ParseRef(binding)
		if err != nil {
			chk.Add(malformedExpression(pos, err))
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

func (j *Job) resolveParentRef(chk *checks.Check, ref exprs.Ref, step Step, pos *filepos.Position,
	topInputs, topOutputs map[string]bool, boundOutputs map[string]bool, edges map[string][]string) {

	if ref.Step != "" {
		target := j.Step(ref.Step)
		if target == nil {
			hint := nearestHint(ref.Step, j.StepNames())
			chk.Add(checks.NewUnresolvedReferenceError(pos, ref.String(), "a declared step", hint))
			return
		}
		if target.Name == step.Name {
			chk.Add(checks.NewInvalidValueError(pos,
				"step references itself:", ref.String(), "a reference to another step"))
			return
		}

		declared := target.Inputs
		if ref.Dir == "outputs" {
			declared = target.Outputs
		}
		if !stepIOContains(declared, ref.Name) {
			hint := nearestHint(ref.Name, stepIONames(declared))
			chk.Add(checks.NewUnresolvedReferenceError(pos, ref.String(),
				fmt.Sprintf("an entry of %s of step '%s'", ref.Dir, target.Name), hint))
			return
		}

		edges[step.Name] = append(edges[step.Name], target.Name)
		return
	}

	declared := topInputs
	if ref.Dir == "outputs" {
		declared = topOutputs
	}
	if !declared[ref.Name] {
		hint := nearestHint(ref.Name, mapKeys(declared))
		chk.Add(checks.NewUnresolvedReferenceError(pos, ref.String(),
			fmt.Sprintf("a declared pipeline %s entry", strings.TrimSuffix(ref.Dir, "s")), hint))
		return
	}
	if ref.Dir == "outputs" {
		boundOutputs[ref.Name] = true
	}
}

func (j *Job) resolveOwnRef(chk *checks.Check, ref exprs.Ref, step Step, pos *filepos.Position) {
	declared := step.Inputs
	if ref.Dir == "outputs" {
		declared = step.Outputs
	}
	if !stepIOContains(declared, ref.Name) {
		hint := nearestHint(ref.Name, stepIONames(declared))
		chk.Add(checks.NewUnresolvedReferenceError(pos, ref.String(),
			fmt.Sprintf("an entry of %s of step '%s'", ref.Dir, step.Name), hint))
	}
}

// checkGraph rejects cycles among the steps using depth-first traversal.
func (j *Job) checkGraph(edges map[string][]string) checks.Check {
	var chk checks.Check

	const (
		unvisited = iota
		visiting
		done
	)
	state := map[string]int{}

	var visit func(name string, trail []string) bool
	visit = func(name string, trail []string) bool {
		switch state[name] {
		case visiting:
			cycle := append(trail, name)
			start := 0
			for i, step := range cycle {
				if step == name {
					start = i
					break
				}
			}
			step := j.Step(name)
			chk.Add(checks.NewInvalidValueError(step.NamePos,
				"steps depend on each other in a cycle:",
				strings.Join(cycle[start:], " -> "), "an acyclic step graph"))
			return false
		case done:
			return true
		}

		state[name] = visiting
		for _, dep := range edges[name] {
			if !visit(dep, append(trail, name)) {
				break
			}
		}
		state[name] = done
		return true
	}

	for _, step := range j.Steps {
		visit(step.Name, nil)
	}

	return chk
}

// ExecutionOrder returns the step names ordered so every step follows the
// steps it depends on; document order breaks ties. Fails on cyclic
// pipelines.
func (j *Job) ExecutionOrder() ([]string, error) {
	edges := map[string][]string{}
	var collect checks.Check

	for _, step := range j.Steps {
		for _, entry := range append(append([]StepIO{}, step.Inputs...), step.Outputs...) {
			str, ok := entry.StringValue()
			if !ok {
				continue
			}
			for _, ref := range j.parseBindings(&collect, str, entry.Position) {
				if ref.Step != "" && j.Step(ref.Step) != nil && ref.Step != step.Name {
					edges[step.Name] = append(edges[step.Name], ref.Step)
				}
			}
		}
	}

	indegree := map[string]int{}
	dependents := map[string][]string{}
	for _, step := range j.Steps {
		indegree[step.Name] = 0
	}
	for name, deps := range edges {
		for _, dep := range deps {
			indegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var order []string
	remaining := len(j.Steps)

	for remaining > 0 {
		progressed := false
		for _, step := range j.Steps {
			if degree, pending := indegree[step.Name]; pending && degree == 0 {
				order = append(order, step.Name)
				delete(indegree, step.Name)
				for _, dependent := range dependents[step.Name] {
					if _, stillPending := indegree[dependent]; stillPending {
						indegree[dependent]--
					}
				}
				remaining--
				progressed = true
			}
		}
		if !progressed {
			return nil, fmt.Errorf("steps depend on each other in a cycle")
		}
	}

	return order, nil
}

func malformedExpression(pos *filepos.Position, err error) error {
	return checks.Violation{
		Position: pos,
		Title:    "MALFORMED EXPRESSION",
		Message:  err.Error(),
	}
}

func nearestHint(word string, candidates []string) string {
	if nearest, found := spell.Nearest(word, candidates); found {
		return fmt.Sprintf("did you mean '%s'?", nearest)
	}
	return ""
}

func ioNames(entries []IO) map[string]bool {
	names := map[string]bool{}
	for _, entry := range entries {
		names[entry.Name] = true
	}
	return names
}

func stepIOContains(entries []StepIO, name string) bool {
	for _, entry := range entries {
		if entry.Name == name {
			return true
		}
	}
	return false
}

func stepIONames(entries []StepIO) []string {
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	return names
}

func mapKeys(m map[string]bool) []string {
	var keys []string
	for key := range m {
		keys = append(keys, key)
	}
	return keys
}
