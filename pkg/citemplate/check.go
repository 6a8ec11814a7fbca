// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package citemplate

import (
	"fmt"
	"reflect"

	"github.com/cfgkit/jobcfg/pkg/checks"
	"github.com/cfgkit/jobcfg/pkg/filepos"
	"github.com/cfgkit/jobcfg/pkg/spell"
	"github.com/cfgkit/jobcfg/pkg/yamldoc"
)

var parameterTypes = []string{"string", "number", "boolean", "object"}

// Check runs the invocation's standalone checks: parameter declarations
// are well formed and defaults match their declared types.
func (inv *Invocation) Check() checks.Check {
	var chk checks.Check
	checkParameterDecls(&chk, inv.Parameters)
	return chk
}

// Check runs the same declaration checks over a template contract.
func (t *Template) Check() checks.Check {
	var chk checks.Check
	checkParameterDecls(&chk, t.Parameters)
	return chk
}

func checkParameterDecls(chk *checks.Check, params []Parameter) {
	for _, param := range params {
		if param.Type.Value == "" {
			continue
		}
		if !checks.OneOf(chk, param.Type, parameterTypes, "this parameter type") {
			continue
		}
		if param.HasDefault && !valueMatchesType(param.Default, param.Type.Value) {
			chk.Add(checks.NewMismatchedTypeError(param.DefaultPos,
				checks.TypeOf(param.Default), param.Type.Value))
		}
		for _, allowed := range param.Values {
			if !valueMatchesType(allowed, param.Type.Value) {
				chk.Add(checks.NewMismatchedTypeError(param.ValuesPos,
					checks.TypeOf(allowed), param.Type.Value))
			}
		}
	}
}

// CheckAgainst verifies the invocation's overrides satisfy the extended
// template's parameter contract: no unknown parameters, no missing
// required parameters, and type/values conformance per override.
func (inv *Invocation) CheckAgainst(tpl *Template) checks.Check {
	var chk checks.Check

	overridden := map[string]bool{}

	if inv.Extends.Parameters != nil {
		for _, item := range inv.Extends.Parameters.Items {
			name, ok := item.Key.(string)
			if !ok {
				chk.Add(checks.NewMismatchedTypeError(item.Position, checks.TypeOf(item.Key), "string key"))
				continue
			}
			overridden[name] = true

			decl := tpl.Parameter(name)
			if decl == nil {
				hint := ""
				if nearest, found := spell.Nearest(name, tpl.ParameterNames()); found {
					hint = fmt.Sprintf("did you mean '%s'?", nearest)
				}
				chk.Add(checks.Violation{
					Position: item.Position,
					Title:    "UNKNOWN PARAMETER",
					Message:  "the extended template does not declare this parameter:",
					Found:    name,
					Hint:     hint,
				})
				continue
			}

			chk.Merge(checkOverride(item, decl))
		}
	}

	for _, decl := range tpl.Parameters {
		if !decl.HasDefault && !overridden[decl.Name.Value] {
			chk.Add(checks.Violation{
				Position: positionOr(inv.Extends.Position, inv.Position),
				Title:    "MISSING PARAMETER",
				Message:  "the extended template requires this parameter:",
				Expected: fmt.Sprintf("%s (%s)", decl.Name.Value, decl.Type.Value),
			})
		}
	}

	return chk
}

func checkOverride(item *yamldoc.MapItem, decl *Parameter) checks.Check {
	var chk checks.Check

	if decl.Type.Value != "" && !valueMatchesType(item.Value, decl.Type.Value) {
		chk.Add(checks.NewMismatchedTypeError(item.Position,
			checks.TypeOf(item.Value), decl.Type.Value))
		return chk
	}

	if len(decl.Values) > 0 {
		for _, allowed := range decl.Values {
			if reflect.DeepEqual(plain(item.Value), plain(allowed)) {
				return chk
			}
		}

		expected := ""
		for i, allowed := range decl.Values {
			if i != 0 {
				expected += ", "
			}
			expected += fmt.Sprintf("%v", plain(allowed))
		}
		chk.Add(checks.NewInvalidValueError(item.Position,
			fmt.Sprintf("parameter '%s' only accepts declared values:", decl.Name.Value),
			fmt.Sprintf("%v", plain(item.Value)), "one of: "+expected))
	}

	return chk
}

func valueMatchesType(val interface{}, declType string) bool {
	switch declType {
	case "string":
		_, ok := val.(string)
		return ok
	case "number":
		switch val.(type) {
		case int, int64, float64:
			return true
		}
		return false
	case "boolean":
		_, ok := val.(bool)
		return ok
	case "object":
		switch val.(type) {
		case *yamldoc.Map, *yamldoc.Array:
			return true
		}
		return false
	default:
		return true
	}
}

func plain(val interface{}) interface{} {
	switch typed := val.(type) {
	case *yamldoc.Map:
		return typed.AsInterface()
	case *yamldoc.Array:
		return typed.AsInterface()
	default:
		return typed
	}
}

func positionOr(pos, fallback *filepos.Position) *filepos.Position {
	if pos != nil {
		return pos
	}
	return fallback
}
