// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package citemplate

import (
	"github.com/cfgkit/jobcfg/pkg/checks"
	"github.com/cfgkit/jobcfg/pkg/filepos"
	"github.com/cfgkit/jobcfg/pkg/yamldoc"
)

// Invocation is a parsed CI template invocation document.
type Invocation struct {
	Trigger    Trigger
	Parameters []Parameter

	// Variables is a flat mapping, kept in document order.
	Variables *yamldoc.Map

	Extends Extends

	Position *filepos.Position
}

// Trigger is the invocation's trigger policy: either disabled ("none") or
// a branch include/exclude filter.
type Trigger struct {
	None    bool
	Include []checks.String
	Exclude []checks.String

	Position *filepos.Position
}

// Extends references the reusable template plus its override parameters.
type Extends struct {
	Template   checks.String
	Parameters *yamldoc.Map

	Position *filepos.Position
}

// Parameter is one parameter declaration: of the invocation itself, or of
// the template contract it extends.
type Parameter struct {
	Name checks.String
	Type checks.String

	Default    interface{}
	HasDefault bool
	DefaultPos *filepos.Position

	Values    []interface{}
	ValuesPos *filepos.Position

	Position *filepos.Position
}

// Template is the extended template's parameter contract.
type Template struct {
	Parameters []Parameter

	Position *filepos.Position
}

// NewInvocationFromDocument decodes a CI template invocation, recording
// shape violations as it goes.
func NewInvocationFromDocument(doc *yamldoc.Document) (*Invocation, checks.Check) {
	var chk checks.Check

	root, ok := doc.Value.(*yamldoc.Map)
	if !ok {
		chk.Add(checks.NewMismatchedTypeError(doc.Position, checks.TypeOf(doc.Value), "map"))
		return nil, chk
	}

	inv := &Invocation{Position: doc.Position}

	checks.DisallowUnknownKeys(&chk, root,
		"kind", "trigger", "parameters", "variables", "extends")

	if item := root.Item("trigger"); item != nil {
		inv.Trigger = parseTrigger(&chk, item)
	}

	inv.Parameters = parseParameters(&chk, root)
	inv.Variables = checks.StringMapAt(&chk, root, "variables")

	if extends := checks.RequiredMapAt(&chk, root, "extends", "a template invocation"); extends != nil {
		checks.DisallowUnknownKeys(&chk, extends, "template", "parameters")
		inv.Extends.Position = extends.GetPosition()
		inv.Extends.Template, _ = checks.RequiredStringAt(&chk, extends, "template", "extends")
		inv.Extends.Parameters = checks.MapAt(&chk, extends, "parameters")
	}

	return inv, chk
}

// NewTemplateFromDocument decodes a template manifest: the parameter
// contract an invocation is checked against.
func NewTemplateFromDocument(doc *yamldoc.Document) (*Template, checks.Check) {
	var chk checks.Check

	root, ok := doc.Value.(*yamldoc.Map)
	if !ok {
		chk.Add(checks.NewMismatchedTypeError(doc.Position, checks.TypeOf(doc.Value), "map"))
		return nil, chk
	}

	checks.DisallowUnknownKeys(&chk, root, "kind", "parameters")

	return &Template{
		Parameters: parseParameters(&chk, root),
		Position:   doc.Position,
	}, chk
}

func parseTrigger(chk *checks.Check, item *yamldoc.MapItem) Trigger {
	trigger := Trigger{Position: item.Position}

	switch typed := item.Value.(type) {
	case string:
		if typed != "none" {
			chk.Add(checks.NewInvalidValueError(item.Position,
				"trigger policy is not supported:", typed, "none, or a branches filter"))
		}
		trigger.None = true

	case *yamldoc.Map:
		checks.DisallowUnknownKeys(chk, typed, "branches")
		if branches := checks.RequiredMapAt(chk, typed, "branches", "a trigger"); branches != nil {
			checks.DisallowUnknownKeys(chk, branches, "include", "exclude")
			trigger.Include = checks.StringsAt(chk, branches, "include")
			trigger.Exclude = checks.StringsAt(chk, branches, "exclude")
		}

	default:
		chk.Add(checks.NewMismatchedTypeError(item.Position, checks.TypeOf(item.Value), "'none' or a map"))
	}

	return trigger
}

func parseParameters(chk *checks.Check, root *yamldoc.Map) []Parameter {
	array := checks.ArrayAt(chk, root, "parameters")
	if array == nil {
		return nil
	}

	var result []Parameter
	for _, item := range array.Items {
		paramMap, ok := item.Value.(*yamldoc.Map)
		if !ok {
			chk.Add(checks.NewMismatchedTypeError(item.Position, checks.TypeOf(item.Value), "map"))
			continue
		}

		checks.DisallowUnknownKeys(chk, paramMap, "name", "type", "default", "values")

		param := Parameter{Position: item.Position}
		param.Name, _ = checks.RequiredStringAt(chk, paramMap, "name", "a parameter")
		param.Type, _ = checks.RequiredStringAt(chk, paramMap, "type", "a parameter")

		if defaultItem := paramMap.Item("default"); defaultItem != nil {
			param.Default = defaultItem.Value
			param.HasDefault = true
			param.DefaultPos = defaultItem.Position
		}

		if valuesArray := checks.ArrayAt(chk, paramMap, "values"); valuesArray != nil {
			param.ValuesPos = paramMap.Item("values").Position
			for _, valueItem := range valuesArray.Items {
				param.Values = append(param.Values, valueItem.Value)
			}
		}

		result = append(result, param)
	}
	return result
}

// Parameter returns the named parameter declaration, when present.
func (t *Template) Parameter(name string) *Parameter {
	for i := range t.Parameters {
		if t.Parameters[i].Name.Value == name {
			return &t.Parameters[i]
		}
	}
	return nil
}

// ParameterNames returns the declared parameter names, in document order.
func (t *Template) ParameterNames() []string {
	var names []string
	for _, param := range t.Parameters {
		names = append(names, param.Name.Value)
	}
	return names
}
