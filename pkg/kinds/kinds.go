// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package kinds identifies which document family a parsed YAML document
belongs to: package recipe, monitoring job, pipeline job, CI template
invocation, or CI template manifest.
*/
package kinds

import (
	"fmt"
	"strings"

	"github.com/cfgkit/jobcfg/pkg/yamldoc"
)

type Kind string

const (
	Recipe     Kind = "recipe"
	Monitor    Kind = "monitor"
	Pipeline   Kind = "pipeline"
	CI         Kind = "ci"
	CITemplate Kind = "ci-template"
)

// All lists every kind jobcfg understands.
var All = []Kind{Recipe, Monitor, Pipeline, CI, CITemplate}

// Parse converts a user-supplied kind name.
func Parse(name string) (Kind, error) {
	for _, kind := range All {
		if string(kind) == name {
			return kind, nil
		}
	}
	return "", fmt.Errorf("Unknown kind '%s' (expected one of: recipe, monitor, pipeline, ci, ci-template)", name)
}

// Detect determines the document's kind: an explicit top-level "kind" key
// wins, then the "$schema" URL, then shape probing.
func Detect(doc *yamldoc.Document) (Kind, error) {
	root, ok := doc.Value.(*yamldoc.Map)
	if !ok {
		return "", fmt.Errorf("Detecting document kind: document is not a map (%s)",
			doc.Position.AsCompactString())
	}

	if kindVal, found := root.Get("kind"); found {
		if kindStr, ok := kindVal.(string); ok {
			return Parse(kindStr)
		}
	}

	if schemaVal, found := root.Get("$schema"); found {
		if schemaStr, ok := schemaVal.(string); ok && strings.Contains(schemaStr, "pipelineJob") {
			return Pipeline, nil
		}
	}

	has := func(key string) bool { return root.Item(key) != nil }

	switch {
	case has("create_monitor"):
		return Monitor, nil
	case has("jobs") && has("type"):
		return Pipeline, nil
	case has("package") && has("source"):
		return Recipe, nil
	case has("extends"):
		return CI, nil
	case has("parameters") && len(root.Items) <= 2:
		return CITemplate, nil
	default:
		return "", fmt.Errorf("Detecting document kind: no recognizable shape (%s)"+
			" (hint: set an explicit top-level 'kind' key or pass --kind)",
			doc.Position.AsCompactString())
	}
}
