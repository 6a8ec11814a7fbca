// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cfgkit/jobcfg/pkg/exprs"
	"github.com/cfgkit/jobcfg/pkg/files"
	"github.com/cfgkit/jobcfg/pkg/kinds"
	"github.com/cfgkit/jobcfg/pkg/pipeline"
	"github.com/cfgkit/jobcfg/pkg/toolconfig"
	"github.com/cfgkit/jobcfg/pkg/yamldoc"
	"github.com/cfgkit/jobcfg/pkg/yamlfmt"
	"github.com/spf13/cobra"
	sigsyaml "sigs.k8s.io/yaml"
)

type InspectOptions struct {
	File       string
	Output     string
	ConfigPath string
}

func NewInspectOptions() *InspectOptions {
	return &InspectOptions{Output: "yaml"}
}

func NewInspectCmd(o *InspectOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a document in resolved, normalized form",
		Long: `Print a document in resolved, normalized form.

Recipes have their version placeholders substituted from the tool config
pins (or the environment). Pipeline jobs have their steps reordered into
execution order. Other kinds are normalized only.`,
		RunE: func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVarP(&o.File, "file", "f", "", "File (ie local path, HTTP URL, -)")
	cmd.Flags().StringVarP(&o.Output, "output", "o", "yaml", "Output format (yaml, json)")
	cmd.Flags().StringVar(&o.ConfigPath, "config", "", "Tool config file (default jobcfg.toml, or $"+toolconfig.EnvConfigPath+")")
	return cmd
}

func (o *InspectOptions) Run() error {
	if o.File == "" {
		return fmt.Errorf("Expected file to inspect (specified via -f)")
	}
	if o.Output != "yaml" && o.Output != "json" {
		return fmt.Errorf("Unknown output format '%s' (expected yaml or json)", o.Output)
	}

	config, err := toolconfig.Load(o.ConfigPath)
	if err != nil {
		return err
	}

	filesToProcess, err := files.NewSortedFilesFromPaths([]string{o.File}, files.SymlinkAllowOpts{})
	if err != nil {
		return err
	}
	if len(filesToProcess) == 0 {
		return fmt.Errorf("Expected path '%s' to contain at least one file", o.File)
	}

	file := filesToProcess[0]
	data, err := file.Bytes()
	if err != nil {
		return err
	}

	docSet, err := yamldoc.NewParser().ParseBytes(data, file.RelativePath())
	if err != nil {
		return err
	}

	for _, doc := range docSet.Items {
		if doc.Value == nil {
			continue
		}
		kind, err := kinds.Detect(doc)
		if err != nil {
			return err
		}
		switch kind {
		case kinds.Recipe:
			err = yamldoc.Walk(doc, substituteVisitor{config.Resolver()})
			if err != nil {
				return err
			}
		case kinds.Pipeline:
			reorderSteps(doc)
		}
	}

	out := yamlfmt.NewPrinter(nil).PrintStr(docSet)

	if o.Output == "json" {
		jsonOut, err := sigsyaml.YAMLToJSON([]byte(out))
		if err != nil {
			return fmt.Errorf("Converting to JSON: %s", err)
		}
		var indented bytes.Buffer
		err = json.Indent(&indented, jsonOut, "", "  ")
		if err != nil {
			return err
		}
		indented.WriteString("\n")
		out = indented.String()
	}

	fmt.Fprint(os.Stdout, out)
	return nil
}

// substituteVisitor rewrites ${NAME} placeholders in every string value.
// Unresolvable placeholders are left untouched (lint reports those).
type substituteVisitor struct {
	resolve func(name string) (string, bool)
}

func (v substituteVisitor) Visit(node yamldoc.Node) error {
	switch typedNode := node.(type) {
	case *yamldoc.Document:
		if str, ok := typedNode.Value.(string); ok {
			typedNode.Value, _ = exprs.SubstitutePlaceholders(str, v.resolve)
		}
	case *yamldoc.MapItem:
		if str, ok := typedNode.Value.(string); ok {
			typedNode.Value, _ = exprs.SubstitutePlaceholders(str, v.resolve)
		}
	case *yamldoc.ArrayItem:
		if str, ok := typedNode.Value.(string); ok {
			typedNode.Value, _ = exprs.SubstitutePlaceholders(str, v.resolve)
		}
	}
	return nil
}

// reorderSteps rewrites the jobs map into execution order. Documents whose
// step graph does not resolve (cycles, decode failures) keep their order.
func reorderSteps(doc *yamldoc.Document) {
	job, chk := pipeline.NewFromDocument(doc)
	if job == nil || chk.HasViolations() {
		return
	}

	order, err := job.ExecutionOrder()
	if err != nil {
		return
	}

	root, ok := doc.Value.(*yamldoc.Map)
	if !ok {
		return
	}
	jobsItem := root.Item("jobs")
	if jobsItem == nil {
		return
	}
	jobsMap, ok := jobsItem.Value.(*yamldoc.Map)
	if !ok {
		return
	}

	byName := map[string]*yamldoc.MapItem{}
	for _, item := range jobsMap.Items {
		if name, ok := item.Key.(string); ok {
			byName[name] = item
		}
	}

	var reordered []*yamldoc.MapItem
	for _, name := range order {
		if item, found := byName[name]; found {
			reordered = append(reordered, item)
			delete(byName, name)
		}
	}
	for _, item := range jobsMap.Items {
		if name, ok := item.Key.(string); ok {
			if _, left := byName[name]; !left {
				continue
			}
		}
		reordered = append(reordered, item)
	}
	jobsMap.Items = reordered
}
