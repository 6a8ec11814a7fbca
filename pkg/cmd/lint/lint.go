// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cfgkit/jobcfg/pkg/checks"
	"github.com/cfgkit/jobcfg/pkg/citemplate"
	"github.com/cfgkit/jobcfg/pkg/cmd/ui"
	"github.com/cfgkit/jobcfg/pkg/files"
	"github.com/cfgkit/jobcfg/pkg/kinds"
	"github.com/cfgkit/jobcfg/pkg/monitor"
	"github.com/cfgkit/jobcfg/pkg/pipeline"
	"github.com/cfgkit/jobcfg/pkg/recipe"
	"github.com/cfgkit/jobcfg/pkg/toolconfig"
	"github.com/cfgkit/jobcfg/pkg/yamldoc"
)

type Input struct {
	Files []*files.File
	// Template, when set, is checked against every CI invocation.
	Template *files.File
}

type Output struct {
	Results []Result
	Err     error
}

// Result carries the outcome of checking a single document.
type Result struct {
	File  *files.File
	Kind  kinds.Kind
	Check checks.Check
}

type document struct {
	file *files.File
	doc  *yamldoc.Document
	kind kinds.Kind
}

// RunWithFiles checks every document in the input files and returns one
// Result per document. It never partially succeeds: a parse failure is
// reported in Output.Err and no results are produced.
func (o *Options) RunWithFiles(in Input, ui ui.UI, config *toolconfig.Config) Output {
	forcedKind, forced, err := o.kind(config)
	if err != nil {
		return Output{Err: err}
	}

	var docs []document

	for _, file := range in.Files {
		if file.Type() != files.TypeYAML {
			ui.Debugf("lint: skipping %s (not a YAML file)\n", file.RelativePath())
			continue
		}

		docSet, err := parseFile(file)
		if err != nil {
			return Output{Err: err}
		}

		for _, doc := range docSet.Items {
			if doc.Value == nil {
				continue
			}
			kind := forcedKind
			if !forced {
				kind, err = kinds.Detect(doc)
				if err != nil {
					return Output{Err: fmt.Errorf("File '%s': %w", file.RelativePath(), err)}
				}
			}
			docs = append(docs, document{file, doc, kind})
		}
	}

	if len(docs) == 0 {
		return Output{Err: fmt.Errorf("Expected at least one YAML document among input files")}
	}

	contract, err := o.templateContract(in, docs)
	if err != nil {
		return Output{Err: err}
	}

	out := Output{}
	for _, entry := range docs {
		out.Results = append(out.Results, o.checkDocument(entry, contract, config))
	}
	return out
}

func (o *Options) checkDocument(entry document, contract *citemplate.Template, config *toolconfig.Config) Result {
	result := Result{File: entry.file, Kind: entry.kind}

	switch entry.kind {
	case kinds.Recipe:
		r, chk := recipe.NewFromDocument(entry.doc)
		if r != nil {
			chk.Merge(r.Check(config.Resolver()))
		}
		result.Check = chk

	case kinds.Monitor:
		job, chk := monitor.NewFromDocument(entry.doc)
		if job != nil {
			chk.Merge(job.Check())
		}
		result.Check = chk

	case kinds.Pipeline:
		job, chk := pipeline.NewFromDocument(entry.doc)
		if job != nil {
			chk.Merge(job.Check())
		}
		result.Check = chk

	case kinds.CITemplate:
		tpl, chk := citemplate.NewTemplateFromDocument(entry.doc)
		if tpl != nil {
			chk.Merge(tpl.Check())
		}
		result.Check = chk

	case kinds.CI:
		inv, chk := citemplate.NewInvocationFromDocument(entry.doc)
		if inv != nil {
			chk.Merge(inv.Check())
			chk.Merge(o.checkContract(inv, entry.file, contract))
		}
		result.Check = chk
	}

	return result
}

// checkContract verifies the invocation's parameter overrides against the
// extended template's parameter declarations. The contract comes from the
// --template flag, from a ci-template document among the inputs, or from a
// local file named by extends.template next to the invocation.
func (o *Options) checkContract(inv *citemplate.Invocation, file *files.File, contract *citemplate.Template) checks.Check {
	var chk checks.Check

	if contract == nil {
		tpl, warn := loadLocalContract(inv, file)
		if warn != nil {
			chk.Warn(warn)
			return chk
		}
		contract = tpl
	}

	chk.Merge(inv.CheckAgainst(contract))
	return chk
}

// loadLocalContract resolves extends.template relative to the invocation
// file. Repo-qualified references ("path@repo") point outside the working
// tree, so the repo suffix is stripped before the lookup.
func loadLocalContract(inv *citemplate.Invocation, file *files.File) (*citemplate.Template, error) {
	ref := inv.Extends.Template.Value
	if ref == "" {
		return nil, fmt.Errorf("Cannot verify template contract: extends.template is empty")
	}

	path := ref
	if idx := strings.Index(path, "@"); idx >= 0 {
		path = path[:idx]
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(file.RelativePath()), path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot verify template contract: template '%s' not found locally (use --template)", ref)
	}

	docSet, err := yamldoc.NewParser().ParseBytes(data, path)
	if err != nil {
		return nil, fmt.Errorf("Cannot verify template contract: parsing template '%s': %s", ref, err)
	}
	if len(docSet.Items) == 0 || docSet.Items[0].Value == nil {
		return nil, fmt.Errorf("Cannot verify template contract: template '%s' is empty", ref)
	}

	tpl, chk := citemplate.NewTemplateFromDocument(docSet.Items[0])
	if chk.HasViolations() {
		return nil, fmt.Errorf("Cannot verify template contract: template '%s' is not a valid template manifest", ref)
	}
	return tpl, nil
}

// templateContract picks the contract shared by all CI invocations in this
// run: the --template file wins, otherwise the first ci-template document
// among the inputs serves.
func (o *Options) templateContract(in Input, docs []document) (*citemplate.Template, error) {
	if in.Template != nil {
		docSet, err := parseFile(in.Template)
		if err != nil {
			return nil, err
		}
		if len(docSet.Items) == 0 || docSet.Items[0].Value == nil {
			return nil, fmt.Errorf("File '%s': expected a template manifest, found an empty document", in.Template.RelativePath())
		}
		tpl, chk := citemplate.NewTemplateFromDocument(docSet.Items[0])
		if chk.HasViolations() {
			return nil, fmt.Errorf("File '%s': invalid template manifest:%s", in.Template.RelativePath(), chk.Error())
		}
		return tpl, nil
	}

	for _, entry := range docs {
		if entry.kind != kinds.CITemplate {
			continue
		}
		tpl, chk := citemplate.NewTemplateFromDocument(entry.doc)
		if tpl != nil && !chk.HasViolations() {
			return tpl, nil
		}
	}
	return nil, nil
}

func parseFile(file *files.File) (*yamldoc.DocumentSet, error) {
	data, err := file.Bytes()
	if err != nil {
		return nil, fmt.Errorf("Reading file '%s': %s", file.RelativePath(), err)
	}
	docSet, err := yamldoc.NewParser().ParseBytes(data, file.RelativePath())
	if err != nil {
		return nil, fmt.Errorf("Parsing file '%s': %s", file.RelativePath(), err)
	}
	return docSet, nil
}
