// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package recipe

import (
	"strings"

	"github.com/cfgkit/jobcfg/pkg/checks"
	"github.com/cfgkit/jobcfg/pkg/filepos"
	"github.com/cfgkit/jobcfg/pkg/yamldoc"
)

// Recipe is a parsed package-build recipe manifest.
type Recipe struct {
	Package      Package
	Source       Source
	Requirements Requirements
	Test         Test
	About        About
	Maintainers  []checks.String

	Position *filepos.Position
}

type Package struct {
	Name    checks.String
	Version checks.String
}

type Source struct {
	URL checks.String
}

type Requirements struct {
	Host []Requirement
	Run  []Requirement
}

// Requirement is one entry of requirements.host or requirements.run:
// a package name optionally followed by a version constraint list,
// eg "python >=3.7,<4.0".
type Requirement struct {
	Name       string
	Constraint string
	Raw        checks.String
}

type Test struct {
	Imports []checks.String
}

type About struct {
	Home        checks.String
	License     checks.String
	LicenseFile checks.String
	Summary     checks.String
	Description checks.String
	DocURL      checks.String
	DevURL      checks.String
}

// NewFromDocument decodes a recipe document, recording shape violations
// (wrong types, unknown keys, missing required keys) as it goes.
func NewFromDocument(doc *yamldoc.Document) (*Recipe, checks.Check) {
	var chk checks.Check

	root, ok := doc.Value.(*yamldoc.Map)
	if !ok {
		chk.Add(checks.NewMismatchedTypeError(doc.Position, checks.TypeOf(doc.Value), "map"))
		return nil, chk
	}

	recipe := &Recipe{Position: doc.Position}

	checks.DisallowUnknownKeys(&chk, root, "kind", "package", "source", "requirements", "test", "about", "extra")

	if pkg := checks.RequiredMapAt(&chk, root, "package", "a recipe"); pkg != nil {
		checks.DisallowUnknownKeys(&chk, pkg, "name", "version")
		recipe.Package.Name, _ = checks.RequiredStringAt(&chk, pkg, "name", "package")
		recipe.Package.Version, _ = checks.RequiredStringAt(&chk, pkg, "version", "package")
	}

	if src := checks.RequiredMapAt(&chk, root, "source", "a recipe"); src != nil {
		checks.DisallowUnknownKeys(&chk, src, "url")
		recipe.Source.URL, _ = checks.RequiredStringAt(&chk, src, "url", "source")
	}

	if reqs := checks.MapAt(&chk, root, "requirements"); reqs != nil {
		checks.DisallowUnknownKeys(&chk, reqs, "host", "run")
		recipe.Requirements.Host = parseRequirements(&chk, reqs, "host")
		recipe.Requirements.Run = parseRequirements(&chk, reqs, "run")
	}

	if test := checks.MapAt(&chk, root, "test"); test != nil {
		checks.DisallowUnknownKeys(&chk, test, "imports")
		recipe.Test.Imports = checks.StringsAt(&chk, test, "imports")
	}

	if about := checks.RequiredMapAt(&chk, root, "about", "a recipe"); about != nil {
		checks.DisallowUnknownKeys(&chk, about,
			"home", "license", "license_file", "summary", "description", "doc_url", "dev_url")
		recipe.About.Home, _ = checks.StringAt(&chk, about, "home")
		recipe.About.License, _ = checks.RequiredStringAt(&chk, about, "license", "about")
		recipe.About.LicenseFile, _ = checks.StringAt(&chk, about, "license_file")
		recipe.About.Summary, _ = checks.StringAt(&chk, about, "summary")
		recipe.About.Description, _ = checks.StringAt(&chk, about, "description")
		recipe.About.DocURL, _ = checks.StringAt(&chk, about, "doc_url")
		recipe.About.DevURL, _ = checks.StringAt(&chk, about, "dev_url")
	}

	if extra := checks.MapAt(&chk, root, "extra"); extra != nil {
		checks.DisallowUnknownKeys(&chk, extra, "recipe-maintainers")
		recipe.Maintainers = checks.StringsAt(&chk, extra, "recipe-maintainers")
	}

	return recipe, chk
}

func parseRequirements(chk *checks.Check, reqs *yamldoc.Map, key string) []Requirement {
	var result []Requirement
	for _, raw := range checks.StringsAt(chk, reqs, key) {
		name, constraint := splitRequirement(raw.Value)
		result = append(result, Requirement{Name: name, Constraint: constraint, Raw: raw})
	}
	return result
}

func splitRequirement(raw string) (string, string) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], "")
}
