// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package recipe

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cfgkit/jobcfg/pkg/checks"
	"github.com/cfgkit/jobcfg/pkg/exprs"
	goversion "github.com/hashicorp/go-version"
)

var packageNameRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Resolver supplies pinned values for "${NAME}" placeholders.
type Resolver func(name string) (string, bool)

// Check runs the semantic checks over a decoded recipe: name format,
// source URL scheme, placeholder resolution, and version-constraint
// syntax (after resolution).
func (r *Recipe) Check(resolve Resolver) checks.Check {
	var chk checks.Check

	if name := r.Package.Name; name.Value != "" {
		if !packageNameRegexp.MatchString(name.Value) {
			chk.Add(checks.NewInvalidValueError(name.Position,
				"package name is not a valid package identifier:",
				name.Value, "lowercase letters, digits, '.', '_', '-'"))
		}
	}

	if version := r.Package.Version; version.Value != "" {
		resolved, missing := exprs.SubstitutePlaceholders(version.Value, resolve)
		for _, name := range missing {
			chk.Add(unresolvedPlaceholder(version, name))
		}
		if len(missing) == 0 {
			if _, err := goversion.NewVersion(resolved); err != nil {
				chk.Add(checks.NewInvalidValueError(version.Position,
					"package version does not parse:", resolved, "a semantic version"))
			}
		}
	}

	if url := r.Source.URL; url.Value != "" {
		if !strings.HasPrefix(url.Value, "http://") && !strings.HasPrefix(url.Value, "https://") {
			chk.Add(checks.NewInvalidValueError(url.Position,
				"source url is not fetchable:", url.Value, "an http(s) URL"))
		}
	}

	for _, req := range append(append([]Requirement{}, r.Requirements.Host...), r.Requirements.Run...) {
		chk.Merge(req.check(resolve))
	}

	if len(r.Maintainers) == 0 {
		chk.Add(checks.NewMissingKeyError(r.Position, "extra.recipe-maintainers",
			"a recipe (at least one maintainer)"))
	}

	return chk
}

func (req Requirement) check(resolve Resolver) checks.Check {
	var chk checks.Check

	if req.Name == "" {
		chk.Add(checks.NewInvalidValueError(req.Raw.Position,
			"requirement entry is empty:", req.Raw.Value, "'<name> [constraint]'"))
		return chk
	}

	if !packageNameRegexp.MatchString(req.Name) {
		chk.Add(checks.NewInvalidValueError(req.Raw.Position,
			"requirement name is not a valid package identifier:",
			req.Name, "lowercase letters, digits, '.', '_', '-'"))
	}

	if req.Constraint == "" {
		return chk
	}

	resolved, missing := exprs.SubstitutePlaceholders(req.Constraint, resolve)
	for _, name := range missing {
		chk.Add(unresolvedPlaceholder(req.Raw, name))
	}
	if len(missing) > 0 {
		return chk
	}

	if _, err := goversion.NewConstraint(normalizeConstraint(resolved)); err != nil {
		chk.Add(checks.NewInvalidValueError(req.Raw.Position,
			"requirement constraint does not parse:", req.Constraint,
			"a comma-separated list of ==, !=, >, <, >=, <=, ~> version constraints"))
	}

	return chk
}

// normalizeConstraint maps the recipe's "==" pin operator onto the "="
// operator the version library understands.
func normalizeConstraint(constraint string) string {
	var parts []string
	for _, part := range strings.Split(constraint, ",") {
		part = strings.TrimSpace(part)
		part = strings.Replace(part, "==", "=", 1)
		parts = append(parts, part)
	}
	return strings.Join(parts, ",")
}

func unresolvedPlaceholder(in checks.String, name string) error {
	return checks.Violation{
		Position: in.Position,
		Title:    "UNRESOLVED PLACEHOLDER",
		Message:  "this value references a pin that is not defined:",
		Found:    fmt.Sprintf("${%s}", name),
		Expected: "a pin set in jobcfg.toml [pins] or the process environment",
	}
}

// Resolve returns a copy of the recipe with every resolvable placeholder
// substituted (used by inspect to print the normalized manifest).
func (r *Recipe) Resolve(resolve Resolver) *Recipe {
	resolved := *r

	resolved.Package.Version.Value, _ = exprs.SubstitutePlaceholders(r.Package.Version.Value, resolve)

	resolved.Requirements.Host = resolveRequirements(r.Requirements.Host, resolve)
	resolved.Requirements.Run = resolveRequirements(r.Requirements.Run, resolve)

	return &resolved
}

func resolveRequirements(reqs []Requirement, resolve Resolver) []Requirement {
	var result []Requirement
	for _, req := range reqs {
		req.Constraint, _ = exprs.SubstitutePlaceholders(req.Constraint, resolve)
		req.Raw.Value, _ = exprs.SubstitutePlaceholders(req.Raw.Value, resolve)
		result = append(result, req)
	}
	return result
}
