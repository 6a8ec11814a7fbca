// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package exprs

import (
	"regexp"
)

// placeholderRegexp deliberately does not match "${{" so binding
// expressions pass through substitution untouched.
var placeholderRegexp = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Placeholders lists the names of every "${NAME}" placeholder in s, in
// order of appearance.
func Placeholders(s string) []string {
	var names []string
	for _, match := range placeholderRegexp.FindAllStringSubmatch(s, -1) {
		names = append(names, match[1])
	}
	return names
}

// SubstitutePlaceholders replaces every "${NAME}" placeholder using
// resolve. Placeholders resolve could not supply are left in place and
// returned as missing.
func SubstitutePlaceholders(s string, resolve func(name string) (string, bool)) (string, []string) {
	var missing []string

	result := placeholderRegexp.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholderRegexp.FindStringSubmatch(match)[1]
		if val, found := resolve(name); found {
			return val
		}
		missing = append(missing, name)
		return match
	})

	return result, missing
}
