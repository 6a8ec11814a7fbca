// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package checks_test

import (
	"testing"

	"github.com/cfgkit/jobcfg/pkg/checks"
	"github.com/cfgkit/jobcfg/pkg/filepos"
	"github.com/cfgkit/jobcfg/pkg/yamldoc"
	"github.com/stretchr/testify/require"
)

func TestViolationRendering(t *testing.T) {
	const data = `package:
  nmae: foo
`

	docSet, err := yamldoc.NewParser().ParseBytes([]byte(data), "recipe.yml")
	require.NoError(t, err)

	root := docSet.Items[0].Value.(*yamldoc.Map)
	pkg := root.Item("package").Value.(*yamldoc.Map)

	var chk checks.Check
	checks.DisallowUnknownKeys(&chk, pkg, "name", "version")
	require.True(t, chk.HasViolations())

	const expected = `
recipe.yml:2 |   nmae: foo
             |
             | UNEXPECTED KEY - this key is not part of the document's schema:
             |      found: nmae
             |   (hint: did you mean 'name'?)
`
	require.Equal(t, expected, chk.Error())
}

func TestMissingKeyRendering(t *testing.T) {
	const data = `source:
  url: https://example.com/foo.tar.gz
`

	docSet, err := yamldoc.NewParser().ParseBytes([]byte(data), "recipe.yml")
	require.NoError(t, err)

	root := docSet.Items[0].Value.(*yamldoc.Map)

	var chk checks.Check
	checks.RequiredMapAt(&chk, root, "package", "a recipe")

	const expected = `
recipe.yml:1 | source:
             |
             | MISSING KEY - a recipe requires this key:
             |   expected: package
`
	require.Equal(t, expected, chk.Error())
}

func TestShapeAccessors(t *testing.T) {
	const data = `name: foo
count: 3
ratio: 0.5
enabled: true
tags:
  - one
  - two
pins:
  python: "3.11"
`

	docSet, err := yamldoc.NewParser().ParseBytes([]byte(data), "")
	require.NoError(t, err)
	root := docSet.Items[0].Value.(*yamldoc.Map)

	var chk checks.Check

	name, found := checks.StringAt(&chk, root, "name")
	require.True(t, found)
	require.Equal(t, "foo", name.Value)
	require.Equal(t, 1, name.Position.LineNum())

	count, _, found := checks.IntAt(&chk, root, "count")
	require.True(t, found)
	require.Equal(t, 3, count)

	ratio, _, found := checks.FloatAt(&chk, root, "ratio")
	require.True(t, found)
	require.Equal(t, 0.5, ratio)

	enabled, found := checks.BoolAt(&chk, root, "enabled")
	require.True(t, found)
	require.True(t, enabled)

	tags := checks.StringsAt(&chk, root, "tags")
	require.Len(t, tags, 2)
	require.Equal(t, "one", tags[0].Value)

	pins := checks.StringMapAt(&chk, root, "pins")
	require.NotNil(t, pins)

	_, found = checks.StringAt(&chk, root, "absent")
	require.False(t, found)

	require.False(t, chk.HasViolations())
}

func TestShapeTypeMismatches(t *testing.T) {
	const data = `name: 42
tags: not-an-array
`

	docSet, err := yamldoc.NewParser().ParseBytes([]byte(data), "")
	require.NoError(t, err)
	root := docSet.Items[0].Value.(*yamldoc.Map)

	var chk checks.Check

	_, found := checks.StringAt(&chk, root, "name")
	require.False(t, found)

	require.Nil(t, checks.ArrayAt(&chk, root, "tags"))

	require.Len(t, chk.Violations, 2)
}

func TestOneOf(t *testing.T) {
	var chk checks.Check

	ok := checks.OneOf(&chk, checks.String{Value: "day"}, []string{"day", "week"}, "this frequency")
	require.True(t, ok)
	require.False(t, chk.HasViolations())

	pos := filepos.NewPositionInFile(1, "job.yml")
	ok = checks.OneOf(&chk, checks.String{Value: "fortnight", Position: pos}, []string{"day", "week"}, "this frequency")
	require.False(t, ok)
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "expected: one of: day, week")
}

func TestCheckMergeAndWarnings(t *testing.T) {
	var a, b checks.Check

	a.Warn(checks.NewMissingKeyError(nil, "x", "something"))
	require.False(t, a.HasViolations())
	require.Len(t, a.Warnings, 1)

	b.Add(checks.NewMissingKeyError(nil, "y", "something"))
	a.Merge(b)
	require.True(t, a.HasViolations())
	require.Len(t, a.Violations, 1)
	require.Len(t, a.Warnings, 1)
}
