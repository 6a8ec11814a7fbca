// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package recipe_test

import (
	"testing"

	"github.com/cfgkit/jobcfg/pkg/checks"
	"github.com/cfgkit/jobcfg/pkg/recipe"
	"github.com/cfgkit/jobcfg/pkg/yamldoc"
	"github.com/stretchr/testify/require"
)

const validRecipe = `package:
  name: libfoo
  version: ${FOO_VER}
source:
  url: https://example.com/libfoo-1.2.3.tar.gz
requirements:
  host:
    - python >=3.9
  run:
    - numpy ==${NUMPY_VER}
    - requests
test:
  imports:
    - foo
about:
  home: https://example.com
  license: MIT
  summary: A foo library.
extra:
  recipe-maintainers:
    - someone
`

func parseRecipe(t *testing.T, data string) (*recipe.Recipe, string) {
	t.Helper()

	docSet, err := yamldoc.NewParser().ParseBytes([]byte(data), "recipe.yml")
	require.NoError(t, err)

	r, chk := recipe.NewFromDocument(docSet.Items[0])
	return r, chk.Error()
}

func pinsResolver(pins map[string]string) recipe.Resolver {
	return func(name string) (string, bool) {
		val, found := pins[name]
		return val, found
	}
}

func TestRecipeDecode(t *testing.T) {
	r, decodeErrs := parseRecipe(t, validRecipe)
	require.Empty(t, decodeErrs)

	require.Equal(t, "libfoo", r.Package.Name.Value)
	require.Equal(t, "${FOO_VER}", r.Package.Version.Value)
	require.Equal(t, "https://example.com/libfoo-1.2.3.tar.gz", r.Source.URL.Value)

	require.Len(t, r.Requirements.Host, 1)
	require.Equal(t, "python", r.Requirements.Host[0].Name)
	require.Equal(t, ">=3.9", r.Requirements.Host[0].Constraint)

	require.Len(t, r.Requirements.Run, 2)
	require.Equal(t, "numpy", r.Requirements.Run[0].Name)
	require.Equal(t, "==${NUMPY_VER}", r.Requirements.Run[0].Constraint)
	require.Equal(t, "requests", r.Requirements.Run[1].Name)
	require.Equal(t, "", r.Requirements.Run[1].Constraint)

	require.Equal(t, []string{"foo"}, stringValues(r.Test.Imports))
	require.Equal(t, "MIT", r.About.License.Value)
	require.Equal(t, []string{"someone"}, stringValues(r.Maintainers))
}

func TestRecipeCheckResolved(t *testing.T) {
	r, decodeErrs := parseRecipe(t, validRecipe)
	require.Empty(t, decodeErrs)

	chk := r.Check(pinsResolver(map[string]string{"FOO_VER": "1.2.3", "NUMPY_VER": "1.26.0"}))
	require.False(t, chk.HasViolations())
}

func TestRecipeUnresolvedPlaceholder(t *testing.T) {
	r, decodeErrs := parseRecipe(t, validRecipe)
	require.Empty(t, decodeErrs)

	chk := r.Check(pinsResolver(map[string]string{"FOO_VER": "1.2.3"}))
	require.True(t, chk.HasViolations())
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "UNRESOLVED PLACEHOLDER")
	require.Contains(t, chk.Violations[0].Error(), "found: ${NUMPY_VER}")
}

func TestRecipeMissingRequiredKeys(t *testing.T) {
	_, decodeErrs := parseRecipe(t, `requirements:
  run:
    - python
`)
	require.Contains(t, decodeErrs, "a recipe requires this key:")
	require.Contains(t, decodeErrs, "expected: package")
	require.Contains(t, decodeErrs, "expected: source")
	require.Contains(t, decodeErrs, "expected: about")
}

func TestRecipeUnknownKeySuggestion(t *testing.T) {
	_, decodeErrs := parseRecipe(t, `package:
  name: libfoo
  verison: 1.0.0
source:
  url: https://example.com/x.tar.gz
about:
  license: MIT
`)
	require.Contains(t, decodeErrs, "UNEXPECTED KEY")
	require.Contains(t, decodeErrs, "found: verison")
	require.Contains(t, decodeErrs, "did you mean 'version'?")
}

func TestRecipeBadPackageName(t *testing.T) {
	r, _ := parseRecipe(t, `package:
  name: LibFoo
  version: 1.0.0
source:
  url: https://example.com/x.tar.gz
about:
  license: MIT
extra:
  recipe-maintainers:
    - someone
`)
	chk := r.Check(pinsResolver(nil))
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "package name is not a valid package identifier")
	require.Contains(t, chk.Violations[0].Error(), "found: LibFoo")
}

func TestRecipeBadSourceURL(t *testing.T) {
	r, _ := parseRecipe(t, `package:
  name: libfoo
  version: 1.0.0
source:
  url: ftp://example.com/x.tar.gz
about:
  license: MIT
extra:
  recipe-maintainers:
    - someone
`)
	chk := r.Check(pinsResolver(nil))
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "source url is not fetchable")
}

func TestRecipeConstraints(t *testing.T) {
	cases := []struct {
		constraint string
		ok         bool
	}{
		{">=3.9", true},
		{"==1.26.0", true},
		{">=1.0,<2.0", true},
		{"~>1.2", true},
		{"!=1.5.0", true},
		{">=>1.0", false},
		{"banana", false},
	}

	for _, c := range cases {
		r, _ := parseRecipe(t, `package:
  name: libfoo
  version: 1.0.0
source:
  url: https://example.com/x.tar.gz
requirements:
  run:
    - dep `+c.constraint+`
about:
  license: MIT
extra:
  recipe-maintainers:
    - someone
`)
		chk := r.Check(pinsResolver(nil))
		if c.ok {
			require.Falsef(t, chk.HasViolations(), "constraint %q: %s", c.constraint, chk.Error())
		} else {
			require.Truef(t, chk.HasViolations(), "constraint %q should be rejected", c.constraint)
			require.Contains(t, chk.Error(), "requirement constraint does not parse")
		}
	}
}

func TestRecipeNoMaintainers(t *testing.T) {
	r, _ := parseRecipe(t, `package:
  name: libfoo
  version: 1.0.0
source:
  url: https://example.com/x.tar.gz
about:
  license: MIT
`)
	chk := r.Check(pinsResolver(nil))
	require.Len(t, chk.Violations, 1)
	require.Contains(t, chk.Violations[0].Error(), "expected: extra.recipe-maintainers")
}

func TestRecipeResolve(t *testing.T) {
	r, _ := parseRecipe(t, validRecipe)

	resolved := r.Resolve(pinsResolver(map[string]string{"FOO_VER": "1.2.3", "NUMPY_VER": "1.26.0"}))
	require.Equal(t, "1.2.3", resolved.Package.Version.Value)
	require.Equal(t, "==1.26.0", resolved.Requirements.Run[0].Constraint)

	// the original is untouched
	require.Equal(t, "${FOO_VER}", r.Package.Version.Value)
}

func stringValues(strs []checks.String) []string {
	var result []string
	for _, str := range strs {
		result = append(result, str.Value)
	}
	return result
}
