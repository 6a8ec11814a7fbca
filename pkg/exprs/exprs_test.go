// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package exprs_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/cfgkit/jobcfg/pkg/exprs"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

func TestScanBindings(t *testing.T) {
	bindings, errs := exprs.ScanBindings("--data ${{parent.inputs.raw}} --out ${{ outputs.model }}")
	require.Empty(t, errs)
	require.Len(t, bindings, 2)

	require.Equal(t, "${{parent.inputs.raw}}", bindings[0].Raw)
	require.Equal(t, "parent.inputs.raw", bindings[0].Text)
	require.Equal(t, 7, bindings[0].Offset)

	require.Equal(t, "${{ outputs.model }}", bindings[1].Raw)
	require.Equal(t, "outputs.model", bindings[1].Text)
}

func TestScanBindingsNoBindings(t *testing.T) {
	bindings, errs := exprs.ScanBindings("python train.py --epochs 10")
	require.Empty(t, errs)
	require.Empty(t, bindings)
}

func TestScanBindingsUnterminated(t *testing.T) {
	bindings, errs := exprs.ScanBindings("--data ${{parent.inputs.raw")
	require.Empty(t, bindings)
	require.Len(t, errs, 1)
	require.Equal(t, "unterminated expression '${{parent.inputs.raw'", errs[0].Error())
}

func TestScanBindingsEmpty(t *testing.T) {
	bindings, errs := exprs.ScanBindings("x ${{ }} y ${{outputs.ok}}")
	require.Len(t, errs, 1)
	require.Equal(t, "empty expression '${{ }}'", errs[0].Error())
	require.Len(t, bindings, 1)
	require.Equal(t, "outputs.ok", bindings[0].Text)
}

func TestParseRefForms(t *testing.T) {
	cases := []struct {
		text     string
		expected exprs.Ref
	}{
		{"inputs.raw", exprs.Ref{Dir: "inputs", Name: "raw"}},
		{"outputs.model", exprs.Ref{Dir: "outputs", Name: "model"}},
		{"parent.inputs.raw", exprs.Ref{Dir: "inputs", Name: "raw", Parent: true}},
		{"parent.outputs.model", exprs.Ref{Dir: "outputs", Name: "model", Parent: true}},
		{"parent.jobs.train.inputs.raw", exprs.Ref{Step: "train", Dir: "inputs", Name: "raw", Parent: true}},
		{"parent.jobs.train.outputs.model", exprs.Ref{Step: "train", Dir: "outputs", Name: "model", Parent: true}},
	}

	for _, c := range cases {
		binding := exprs.Binding{Raw: "${{" + c.text + "}}", Text: c.text}
		ref, err := exprs.ParseRef(binding)
		require.NoErrorf(t, err, "parsing %q", c.text)

		c.expected.Binding = binding
		require.Equalf(t, c.expected, ref, "parsing %q", c.text)
		require.Equal(t, c.text, ref.String())
	}
}

func TestParseRefUnsupportedForms(t *testing.T) {
	for _, text := range []string{
		"inputs",
		"parent.raw",
		"parent.jobs.train.raw",
		"parent.jobs.train.inputs",
		"jobs.train.outputs.model",
		"parent.jobs.train.outputs.model.extra",
	} {
		_, err := exprs.ParseRef(exprs.Binding{Text: text})
		require.Errorf(t, err, "expected %q to be rejected", text)
		require.Contains(t, err.Error(), "not a supported reference form")
	}
}

func TestParseRefMalformedSegment(t *testing.T) {
	_, err := exprs.ParseRef(exprs.Binding{Text: "inputs.9lives"})
	require.EqualError(t, err, "expression 'inputs.9lives' has a malformed segment '9lives'")
}

func TestPlaceholders(t *testing.T) {
	require.Equal(t, []string{"FOO_VER", "BAR"}, exprs.Placeholders(">=${FOO_VER},<${BAR}"))
	require.Empty(t, exprs.Placeholders("no placeholders here"))

	// binding expressions are not placeholders
	require.Empty(t, exprs.Placeholders("${{parent.inputs.raw}}"))
}

func TestSubstitutePlaceholders(t *testing.T) {
	pins := map[string]string{"FOO_VER": "1.2.3"}
	resolve := func(name string) (string, bool) {
		val, found := pins[name]
		return val, found
	}

	result, missing := exprs.SubstitutePlaceholders(">=${FOO_VER},<${BAR}", resolve)
	require.Equal(t, ">=1.2.3,<${BAR}", result)
	require.Equal(t, []string{"BAR"}, missing)

	result, missing = exprs.SubstitutePlaceholders("cmd ${{parent.inputs.raw}}", resolve)
	require.Equal(t, "cmd ${{parent.inputs.raw}}", result)
	require.Empty(t, missing)
}

func TestScanBindingsFuzz(t *testing.T) {
	seed := time.Now().UnixNano()
	t.Logf("seed: %d", seed)

	fuzzStrings := fuzz.New().RandSource(rand.NewSource(seed)).Funcs(func(s *string, c fuzz.Continue) {
		*s = c.RandString()
	})

	pieces := []string{"${{", "}}", "${", "}", "parent.", "inputs.", " "}

	for i := 0; i < 500; i++ {
		var str string
		fuzzStrings.Fuzz(&str)
		str += pieces[i%len(pieces)] + str

		// must never panic, and every returned binding must carry its markers
		bindings, _ := exprs.ScanBindings(str)
		for _, binding := range bindings {
			require.Contains(t, binding.Raw, "${{")
			require.Contains(t, binding.Raw, "}}")
			require.NotEmpty(t, binding.Text)
		}
	}
}
