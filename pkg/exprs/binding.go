// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package exprs

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	openMarker  = "${{"
	closeMarker = "}}"
)

var segmentRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-.]*$`)

// Binding is a single "${{ ... }}" expression found in a string value.
type Binding struct {
	Raw    string // full expression including markers
	Text   string // trimmed content between the markers
	Offset int    // byte offset of the expression within the scanned string
}

// Ref is a parsed binding expression.
type Ref struct {
	Binding Binding

	// Step is set for parent.jobs.<step>.* references.
	Step string
	// Dir is "inputs" or "outputs".
	Dir string
	// Name is the io entry being referenced.
	Name string
	// Parent reports whether the reference targets the enclosing pipeline
	// (parent.*) rather than the step's own io.
	Parent bool
}

// String returns the reference in its canonical dotted form.
func (r Ref) String() string {
	switch {
	case r.Step != "":
		return fmt.Sprintf("parent.jobs.%s.%s.%s", r.Step, r.Dir, r.Name)
	case r.Parent:
		return fmt.Sprintf("parent.%s.%s", r.Dir, r.Name)
	default:
		return fmt.Sprintf("%s.%s", r.Dir, r.Name)
	}
}

// ScanBindings finds every "${{ ... }}" expression in s. Unterminated or
// empty expressions are returned as errors.
func ScanBindings(s string) ([]Binding, []error) {
	var bindings []Binding
	var errs []error

	for idx := 0; idx < len(s); {
		start := strings.Index(s[idx:], openMarker)
		if start < 0 {
			break
		}
		start += idx

		end := strings.Index(s[start+len(openMarker):], closeMarker)
		if end < 0 {
			errs = append(errs, fmt.Errorf("unterminated expression '%s'", s[start:]))
			break
		}
		end += start + len(openMarker)

		raw := s[start : end+len(closeMarker)]
		text := strings.TrimSpace(s[start+len(openMarker) : end])
		if text == "" {
			errs = append(errs, fmt.Errorf("empty expression '%s'", raw))
		} else {
			bindings = append(bindings, Binding{Raw: raw, Text: text, Offset: start})
		}

		idx = end + len(closeMarker)
	}

	return bindings, errs
}

// ParseRef parses a binding into a reference. The accepted forms are:
//
//	inputs.<name>
//	outputs.<name>
//	parent.inputs.<name>
//	parent.outputs.<name>
//	parent.jobs.<step>.inputs.<name>
//	parent.jobs.<step>.outputs.<name>
func ParseRef(b Binding) (Ref, error) {
	segments := strings.Split(b.Text, ".")
	for _, segment := range segments {
		if !segmentRegexp.MatchString(segment) {
			return Ref{}, fmt.Errorf("expression '%s' has a malformed segment '%s'", b.Text, segment)
		}
	}

	switch {
	case len(segments) == 2 && isDir(segments[0]):
		return Ref{Binding: b, Dir: segments[0], Name: segments[1]}, nil

	case len(segments) == 3 && segments[0] == "parent" && isDir(segments[1]):
		return Ref{Binding: b, Dir: segments[1], Name: segments[2], Parent: true}, nil

	case len(segments) == 5 && segments[0] == "parent" && segments[1] == "jobs" && isDir(segments[3]):
		return Ref{Binding: b, Step: segments[2], Dir: segments[3], Name: segments[4], Parent: true}, nil

	default:
		return Ref{}, fmt.Errorf("expression '%s' is not a supported reference form"+
			" (inputs.N, outputs.N, parent.inputs.N, parent.outputs.N, parent.jobs.S.inputs.N, parent.jobs.S.outputs.N)", b.Text)
	}
}

func isDir(segment string) bool {
	return segment == "inputs" || segment == "outputs"
}
