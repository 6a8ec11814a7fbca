// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"fmt"
	"strings"

	"github.com/cfgkit/jobcfg/pkg/filepos"
)

// Violation is a single failed check, anchored to the document line that
// caused it.
type Violation struct {
	Position *filepos.Position
	Title    string // eg "UNEXPECTED KEY"
	Message  string
	Found    string
	Expected string
	Hint     string
}

var _ error = Violation{}

func (v Violation) Error() string {
	position := v.Position.AsCompactString()
	leftColumnSize := len(position) + 1
	lineContent := strings.TrimRight(v.Position.GetLine(), " \t")

	msg := "\n"
	msg += formatLine(leftColumnSize, position, lineContent)
	msg += formatLine(leftColumnSize, "", "")
	msg += formatLine(leftColumnSize, "", v.Title+" - "+v.Message)
	if v.Found != "" {
		msg += formatLine(leftColumnSize, "", fmt.Sprintf("     found: %s", v.Found))
	}
	if v.Expected != "" {
		msg += formatLine(leftColumnSize, "", fmt.Sprintf("  expected: %s", v.Expected))
	}
	if v.Hint != "" {
		msg += formatLine(leftColumnSize, "", fmt.Sprintf("  (hint: %s)", v.Hint))
	}

	return msg
}

func NewUnexpectedKeyError(pos *filepos.Position, key string, hint string) error {
	return Violation{
		Position: pos,
		Title:    "UNEXPECTED KEY",
		Message:  "this key is not part of the document's schema:",
		Found:    key,
		Hint:     hint,
	}
}

func NewMissingKeyError(pos *filepos.Position, key, within string) error {
	return Violation{
		Position: pos,
		Title:    "MISSING KEY",
		Message:  fmt.Sprintf("%s requires this key:", within),
		Expected: key,
	}
}

func NewMismatchedTypeError(pos *filepos.Position, found, expected string) error {
	return Violation{
		Position: pos,
		Title:    "TYPE MISMATCH",
		Message:  "the value of this item is not what its schema expects:",
		Found:    found,
		Expected: expected,
	}
}

func NewInvalidValueError(pos *filepos.Position, message, found, expected string) error {
	return Violation{
		Position: pos,
		Title:    "INVALID VALUE",
		Message:  message,
		Found:    found,
		Expected: expected,
	}
}

func NewUnresolvedReferenceError(pos *filepos.Position, ref, expected, hint string) error {
	return Violation{
		Position: pos,
		Title:    "UNRESOLVED REFERENCE",
		Message:  "this reference does not name a declared target:",
		Found:    ref,
		Expected: expected,
		Hint:     hint,
	}
}

func leftPadding(size int) string {
	return strings.Repeat(" ", size)
}

func formatLine(leftColumnSize int, left, right string) string {
	if len(right) > 0 {
		right = " " + right
	}
	return fmt.Sprintf("%s%s|%s\n", left, leftPadding(leftColumnSize-len(left)), right)
}
