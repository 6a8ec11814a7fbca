// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package checks

// Check is the accumulated result of checking a document, recursively.
type Check struct {
	Violations []error
	Warnings   []error
}

// Add records a violation.
func (c *Check) Add(errs ...error) {
	c.Violations = append(c.Violations, errs...)
}

// Warn records a finding that does not fail the document on its own.
func (c *Check) Warn(errs ...error) {
	c.Warnings = append(c.Warnings, errs...)
}

// Merge folds another check's findings into this one.
func (c *Check) Merge(other Check) {
	c.Violations = append(c.Violations, other.Violations...)
	c.Warnings = append(c.Warnings, other.Warnings...)
}

// HasViolations indicates whether this Check contains any violations.
func (c Check) HasViolations() bool {
	return len(c.Violations) > 0
}

// Error generates the error message composed of the total set of Violations.
func (c Check) Error() string {
	if !c.HasViolations() {
		return ""
	}

	msg := ""
	for _, err := range c.Violations {
		msg += err.Error() + "\n"
	}
	return msg
}
