// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"fmt"

	"github.com/cfgkit/jobcfg/pkg/filepos"
	"github.com/cfgkit/jobcfg/pkg/spell"
	"github.com/cfgkit/jobcfg/pkg/yamldoc"
)

// String is a scalar string together with the position it was parsed at.
type String struct {
	Value    string
	Position *filepos.Position
}

// TypeOf names the YAML type of a parsed value, for use in diagnostics.
func TypeOf(val interface{}) string {
	switch val.(type) {
	case *yamldoc.Map:
		return "map"
	case *yamldoc.Array:
		return "array"
	case string:
		return "string"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", val)
	}
}

// MapAt returns the map under `key`, recording a violation when the value
// is present but not a map. Returns nil when the key is absent.
func MapAt(c *Check, m *yamldoc.Map, key string) *yamldoc.Map {
	item := m.Item(key)
	if item == nil {
		return nil
	}
	typed, ok := item.Value.(*yamldoc.Map)
	if !ok {
		c.Add(NewMismatchedTypeError(item.Position, TypeOf(item.Value), "map"))
		return nil
	}
	return typed
}

// RequiredMapAt is MapAt plus a missing-key violation when absent.
func RequiredMapAt(c *Check, m *yamldoc.Map, key, within string) *yamldoc.Map {
	if m.Item(key) == nil {
		c.Add(NewMissingKeyError(m.GetPosition(), key, within))
		return nil
	}
	return MapAt(c, m, key)
}

// ArrayAt returns the array under `key`, recording a violation when the
// value is present but not an array. Returns nil when the key is absent.
func ArrayAt(c *Check, m *yamldoc.Map, key string) *yamldoc.Array {
	item := m.Item(key)
	if item == nil {
		return nil
	}
	typed, ok := item.Value.(*yamldoc.Array)
	if !ok {
		c.Add(NewMismatchedTypeError(item.Position, TypeOf(item.Value), "array"))
		return nil
	}
	return typed
}

// StringAt returns the string under `key`; false when absent or not a
// string (the latter also records a violation).
func StringAt(c *Check, m *yamldoc.Map, key string) (String, bool) {
	item := m.Item(key)
	if item == nil {
		return String{}, false
	}
	typed, ok := item.Value.(string)
	if !ok {
		c.Add(NewMismatchedTypeError(item.Position, TypeOf(item.Value), "string"))
		return String{}, false
	}
	return String{Value: typed, Position: item.Position}, true
}

// RequiredStringAt is StringAt plus a missing-key violation when absent.
func RequiredStringAt(c *Check, m *yamldoc.Map, key, within string) (String, bool) {
	if m.Item(key) == nil {
		c.Add(NewMissingKeyError(m.GetPosition(), key, within))
		return String{}, false
	}
	return StringAt(c, m, key)
}

// IntAt returns the integer under `key`; false when absent or not an
// integer (the latter also records a violation).
func IntAt(c *Check, m *yamldoc.Map, key string) (int, *filepos.Position, bool) {
	item := m.Item(key)
	if item == nil {
		return 0, nil, false
	}
	switch typed := item.Value.(type) {
	case int:
		return typed, item.Position, true
	case int64:
		return int(typed), item.Position, true
	default:
		c.Add(NewMismatchedTypeError(item.Position, TypeOf(item.Value), "integer"))
		return 0, nil, false
	}
}

// BoolAt returns the boolean under `key`; false when absent or not a
// boolean (the latter also records a violation).
func BoolAt(c *Check, m *yamldoc.Map, key string) (bool, bool) {
	item := m.Item(key)
	if item == nil {
		return false, false
	}
	typed, ok := item.Value.(bool)
	if !ok {
		c.Add(NewMismatchedTypeError(item.Position, TypeOf(item.Value), "boolean"))
		return false, false
	}
	return typed, true
}

// FloatAt returns the numeric value under `key` widened to float64; false
// when absent or not numeric (the latter also records a violation).
func FloatAt(c *Check, m *yamldoc.Map, key string) (float64, *filepos.Position, bool) {
	item := m.Item(key)
	if item == nil {
		return 0, nil, false
	}
	switch typed := item.Value.(type) {
	case float64:
		return typed, item.Position, true
	case int:
		return float64(typed), item.Position, true
	case int64:
		return float64(typed), item.Position, true
	default:
		c.Add(NewMismatchedTypeError(item.Position, TypeOf(item.Value), "number"))
		return 0, nil, false
	}
}

// StringsAt returns the array of strings under `key`; non-string items are
// violations and are skipped.
func StringsAt(c *Check, m *yamldoc.Map, key string) []String {
	array := ArrayAt(c, m, key)
	if array == nil {
		return nil
	}

	var result []String
	for _, item := range array.Items {
		typed, ok := item.Value.(string)
		if !ok {
			c.Add(NewMismatchedTypeError(item.Position, TypeOf(item.Value), "string"))
			continue
		}
		result = append(result, String{Value: typed, Position: item.Position})
	}
	return result
}

// DisallowUnknownKeys records a violation for every key of `m` not in
// `allowed`, suggesting the nearest allowed key.
func DisallowUnknownKeys(c *Check, m *yamldoc.Map, allowed ...string) {
	if m == nil {
		return
	}

	allowedSet := map[string]struct{}{}
	for _, key := range allowed {
		allowedSet[key] = struct{}{}
	}

	for _, item := range m.Items {
		key, ok := item.Key.(string)
		if !ok {
			c.Add(NewMismatchedTypeError(item.Position, TypeOf(item.Key), "string key"))
			continue
		}
		if _, found := allowedSet[key]; found {
			continue
		}

		hint := ""
		if nearest, found := spell.Nearest(key, allowed); found {
			hint = fmt.Sprintf("did you mean '%s'?", nearest)
		}
		c.Add(NewUnexpectedKeyError(item.Position, key, hint))
	}
}

// OneOf records a violation unless value is among allowed.
func OneOf(c *Check, val String, allowed []string, what string) bool {
	for _, allowedVal := range allowed {
		if val.Value == allowedVal {
			return true
		}
	}

	expected := "one of: "
	for i, allowedVal := range allowed {
		if i != 0 {
			expected += ", "
		}
		expected += allowedVal
	}
	c.Add(NewInvalidValueError(val.Position, fmt.Sprintf("%s is not supported:", what), val.Value, expected))
	return false
}

// StringMapAt returns the flat string-to-scalar mapping under `key`;
// nested collections are violations.
func StringMapAt(c *Check, m *yamldoc.Map, key string) *yamldoc.Map {
	typed := MapAt(c, m, key)
	if typed == nil {
		return nil
	}

	for _, item := range typed.Items {
		switch item.Value.(type) {
		case *yamldoc.Map, *yamldoc.Array:
			c.Add(NewMismatchedTypeError(item.Position, TypeOf(item.Value), "scalar"))
		}
	}
	return typed
}
