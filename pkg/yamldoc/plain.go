// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package yamldoc

import (
	"github.com/cfgkit/jobcfg/pkg/orderedmap"
)

// AsInterface converts the document into plain Go values; maps become
// ordered maps so downstream output keeps the author's key order.
func (d *Document) AsInterface() interface{} {
	return plainValue(d.Value)
}

// AsInterface converts the map into an ordered map of plain Go values.
func (m *Map) AsInterface() *orderedmap.Map {
	result := orderedmap.NewMap()
	for _, item := range m.Items {
		result.Set(item.Key, plainValue(item.Value))
	}
	return result
}

// AsInterface converts the array into a slice of plain Go values.
func (a *Array) AsInterface() []interface{} {
	result := []interface{}{}
	for _, item := range a.Items {
		result = append(result, plainValue(item.Value))
	}
	return result
}

func plainValue(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case *Map:
		return typedVal.AsInterface()
	case *Array:
		return typedVal.AsInterface()
	default:
		return typedVal
	}
}
