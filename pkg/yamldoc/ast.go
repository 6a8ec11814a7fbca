// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package yamldoc

import (
	"github.com/cfgkit/jobcfg/pkg/filepos"
)

// Node is a YAML structure that holds children; leaf values are plain Go
// scalars (string, int64, float64, bool, nil).
type Node interface {
	GetPosition() *filepos.Position
	GetValues() []interface{} // ie children

	sealed() // limit the concrete types of Node to types allowed in YAML
}

var _ = []Node{&DocumentSet{}, &Document{}, &Map{}, &MapItem{}, &Array{}, &ArrayItem{}}

type DocumentSet struct {
	Items    []*Document
	Position *filepos.Position
}

type Document struct {
	Value    interface{}
	Position *filepos.Position
}

type Map struct {
	Items    []*MapItem
	Position *filepos.Position
}

type MapItem struct {
	Key      interface{}
	Value    interface{}
	Position *filepos.Position
}

type Array struct {
	Items    []*ArrayItem
	Position *filepos.Position
}

type ArrayItem struct {
	Value    interface{}
	Position *filepos.Position
}

func (ds *DocumentSet) GetPosition() *filepos.Position { return ds.Position }
func (d *Document) GetPosition() *filepos.Position     { return d.Position }
func (m *Map) GetPosition() *filepos.Position          { return m.Position }
func (mi *MapItem) GetPosition() *filepos.Position     { return mi.Position }
func (a *Array) GetPosition() *filepos.Position        { return a.Position }
func (ai *ArrayItem) GetPosition() *filepos.Position   { return ai.Position }

func (ds *DocumentSet) GetValues() []interface{} {
	var result []interface{}
	for _, item := range ds.Items {
		result = append(result, item)
	}
	return result
}

func (d *Document) GetValues() []interface{} { return []interface{}{d.Value} }

func (m *Map) GetValues() []interface{} {
	var result []interface{}
	for _, item := range m.Items {
		result = append(result, item)
	}
	return result
}

func (mi *MapItem) GetValues() []interface{} { return []interface{}{mi.Value} }

func (a *Array) GetValues() []interface{} {
	var result []interface{}
	for _, item := range a.Items {
		result = append(result, item)
	}
	return result
}

func (ai *ArrayItem) GetValues() []interface{} { return []interface{}{ai.Value} }

func (ds *DocumentSet) sealed() {}
func (d *Document) sealed()     {}
func (m *Map) sealed()          {}
func (mi *MapItem) sealed()     {}
func (a *Array) sealed()        {}
func (ai *ArrayItem) sealed()   {}

// Get returns the value of the item keyed by `key`, when present.
func (m *Map) Get(key string) (interface{}, bool) {
	item := m.Item(key)
	if item == nil {
		return nil, false
	}
	return item.Value, true
}

// Item returns the item keyed by `key`, when present.
func (m *Map) Item(key string) *MapItem {
	if m == nil {
		return nil
	}
	for _, item := range m.Items {
		if item.Key == key {
			return item
		}
	}
	return nil
}
