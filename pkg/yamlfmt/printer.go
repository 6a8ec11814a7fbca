// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlfmt

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/cfgkit/jobcfg/pkg/yamldoc"
	"gopkg.in/yaml.v3"
)

type Printer struct {
	writer *writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{newWriter(w)}
}

func (p *Printer) Print(val interface{}) {
	p.print(val, whitespace{}, p.writer)
}

func (p *Printer) PrintStr(val interface{}) string {
	buf := new(bytes.Buffer)
	p.print(val, whitespace{}, newWriter(buf))
	return buf.String()
}

func (p *Printer) print(val interface{}, ws whitespace, writer *writer) {
	switch typedVal := val.(type) {
	case *yamldoc.DocumentSet:
		for i, item := range typedVal.Items {
			if i != 0 {
				writer.AddContent(writerChunk{Indent: ws.Indent, Content: "---"})
			}
			leafVal := p.leafValue(item.Value)
			if !leafVal.IsNil {
				p.print(item.Value, ws, writer)
			}
		}

	case *yamldoc.Document:
		panic(fmt.Sprintf("Unexpected %T in Printer", val))

	case *yamldoc.Map:
		for _, item := range typedVal.Items {
			leafVal := p.leafValue(item.Value)
			if !leafVal.IsLeaf || leafVal.IsMultiline() {
				writer.AddContent(writerChunk{
					Indent:         ws.Indent,
					Content:        fmt.Sprintf("%s:", item.Key),
					AllowsInlining: leafVal.IsLeaf,
					InliningSpacer: " ",
					CanBeInlined:   true,
				})
				p.print(item.Value, ws.NewIndented(), writer)
			} else {
				writer.AddContent(writerChunk{
					Indent:       ws.Indent,
					Content:      fmt.Sprintf("%s: %s", item.Key, leafVal.String),
					CanBeInlined: true,
				})
			}
		}

	case *yamldoc.MapItem:
		panic(fmt.Sprintf("Unexpected %T in Printer", val))

	case *yamldoc.Array:
		for _, item := range typedVal.Items {
			leafVal := p.leafValue(item.Value)
			if !leafVal.IsLeaf || leafVal.IsMultiline() {
				itemWs := ws.NewIndented()

				writer.AddContent(writerChunk{
					Indent:         ws.Indent,
					Content:        "-",
					AllowsInlining: true,
					InliningSpacer: " ",
					CanBeInlined:   true,
				})
				p.print(item.Value, itemWs, writer)
			} else {
				writer.AddContent(writerChunk{
					Indent:       ws.Indent,
					Content:      fmt.Sprintf("- %s", leafVal.String),
					CanBeInlined: true,
				})
			}
		}

	case *yamldoc.ArrayItem:
		panic(fmt.Sprintf("Unexpected %T in Printer", val))

	default:
		leafVal := p.leafValue(val)
		if !leafVal.IsLeaf {
			panic(fmt.Sprintf("Expected leaf, but was %T", typedVal))
		}
		writer.AddContent(writerChunk{
			Indent:       ws.Indent,
			Content:      leafVal.String,
			CanBeInlined: true,
		})
	}
}

type printerLeafValue struct {
	String string
	IsLeaf bool
	IsNil  bool
}

func (v printerLeafValue) IsMultiline() bool {
	return strings.Contains(v.String, "\n")
}

func (p *Printer) leafValue(val interface{}) printerLeafValue {
	switch val.(type) {
	case *yamldoc.DocumentSet, *yamldoc.Document, *yamldoc.Map, *yamldoc.MapItem, *yamldoc.Array, *yamldoc.ArrayItem:
		return printerLeafValue{}

	default:
		typedValBs, err := yaml.Marshal(val)
		if err != nil {
			panic(fmt.Sprintf("Failed to serialize %T", val))
		}
		return printerLeafValue{
			String: strings.TrimSuffix(string(typedValBs), "\n"),
			IsLeaf: true,
			IsNil:  val == nil,
		}
	}
}

type whitespace struct {
	Indent string
}

func (w whitespace) NewIndented() whitespace {
	const indentLvl = "  "
	return whitespace{Indent: w.Indent + indentLvl}
}
