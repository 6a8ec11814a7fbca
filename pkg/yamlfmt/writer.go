// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlfmt

import (
	"fmt"
	"io"
	"strings"
)

type writer struct {
	writer    io.Writer
	lastChunk writerChunk
}

type writerChunk struct {
	Content        string
	Indent         string
	AllowsInlining bool
	InliningSpacer string
	CanBeInlined   bool
}

func newWriter(w io.Writer) *writer {
	return &writer{writer: w}
}

func (w *writer) AddContent(chunk writerChunk) {
	defer func() {
		w.lastChunk = chunk
	}()

	if w.lastChunk.AllowsInlining {
		if !chunk.CanBeInlined {
			fmt.Fprintf(w.writer, "\n")
			fmt.Fprintf(w.writer, "%s", chunk.Indent)
		} else {
			fmt.Fprintf(w.writer, "%s", w.lastChunk.InliningSpacer)
			// continue with content
		}
	} else {
		fmt.Fprintf(w.writer, "%s", chunk.Indent)
	}

	fmt.Fprintf(w.writer, "%s", w.indentMultiline(chunk))

	if !chunk.AllowsInlining {
		fmt.Fprintf(w.writer, "\n")
	}
}

func (w *writer) indentMultiline(chunk writerChunk) string {
	if !strings.Contains(chunk.Content, "\n") {
		return chunk.Content
	}

	result := []string{}
	for i, piece := range strings.Split(chunk.Content, "\n") {
		if i != 0 && len(chunk.Indent) >= 2 {
			piece = chunk.Indent[0:len(chunk.Indent)-2] + piece
		}
		result = append(result, piece)
	}
	return strings.Join(result, "\n")
}
