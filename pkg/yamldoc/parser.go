// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package yamldoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cfgkit/jobcfg/pkg/filepos"
	"gopkg.in/yaml.v3"
)

type Parser struct {
	associatedName string
	lines          []string

	// anchors currently being expanded; an alias back into this set
	// means the anchor contains itself
	expanding map[*yaml.Node]struct{}
}

func NewParser() *Parser {
	return &Parser{}
}

// ParseBytes parses data into a DocumentSet. associatedName (typically the
// file's relative path) is recorded in every node position.
func (p *Parser) ParseBytes(data []byte, associatedName string) (*DocumentSet, error) {
	p.associatedName = associatedName
	p.lines = strings.Split(string(data), "\n")
	p.expanding = map[*yaml.Node]struct{}{}

	docSet := &DocumentSet{Position: filepos.NewUnknownPositionInFile(associatedName)}

	dec := yaml.NewDecoder(bytes.NewReader(data))

	for {
		var docNode yaml.Node

		err := dec.Decode(&docNode)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Parsing %s: %s", p.fileDesc(), err)
		}

		doc, err := p.convertDocument(&docNode)
		if err != nil {
			return nil, err
		}

		docSet.Items = append(docSet.Items, doc)
	}

	if len(docSet.Items) == 0 {
		docSet.Items = append(docSet.Items, &Document{Position: p.position(1)})
	}

	return docSet, nil
}

func (p *Parser) fileDesc() string {
	if p.associatedName == "" {
		return "YAML"
	}
	return fmt.Sprintf("file '%s'", p.associatedName)
}

func (p *Parser) convertDocument(n *yaml.Node) (*Document, error) {
	if n.Kind != yaml.DocumentNode || len(n.Content) == 0 {
		return &Document{Position: p.position(n.Line)}, nil
	}

	val, err := p.convertNode(n.Content[0])
	if err != nil {
		return nil, err
	}

	return &Document{Value: val, Position: p.position(n.Content[0].Line)}, nil
}

func (p *Parser) convertNode(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.MappingNode:
		result := &Map{Position: p.position(n.Line)}
		for i := 0; i < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]

			key, err := p.convertScalar(keyNode)
			if err != nil {
				return nil, err
			}

			val, err := p.convertNode(valNode)
			if err != nil {
				return nil, err
			}

			result.Items = append(result.Items, &MapItem{
				Key:      key,
				Value:    val,
				Position: p.position(keyNode.Line),
			})
		}
		return result, nil

	case yaml.SequenceNode:
		result := &Array{Position: p.position(n.Line)}
		for _, itemNode := range n.Content {
			val, err := p.convertNode(itemNode)
			if err != nil {
				return nil, err
			}
			result.Items = append(result.Items, &ArrayItem{
				Value:    val,
				Position: p.position(itemNode.Line),
			})
		}
		return result, nil

	case yaml.ScalarNode:
		return p.convertScalar(n)

	case yaml.AliasNode:
		if _, inProgress := p.expanding[n.Alias]; inProgress {
			return nil, fmt.Errorf("Parsing %s: anchor '%s' contains itself at line %d",
				p.fileDesc(), n.Value, n.Line)
		}
		p.expanding[n.Alias] = struct{}{}
		val, err := p.convertNode(n.Alias)
		delete(p.expanding, n.Alias)
		return val, err

	default:
		return nil, fmt.Errorf("Parsing %s: unsupported YAML node kind %d at line %d",
			p.fileDesc(), n.Kind, n.Line)
	}
}

func (p *Parser) convertScalar(n *yaml.Node) (interface{}, error) {
	var val interface{}

	err := n.Decode(&val)
	if err != nil {
		return nil, fmt.Errorf("Parsing %s: %s", p.fileDesc(), err)
	}

	// date-looking scalars stay strings (documents carry them verbatim)
	if _, isTime := val.(time.Time); isTime {
		return n.Value, nil
	}

	return val, nil
}

func (p *Parser) position(lineNum int) *filepos.Position {
	if lineNum <= 0 || lineNum > len(p.lines) {
		return filepos.NewUnknownPositionInFile(p.associatedName)
	}

	pos := filepos.NewPositionInFile(lineNum, p.associatedName)
	pos.SetLine(p.lines[lineNum-1])
	return pos
}
