package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// DefaultMaxDepth bounds element nesting.
const DefaultMaxDepth = 256

// ParseError reports malformed XML. The whole document is rejected.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("xml parse error at line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("xml parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	errNoRoot       = errors.New("document has no root element")
	errTrailingRoot = errors.New("content after root element")
	errTooDeep      = errors.New("element nesting too deep")
)

// Parser converts XML documents into Node trees.
type Parser struct {
	// Repeatable names the elements that may occur more than once under
	// the same parent. Their nodes always render as JSON arrays.
	Repeatable map[string]bool
	MaxDepth   int
}

// NewParser returns a Parser that treats the given element names as
// repeatable.
func NewParser(repeatable ...string) *Parser {
	set := make(map[string]bool, len(repeatable))
	for _, name := range repeatable {
		set[name] = true
	}
	return &Parser{Repeatable: set, MaxDepth: DefaultMaxDepth}
}

// Parse reads one XML document.
func (p *Parser) Parse(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.CharsetReader = charsetReader

	maxDepth := p.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var (
		root  *Node
		stack []*Node
		text  []*strings.Builder
	)

	fail := func(err error) (*Node, error) {
		line, col := dec.InputPos()
		return nil, &ParseError{Line: line, Column: col, Err: err}
	}

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return fail(errTrailingRoot)
			}
			if len(stack) >= maxDepth {
				return fail(errTooDeep)
			}

			name := qualified(t.Name)
			node := &Node{Name: name, repeatable: p.Repeatable[name]}
			for _, a := range t.Attr {
				if node.Attrs == nil {
					node.Attrs = make(map[string]string, len(t.Attr))
				}
				node.Attrs[qualified(a.Name)] = a.Value
			}

			if len(stack) == 0 {
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
			text = append(text, &strings.Builder{})

		case xml.EndElement:
			if len(stack) == 0 {
				return fail(fmt.Errorf("unexpected end element </%s>", qualified(t.Name)))
			}
			top := stack[len(stack)-1]
			if name := qualified(t.Name); name != top.Name {
				return fail(fmt.Errorf("element <%s> closed by </%s>", top.Name, name))
			}
			top.Text = strings.TrimSpace(text[len(text)-1].String())
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return fail(errors.New("character data outside root element"))
				}
				continue
			}
			text[len(text)-1].Write(t)
		}
	}

	if len(stack) > 0 {
		return fail(fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].Name))
	}
	if root == nil {
		return fail(errNoRoot)
	}
	return root, nil
}

// charsetReader decodes documents that declare a non-UTF-8 encoding by its
// IANA name, such as ISO-8859-1 or windows-1252.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
