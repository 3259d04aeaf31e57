// Package xmltree parses XML into a generic, order-preserving element tree.
// Element and attribute names keep their namespace prefix as written
// ("sru:record"), which is how the SRU envelope is addressed.
package xmltree

// Node is one XML element.
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Node

	repeatable bool
}

// Child returns the first child named name. It is nil-safe so lookups can be
// chained through optional elements.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Path follows a chain of child names, returning nil at the first gap.
func (n *Node) Path(names ...string) *Node {
	cur := n
	for _, name := range names {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// All returns every child named name, in document order.
func (n *Node) All(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns the attribute value, or "".
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// Repeatable reports whether the node's name was declared repeatable when
// it was parsed.
func (n *Node) Repeatable() bool {
	return n != nil && n.repeatable
}

// ChildText returns the text of the first child named name, or "".
func (n *Node) ChildText(name string) string {
	if c := n.Child(name); c != nil {
		return c.Text
	}
	return ""
}
