package xmltree

import "encoding/json"

// MarshalJSON renders the node the way loosely typed XML-to-object
// converters do: a bare string for a text-only leaf, otherwise an object
// with "@attr" keys, a "#text" key and one key per child name. Children
// with a repeated or repeatable name become arrays.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value())
}

func (n *Node) value() any {
	if len(n.Attrs) == 0 && len(n.Children) == 0 {
		return n.Text
	}

	obj := make(map[string]any, len(n.Attrs)+len(n.Children)+1)
	for k, v := range n.Attrs {
		obj["@"+k] = v
	}
	if n.Text != "" {
		obj["#text"] = n.Text
	}

	groups := make(map[string][]*Node)
	var order []string
	for _, c := range n.Children {
		if _, seen := groups[c.Name]; !seen {
			order = append(order, c.Name)
		}
		groups[c.Name] = append(groups[c.Name], c)
	}
	for _, name := range order {
		nodes := groups[name]
		if len(nodes) == 1 && !nodes[0].repeatable {
			obj[name] = nodes[0].value()
			continue
		}
		items := make([]any, len(nodes))
		for i, c := range nodes {
			items[i] = c.value()
		}
		obj[name] = items
	}
	return obj
}
