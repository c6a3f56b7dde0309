package parser

import "encoding/json"

type jsonNode struct {
	Symbol   string      `json:"symbol,omitempty"`
	Kind     string      `json:"kind,omitempty"`
	Text     string      `json:"text,omitempty"`
	Pos      *jsonPos    `json:"pos,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonPos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (l *Leaf) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(l))
}

func (n *Interior) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(n))
}

func toJSON(n Node) *jsonNode {
	jn := &jsonNode{}
	if pos := n.Pos(); pos.IsValid() {
		jn.Pos = &jsonPos{Line: pos.Line, Column: pos.Column}
	}

	switch n := n.(type) {
	case *Leaf:
		jn.Kind = string(n.Token.Kind)
		jn.Text = n.Token.Text
	case *Interior:
		jn.Symbol = string(n.Symbol)
		if len(n.Children) > 0 {
			jn.Children = make([]*jsonNode, len(n.Children))
			for i, child := range n.Children {
				jn.Children[i] = toJSON(child)
			}
		}
	}

	return jn
}
