// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dom

// Selector matches elements by an exact attribute value.
type Selector struct {
	Attr  string
	Value string
}

// ByAttr matches elements whose attribute equals value.
func ByAttr(attr, value string) Selector {
	return Selector{Attr: attr, Value: value}
}

// ByID matches the element with the given id.
func ByID(id string) Selector {
	return Selector{Attr: "id", Value: id}
}

// ByClass matches elements carrying class among their classes.
func ByClass(class string) func(*Node) bool {
	return func(node *Node) bool { return node.HasClass(class) }
}

// Matches reports whether node satisfies the selector.
func (s Selector) Matches(node *Node) bool {
	value, ok := node.Attr(s.Attr)
	return ok && value == s.Value
}

// String renders the selector in CSS attribute form.
func (s Selector) String() string {
	return "[" + s.Attr + "=" + s.Value + "]"
}
