// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dom is a minimal element tree with delegated event dispatch.

It models the parts of a browser document the admin UI controllers rely on:
attribute lookup, form field values, ancestor traversal and a single-threaded
event loop. Trees are built from rendered admin pages via [Parse].

Concurrency:

  - A Node tree is not safe for concurrent use.
  - In a live session every read and write goes through a [Loop].
*/
package dom

import "strings"

// Node is an element (or the document root) in the tree.
type Node struct {
	Tag      string
	Parent   *Node
	Children []*Node

	attrs map[string]string
	value string
	text  string
}

// NewElement creates a detached element with the given attribute pairs.
//
// Example:
//
//	link := dom.NewElement("a", "href", "/admin/news/1/delete", "data-class", "toggleDeleteModal")
func NewElement(tag string, attrPairs ...string) *Node {
	node := &Node{Tag: strings.ToLower(tag), attrs: make(map[string]string)}
	for i := 0; i+1 < len(attrPairs); i += 2 {
		node.SetAttr(attrPairs[i], attrPairs[i+1])
	}
	return node
}

// NewDocument creates an empty document root.
func NewDocument() *Node {
	return NewElement(DocumentTag)
}

// DocumentTag is the tag of the synthetic root created by [NewDocument] and [Parse].
const DocumentTag = "#document"

// # Attributes

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	value, ok := n.attrs[strings.ToLower(name)]
	return value, ok
}

// SetAttr sets an attribute. Setting "value" also resets the field value.
func (n *Node) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	name = strings.ToLower(name)
	n.attrs[name] = value
	if name == "value" {
		n.value = value
	}
}

// ID returns the element id, or "".
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// HasClass reports whether class is one of the element's classes.
func (n *Node) HasClass(class string) bool {
	classes, ok := n.Attr("class")
	if !ok {
		return false
	}
	for _, candidate := range strings.Fields(classes) {
		if candidate == class {
			return true
		}
	}
	return false
}

// # Form Values

// Value returns the current value of a form field.
func (n *Node) Value() string { return n.value }

// SetValue replaces the current value of a form field.
//
// The "value" attribute keeps its initial content, as in a browser.
func (n *Node) SetValue(value string) { n.value = value }

// Text returns the concatenated text content of the node and its descendants.
func (n *Node) Text() string {
	var builder strings.Builder
	n.walk(func(node *Node) bool {
		builder.WriteString(node.text)
		return true
	})
	return builder.String()
}

// # Tree Mutation

// AppendChild attaches child as the last child of n, detaching it from any
// previous parent first.
func (n *Node) AppendChild(child *Node) {
	child.Remove()
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Remove detaches n from its parent. It is a no-op for detached nodes.
func (n *Node) Remove() {
	parent := n.Parent
	if parent == nil {
		return
	}
	for i, sibling := range parent.Children {
		if sibling == n {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

// # Traversal

// Root returns the topmost ancestor of n (n itself when detached).
func (n *Node) Root() *Node {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	return root
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for node := other; node != nil; node = node.Parent {
		if node == n {
			return true
		}
	}
	return false
}

// Closest returns the nearest node, starting at n itself and walking up,
// for which match returns true. It returns nil when nothing matches.
func (n *Node) Closest(match func(*Node) bool) *Node {
	for node := n; node != nil; node = node.Parent {
		if match(node) {
			return node
		}
	}
	return nil
}

// ElementByID returns the first descendant (depth-first) with the given id.
func (n *Node) ElementByID(id string) *Node {
	var found *Node
	n.walk(func(node *Node) bool {
		if node.ID() == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant of n (n included) for which match is true,
// in document order.
func (n *Node) FindAll(match func(*Node) bool) []*Node {
	var found []*Node
	n.walk(func(node *Node) bool {
		if match(node) {
			found = append(found, node)
		}
		return true
	})
	return found
}

// walk visits n and its descendants depth-first until visit returns false.
func (n *Node) walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.walk(visit) {
			return false
		}
	}
	return true
}
