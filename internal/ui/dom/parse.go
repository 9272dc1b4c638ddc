// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dom

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads an HTML document and returns its element tree under a
// [DocumentTag] root.
//
// Text content is folded into the enclosing element. Form fields start with
// the value of their "value" attribute (or their text, for textarea).
func Parse(reader io.Reader) (*Node, error) {
	source, err := html.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}

	document := NewDocument()
	convertChildren(document, source)
	return document, nil
}

// ParseFragment parses an HTML fragment as if it were the inner HTML of
// container and appends the resulting elements to it.
func ParseFragment(reader io.Reader, container *Node) error {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}

	nodes, err := html.ParseFragment(reader, context)
	if err != nil {
		return fmt.Errorf("dom: parse fragment: %w", err)
	}

	holder := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, node := range nodes {
		holder.AppendChild(node)
	}
	convertChildren(container, holder)
	return nil
}

// convertChildren mirrors the children of source under parent.
func convertChildren(parent *Node, source *html.Node) {
	for child := source.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			element := NewElement(child.Data)
			for _, attr := range child.Attr {
				element.SetAttr(attr.Key, attr.Val)
			}
			parent.AppendChild(element)
			convertChildren(element, child)

			if element.Tag == "textarea" {
				element.value = element.Text()
			}
		case html.TextNode:
			parent.text += child.Data
		case html.DocumentNode:
			convertChildren(parent, child)
		}
	}
}
