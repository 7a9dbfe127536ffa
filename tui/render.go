// ABOUTME: Render tree for the infinite-scroll component
// ABOUTME: Class markers, the node structure hosts and tests inspect, and body rendering

package tui

import (
	"strings"
)

// Class markers carried by the render tree
const (
	ClassOuter    = "infinite-scroll-component__outerdiv"
	ClassScroll   = "infinite-scroll-component"
	ClassPullDown = "infinite-scroll-component__pulldown"
	ClassChildren = "infinite-scroll-component__children"
	ClassLoader   = "infinite-scroll-component__loader"
	ClassEnd      = "infinite-scroll-component__end"
)

// Node is one element of the rendered structure
type Node struct {
	Class    string // Space separated class markers
	Text     string
	Children []*Node
}

// HasClass reports whether class is one of the node's markers
func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}

	return false
}

// Find returns every node in the tree carrying class, in document order
func (n *Node) Find(class string) []*Node {
	var found []*Node

	var walk func(*Node)
	walk = func(node *Node) {
		if node.HasClass(class) {
			found = append(found, node)
		}

		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)

	return found
}

// Tree builds the component's render tree for the current state
func (m *Model) Tree() *Node {
	inner := &Node{Class: strings.TrimSpace(ClassScroll + " " + m.opts.ClassName)}

	if m.opts.PullDownToRefresh {
		inner.Children = append(inner.Children, &Node{Class: ClassPullDown, Text: m.pullDownContent()})
	}

	inner.Children = append(inner.Children, &Node{Class: ClassChildren, Text: m.content})

	if m.loaderVisible() {
		inner.Children = append(inner.Children, &Node{Class: ClassLoader, Text: m.loaderView()})
	}

	if !m.ctrl.HasMore() && m.opts.EndMessage != "" {
		inner.Children = append(inner.Children, &Node{Class: ClassEnd, Text: endStyle.Render(m.opts.EndMessage)})
	}

	return &Node{Class: ClassOuter, Children: []*Node{inner}}
}

// loaderVisible: first load before any children, or a load in flight
func (m *Model) loaderVisible() bool {
	return m.ctrl.HasMore() && (!m.hasChildren() || m.ctrl.ShowLoader())
}

func (m *Model) hasChildren() bool {
	return m.opts.HasChildren || m.content != ""
}

func (m *Model) loaderView() string {
	if m.opts.Loader != "" {
		return loaderStyle.Render(m.opts.Loader)
	}

	return m.spinner.View() + loaderStyle.Render(" Loading…")
}

func (m *Model) pullDownContent() string {
	if m.ctrl.Breached() {
		return m.opts.ReleaseToRefreshContent
	}

	return m.opts.PullDownToRefreshContent
}

// body renders everything that scrolls: the children plus the loader or end
// message. Inverse regions show the trailing node above the children.
func (m *Model) body() string {
	var lines []string
	var tail []string

	for _, n := range m.Tree().Children[0].Children {
		switch {
		case n.HasClass(ClassPullDown):
			continue
		case n.HasClass(ClassChildren):
			if n.Text != "" {
				lines = append(lines, n.Text)
			}
		default:
			tail = append(tail, n.Text)
		}
	}

	if m.opts.Inverse {
		lines = append(tail, lines...)
	} else {
		lines = append(lines, tail...)
	}

	return strings.Join(lines, "\n")
}
