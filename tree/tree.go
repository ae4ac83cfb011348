// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree implements rooted phylogenetic trees
// with branch lengths and node labels.
//
// Node labels are free strings;
// by convention they combine a branch support value
// and a taxon name
// (see package tree/label).
// Each node can also store a relative evolutionary divergence value,
// set by package reldist.
package tree

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// A Tree is a rooted phylogenetic tree.
//
// Nodes are identified by IDs.
// A parent node always has an ID smaller than its children,
// so iterating over IDs in increasing order
// guarantees that a parent is visited before its descendants.
type Tree struct {
	name  string
	nodes []*node
}

type node struct {
	id       int
	parent   *node
	children []*node

	length float64
	label  string

	relDist    float64
	hasRelDist bool
}

// New creates a new tree with a given name
// and a root with the indicated label.
func New(name, rootLabel string) *Tree {
	t := &Tree{name: name}
	t.nodes = append(t.nodes, &node{
		id:    0,
		label: rootLabel,
	})
	return t
}

var errInvalidNode = errors.New("invalid node ID")

// Add adds a new node as a child of the indicated node,
// with the given branch length and label.
// It returns the ID of the added node.
func (t *Tree) Add(parent int, length float64, label string) (int, error) {
	if parent < 0 || parent >= len(t.nodes) {
		return -1, fmt.Errorf("%w: %d", errInvalidNode, parent)
	}
	if length < 0 {
		return -1, fmt.Errorf("node %d: invalid branch length %.6f", parent, length)
	}

	p := t.nodes[parent]
	n := &node{
		id:     len(t.nodes),
		parent: p,
		length: length,
		label:  label,
	}
	p.children = append(p.children, n)
	t.nodes = append(t.nodes, n)
	return n.id, nil
}

// Children returns the IDs of the children of the indicated node.
func (t *Tree) Children(id int) []int {
	if id < 0 || id >= len(t.nodes) {
		return nil
	}
	n := t.nodes[id]
	children := make([]int, 0, len(n.children))
	for _, c := range n.children {
		children = append(children, c.id)
	}
	return children
}

// IsTerm returns true if the indicated node is a terminal
// (i.e. a tip of the tree).
func (t *Tree) IsTerm(id int) bool {
	if id < 0 || id >= len(t.nodes) {
		return false
	}
	return len(t.nodes[id].children) == 0
}

// Label returns the label of the indicated node.
// An empty string is a valid label for an anonymous node.
func (t *Tree) Label(id int) string {
	if id < 0 || id >= len(t.nodes) {
		return ""
	}
	return t.nodes[id].label
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Length returns the length of the branch
// that connects the indicated node with its parent.
// The root has a length of 0.
func (t *Tree) Length(id int) float64 {
	if id < 0 || id >= len(t.nodes) {
		return 0
	}
	return t.nodes[id].length
}

// Name returns the name of the tree.
func (t *Tree) Name() string {
	return t.name
}

// Nodes returns the IDs of all nodes of the tree,
// in an order in which a parent is always before its children.
func (t *Tree) Nodes() []int {
	ids := make([]int, 0, len(t.nodes))
	for _, n := range t.nodes {
		ids = append(ids, n.id)
	}
	return ids
}

// Parent returns the ID of the parent of the indicated node.
// The parent of the root is -1.
func (t *Tree) Parent(id int) int {
	if id < 0 || id >= len(t.nodes) {
		return -1
	}
	n := t.nodes[id]
	if n.parent == nil {
		return -1
	}
	return n.parent.id
}

// RelDist returns the relative evolutionary divergence
// of the indicated node.
// The second return value is false
// if the divergence of the node was never set.
func (t *Tree) RelDist(id int) (float64, bool) {
	if id < 0 || id >= len(t.nodes) {
		return 0, false
	}
	n := t.nodes[id]
	return n.relDist, n.hasRelDist
}

// Root returns the ID of the root node.
func (t *Tree) Root() int {
	return 0
}

// SetLabel sets the label of the indicated node.
func (t *Tree) SetLabel(id int, label string) {
	if id < 0 || id >= len(t.nodes) {
		return
	}
	t.nodes[id].label = label
}

// SetRelDist sets the relative evolutionary divergence
// of the indicated node.
func (t *Tree) SetRelDist(id int, v float64) {
	if id < 0 || id >= len(t.nodes) {
		return
	}
	n := t.nodes[id]
	n.relDist = v
	n.hasRelDist = true
}

// Terms returns the labels of all terminals of the tree,
// in alphabetical order.
func (t *Tree) Terms() []string {
	var terms []string
	for _, n := range t.nodes {
		if len(n.children) > 0 {
			continue
		}
		terms = append(terms, n.label)
	}
	slices.Sort(terms)
	return terms
}
