// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree_test

import (
	"testing"

	"github.com/js-arias/phyrank/tree"
)

func TestTree(t *testing.T) {
	nt := tree.New("test", "root")

	n1, err := nt.Add(nt.Root(), 0.1, "n1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := nt.Add(n1, 0.2, "A"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := nt.Add(n1, 0.3, "B"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if nt.Len() != 4 {
		t.Errorf("nodes: got %d, want %d", nt.Len(), 4)
	}
	if p := nt.Parent(nt.Root()); p != -1 {
		t.Errorf("root parent: got %d, want %d", p, -1)
	}
	if nt.IsTerm(n1) {
		t.Errorf("node %d: should not be a terminal", n1)
	}
	if ls := nt.Children(n1); len(ls) != 2 {
		t.Errorf("node %d: children %d, want %d", n1, len(ls), 2)
	}

	if _, ok := nt.RelDist(n1); ok {
		t.Errorf("node %d: unexpected relative divergence", n1)
	}
	nt.SetRelDist(n1, 0.25)
	if v, ok := nt.RelDist(n1); !ok || v != 0.25 {
		t.Errorf("node %d: relative divergence %.2f [%v], want %.2f", n1, v, ok, 0.25)
	}

	nt.SetLabel(n1, "90:p__Test")
	if l := nt.Label(n1); l != "90:p__Test" {
		t.Errorf("node %d: label %q, want %q", n1, l, "90:p__Test")
	}

	if _, err := nt.Add(125, 0.1, "bad"); err == nil {
		t.Errorf("expecting error when adding to an invalid node")
	}
	if _, err := nt.Add(n1, -0.1, "bad"); err == nil {
		t.Errorf("expecting error when adding a negative branch length")
	}
}
