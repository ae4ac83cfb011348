// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phyrank/taxonomy"
	"github.com/js-arias/phyrank/tree"
)

func newTree(t testing.TB) *tree.Tree {
	t.Helper()

	nt := tree.New("test", "100:d__Bacteria")
	n1, err := nt.Add(nt.Root(), 0.10, "95:p__Proteobacteria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n2, err := nt.Add(nt.Root(), 0.15, "40:p__Firmicutes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, term := range []string{"A", "B", "C"} {
		if _, err := nt.Add(n1, 0.3, term); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	for _, term := range []string{"D", "E"} {
		if _, err := nt.Add(n2, 0.35, term); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return nt
}

func TestFromTree(t *testing.T) {
	tx := taxonomy.FromTree(newTree(t), nil)

	if p := tx.Parents("d__Bacteria"); len(p) != 0 {
		t.Errorf("taxon %q: parents %v, want none", "d__Bacteria", p)
	}
	want := []string{"d__Bacteria"}
	if p := tx.Parents("p__Proteobacteria"); !reflect.DeepEqual(p, want) {
		t.Errorf("taxon %q: parents %v, want %v", "p__Proteobacteria", p, want)
	}
	want = []string{"d__Bacteria", "p__Firmicutes"}
	if p := tx.Parents("D"); !reflect.DeepEqual(p, want) {
		t.Errorf("taxon %q: parents %v, want %v", "D", p, want)
	}

	children := tx.Children("p__Firmicutes")
	want = []string{"D", "E"}
	if !reflect.DeepEqual(children, want) {
		t.Errorf("taxon %q: children %v, want %v", "p__Firmicutes", children, want)
	}
}

func TestTaxonomyTSV(t *testing.T) {
	tx := taxonomy.FromTree(newTree(t), nil)

	var b bytes.Buffer
	if err := tx.TSV(&b); err != nil {
		t.Fatalf("unexpected error when writing: %v", err)
	}

	nx, err := taxonomy.Read(&b)
	if err != nil {
		t.Fatalf("unexpected error when reading: %v", err)
	}
	if got, want := nx.Taxa(), tx.Taxa(); !reflect.DeepEqual(got, want) {
		t.Fatalf("taxa: got %v, want %v", got, want)
	}
	for _, tn := range tx.Taxa() {
		if got, want := nx.Parents(tn), tx.Parents(tn); !reflect.DeepEqual(got, want) {
			t.Errorf("taxon %q: parents %v, want %v", tn, got, want)
		}
	}
}

func TestForInference(t *testing.T) {
	nt := newTree(t)

	sel := taxonomy.ForInference(nt, nil, 3, 50)
	want := map[string]bool{
		"d__Bacteria":       true,
		"p__Proteobacteria": true,
	}
	if !reflect.DeepEqual(sel, want) {
		t.Errorf("inference taxa: got %v, want %v", sel, want)
	}

	// low support excludes p__Firmicutes
	// even with a permissive children count
	sel = taxonomy.ForInference(nt, nil, 2, 50)
	if sel["p__Firmicutes"] {
		t.Errorf("inference taxa: %q selected with support below minimum", "p__Firmicutes")
	}

	// trusted taxa restrict the selection
	trusted := map[string]bool{"p__Proteobacteria": true}
	sel = taxonomy.ForInference(nt, trusted, 2, 50)
	want = map[string]bool{"p__Proteobacteria": true}
	if !reflect.DeepEqual(sel, want) {
		t.Errorf("inference taxa: got %v, want %v", sel, want)
	}
}

func TestReadTaxaList(t *testing.T) {
	list := "# trusted taxa\np__Proteobacteria\np__Firmicutes\textra field\n\n"
	taxa, err := taxonomy.ReadTaxaList(strings.NewReader(list))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]bool{
		"p__Proteobacteria": true,
		"p__Firmicutes":     true,
	}
	if !reflect.DeepEqual(taxa, want) {
		t.Errorf("taxa list: got %v, want %v", taxa, want)
	}
}
