// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rank_test

import (
	"testing"

	"github.com/js-arias/phyrank/rank"
)

func TestRank(t *testing.T) {
	tests := map[rank.Rank]struct {
		name       string
		designator string
		prefix     string
	}{
		rank.Domain:  {name: "domain", designator: "d", prefix: "D__"},
		rank.Phylum:  {name: "phylum", designator: "p", prefix: "P__"},
		rank.Class:   {name: "class", designator: "c", prefix: "C__"},
		rank.Order:   {name: "order", designator: "o", prefix: "O__"},
		rank.Family:  {name: "family", designator: "f", prefix: "F__"},
		rank.Genus:   {name: "genus", designator: "g", prefix: "G__"},
		rank.Species: {name: "species", designator: "s", prefix: "S__"},
		rank.Subtype: {name: "subtype", designator: "st", prefix: "ST__"},
	}

	for r, test := range tests {
		if r.String() != test.name {
			t.Errorf("rank %d: name %q, want %q", r, r.String(), test.name)
		}
		if r.Designator() != test.designator {
			t.Errorf("rank %s: designator %q, want %q", r, r.Designator(), test.designator)
		}
		if r.Prefix() != test.prefix {
			t.Errorf("rank %s: prefix %q, want %q", r, r.Prefix(), test.prefix)
		}
		if nr, ok := rank.FromDesignator(test.designator); !ok || nr != r {
			t.Errorf("designator %q: got rank %s, want %s", test.designator, nr, r)
		}
		if nr, ok := rank.FromPrefix(test.prefix); !ok || nr != r {
			t.Errorf("prefix %q: got rank %s, want %s", test.prefix, nr, r)
		}
	}

	if rank.Basal.String() != "highly basal" {
		t.Errorf("basal sentinel: name %q, want %q", rank.Basal.String(), "highly basal")
	}
	if rank.Basal.Prefix() != "X__" {
		t.Errorf("basal sentinel: prefix %q, want %q", rank.Basal.Prefix(), "X__")
	}
}

func TestTaxonRank(t *testing.T) {
	if r, ok := rank.TaxonRank("p__Proteobacteria"); !ok || r != rank.Phylum {
		t.Errorf("taxon %q: got rank %s, want %s", "p__Proteobacteria", r, rank.Phylum)
	}
	if _, ok := rank.TaxonRank("Proteobacteria"); ok {
		t.Errorf("taxon %q: unexpected rank", "Proteobacteria")
	}
}
