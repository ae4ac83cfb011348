// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package reldist implements the relative evolutionary divergence
// of the nodes of a phylogenetic tree.
//
// The relative divergence of a node is a normalized measure,
// between 0 at the root
// and 1 at the terminals,
// of the evolutionary depth of the node,
// relative to the average depth of the terminals
// of its own subtree.
package reldist

import (
	"io"

	"github.com/js-arias/phyrank/rank"
	"github.com/js-arias/phyrank/tree"
	"github.com/js-arias/phyrank/tree/label"
	"golang.org/x/exp/slices"
)

// Decorate computes the relative evolutionary divergence
// of every node of a tree,
// and stores it on the nodes.
//
// The root has a divergence of 0
// and terminals a divergence of 1.
// An internal node with a parent divergence d
// and a branch of length ln
// has a divergence of
//
//	d + ln/(ln+md) * (1-d)
//
// in which md is the average branch length
// from the node to its terminal descendants.
func Decorate(t *tree.Tree) {
	ids := t.Nodes()

	// average distance to the terminals of each subtree
	sum := make(map[int]float64, len(ids))
	terms := make(map[int]int, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		if t.IsTerm(id) {
			terms[id] = 1
		}
		p := t.Parent(id)
		if p < 0 {
			continue
		}
		sum[p] += sum[id] + float64(terms[id])*t.Length(id)
		terms[p] += terms[id]
	}

	for _, id := range ids {
		if p := t.Parent(id); p < 0 {
			t.SetRelDist(id, 0)
			continue
		}
		if t.IsTerm(id) {
			t.SetRelDist(id, 1)
			continue
		}

		pd, _ := t.RelDist(t.Parent(id))
		ln := t.Length(id)
		md := sum[id] / float64(terms[id])
		rd := pd
		if ln+md > 0 {
			rd = pd + ln/(ln+md)*(1-pd)
		}
		t.SetRelDist(id, rd)
	}
}

// A Table stores the relative divergence
// of named clades,
// indexed by rank and taxon name.
type Table map[rank.Rank]map[string]float64

// Add adds the divergence of a taxon at a given rank.
func (tb Table) Add(r rank.Rank, taxon string, v float64) {
	taxa, ok := tb[r]
	if !ok {
		taxa = make(map[string]float64)
		tb[r] = taxa
	}
	taxa[taxon] = v
}

// Delete removes a taxon from every rank of the table.
func (tb Table) Delete(taxon string) {
	for _, taxa := range tb {
		delete(taxa, taxon)
	}
}

// Ranks returns the ranks with at least one taxon,
// from the most inclusive to the least inclusive.
func (tb Table) Ranks() []rank.Rank {
	var rs []rank.Rank
	for r, taxa := range tb {
		if len(taxa) == 0 {
			continue
		}
		rs = append(rs, r)
	}
	slices.Sort(rs)
	return rs
}

// Taxa returns the taxa at a given rank,
// in alphabetical order.
func (tb Table) Taxa(r rank.Rank) []string {
	taxa := make([]string, 0, len(tb[r]))
	for tn := range tb[r] {
		taxa = append(taxa, tn)
	}
	slices.Sort(taxa)
	return taxa
}

// ToNamedClades computes the relative divergence
// of every named clade of a tree,
// and returns them as a table
// indexed by rank and taxon name.
//
// Only taxa with a rank prefix
// (as in "p__Proteobacteria")
// are included.
// If filter is not nil,
// only taxa in the filter are included.
// Nodes with malformed labels are skipped,
// with a warning written to warn
// (if it is not nil).
func ToNamedClades(t *tree.Tree, filter map[string]bool, warn io.Writer) Table {
	if warn == nil {
		warn = io.Discard
	}
	Decorate(t)

	tb := make(Table)
	for _, id := range t.Nodes() {
		if t.IsTerm(id) {
			continue
		}
		l, err := label.Parse(t.Label(id))
		if err != nil {
			io.WriteString(warn, "WARNING: "+err.Error()+"\n")
			continue
		}

		rd, _ := t.RelDist(id)
		for _, taxon := range l.Taxa() {
			r, ok := rank.TaxonRank(taxon)
			if !ok {
				continue
			}
			if filter != nil && !filter[taxon] {
				continue
			}
			tb.Add(r, taxon, rd)
		}
	}
	return tb
}
