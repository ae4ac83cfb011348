// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package decorate implements the decoration
// of the internal nodes of a phylogenetic tree
// with taxonomic ranks
// predicted from their relative evolutionary divergence.
package decorate

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/js-arias/phyrank/rank"
	"github.com/js-arias/phyrank/reldist"
	"github.com/js-arias/phyrank/tree"
	"github.com/js-arias/phyrank/tree/label"
)

// Options are the criteria
// used to select the nodes to be decorated.
type Options struct {
	// MinSupport is the smallest branch support
	// of a decorated node.
	// Nodes without a support value are always decorated.
	MinSupport float64

	// MinLength is the smallest branch length
	// of a decorated node.
	MinLength float64

	// OnlyNamed restricts the decoration
	// to nodes with a taxon name.
	OnlyNamed bool
}

// Tree decorates the internal nodes of a tree
// with their predicted taxonomic rank.
//
// The relative divergence of the nodes is computed first,
// and each eligible internal node gets its label extended
// with a marker of the form "|<PREFIX>[<divergence>]",
// for example "|G__[0.87]".
// A node already carrying a marker is re-decorated in place,
// so decorating a tree twice gives the same result.
//
// The returned accuracy compares the predictions
// with the taxon names already present in the tree.
// Nodes with malformed labels are skipped,
// with a warning written to warn
// (if it is not nil).
func Tree(t *tree.Tree, th *rank.Thresholds, opts Options, warn io.Writer) (*Accuracy, error) {
	if warn == nil {
		warn = io.Discard
	}
	if _, ok := th.Value(rank.Genus); !ok {
		return nil, fmt.Errorf("decorate: tree %q: %w: %s", t.Name(), rank.ErrMissingRank, rank.Genus)
	}

	reldist.Decorate(t)

	ac := &Accuracy{
		correct:   make(map[rank.Rank]int),
		incorrect: make(map[rank.Rank]int),
	}
	for _, id := range t.Nodes() {
		if t.IsTerm(id) {
			continue
		}
		if t.Length(id) < opts.MinLength {
			continue
		}

		l, err := label.Parse(t.Label(id))
		if err != nil {
			fmt.Fprintf(warn, "WARNING: tree %q: node %d: %v\n", t.Name(), id, err)
			continue
		}
		if l.HasSupport && l.Support < opts.MinSupport {
			continue
		}
		if opts.OnlyNamed && l.Taxon == "" {
			continue
		}

		rd, _ := t.RelDist(id)
		predicted := th.Assign(rd)

		// remove any marker from a previous decoration
		if i := strings.LastIndex(l.Aux, "|"); isMarker(l.Aux[i+1:]) {
			if i < 0 {
				l.Aux = ""
			} else {
				l.Aux = l.Aux[:i]
			}
		}
		marker := fmt.Sprintf("%s[%.2f]", predicted.Prefix(), rd)
		if l.Aux != "" {
			marker = l.Aux + "|" + marker
		}
		l.Aux = marker
		t.SetLabel(id, l.String())

		if predicted == rank.Basal {
			continue
		}
		taxa := l.Taxa()
		if len(taxa) == 0 {
			continue
		}
		named, ok := rank.TaxonRank(taxa[len(taxa)-1])
		if !ok {
			continue
		}
		if named == predicted {
			ac.correct[named]++
		} else {
			ac.incorrect[named]++
		}
	}
	return ac, nil
}

// isMarker returns true for an auxiliary field
// that is a rank prediction marker,
// such as "S__[0.92]".
func isMarker(aux string) bool {
	i := strings.Index(aux, "[")
	if i < 0 || !strings.HasSuffix(aux, "]") {
		return false
	}
	_, ok := rank.FromPrefix(aux[:i])
	return ok
}

// Accuracy tabulates the rank predictions
// that agree with the taxon names
// already present on the tree.
type Accuracy struct {
	correct   map[rank.Rank]int
	incorrect map[rank.Rank]int
}

// Correct returns the number of nodes named at a given rank
// with a prediction of the same rank.
func (ac *Accuracy) Correct(r rank.Rank) int {
	return ac.correct[r]
}

// Incorrect returns the number of nodes named at a given rank
// with a prediction of a different rank.
func (ac *Accuracy) Incorrect(r rank.Rank) int {
	return ac.incorrect[r]
}

// Total returns the number of evaluated nodes
// named at a given rank.
func (ac *Accuracy) Total(r rank.Rank) int {
	return ac.correct[r] + ac.incorrect[r]
}

// TSV writes the accuracy table,
// for the ranks from phylum to species,
// as a TSV file.
// Ranks without evaluated nodes
// report an undefined percentage.
func (ac *Accuracy) TSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "rank\tcorrect\tincorrect\ttotal\tpercent\n")
	for _, r := range rank.Ranks() {
		if r < rank.Phylum || r > rank.Species {
			continue
		}
		total := ac.Total(r)
		percent := "-"
		if total > 0 {
			percent = fmt.Sprintf("%.2f", float64(ac.correct[r])*100/float64(total))
		}
		fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t%s\n", r.Prefix(), ac.correct[r], ac.incorrect[r], total, percent)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("accuracy: %v", err)
	}
	return nil
}
