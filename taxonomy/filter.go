// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import (
	"bufio"
	"io"
	"strings"

	"github.com/js-arias/phyrank/tree"
	"github.com/js-arias/phyrank/tree/label"
)

// ForInference selects the taxa of a tree
// that can be trusted when inferring
// the statistical distribution of relative divergences.
//
// A taxon is trusted if it is named on an internal node
// with at least minChildren terminal descendants,
// and a branch support at or above minSupport
// (nodes without a support value are accepted).
// If trusted is not nil,
// only taxa in trusted can be selected.
func ForInference(t *tree.Tree, trusted map[string]bool, minChildren int, minSupport float64) map[string]bool {
	terms := make(map[int]int, t.Len())
	ids := t.Nodes()
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		if t.IsTerm(id) {
			terms[id] = 1
		}
		if p := t.Parent(id); p >= 0 {
			terms[p] += terms[id]
		}
	}

	sel := make(map[string]bool)
	for _, id := range ids {
		if t.IsTerm(id) {
			continue
		}
		l, err := label.Parse(t.Label(id))
		if err != nil {
			continue
		}
		if l.HasSupport && l.Support < minSupport {
			continue
		}
		if terms[id] < minChildren {
			continue
		}
		for _, taxon := range l.Taxa() {
			if trusted != nil && !trusted[taxon] {
				continue
			}
			sel[taxon] = true
		}
	}
	return sel
}

// ReadTaxaList reads a list of taxon names,
// one per line.
// Only the first tab-delimited field of each line is used,
// and lines starting with '#' are ignored.
func ReadTaxaList(r io.Reader) (map[string]bool, error) {
	taxa := make(map[string]bool)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		ln := strings.TrimSpace(sc.Text())
		if ln == "" || strings.HasPrefix(ln, "#") {
			continue
		}
		if i := strings.Index(ln, "\t"); i >= 0 {
			ln = strings.TrimSpace(ln[:i])
		}
		if ln == "" {
			continue
		}
		taxa[ln] = true
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return taxa, nil
}
