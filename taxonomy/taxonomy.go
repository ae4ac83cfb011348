// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxonomy implements a taxonomy
// as a mapping from taxon names
// to their full lineage.
//
// A taxonomy is usually extracted
// from the labels of a phylogenetic tree
// in which internal nodes are decorated with taxon names
// (see package tree/label).
package taxonomy

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/js-arias/phyrank/tree"
	"github.com/js-arias/phyrank/tree/label"
	"golang.org/x/exp/slices"
)

// A Taxonomy is a mapping
// from taxon names to their parent taxa.
type Taxonomy struct {
	parents map[string][]string
}

// New creates a new empty taxonomy.
func New() *Taxonomy {
	return &Taxonomy{
		parents: make(map[string][]string),
	}
}

// FromTree extracts a taxonomy from the labeled nodes of a tree.
// Taxa named on a node are nested under the taxa
// named on its ancestors.
// Nodes with malformed labels are skipped,
// with a warning written to warn
// (if it is not nil).
func FromTree(t *tree.Tree, warn io.Writer) *Taxonomy {
	if warn == nil {
		warn = io.Discard
	}

	tx := New()
	lineage := make(map[int][]string, t.Len())
	for _, id := range t.Nodes() {
		var anc []string
		if p := t.Parent(id); p >= 0 {
			anc = lineage[p]
		}
		lineage[id] = anc

		l, err := label.Parse(t.Label(id))
		if err != nil {
			fmt.Fprintf(warn, "WARNING: node %d: %v\n", id, err)
			continue
		}
		taxa := l.Taxa()
		if len(taxa) == 0 {
			continue
		}

		for _, taxon := range taxa {
			tx.Add(taxon, anc)
			anc = append(anc[:len(anc):len(anc)], taxon)
		}
		lineage[id] = anc
	}
	return tx
}

// Add adds a taxon with the indicated parent taxa,
// ordered from the most inclusive to the least inclusive.
func (tx *Taxonomy) Add(taxon string, parents []string) {
	taxon = strings.TrimSpace(taxon)
	if taxon == "" {
		return
	}
	p := make([]string, len(parents))
	copy(p, parents)
	tx.parents[taxon] = p
}

// Children returns all taxa nested under the indicated taxon,
// in alphabetical order.
func (tx *Taxonomy) Children(taxon string) []string {
	var children []string
	for tn, parents := range tx.parents {
		if slices.Contains(parents, taxon) {
			children = append(children, tn)
		}
	}
	slices.Sort(children)
	return children
}

// Parents returns the parent taxa of the indicated taxon,
// from the most inclusive to the least inclusive.
func (tx *Taxonomy) Parents(taxon string) []string {
	parents, ok := tx.parents[taxon]
	if !ok {
		return nil
	}
	p := make([]string, len(parents))
	copy(p, parents)
	return p
}

// Taxa returns the names of all taxa in the taxonomy,
// in alphabetical order.
func (tx *Taxonomy) Taxa() []string {
	taxa := make([]string, 0, len(tx.parents))
	for tn := range tx.parents {
		taxa = append(taxa, tn)
	}
	slices.Sort(taxa)
	return taxa
}

var header = []string{
	"taxon",
	"lineage",
}

// Read reads a taxonomy from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - taxon, the name of the taxon
//   - lineage, the semicolon separated list of taxa
//     that contain the taxon,
//     the taxon itself included,
//     from the most inclusive to the least inclusive
//
// Here is an example file:
//
//	# taxonomy
//	taxon	lineage
//	d__Bacteria	d__Bacteria
//	p__Proteobacteria	d__Bacteria;p__Proteobacteria
func Read(r io.Reader) (*Taxonomy, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("taxonomy: header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("taxonomy: expecting field %q", h)
		}
	}

	tx := New()
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("taxonomy: on row %d: %v", ln, err)
		}

		f := "taxon"
		taxon := strings.TrimSpace(row[fields[f]])
		if taxon == "" {
			continue
		}

		f = "lineage"
		var parents []string
		for _, p := range strings.Split(row[fields[f]], ";") {
			p = strings.TrimSpace(p)
			if p == "" || p == taxon {
				continue
			}
			parents = append(parents, p)
		}
		tx.Add(taxon, parents)
	}
	return tx, nil
}

// TSV writes a taxonomy as a TSV file.
func (tx *Taxonomy) TSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# taxonomy\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("taxonomy: while writing header: %v", err)
	}
	for _, tn := range tx.Taxa() {
		lineage := append(tx.Parents(tn), tn)
		row := []string{
			tn,
			strings.Join(lineage, ";"),
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("taxonomy: %v", err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("taxonomy: while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("taxonomy: while writing data: %v", err)
	}
	return nil
}
