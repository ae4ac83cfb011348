// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rank provides taxonomic ranks
// and the relative divergence thresholds
// used to assign a rank to a node of a tree.
package rank

import "strings"

// A Rank is a taxonomic rank.
type Rank int

// Valid taxonomic ranks,
// from the most inclusive to the least inclusive.
const (
	Domain Rank = iota
	Phylum
	Class
	Order
	Family
	Genus
	Species
	Subtype
)

// Basal is a sentinel rank
// for nodes with a relative divergence too low
// for a confident rank assignment.
// It is a distinct value,
// not the absence of a rank.
const Basal Rank = -1

// BasalPrefix is the label prefix of the Basal sentinel.
const BasalPrefix = "X__"

var ranks = []Rank{Domain, Phylum, Class, Order, Family, Genus, Species, Subtype}

var names = map[Rank]string{
	Basal:   "highly basal",
	Domain:  "domain",
	Phylum:  "phylum",
	Class:   "class",
	Order:   "order",
	Family:  "family",
	Genus:   "genus",
	Species: "species",
	Subtype: "subtype",
}

var designators = map[Rank]string{
	Domain:  "d",
	Phylum:  "p",
	Class:   "c",
	Order:   "o",
	Family:  "f",
	Genus:   "g",
	Species: "s",
	Subtype: "st",
}

// Ranks returns all valid taxonomic ranks
// in order, from domain to subtype.
func Ranks() []Rank {
	r := make([]Rank, len(ranks))
	copy(r, ranks)
	return r
}

// IsValid returns true for a valid taxonomic rank
// (the Basal sentinel included).
func (r Rank) IsValid() bool {
	if r == Basal {
		return true
	}
	_, ok := names[r]
	return ok
}

func (r Rank) String() string {
	if n, ok := names[r]; ok {
		return n
	}
	return "unknown"
}

// Designator returns the single letter designator of a rank,
// for example "p" for phylum.
func (r Rank) Designator() string {
	return designators[r]
}

// Prefix returns the label prefix of a rank,
// for example "P__" for phylum.
// Taxon names use the lower case form,
// as in "p__Proteobacteria".
func (r Rank) Prefix() string {
	if r == Basal {
		return BasalPrefix
	}
	d, ok := designators[r]
	if !ok {
		return ""
	}
	if r == Subtype {
		return "ST__"
	}
	return strings.ToUpper(d) + "__"
}

// FromDesignator returns the rank
// of a single letter designator.
func FromDesignator(s string) (Rank, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for r, d := range designators {
		if d == s {
			return r, true
		}
	}
	return Basal, false
}

// FromPrefix returns the rank of a label prefix,
// in either case form
// ("p__" as well as "P__").
func FromPrefix(s string) (Rank, bool) {
	s = strings.ToLower(s)
	if !strings.HasSuffix(s, "__") {
		return Basal, false
	}
	if s == strings.ToLower(BasalPrefix) {
		return Basal, true
	}
	return FromDesignator(strings.TrimSuffix(s, "__"))
}

// TaxonRank returns the rank encoded
// in the prefix of a taxon name,
// for example phylum for "p__Proteobacteria".
func TaxonRank(taxon string) (Rank, bool) {
	i := strings.Index(taxon, "__")
	if i < 0 {
		return Basal, false
	}
	return FromPrefix(taxon[:i+2])
}
