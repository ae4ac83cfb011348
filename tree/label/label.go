// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package label implements parsing of combined node labels.
//
// A combined label stores a branch support value,
// a taxon name,
// and an optional auxiliary annotation,
// in the form "<support>:<taxon>|<auxiliary>".
// All the parts are optional:
// "100", "d__Bacteria", "95:p__Proteobacteria",
// and "90:g__Bacillus|S__[0.92]"
// are all valid labels.
//
// A taxon field can name several nested taxa,
// separated by semicolons,
// as in "d__Bacteria; p__Proteobacteria".
package label

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is the error produced
// when parsing an invalid combined label.
var ErrMalformed = errors.New("malformed label")

// A Label is a parsed combined node label.
type Label struct {
	Support    float64
	HasSupport bool

	// Taxon is the taxon name field,
	// possibly with several semicolon separated taxa.
	Taxon string

	// Aux is an auxiliary annotation,
	// stored after a "|" separator.
	Aux string
}

// Parse parses a combined node label.
// An empty label is valid and returns a zero Label.
func Parse(s string) (Label, error) {
	var l Label
	s = strings.TrimSpace(s)
	if s == "" {
		return l, nil
	}

	if i := strings.Index(s, "|"); i >= 0 {
		l.Aux = s[i+1:]
		s = s[:i]
	}

	if i := strings.Index(s, ":"); i >= 0 {
		sup, err := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
		if err != nil {
			return Label{}, fmt.Errorf("%w %q: invalid support %q", ErrMalformed, s, s[:i])
		}
		l.Support = sup
		l.HasSupport = true
		l.Taxon = strings.TrimSpace(s[i+1:])
		return l, nil
	}

	if sup, err := strconv.ParseFloat(s, 64); err == nil {
		l.Support = sup
		l.HasSupport = true
		return l, nil
	}
	l.Taxon = s
	return l, nil
}

// Taxa returns the individual taxa
// named in the taxon field of a label,
// from the most inclusive to the least inclusive.
func (l Label) Taxa() []string {
	if l.Taxon == "" {
		return nil
	}
	var taxa []string
	for _, tx := range strings.Split(l.Taxon, ";") {
		tx = strings.TrimSpace(tx)
		if tx == "" {
			continue
		}
		taxa = append(taxa, tx)
	}
	return taxa
}

// String returns the combined form of a label.
func (l Label) String() string {
	var b strings.Builder
	if l.HasSupport {
		b.WriteString(strconv.FormatFloat(l.Support, 'g', -1, 64))
		if l.Taxon != "" {
			b.WriteString(":")
		}
	}
	b.WriteString(l.Taxon)
	if l.Aux != "" {
		b.WriteString("|" + l.Aux)
	}
	return b.String()
}
