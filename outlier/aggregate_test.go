// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package outlier_test

import (
	"errors"
	"testing"

	"github.com/js-arias/phyrank/outlier"
	"github.com/js-arias/phyrank/rank"
	"github.com/js-arias/phyrank/reldist"
)

// Two rootings with known statistics.
//
// Rooting on p__A:
// trusted divergences 0.30 and 0.32 (median 0.31).
// Rooting on p__B:
// the taxon p__Two is excluded
// and the trusted median is 0.34.
//
// The rank reference is the median of 0.31 and 0.34,
// that is 0.325 with a median absolute deviation of 0.015.
func newRootingSet() outlier.RootingSet {
	ra := make(reldist.Table)
	ra.Add(rank.Phylum, "p__One", 0.30)
	ra.Add(rank.Phylum, "p__Two", 0.32)
	ra.Add(rank.Phylum, "p__Odd", 0.50)

	rb := make(reldist.Table)
	rb.Add(rank.Phylum, "p__One", 0.34)
	rb.Add(rank.Phylum, "p__Odd", 0.60)

	return outlier.RootingSet{
		"p__A": ra,
		"p__B": rb,
	}
}

var aggInference = map[string]bool{
	"p__One": true,
	"p__Two": true,
}

func TestAggregate(t *testing.T) {
	recs, err := outlier.Aggregate(newRootingSet(), aggInference, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("records: got %d, want %d", len(recs), 3)
	}

	byTaxon := make(map[string]outlier.ConsensusRecord, len(recs))
	for _, r := range recs {
		byTaxon[r.Taxon] = r
	}

	one := byTaxon["p__One"]
	if !equalFloat(one.Median, 0.32) {
		t.Errorf("taxon %q: median %.3f, want %.3f", "p__One", one.Median, 0.32)
	}
	if !equalFloat(one.MAD, 0.02) {
		t.Errorf("taxon %q: MAD %.3f, want %.3f", "p__One", one.MAD, 0.02)
	}
	if !equalFloat(one.RankMedian, 0.325) {
		t.Errorf("taxon %q: rank median %.3f, want %.3f", "p__One", one.RankMedian, 0.325)
	}
	if !equalFloat(one.RankMAD, 0.015) {
		t.Errorf("taxon %q: rank MAD %.3f, want %.3f", "p__One", one.RankMAD, 0.015)
	}
	if one.Class != outlier.OK {
		t.Errorf("taxon %q: class %s, want %s", "p__One", one.Class, outlier.OK)
	}
	if len(one.Diffs) != 2 {
		t.Errorf("taxon %q: %d rooting differences, want %d", "p__One", len(one.Diffs), 2)
	}

	// a taxon present in a single rooting
	// degenerates to that value
	two := byTaxon["p__Two"]
	if !equalFloat(two.Median, 0.32) {
		t.Errorf("taxon %q: median %.3f, want %.3f", "p__Two", two.Median, 0.32)
	}
	if !equalFloat(two.MAD, 0) {
		t.Errorf("taxon %q: MAD %.3f, want %.3f", "p__Two", two.MAD, 0.0)
	}
	if len(two.Diffs) != 1 {
		t.Errorf("taxon %q: %d rooting differences, want %d", "p__Two", len(two.Diffs), 1)
	}

	// a taxon far from the rank reference,
	// even an untrusted one,
	// is reported as an outlier
	odd := byTaxon["p__Odd"]
	if !equalFloat(odd.Median, 0.55) {
		t.Errorf("taxon %q: median %.3f, want %.3f", "p__Odd", odd.Median, 0.55)
	}
	if !equalFloat(odd.Delta, 0.225) {
		t.Errorf("taxon %q: delta %.3f, want %.3f", "p__Odd", odd.Delta, 0.225)
	}
	if odd.Class != outlier.VeryUnderclassified {
		t.Errorf("taxon %q: class %s, want %s", "p__Odd", odd.Class, outlier.VeryUnderclassified)
	}
	if !equalFloat(odd.MeanAbsDiff, 0.225) {
		t.Errorf("taxon %q: mean absolute difference %.3f, want %.3f", "p__Odd", odd.MeanAbsDiff, 0.225)
	}
	if !equalFloat(odd.MeanDiff, 0.225) {
		t.Errorf("taxon %q: mean difference %.3f, want %.3f", "p__Odd", odd.MeanDiff, 0.225)
	}
}

// A rooting without trusted taxa at a rank
// gives no reference for the rank,
// but the values it defines for the taxa of the rank
// must still be collected.
func TestAggregateUntrustedRooting(t *testing.T) {
	ra := make(reldist.Table)
	ra.Add(rank.Genus, "g__Trusted", 0.82)
	ra.Add(rank.Genus, "g__Foo", 0.80)

	// no trusted genus in this rooting
	rb := make(reldist.Table)
	rb.Add(rank.Genus, "g__Foo", 0.90)

	set := outlier.RootingSet{
		"p__A": ra,
		"p__B": rb,
	}
	inference := map[string]bool{"g__Trusted": true}

	recs, err := outlier.Aggregate(set, inference, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byTaxon := make(map[string]outlier.ConsensusRecord, len(recs))
	for _, r := range recs {
		byTaxon[r.Taxon] = r
	}

	foo := byTaxon["g__Foo"]
	if !equalFloat(foo.Median, 0.85) {
		t.Errorf("taxon %q: median %.3f, want %.3f", "g__Foo", foo.Median, 0.85)
	}
	if !equalFloat(foo.MAD, 0.05) {
		t.Errorf("taxon %q: MAD %.3f, want %.3f", "g__Foo", foo.MAD, 0.05)
	}
	if !equalFloat(foo.RankMedian, 0.82) {
		t.Errorf("taxon %q: rank median %.3f, want %.3f", "g__Foo", foo.RankMedian, 0.82)
	}

	// only the rooting with a reference
	// yields a difference
	if len(foo.Diffs) != 1 {
		t.Fatalf("taxon %q: %d rooting differences, want %d", "g__Foo", len(foo.Diffs), 1)
	}
	if !equalFloat(foo.Diffs[0], -0.02) {
		t.Errorf("taxon %q: difference %.3f, want %.3f", "g__Foo", foo.Diffs[0], -0.02)
	}
	if !equalFloat(foo.MeanDiff, -0.02) {
		t.Errorf("taxon %q: mean difference %.3f, want %.3f", "g__Foo", foo.MeanDiff, -0.02)
	}
}

// A rank with no trusted taxa in any rooting
// has no reference at all,
// and must be reported as an error
// instead of silently dropping its taxa.
func TestAggregateEmptyRank(t *testing.T) {
	ra := make(reldist.Table)
	ra.Add(rank.Class, "c__Alone", 0.45)

	set := outlier.RootingSet{"p__A": ra}
	inference := map[string]bool{"g__Trusted": true}

	_, err := outlier.Aggregate(set, inference, nil)
	if !errors.Is(err, outlier.ErrEmptyDistribution) {
		t.Errorf("got error %v, want %v", err, outlier.ErrEmptyDistribution)
	}
}

func TestMediansByTaxon(t *testing.T) {
	set := newRootingSet()
	tb, err := set.MediansByTaxon()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !equalFloat(tb[rank.Phylum]["p__One"], 0.32) {
		t.Errorf("taxon %q: median %.3f, want %.3f", "p__One", tb[rank.Phylum]["p__One"], 0.32)
	}
	if !equalFloat(tb[rank.Phylum]["p__Two"], 0.32) {
		t.Errorf("taxon %q: median %.3f, want %.3f", "p__Two", tb[rank.Phylum]["p__Two"], 0.32)
	}
	if !equalFloat(tb[rank.Phylum]["p__Odd"], 0.55) {
		t.Errorf("taxon %q: median %.3f, want %.3f", "p__Odd", tb[rank.Phylum]["p__Odd"], 0.55)
	}
}
