// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package outlier

import (
	"fmt"

	"github.com/js-arias/phyrank/rank"
	"github.com/js-arias/phyrank/reldist"
	"github.com/js-arias/phyrank/taxonomy"
	"github.com/montanaflynn/stats"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// A RootingSet is a collection of relative divergence tables,
// one per alternative rooting of a tree,
// indexed by the name of the phylum
// used as outgroup for the rooting.
type RootingSet map[string]reldist.Table

// Phyla returns the phyla used for the rootings of a set,
// in alphabetical order.
func (set RootingSet) Phyla() []string {
	phyla := make([]string, 0, len(set))
	for p := range set {
		phyla = append(phyla, p)
	}
	slices.Sort(phyla)
	return phyla
}

// A ConsensusRecord is the outlier classification of a taxon
// aggregated over several alternative rootings.
type ConsensusRecord struct {
	Taxon string
	Rank  rank.Rank

	// Lineage is the list of parent taxa of the taxon.
	Lineage []string

	// Median and MAD are the median
	// and the median absolute deviation
	// of the taxon divergence
	// over the rootings in which it is defined.
	Median float64
	MAD    float64

	// RankMedian and RankMAD are the median
	// and the median absolute deviation
	// of the per-rooting medians of the rank,
	// inferred from the trusted taxa.
	RankMedian float64
	RankMAD    float64

	// Delta is the difference
	// between the taxon median
	// and the rank median.
	Delta float64

	// ClosestRank is the rank whose aggregated median
	// is closest to the taxon median.
	ClosestRank rank.Rank

	Class Class

	// MeanAbsDiff and MeanDiff are the mean absolute difference
	// and the mean difference
	// between the taxon divergence
	// and the median of its own rooting,
	// averaged over the rootings.
	MeanAbsDiff float64
	MeanDiff    float64

	// Diffs are the per-rooting differences
	// between the taxon divergence
	// and the median of the rooting.
	Diffs []float64
}

// Aggregate aggregates the divergence tables
// of several alternative rootings
// into a consensus outlier classification.
//
// The reference of each rank is the median,
// over the rootings,
// of the per-rooting median divergence of the trusted taxa,
// so no single rooting can bias the reference.
// A rooting without trusted taxa at a rank
// contributes no reference for the rank,
// but the taxon values of the rooting still count;
// a rank with no reference in any rooting is an error.
// Taxa excluded from a rooting
// (the outgroup phylum and its descendants)
// do not contribute values for that rooting.
// All the taxa are classified and reported,
// even if absent from the inference set.
//
// The taxonomy is used to report the lineage of each taxon,
// and can be nil.
func Aggregate(set RootingSet, inference map[string]bool, tx *taxonomy.Taxonomy) ([]ConsensusRecord, error) {
	phylumMedians := make(map[rank.Rank][]float64)
	values := make(map[rank.Rank]map[string][]float64)
	diffs := make(map[rank.Rank]map[string][]float64)

	for _, p := range set.Phyla() {
		tb := set[p]
		for _, r := range tb.Ranks() {
			// every defined value of a taxon counts,
			// even if its rooting gives no usable reference
			// at the rank
			for _, taxon := range tb.Taxa(r) {
				addValue(values, r, taxon, tb[r][taxon])
			}

			v := inferenceValues(tb, r, inference)
			if len(v) == 0 {
				continue
			}
			m, err := stats.Median(v)
			if err != nil {
				return nil, fmt.Errorf("rooting %s: rank %s: %v", p, r, err)
			}
			phylumMedians[r] = append(phylumMedians[r], m)

			for _, taxon := range tb.Taxa(r) {
				addValue(diffs, r, taxon, tb[r][taxon]-m)
			}
		}
	}

	ranks := make([]rank.Rank, 0, len(values))
	for r := range values {
		ranks = append(ranks, r)
	}
	slices.Sort(ranks)

	rankMedian := make(map[rank.Rank]float64, len(ranks))
	rankMAD := make(map[rank.Rank]float64, len(ranks))
	for _, r := range ranks {
		pm := phylumMedians[r]
		if len(pm) == 0 {
			return nil, fmt.Errorf("rank %s: %w", r, ErrEmptyDistribution)
		}
		m, err := stats.Median(pm)
		if err != nil {
			return nil, fmt.Errorf("rank %s: %w", r, ErrEmptyDistribution)
		}
		mad, err := stats.MedianAbsoluteDeviation(pm)
		if err != nil {
			return nil, fmt.Errorf("rank %s: %w", r, ErrEmptyDistribution)
		}
		rankMedian[r] = m
		rankMAD[r] = mad
	}

	var recs []ConsensusRecord
	for _, r := range ranks {
		taxa := make([]string, 0, len(values[r]))
		for taxon := range values[r] {
			taxa = append(taxa, taxon)
		}
		slices.Sort(taxa)

		for _, taxon := range taxa {
			v := values[r][taxon]
			m, err := stats.Median(v)
			if err != nil {
				return nil, fmt.Errorf("taxon %s: %v", taxon, err)
			}
			mad, err := stats.MedianAbsoluteDeviation(v)
			if err != nil {
				return nil, fmt.Errorf("taxon %s: %v", taxon, err)
			}

			var meanAbs, meanDiff float64
			df := diffs[r][taxon]
			if len(df) > 0 {
				abs := make([]float64, len(df))
				for i, d := range df {
					if d < 0 {
						d = -d
					}
					abs[i] = d
				}
				meanAbs = stat.Mean(abs, nil)
				meanDiff = stat.Mean(df, nil)
			}

			delta := m - rankMedian[r]
			var lineage []string
			if tx != nil {
				lineage = tx.Parents(taxon)
			}
			recs = append(recs, ConsensusRecord{
				Taxon:       taxon,
				Rank:        r,
				Lineage:     lineage,
				Median:      m,
				MAD:         mad,
				RankMedian:  rankMedian[r],
				RankMAD:     rankMAD[r],
				Delta:       delta,
				ClosestRank: closestRank(m, ranks, rankMedian),
				Class:       Classify(delta),
				MeanAbsDiff: meanAbs,
				MeanDiff:    meanDiff,
				Diffs:       df,
			})
		}
	}
	return recs, nil
}

// MediansByTaxon returns the per-taxon divergence medians
// of a rooting set,
// indexed by rank and taxon.
// It is the aggregated form of the set
// used for summary distributions and plots.
func (set RootingSet) MediansByTaxon() (reldist.Table, error) {
	values := make(map[rank.Rank]map[string][]float64)
	for _, p := range set.Phyla() {
		tb := set[p]
		for _, r := range tb.Ranks() {
			for _, taxon := range tb.Taxa(r) {
				addValue(values, r, taxon, tb[r][taxon])
			}
		}
	}

	out := make(reldist.Table)
	for r, taxa := range values {
		for taxon, v := range taxa {
			m, err := stats.Median(v)
			if err != nil {
				return nil, fmt.Errorf("taxon %s: %v", taxon, err)
			}
			out.Add(r, taxon, m)
		}
	}
	return out, nil
}

func addValue(m map[rank.Rank]map[string][]float64, r rank.Rank, taxon string, v float64) {
	taxa, ok := m[r]
	if !ok {
		taxa = make(map[string][]float64)
		m[r] = taxa
	}
	taxa[taxon] = append(taxa[taxon], v)
}
