// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package outlier implements the detection of taxa
// with an anomalous relative evolutionary divergence.
//
// A named taxon is an outlier
// if its divergence falls far from the median divergence
// of the other taxa assigned to the same rank.
// As divergence values depend on the rooting of the tree,
// results from several alternative rootings
// can be aggregated into a consensus
// (see Aggregate).
package outlier

import (
	"errors"
	"fmt"
	"math"

	"github.com/js-arias/phyrank/rank"
	"github.com/js-arias/phyrank/reldist"
	"github.com/montanaflynn/stats"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// A Class is the categorical classification of a taxon,
// given the difference
// between its divergence
// and the median divergence of its rank.
type Class int

// Valid classes.
const (
	OK Class = iota
	Overclassified
	VeryOverclassified
	Underclassified
	VeryUnderclassified
)

func (c Class) String() string {
	switch c {
	case OK:
		return "OK"
	case Overclassified:
		return "overclassified"
	case VeryOverclassified:
		return "very overclassified"
	case Underclassified:
		return "underclassified"
	case VeryUnderclassified:
		return "very underclassified"
	}
	return "unknown"
}

// Classify returns the class of a taxon
// from the difference between its divergence
// and the median divergence of its rank.
// The cut values are fixed:
// a difference beyond 0.1 is an outlier,
// and beyond 0.2 a strong outlier.
func Classify(delta float64) Class {
	switch {
	case delta < -0.2:
		return VeryOverclassified
	case delta < -0.1:
		return Overclassified
	case delta > 0.2:
		return VeryUnderclassified
	case delta > 0.1:
		return Underclassified
	}
	return OK
}

// ErrEmptyDistribution is the error produced
// when the statistics of a rank are requested
// and no taxon of the rank qualifies for inference.
var ErrEmptyDistribution = errors.New("no taxa for distribution inference")

// A Dist is the summary
// of the divergence distribution of a rank.
type Dist struct {
	Mean   float64
	StdDev float64

	// percentiles of the distribution
	P10 float64
	P50 float64
	P90 float64

	// N is the number of taxa
	// used to infer the distribution.
	N int
}

// Boundaries returns the classification boundaries of a rank,
// at 0.1 and 0.2 from the rank median,
// clipped to the valid divergence range.
func (d Dist) Boundaries() []float64 {
	var bs []float64
	for _, b := range []float64{-0.2, -0.1, 0.1, 0.2} {
		v := d.P50 + b
		if v > 0 && v < 1 {
			bs = append(bs, v)
		}
	}
	return bs
}

// Summary returns the divergence distribution
// of each rank of a table.
//
// Only taxa in the inference set
// are used to infer the distributions
// (a nil set uses all taxa).
// A rank without taxa in the inference set
// is a hard error:
// an inference over an empty distribution
// is never silently reported.
func Summary(tb reldist.Table, inference map[string]bool) (map[rank.Rank]Dist, error) {
	sum := make(map[rank.Rank]Dist, len(tb))
	for _, r := range tb.Ranks() {
		v := inferenceValues(tb, r, inference)
		if len(v) == 0 {
			return nil, fmt.Errorf("rank %s: %w", r, ErrEmptyDistribution)
		}
		slices.Sort(v)

		sd := 0.0
		if len(v) > 1 {
			sd = stat.StdDev(v, nil)
		}
		sum[r] = Dist{
			Mean:   stat.Mean(v, nil),
			StdDev: sd,
			P10:    stat.Quantile(0.10, stat.Empirical, v, nil),
			P50:    stat.Quantile(0.50, stat.Empirical, v, nil),
			P90:    stat.Quantile(0.90, stat.Empirical, v, nil),
			N:      len(v),
		}
	}
	return sum, nil
}

// A Record is the outlier classification of a taxon
// under a single rooting.
type Record struct {
	Taxon string
	Rank  rank.Rank

	// Dist is the observed relative divergence.
	Dist float64

	// RankMedian is the median divergence of the rank,
	// over the inference taxa.
	RankMedian float64

	// Delta is the difference
	// between the taxon divergence
	// and the rank median.
	Delta float64

	// ClosestRank is the rank whose median
	// is closest to the taxon divergence.
	// It is informative,
	// and plays no role in the classification.
	ClosestRank rank.Rank

	Class Class
}

// MedianOutliers classifies every taxon of a table
// against the median divergence of its rank.
//
// Only taxa in the inference set
// shape the rank medians
// (a nil set uses all taxa),
// but all the taxa of the table are classified and reported.
func MedianOutliers(tb reldist.Table, inference map[string]bool) ([]Record, error) {
	medians := make(map[rank.Rank]float64, len(tb))
	for _, r := range tb.Ranks() {
		v := inferenceValues(tb, r, inference)
		if len(v) == 0 {
			return nil, fmt.Errorf("rank %s: %w", r, ErrEmptyDistribution)
		}
		m, err := stats.Median(v)
		if err != nil {
			return nil, fmt.Errorf("rank %s: %v", r, err)
		}
		medians[r] = m
	}

	var recs []Record
	for _, r := range tb.Ranks() {
		for _, taxon := range tb.Taxa(r) {
			d := tb[r][taxon]
			delta := d - medians[r]
			recs = append(recs, Record{
				Taxon:       taxon,
				Rank:        r,
				Dist:        d,
				RankMedian:  medians[r],
				Delta:       delta,
				ClosestRank: closestRank(d, tb.Ranks(), medians),
				Class:       Classify(delta),
			})
		}
	}
	return recs, nil
}

// ClosestRank scans the ranks in order,
// from the most inclusive,
// and returns the first rank
// whose median is closest to the given divergence.
func closestRank(d float64, ranks []rank.Rank, medians map[rank.Rank]float64) rank.Rank {
	closest := rank.Basal
	min := math.Inf(1)
	for _, r := range ranks {
		m, ok := medians[r]
		if !ok {
			continue
		}
		ad := d - m
		if ad < 0 {
			ad = -ad
		}
		if ad < min {
			min = ad
			closest = r
		}
	}
	return closest
}

func inferenceValues(tb reldist.Table, r rank.Rank, inference map[string]bool) []float64 {
	var v []float64
	for taxon, d := range tb[r] {
		if inference != nil && !inference[taxon] {
			continue
		}
		v = append(v, d)
	}
	return v
}
