// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package outlier

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/js-arias/phyrank/rank"
	"github.com/js-arias/phyrank/reldist"
)

// DistributionTSV writes the divergence of every taxon of a table,
// with the percentiles of its rank
// and a flag for taxa outside the 10-90 percentile band,
// as a TSV file.
func DistributionTSV(w io.Writer, tb reldist.Table, sum map[rank.Rank]Dist) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "taxon\tdistance\tp10\tmedian\tp90\tpercentile outlier\n")
	for _, r := range tb.Ranks() {
		d, ok := sum[r]
		if !ok {
			return fmt.Errorf("distribution: rank %s: %w", r, ErrEmptyDistribution)
		}
		for _, taxon := range tb.Taxa(r) {
			v := tb[r][taxon]
			out := v < d.P10 || v > d.P90
			fmt.Fprintf(bw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%v\n", taxon, v, d.P10, d.P50, d.P90, out)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("distribution: %v", err)
	}
	return nil
}

// MedianOutlierTSV writes the outlier classification
// of a single rooting as a TSV file.
func MedianOutlierTSV(w io.Writer, recs []Record) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "taxon\tdistance\tmedian of rank\tdelta\tclosest rank\tclassification\n")
	for _, rec := range recs {
		fmt.Fprintf(bw, "%s\t%.2f\t%.2f\t%.2f\t%s\t%s\n", rec.Taxon, rec.Dist, rec.RankMedian, rec.Delta, rec.ClosestRank, rec.Class)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("outliers: %v", err)
	}
	return nil
}

// ConsensusTSV writes the consensus outlier classification
// over several rootings as a TSV file.
func ConsensusTSV(w io.Writer, recs []ConsensusRecord) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "taxon\tlineage\tmedian distance\tmedian absolute deviation")
	fmt.Fprintf(bw, "\tmedian of rank\trank absolute deviation\tdelta")
	fmt.Fprintf(bw, "\tclosest rank\tclassification\tmean absolute difference\tmean difference\tdistances\n")
	for _, rec := range recs {
		diffs := make([]string, 0, len(rec.Diffs))
		for _, d := range rec.Diffs {
			diffs = append(diffs, fmt.Sprintf("%.2f", d))
		}
		fmt.Fprintf(bw, "%s\t%s\t%.2f\t%.3f\t%.2f\t%.3f\t%.3f\t%s\t%s\t%.3f\t%.3f\t%s\n",
			rec.Taxon,
			strings.Join(rec.Lineage, ";"),
			rec.Median,
			rec.MAD,
			rec.RankMedian,
			rec.RankMAD,
			rec.Delta,
			rec.ClosestRank,
			rec.Class,
			rec.MeanAbsDiff,
			rec.MeanDiff,
			strings.Join(diffs, ", "))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("consensus: %v", err)
	}
	return nil
}
