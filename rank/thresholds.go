// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rank

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Thresholds is an ordered table
// of relative divergence thresholds
// per taxonomic rank.
//
// A threshold is the largest relative divergence
// of a node assigned to the rank:
// a node belongs to the least inclusive rank
// whose threshold is at or above the node divergence.
// Thresholds must be defined at least
// for the ranks from domain to genus,
// and must be non-decreasing from domain to the least inclusive rank.
type Thresholds struct {
	ranks []Rank
	vals  []float64
}

// Configuration errors of a threshold table.
var (
	ErrMissingRank  = errors.New("thresholds: missing rank")
	ErrNotMonotonic = errors.New("thresholds: non monotonic threshold")
)

// NewThresholds creates a threshold table
// from rank-threshold values.
// It fails if a rank between domain and genus is undefined,
// or if the values decrease along the rank order.
func NewThresholds(vals map[Rank]float64) (*Thresholds, error) {
	for _, r := range ranks {
		if r > Genus {
			break
		}
		if _, ok := vals[r]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingRank, r)
		}
	}

	th := &Thresholds{}
	prev := Domain
	for _, r := range ranks {
		v, ok := vals[r]
		if !ok {
			continue
		}
		if len(th.ranks) > 0 && v < th.vals[len(th.vals)-1] {
			return nil, fmt.Errorf("%w: rank %s [%.4f] smaller than %s [%.4f]", ErrNotMonotonic, r, v, prev, th.vals[len(th.vals)-1])
		}
		th.ranks = append(th.ranks, r)
		th.vals = append(th.vals, v)
		prev = r
	}
	return th, nil
}

// Value returns the threshold defined for a rank.
func (th *Thresholds) Value(r Rank) (float64, bool) {
	for i, tr := range th.ranks {
		if tr == r {
			return th.vals[i], true
		}
	}
	return 0, false
}

// Assign returns the rank predicted
// for a relative divergence value.
//
// A divergence above the genus threshold is a species.
// A divergence at or below the domain threshold
// is too basal for a confident prediction
// and returns the Basal sentinel.
// Any other divergence d is assigned to the least inclusive rank
// of the first pair of consecutive ranks (parent, child)
// such that threshold(parent) < d <= threshold(child),
// scanning from the most inclusive rank.
func (th *Thresholds) Assign(d float64) Rank {
	genus, _ := th.Value(Genus)
	if d > genus {
		return Species
	}
	if d <= th.vals[0] {
		return Basal
	}
	for i := 0; i < len(th.ranks)-1; i++ {
		if d > th.vals[i] && d <= th.vals[i+1] {
			return th.ranks[i+1]
		}
	}
	// unreachable with a valid table
	return Basal
}

var header = []string{
	"rank",
	"threshold",
}

// ReadTSV reads a threshold table from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - rank, the single letter rank designator
//   - threshold, the relative divergence threshold of the rank
//
// Here is an example file:
//
//	# relative divergence thresholds
//	rank	threshold
//	d	0.10
//	p	0.30
//	c	0.50
//	o	0.60
//	f	0.70
//	g	0.85
func ReadTSV(r io.Reader) (*Thresholds, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("thresholds: header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("thresholds: expecting field %q", h)
		}
	}

	vals := make(map[Rank]float64)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("thresholds: on row %d: %v", ln, err)
		}

		f := "rank"
		rr, ok := FromDesignator(row[fields[f]])
		if !ok {
			return nil, fmt.Errorf("thresholds: on row %d: unknown rank %q", ln, row[fields[f]])
		}

		f = "threshold"
		v, err := strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("thresholds: on row %d: field %q: %v", ln, f, err)
		}
		vals[rr] = v
	}

	return NewThresholds(vals)
}

// TSV writes a threshold table as a TSV file.
func (th *Thresholds) TSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# relative divergence thresholds\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("thresholds: while writing header: %v", err)
	}
	for i, r := range th.ranks {
		row := []string{
			r.Designator(),
			strconv.FormatFloat(th.vals[i], 'f', 4, 64),
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("thresholds: %v", err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("thresholds: while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("thresholds: while writing data: %v", err)
	}
	return nil
}
