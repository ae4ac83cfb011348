// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rank_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/js-arias/phyrank/rank"
)

func newThresholds(t testing.TB) *rank.Thresholds {
	t.Helper()

	th, err := rank.NewThresholds(map[rank.Rank]float64{
		rank.Domain: 0.10,
		rank.Phylum: 0.30,
		rank.Class:  0.50,
		rank.Order:  0.60,
		rank.Family: 0.70,
		rank.Genus:  0.85,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return th
}

func TestAssign(t *testing.T) {
	th := newThresholds(t)

	tests := []struct {
		div  float64
		want rank.Rank
	}{
		{div: 0.05, want: rank.Basal},
		{div: 0.10, want: rank.Basal},
		{div: 0.1000001, want: rank.Phylum},
		{div: 0.30, want: rank.Phylum},
		{div: 0.3000001, want: rank.Class},
		{div: 0.40, want: rank.Class},
		{div: 0.50, want: rank.Class},
		{div: 0.55, want: rank.Order},
		{div: 0.65, want: rank.Family},
		{div: 0.85, want: rank.Genus},
		{div: 0.90, want: rank.Species},
	}

	for _, test := range tests {
		if got := th.Assign(test.div); got != test.want {
			t.Errorf("divergence %.7f: got %s, want %s", test.div, got, test.want)
		}
	}
}

// Every divergence value must map to exactly one rank
// (the basal sentinel included).
func TestAssignTotality(t *testing.T) {
	th := newThresholds(t)

	for d := 0.0; d <= 1.0; d += 0.001 {
		if r := th.Assign(d); !r.IsValid() {
			t.Fatalf("divergence %.3f: invalid rank %d", d, r)
		}
	}
}

func TestNewThresholdsErrors(t *testing.T) {
	_, err := rank.NewThresholds(map[rank.Rank]float64{
		rank.Domain: 0.10,
		rank.Phylum: 0.30,
		rank.Class:  0.50,
		rank.Order:  0.60,
		rank.Genus:  0.85,
	})
	if !errors.Is(err, rank.ErrMissingRank) {
		t.Errorf("missing rank: got error %v, want %v", err, rank.ErrMissingRank)
	}

	_, err = rank.NewThresholds(map[rank.Rank]float64{
		rank.Domain: 0.10,
		rank.Phylum: 0.30,
		rank.Class:  0.25,
		rank.Order:  0.60,
		rank.Family: 0.70,
		rank.Genus:  0.85,
	})
	if !errors.Is(err, rank.ErrNotMonotonic) {
		t.Errorf("non monotonic: got error %v, want %v", err, rank.ErrNotMonotonic)
	}
}

func TestThresholdsTSV(t *testing.T) {
	th := newThresholds(t)

	var b bytes.Buffer
	if err := th.TSV(&b); err != nil {
		t.Fatalf("unexpected error when writing: %v", err)
	}

	nt, err := rank.ReadTSV(&b)
	if err != nil {
		t.Fatalf("unexpected error when reading: %v", err)
	}
	for _, r := range []rank.Rank{rank.Domain, rank.Phylum, rank.Class, rank.Order, rank.Family, rank.Genus} {
		want, _ := th.Value(r)
		got, ok := nt.Value(r)
		if !ok || got != want {
			t.Errorf("rank %s: threshold %.4f [%v], want %.4f", r, got, ok, want)
		}
	}
}

// The example file of the documentation
// must be readable as is.
func TestReadTSVExample(t *testing.T) {
	example := "# relative divergence thresholds\n" +
		"rank\tthreshold\n" +
		"d\t0.1000\n" +
		"p\t0.3000\n" +
		"c\t0.4000\n" +
		"o\t0.5500\n" +
		"f\t0.7000\n" +
		"g\t0.9000\n"

	th, err := rank.ReadTSV(strings.NewReader(example))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := th.Value(rank.Genus); !ok || v != 0.9 {
		t.Errorf("rank %s: threshold %.4f [%v], want %.4f", rank.Genus, v, ok, 0.9)
	}
}

func TestReadTSVErrors(t *testing.T) {
	missing := "rank\tthreshold\nd\t0.10\np\t0.30\n"
	if _, err := rank.ReadTSV(strings.NewReader(missing)); !errors.Is(err, rank.ErrMissingRank) {
		t.Errorf("missing ranks: got error %v, want %v", err, rank.ErrMissingRank)
	}

	badRank := "rank\tthreshold\nz\t0.10\n"
	if _, err := rank.ReadTSV(strings.NewReader(badRank)); err == nil {
		t.Errorf("unknown rank: expecting error")
	}
}
