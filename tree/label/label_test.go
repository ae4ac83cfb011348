// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package label_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/js-arias/phyrank/tree/label"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		in   string
		want label.Label
	}{
		"empty":   {in: "", want: label.Label{}},
		"support": {in: "100", want: label.Label{Support: 100, HasSupport: true}},
		"taxon":   {in: "d__Bacteria", want: label.Label{Taxon: "d__Bacteria"}},
		"both": {
			in:   "95:p__Proteobacteria",
			want: label.Label{Support: 95, HasSupport: true, Taxon: "p__Proteobacteria"},
		},
		"nested taxa": {
			in:   "90:d__Bacteria; p__Proteobacteria",
			want: label.Label{Support: 90, HasSupport: true, Taxon: "d__Bacteria; p__Proteobacteria"},
		},
		"auxiliary": {
			in: "90:g__Bacillus|S__[0.92]",
			want: label.Label{
				Support: 90, HasSupport: true,
				Taxon: "g__Bacillus",
				Aux:   "S__[0.92]",
			},
		},
	}

	for name, test := range tests {
		got, err := label.Parse(test.in)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: got %+v, want %+v", name, got, test.want)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	bad := []string{
		"xx:p__Proteobacteria",
		":p__Proteobacteria",
	}
	for _, s := range bad {
		if _, err := label.Parse(s); !errors.Is(err, label.ErrMalformed) {
			t.Errorf("label %q: got error %v, want %v", s, err, label.ErrMalformed)
		}
	}
}

func TestTaxa(t *testing.T) {
	l, err := label.Parse("90:d__Bacteria; p__Proteobacteria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"d__Bacteria", "p__Proteobacteria"}
	if got := l.Taxa(); !reflect.DeepEqual(got, want) {
		t.Errorf("taxa: got %v, want %v", got, want)
	}
}

func TestString(t *testing.T) {
	labels := []string{
		"100",
		"d__Bacteria",
		"95:p__Proteobacteria",
		"90:g__Bacillus|S__[0.92]",
	}
	for _, s := range labels {
		l, err := label.Parse(s)
		if err != nil {
			t.Fatalf("label %q: unexpected error: %v", s, err)
		}
		if got := l.String(); got != s {
			t.Errorf("label %q: round trip %q", s, got)
		}
	}
}
