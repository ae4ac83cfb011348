// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/phyrank/rank"
	"github.com/js-arias/phyrank/taxonomy"
	"github.com/js-arias/phyrank/tree"
)

// ReadTree reads the phylogenetic tree
// defined in a project.
// The tree is named after the base name of its file.
func (p *Project) ReadTree() (*tree.Tree, error) {
	name := p.Path(Tree)
	if name == "" {
		return nil, fmt.Errorf("tree not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tn := filepath.Base(name)
	t, err := tree.ReadNewick(f, tn)
	if err != nil {
		return nil, fmt.Errorf("when reading file %q: %v", name, err)
	}
	return t, nil
}

// ReadTaxonomy reads the taxonomy file
// as defined in a project.
func (p *Project) ReadTaxonomy() (*taxonomy.Taxonomy, error) {
	name := p.Path(Taxonomy)
	if name == "" {
		return nil, fmt.Errorf("taxonomy not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tx, err := taxonomy.Read(f)
	if err != nil {
		return nil, fmt.Errorf("when reading file %q: %v", name, err)
	}
	return tx, nil
}

// ReadThresholds reads the rank threshold file
// as defined in a project.
func (p *Project) ReadThresholds() (*rank.Thresholds, error) {
	name := p.Path(Thresholds)
	if name == "" {
		return nil, fmt.Errorf("thresholds not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	th, err := rank.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("when reading file %q: %v", name, err)
	}
	return th, nil
}

// ReadTrusted reads the list of trusted taxa
// as defined in a project.
// An empty return with no error
// means that no trusted taxa file is defined,
// and all taxa can be used for inference.
func (p *Project) ReadTrusted() (map[string]bool, error) {
	name := p.Path(Trusted)
	if name == "" {
		return nil, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	taxa, err := taxonomy.ReadTaxaList(f)
	if err != nil {
		return nil, fmt.Errorf("when reading file %q: %v", name, err)
	}
	return taxa, nil
}
