// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package reroot invokes an external tool
// to root a phylogenetic tree
// on a given outgroup taxon.
package reroot

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/js-arias/phyrank/tree"
)

// DefaultTool is the default name
// of the external rooting tool.
const DefaultTool = "genometreetk"

// Outgroup runs the external rooting tool
// to root the tree in treeFile
// on the indicated outgroup taxon,
// and reads back the resulting tree.
//
// The tool is invoked as
//
//	<tool> outgroup <tree-file> <taxonomy-file> <outgroup> <output-file>
//
// A failure of the tool,
// or an unreadable output tree,
// is reported with the outgroup identified,
// so a caller processing multiple rootings
// can skip the failed rooting
// and continue with the others.
func Outgroup(ctx context.Context, tool, treeFile, taxonomyFile, outgroup, outFile string) (*tree.Tree, error) {
	if tool == "" {
		tool = DefaultTool
	}

	cmd := exec.CommandContext(ctx, tool, "outgroup", treeFile, taxonomyFile, outgroup, outFile)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("reroot: outgroup %q: %s: %v: %s", outgroup, tool, err, out)
	}

	f, err := os.Open(outFile)
	if err != nil {
		return nil, fmt.Errorf("reroot: outgroup %q: %v", outgroup, err)
	}
	defer f.Close()

	t, err := tree.ReadNewick(f, outgroup)
	if err != nil {
		return nil, fmt.Errorf("reroot: outgroup %q: %v", outgroup, err)
	}
	return t, nil
}
