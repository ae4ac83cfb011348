// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package decorate implements a command to decorate
// the nodes of the tree of a PhyRank project
// with their predicted taxonomic rank.
package decorate

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phyrank/decorate"
	"github.com/js-arias/phyrank/project"
)

var Command = &command.Command{
	Usage: `decorate [--support <value>] [--length <value>] [--named]
	[-o|--output <tree-file>]
	<project-file>`,
	Short: "decorate tree nodes with their predicted rank",
	Long: `
Command decorate reads the tree of a PhyRank project, computes the relative
evolutionary divergence of its nodes, and appends to each internal node label
a marker with the rank predicted from the divergence of the node, in the form
"|<PREFIX>[<divergence>]", for example "|G__[0.87]".

The argument of the command is the name of the project file. The project must
define a tree and a threshold file.

By default all internal nodes are decorated. Use the flag --support to skip
nodes below a support value, the flag --length to skip nodes with a short
branch, and the flag --named to decorate only nodes that already have a taxon
name.

The decorated tree is written to the file defined with the flag --output, or
-o, by default "decorated.tree". A summary of the predictions that agree with
the taxon names already present in the tree, for the ranks from phylum to
species, is printed to the standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var minSupport float64
var minLength float64
var onlyNamed bool
var output string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&minSupport, "support", 0, "")
	c.Flags().Float64Var(&minLength, "length", 0, "")
	c.Flags().BoolVar(&onlyNamed, "named", false, "")
	c.Flags().StringVar(&output, "output", "decorated.tree", "")
	c.Flags().StringVar(&output, "o", "decorated.tree", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	t, err := p.ReadTree()
	if err != nil {
		return err
	}
	th, err := p.ReadThresholds()
	if err != nil {
		return err
	}

	opts := decorate.Options{
		MinSupport: minSupport,
		MinLength:  minLength,
		OnlyNamed:  onlyNamed,
	}
	ac, err := decorate.Tree(t, th, opts, c.Stderr())
	if err != nil {
		return err
	}
	if err := ac.TSV(c.Stdout()); err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := t.Write(f); err != nil {
		return fmt.Errorf("on file %q: %v", output, err)
	}
	return nil
}
