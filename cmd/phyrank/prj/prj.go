// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phyrank/project"
	"github.com/js-arias/phyrank/rank"
	"github.com/js-arias/phyrank/taxonomy"
	"github.com/js-arias/phyrank/tree"
)

var Command = &command.Command{
	Usage: "prj <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads a PhyRank project and prints the information of the
different project elements into the standard output.

The argument of the command is the name of the project file.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	tF := p.Path(project.Tree)
	if tF != "" {
		if err := readTree(c.Stdout(), tF); err != nil {
			return err
		}
	}

	txF := p.Path(project.Taxonomy)
	if txF != "" {
		if err := readTaxonomy(c.Stdout(), txF); err != nil {
			return err
		}
	}

	thF := p.Path(project.Thresholds)
	if thF != "" {
		if err := readThresholds(c.Stdout(), thF); err != nil {
			return err
		}
	}

	lsF := p.Path(project.Trusted)
	if lsF != "" {
		if err := readTrusted(c.Stdout(), lsF); err != nil {
			return err
		}
	}

	return nil
}

func readTree(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := tree.ReadNewick(f, name)
	if err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}

	fmt.Fprintf(w, "Tree:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\tnodes: %d\n", t.Len())
	fmt.Fprintf(w, "\tterminals: %d\n", len(t.Terms()))
	fmt.Fprintf(w, "\n")
	return nil
}

func readTaxonomy(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	tx, err := taxonomy.Read(f)
	if err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}

	fmt.Fprintf(w, "Taxonomy:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\ttaxa: %d\n", len(tx.Taxa()))
	fmt.Fprintf(w, "\n")
	return nil
}

func readThresholds(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	th, err := rank.ReadTSV(f)
	if err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}

	fmt.Fprintf(w, "Rank thresholds:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	for _, r := range rank.Ranks() {
		v, ok := th.Value(r)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\t%s: %.4f\n", r, v)
	}
	fmt.Fprintf(w, "\n")
	return nil
}

func readTrusted(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	ls, err := taxonomy.ReadTaxaList(f)
	if err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}

	fmt.Fprintf(w, "Trusted taxa:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\ttaxa: %d\n", len(ls))
	fmt.Fprintf(w, "\n")
	return nil
}
