// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of the terminals in the tree of a PhyRank project.
package terms

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phyrank/project"
)

var Command = &command.Command{
	Usage: "terms <project-file>",
	Short: "print a list of tree terminals",
	Long: `
Command terms reads the tree from a PhyRank project and print the name of the
terminals in the standard output.

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
	if p.Path(project.Tree) == "" {
		return nil
	}

	t, err := p.ReadTree()
	if err != nil {
		return err
	}
	for _, term := range t.Terms() {
		fmt.Fprintf(c.Stdout(), "%s\n", term)
	}

	return nil
}
