// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add
// a phylogenetic tree to a PhyRank project.
package add

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phyrank/project"
	"github.com/js-arias/phyrank/tree"
)

var Command = &command.Command{
	Usage: "add <project-file> <tree-file>",
	Short: "add a phylogenetic tree to a project",
	Long: `
Command add validates a phylogenetic tree in newick format and adds it to a
PhyRank project. A project uses a single tree; if the project already has a
tree, it will be replaced by the new one.

The first argument of the command is the name of the project file. If the
project file does not exist, it will be created.

The second argument is the name of the tree file. The tree must have branch
lengths, and its internal node labels are expected to be of the form
"<support>:<taxon-name>", for example "100.0:d__Bacteria".
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting project and tree file")
	}

	name := args[1]
	t, err := readTree(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "tree %q: %d terminals\n", t.Name(), len(t.Terms()))

	p, err := project.Read(args[0])
	if err != nil {
		p = project.New()
		p.SetName(args[0])
	}
	p.Add(project.Tree, name)
	return p.Write()
}

func readTree(name string) (*tree.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := tree.ReadNewick(f, name)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}
