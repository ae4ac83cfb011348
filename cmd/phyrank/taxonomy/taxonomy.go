// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxonomy implements a command to extract
// the taxonomy embedded in the tree of a PhyRank project.
package taxonomy

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phyrank/project"
	"github.com/js-arias/phyrank/taxonomy"
)

var Command = &command.Command{
	Usage: "taxonomy [-o|--output <taxonomy-file>] <project-file>",
	Short: "extract the taxonomy from the project tree",
	Long: `
Command taxonomy reads the tree of a PhyRank project, extracts the taxonomy
defined by the taxon names of its node labels, and writes it as a TSV file.

The argument of the command is the name of the project file.

By default the taxonomy is written to the file "taxonomy.tab"; use the flag
--output, or -o, to set a different file name. The resulting file is added to
the project as its taxonomy dataset.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "taxonomy.tab", "")
	c.Flags().StringVar(&output, "o", "taxonomy.tab", "")
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

	tx := taxonomy.FromTree(t, c.Stderr())
	if err := writeTaxonomy(tx, output); err != nil {
		return err
	}

	p.Add(project.Taxonomy, output)
	return p.Write()
}

func writeTaxonomy(tx *taxonomy.Taxonomy, name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()
	if err := tx.TSV(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
