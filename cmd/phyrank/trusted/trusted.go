// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package trusted implements a command to add
// a trusted taxa file to a PhyRank project.
package trusted

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phyrank/project"
	"github.com/js-arias/phyrank/taxonomy"
)

var Command = &command.Command{
	Usage: "trusted <project-file> <taxa-file>",
	Short: "add a trusted taxa file to a project",
	Long: `
Command trusted validates a file with a list of trusted taxa, and adds it to a
PhyRank project. When a trusted taxa file is defined, only the taxa in the
list are used to infer the divergence distribution of each rank.

The first argument of the command is the name of the project file. If the
project file does not exist, it will be created.

The second argument is the name of the taxa file. The file is a plain text
file with a taxon name per line; in lines with multiple tab-separated fields
only the first field is read, and lines starting with '#' are ignored.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting project and taxa file")
	}

	name := args[1]
	ls, err := readTaxa(name)
	if err != nil {
		return err
	}
	if len(ls) == 0 {
		return fmt.Errorf("on file %q: no taxa defined", name)
	}

	p, err := project.Read(args[0])
	if err != nil {
		p = project.New()
		p.SetName(args[0])
	}
	p.Add(project.Trusted, name)
	return p.Write()
}

func readTaxa(name string) (map[string]bool, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ls, err := taxonomy.ReadTaxaList(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return ls, nil
}
