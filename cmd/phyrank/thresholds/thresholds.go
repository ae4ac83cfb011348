// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package thresholds implements a command to add
// a rank threshold file to a PhyRank project.
package thresholds

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phyrank/project"
	"github.com/js-arias/phyrank/rank"
)

var Command = &command.Command{
	Usage: "thresholds <project-file> <threshold-file>",
	Short: "add a rank threshold file to a project",
	Long: `
Command thresholds validates a file with relative divergence thresholds per
taxonomic rank, and adds it to a PhyRank project.

The first argument of the command is the name of the project file. If the
project file does not exist, it will be created.

The second argument is the name of the threshold file. The file is a TSV file
with the fields "rank" (the single letter rank designator) and "threshold"; it
must define a threshold for every rank from domain to genus, and the values
must not decrease from domain to genus. Here is an example file:

	# relative divergence thresholds
	rank	threshold
	d	0.1000
	p	0.3000
	c	0.4000
	o	0.5500
	f	0.7000
	g	0.9000
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting project and threshold file")
	}

	name := args[1]
	if err := readThresholds(name); err != nil {
		return err
	}

	p, err := project.Read(args[0])
	if err != nil {
		p = project.New()
		p.SetName(args[0])
	}
	p.Add(project.Thresholds, name)
	return p.Write()
}

func readThresholds(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := rank.ReadTSV(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
