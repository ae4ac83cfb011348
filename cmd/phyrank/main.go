// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PhyRank is a tool for taxonomic rank analysis
// of phylogenetic trees
// based on relative evolutionary divergence.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phyrank/cmd/phyrank/decorate"
	"github.com/js-arias/phyrank/cmd/phyrank/outliers"
	"github.com/js-arias/phyrank/cmd/phyrank/prj"
	"github.com/js-arias/phyrank/cmd/phyrank/taxonomy"
	"github.com/js-arias/phyrank/cmd/phyrank/thresholds"
	"github.com/js-arias/phyrank/cmd/phyrank/tree"
	"github.com/js-arias/phyrank/cmd/phyrank/trusted"
)

var app = &command.Command{
	Usage: "phyrank <command> [<argument>...]",
	Short: "a tool for taxonomic rank analysis of phylogenetic trees",
}

func init() {
	app.Add(decorate.Command)
	app.Add(outliers.Command)
	app.Add(prj.Command)
	app.Add(taxonomy.Command)
	app.Add(thresholds.Command)
	app.Add(tree.Command)
	app.Add(trusted.Command)
}

func main() {
	app.Main()
}
