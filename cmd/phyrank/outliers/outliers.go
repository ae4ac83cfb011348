// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package outliers implements a command to detect taxa
// with an anomalous relative evolutionary divergence
// across several alternative rootings of a tree.
package outliers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phyrank/outlier"
	"github.com/js-arias/phyrank/outlier/distplot"
	"github.com/js-arias/phyrank/project"
	"github.com/js-arias/phyrank/reldist"
	"github.com/js-arias/phyrank/reroot"
	"github.com/js-arias/phyrank/taxonomy"
	"github.com/js-arias/phyrank/tree"
	"github.com/js-arias/phyrank/tree/label"
)

var Command = &command.Command{
	Usage: `outliers [--tool <name>] [--rootings <number>]
	[--children <number>] [--support <value>] [--plot]
	[-o|--output <dir>]
	<project-file>`,
	Short: "detect taxa with an anomalous divergence",
	Long: `
Command outliers reads the tree of a PhyRank project and reports, for every
named taxon, how far its relative evolutionary divergence falls from the
median divergence of the other taxa of the same rank.

The argument of the command is the name of the project file.

As divergence values depend on the rooting of the tree, the tree is re-rooted
on each of its phyla using an external rooting tool, by default "genometreetk"
(use the flag --tool to change it). By default all phyla are used; the flag
--rootings limits the analysis to the indicated number of rootings. If a
rooting fails, a warning is printed, and the remaining rootings are still
processed.

The distribution of each rank is inferred only from trusted taxa: taxa with at
least the number of children given with the flag --children (2 by default),
and a branch support at or above the value of the flag --support. If the
project defines a trusted taxa file, only taxa in that file are used. All the
taxa are classified and reported, whether trusted or not.

For each rooting the command writes the tables "rank_distribution.tsv" and
"median_outlier.tsv" in a directory named after the rooting phylum; a summary
over all rootings is written to "rank_distribution_summary.tsv" and
"median_outlier_summary.tsv". All files are created under the directory given
with the flag --output, or -o, by default the current directory. With the flag
--plot each distribution table is also rendered as a PNG plot.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var toolName string
var rootings int
var minChildren int
var minSupport float64
var makePlot bool
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&toolName, "tool", reroot.DefaultTool, "")
	c.Flags().IntVar(&rootings, "rootings", 0, "")
	c.Flags().IntVar(&minChildren, "children", 2, "")
	c.Flags().Float64Var(&minSupport, "support", 0, "")
	c.Flags().BoolVar(&makePlot, "plot", false, "")
	c.Flags().StringVar(&output, "output", ".", "")
	c.Flags().StringVar(&output, "o", ".", "")
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

	if err := os.MkdirAll(output, 0o755); err != nil {
		return err
	}

	// the taxonomy is pulled from the tree
	// and stored for the external rooting tool
	tx := taxonomy.FromTree(t, c.Stderr())
	taxFile := filepath.Join(output, "taxonomy.tab")
	if err := writeTaxonomy(tx, taxFile); err != nil {
		return err
	}

	trusted, err := p.ReadTrusted()
	if err != nil {
		return err
	}
	inference := taxonomy.ForInference(t, trusted, minChildren, minSupport)

	relDists := reldist.ToNamedClades(t, nil, c.Stderr())
	fmt.Fprintf(c.Stdout(), "rank\ttaxa\ttaxa for inference\n")
	for _, r := range relDists.Ranks() {
		n := 0
		for _, taxon := range relDists.Taxa(r) {
			if inference[taxon] {
				n++
			}
		}
		fmt.Fprintf(c.Stdout(), "%s\t%d\t%d\n", r, len(relDists.Taxa(r)), n)
	}

	phyla := phylaForRooting(t)
	fmt.Fprintf(c.Stderr(), "# Identified %d phyla for rooting\n", len(phyla))
	if rootings > 0 && rootings < len(phyla) {
		phyla = phyla[:rootings]
	}

	set := make(outlier.RootingSet, len(phyla))
	for _, phylum := range phyla {
		if err := runRooting(c, p, tx, phylum, inference, set); err != nil {
			fmt.Fprintf(c.Stderr(), "WARNING: rooting on %q: %v\n", phylum, err)
			continue
		}
	}
	if len(set) == 0 {
		return fmt.Errorf("no rooting produced usable results")
	}

	return writeConsensus(set, inference, tx)
}

// PhylaForRooting returns the phylum level taxa of a tree,
// in the order in which they are found
// going from the root to the terminals.
func phylaForRooting(t *tree.Tree) []string {
	var phyla []string
	seen := make(map[string]bool)
	for _, id := range t.Nodes() {
		if t.IsTerm(id) {
			continue
		}
		l, err := label.Parse(t.Label(id))
		if err != nil {
			continue
		}
		taxa := l.Taxa()
		if len(taxa) == 0 {
			continue
		}
		tn := taxa[len(taxa)-1]
		if !strings.HasPrefix(tn, "p__") || seen[tn] {
			continue
		}
		seen[tn] = true
		phyla = append(phyla, tn)
	}
	return phyla
}

// RunRooting processes a single rooting of the tree:
// it re-roots the tree on the given phylum,
// computes the divergence of every named clade,
// removes the taxa of the outgroup,
// and writes the distribution and outlier tables
// of the rooting.
func runRooting(c *command.Command, p *project.Project, tx *taxonomy.Taxonomy, phylum string, inference map[string]bool, set outlier.RootingSet) error {
	name := strings.TrimPrefix(phylum, "p__")
	dir := filepath.Join(output, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	taxFile := filepath.Join(output, "taxonomy.tab")
	rt, err := reroot.Outgroup(context.Background(), toolName, p.Path(project.Tree), taxFile, phylum, filepath.Join(dir, "rerooted.tree"))
	if err != nil {
		return err
	}

	rd := reldist.ToNamedClades(rt, nil, c.Stderr())

	// named groups in the outgroup are no longer well defined
	// under this rooting
	rd.Delete(phylum)
	for _, child := range tx.Children(phylum) {
		rd.Delete(child)
	}

	sum, err := outlier.Summary(rd, inference)
	if err != nil {
		return err
	}
	df, err := os.Create(filepath.Join(dir, "rank_distribution.tsv"))
	if err != nil {
		return err
	}
	defer df.Close()
	if err := outlier.DistributionTSV(df, rd, sum); err != nil {
		return err
	}
	if makePlot {
		if err := distplot.Distribution(filepath.Join(dir, "rank_distribution.png"), rd, sum, inference); err != nil {
			return err
		}
	}

	recs, err := outlier.MedianOutliers(rd, inference)
	if err != nil {
		return err
	}
	mf, err := os.Create(filepath.Join(dir, "median_outlier.tsv"))
	if err != nil {
		return err
	}
	defer mf.Close()
	if err := outlier.MedianOutlierTSV(mf, recs); err != nil {
		return err
	}

	set[phylum] = rd
	return nil
}

// WriteConsensus aggregates the results of all rootings
// and writes the summary distribution
// and the consensus outlier classification.
func writeConsensus(set outlier.RootingSet, inference map[string]bool, tx *taxonomy.Taxonomy) error {
	medians, err := set.MediansByTaxon()
	if err != nil {
		return err
	}
	sum, err := outlier.Summary(medians, inference)
	if err != nil {
		return err
	}
	df, err := os.Create(filepath.Join(output, "rank_distribution_summary.tsv"))
	if err != nil {
		return err
	}
	defer df.Close()
	if err := outlier.DistributionTSV(df, medians, sum); err != nil {
		return err
	}
	if makePlot {
		if err := distplot.Distribution(filepath.Join(output, "rank_distribution_summary.png"), medians, sum, inference); err != nil {
			return err
		}
	}

	recs, err := outlier.Aggregate(set, inference, tx)
	if err != nil {
		return err
	}
	cf, err := os.Create(filepath.Join(output, "median_outlier_summary.tsv"))
	if err != nil {
		return err
	}
	defer cf.Close()
	return outlier.ConsensusTSV(cf, recs)
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
