package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/lyricpipe/core/compare"
	"github.com/gaurav-prasanna/lyricpipe/core/normalize"
	"github.com/gaurav-prasanna/lyricpipe/core/pipeline"
)

var (
	compareSite      string
	compareThreshold float64
)

var compareCmd = &cobra.Command{
	Use:   "compare <endpoint1> <endpoint2>",
	Short: "Show lines two songs have in common",
	Long: `Compare fetches two songs from the same site and lists the lines they
share, exact matches first, then near matches by Jaro-Winkler similarity.

Example:
  lyricpipe compare 2019/12/red-velvet-psycho 2019/12/red-velvet-psycho-remix`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&compareSite, "site", "s", "", "Site to use (default: config default_site)")
	compareCmd.Flags().Float64Var(&compareThreshold, "threshold", compare.DefaultThreshold, "Minimum similarity for a near match")
}

func runCompare(cmd *cobra.Command, args []string) error {
	reg, closeStore, err := openRegistry()
	if err != nil {
		return err
	}
	defer closeStore()

	site, err := reg.Get(siteName(compareSite))
	if err != nil {
		return err
	}

	opts := normalize.Options{TolerateMismatch: true}
	left, err := pipeline.Song(cmd.Context(), site, pipeline.Request{Endpoint: args[0], Options: opts})
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	right, err := pipeline.Song(cmd.Context(), site, pipeline.Request{Endpoint: args[1], Options: opts})
	if err != nil {
		return fmt.Errorf("%s: %w", args[1], err)
	}

	matches := compare.Lines(left.Stanzas, right.Stanzas, compareThreshold)
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No common lines.")
		return nil
	}

	t := newTable(os.Stdout)
	t.AppendHeader(table.Row{"Language", left.Title, right.Title, "Similarity"})
	for _, m := range matches {
		t.AppendRow(table.Row{m.Language, m.Left, m.Right, fmt.Sprintf("%.2f", m.Similarity)})
	}
	t.Render()
	return nil
}
