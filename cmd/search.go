package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	searchSite     string
	searchSubQuery string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search a site for lyric pages",
	Long: `Search lists the song pages a site returns for a query. The Link column
is the endpoint to pass to get.

Examples:
  lyricpipe search "red velvet"
  lyricpipe search "red velvet" -q psycho -s lyricstranslate`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchSite, "site", "s", "", "Site to use (default: config default_site)")
	searchCmd.Flags().StringVarP(&searchSubQuery, "sub-query", "q", "", "Narrow the search, e.g. to one song")
}

func runSearch(cmd *cobra.Command, args []string) error {
	reg, closeStore, err := openRegistry()
	if err != nil {
		return err
	}
	defer closeStore()

	site, err := reg.Get(siteName(searchSite))
	if err != nil {
		return err
	}

	results, err := site.Search(cmd.Context(), args[0], searchSubQuery)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No results.")
		return nil
	}

	t := newTable(os.Stdout)
	t.AppendHeader(table.Row{"Link", "Song"})
	for _, r := range results {
		t.AppendRow(table.Row{r.Link, r.Song})
	}
	t.Render()
	return nil
}
