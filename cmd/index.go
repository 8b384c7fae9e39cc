package cmd

import (
	"fmt"
	"os"
	"regexp"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

var (
	indexSite        string
	indexAlbumFilter string
	indexListAlbums  bool
)

var indexCmd = &cobra.Command{
	Use:   "index <name>",
	Short: "List the song pages on an artist's index page",
	Long: `Index lists every song a site has for an artist, grouped by album.

Examples:
  lyricpipe index "red velvet"
  lyricpipe index "red velvet" --album-filter "Festival" -L
  lyricpipe index red-velvet -s musixmatch`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringVarP(&indexSite, "site", "s", "", "Site to use (default: config default_site)")
	indexCmd.Flags().StringVar(&indexAlbumFilter, "album-filter", "", "Only show albums matching this regular expression")
	indexCmd.Flags().BoolVarP(&indexListAlbums, "list-albums", "L", false, "List album names instead of songs")
}

func runIndex(cmd *cobra.Command, args []string) error {
	var filter *regexp.Regexp
	if indexAlbumFilter != "" {
		re, err := regexp.Compile(indexAlbumFilter)
		if err != nil {
			return fmt.Errorf("invalid --album-filter: %w", err)
		}
		filter = re
	}

	reg, closeStore, err := openRegistry()
	if err != nil {
		return err
	}
	defer closeStore()

	site, err := reg.Get(siteName(indexSite))
	if err != nil {
		return err
	}

	results, err := site.Index(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	results = filterAlbums(results, filter)

	if indexListAlbums {
		for _, album := range sortedAlbums(results) {
			fmt.Fprintln(os.Stdout, album)
		}
		return nil
	}

	t := newTable(os.Stdout)
	t.AppendHeader(table.Row{"Album", "Link", "Song"})
	for _, r := range results {
		t.AppendRow(table.Row{r.Album, r.Link, r.Song})
	}
	t.Render()
	return nil
}

// filterAlbums keeps results whose album matches re. Results without an
// album never match. A nil re keeps everything.
func filterAlbums(results []core.IndexResult, re *regexp.Regexp) []core.IndexResult {
	if re == nil {
		return results
	}
	var kept []core.IndexResult
	for _, r := range results {
		if r.Album != "" && re.MatchString(r.Album) {
			kept = append(kept, r)
		}
	}
	return kept
}
