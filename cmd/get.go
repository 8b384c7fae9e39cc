package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/lyricpipe/core"
	"github.com/gaurav-prasanna/lyricpipe/core/normalize"
	"github.com/gaurav-prasanna/lyricpipe/core/pipeline"
)

var (
	getSite       string
	getLinebreaks []int
	getReplaceLB  bool
	getFlags      songFlags
)

var getCmd = &cobra.Command{
	Use:   "get <endpoint>...",
	Short: "Retrieve lyrics from one or more song pages on a single site",
	Long: `Get fetches each song page, splits the Korean lyrics and the English
translation into stanzas, and writes one document per song.

Examples:
  lyricpipe get 2019/12/red-velvet-psycho
  lyricpipe get red-velvet-psycho-lyrics -s klyrics -f md -o ./out
  lyricpipe get 2019/12/red-velvet-psycho --linebreaks 4,-2 -R`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getSite, "site", "s", "", "Site to use (default: config default_site)")
	getCmd.Flags().IntSliceVar(&getLinebreaks, "linebreaks", nil, "Extra line indices that start a new stanza; negative counts from the end")
	getCmd.Flags().BoolVarP(&getReplaceLB, "replace-linebreaks", "R", false, "Ignore the page's own stanza breaks and use --linebreaks only")
	addSongFlags(getCmd, &getFlags, true)
}

func runGet(cmd *cobra.Command, args []string) error {
	reg, closeStore, err := openRegistry()
	if err != nil {
		return err
	}
	defer closeStore()

	site, err := reg.Get(siteName(getSite))
	if err != nil {
		return err
	}
	p, err := getFlags.pipeline()
	if err != nil {
		return err
	}

	overrides := normalize.Overrides{Breaks: getLinebreaks}
	opts := normalize.Options{
		Overrides: map[string]normalize.Overrides{
			core.Korean:  overrides,
			core.English: overrides,
		},
		StripBreaks:      getReplaceLB,
		TolerateMismatch: getFlags.ignoreLen,
	}

	for _, endpoint := range args {
		path, err := p.Process(cmd.Context(), site, pipeline.Request{
			Endpoint:  endpoint,
			Title:     getFlags.title,
			Site:      site.Name(),
			SourceURL: site.SongURL(endpoint),
			Options:   opts,
		})
		if err != nil {
			return printMismatch(os.Stderr, fmt.Errorf("%s: %w", endpoint, err))
		}
		written(path)
	}
	return nil
}
