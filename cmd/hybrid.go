package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/lyricpipe/core"
	"github.com/gaurav-prasanna/lyricpipe/core/hybrid"
	"github.com/gaurav-prasanna/lyricpipe/core/normalize"
	"github.com/gaurav-prasanna/lyricpipe/core/pipeline"
	"github.com/gaurav-prasanna/lyricpipe/sites"
)

var (
	hybridKoreanSite      string
	hybridEnglishSite     string
	hybridKoreanEndpoint  string
	hybridEnglishEndpoint string
	hybridKoreanBreaks    []int
	hybridEnglishBreaks   []int
	hybridKoreanExtra     []string
	hybridEnglishExtra    []string
	hybridFlags           songFlags
)

var hybridCmd = &cobra.Command{
	Use:   "hybrid-get",
	Short: "Merge Korean lyrics from one site with the English translation from another",
	Long: `Hybrid-get takes the Korean lyrics from one page and the English translation
from another, possibly on different sites, and writes them as one song.

Example:
  lyricpipe hybrid-get --korean-site klyrics --korean-endpoint red-velvet-psycho-lyrics \
    --english-site lyricstranslate --english-endpoint en/red-velvet-psycho-lyrics.html \
    --english-linebreaks 8 --korean-extra "Psycho"`,
	Args: cobra.NoArgs,
	RunE: runHybrid,
}

func init() {
	rootCmd.AddCommand(hybridCmd)

	f := hybridCmd.Flags()
	f.StringVar(&hybridKoreanSite, "korean-site", "", "Site to take the Korean lyrics from")
	f.StringVar(&hybridEnglishSite, "english-site", "", "Site to take the English translation from")
	f.StringVar(&hybridKoreanEndpoint, "korean-endpoint", "", "Song page with the Korean lyrics")
	f.StringVar(&hybridEnglishEndpoint, "english-endpoint", "", "Song page with the English translation")
	f.IntSliceVar(&hybridKoreanBreaks, "korean-linebreaks", nil, "Extra line indices that start a Korean stanza")
	f.IntSliceVar(&hybridEnglishBreaks, "english-linebreaks", nil, "Extra line indices that start an English stanza")
	f.StringArrayVar(&hybridKoreanExtra, "korean-extra", nil, "Line to append to the Korean lyrics (repeatable)")
	f.StringArrayVar(&hybridEnglishExtra, "english-extra", nil, "Line to append to the English translation (repeatable)")
	addSongFlags(hybridCmd, &hybridFlags, true)

	for _, name := range []string{"korean-site", "english-site", "korean-endpoint", "english-endpoint"} {
		_ = hybridCmd.MarkFlagRequired(name)
	}
}

func runHybrid(cmd *cobra.Command, args []string) error {
	reg, closeStore, err := openRegistry()
	if err != nil {
		return err
	}
	defer closeStore()

	korean, err := reg.Get(hybridKoreanSite)
	if err != nil {
		return fmt.Errorf("korean site: %w", err)
	}
	english, err := reg.Get(hybridEnglishSite)
	if err != nil {
		return fmt.Errorf("english site: %w", err)
	}

	return writeHybrid(cmd, korean, english, hybridKoreanEndpoint, hybridEnglishEndpoint, &hybridFlags, normalize.Options{
		Overrides: map[string]normalize.Overrides{
			core.Korean:  {Breaks: hybridKoreanBreaks, Extra: hybridKoreanExtra},
			core.English: {Breaks: hybridEnglishBreaks, Extra: hybridEnglishExtra},
		},
		TolerateMismatch: hybridFlags.ignoreLen,
	})
}

// writeHybrid combines the Korean half of one source with the English half
// of another and writes the result.
func writeHybrid(cmd *cobra.Command, korean, english sites.Site, koreanEndpoint, englishEndpoint string, flags *songFlags, opts normalize.Options) error {
	p, err := flags.pipeline()
	if err != nil {
		return err
	}

	src := &hybrid.Source{
		First:  hybrid.Part{Source: korean, Endpoint: koreanEndpoint, Language: core.Korean},
		Second: hybrid.Part{Source: english, Endpoint: englishEndpoint, Language: core.English},
		Title:  flags.title,
	}
	path, err := p.Process(cmd.Context(), src, pipeline.Request{
		Endpoint:  koreanEndpoint,
		Site:      korean.Name() + "+" + english.Name(),
		SourceURL: korean.SongURL(koreanEndpoint),
		Options:   opts,
	})
	if err != nil {
		return printMismatch(os.Stderr, err)
	}
	written(path)
	return nil
}
