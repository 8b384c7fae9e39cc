package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/lyricpipe/core"
	"github.com/gaurav-prasanna/lyricpipe/core/fetch"
	"github.com/gaurav-prasanna/lyricpipe/core/normalize"
	"github.com/gaurav-prasanna/lyricpipe/core/output"
	"github.com/gaurav-prasanna/lyricpipe/core/pipeline"
	"github.com/gaurav-prasanna/lyricpipe/core/render"
	"github.com/gaurav-prasanna/lyricpipe/sites"
)

// openRegistry builds every site from the loaded config. The returned func
// releases the page cache.
func openRegistry() (*sites.Registry, func(), error) {
	timeout, err := cfg.HTTP.TimeoutDuration()
	if err != nil {
		return nil, nil, err
	}
	var opts []fetch.Option
	if timeout > 0 {
		opts = append(opts, fetch.WithTimeout(timeout))
	}
	if cfg.HTTP.UserAgent != "" {
		opts = append(opts, fetch.WithUserAgent(cfg.HTTP.UserAgent))
	}

	store, closeStore, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	reg, err := sites.Default(sites.Deps{
		Fetcher:       fetch.New(opts...),
		Browser:       fetch.New(append(opts, fetch.WithHeaders(fetch.BrowserHeaders))...),
		Store:         store,
		ClientOptions: []fetch.ClientOption{fetch.WithRateLimit(cfg.HTTP.RateLimit)},
	})
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return reg, closeStore, nil
}

// openStore opens the configured page cache. Backend "none" disables it.
func openStore() (fetch.Store, func(), error) {
	noop := func() {}
	if cfg.Cache.Backend == "none" {
		return nil, noop, nil
	}
	if cfg.Cache.Dir == "" {
		return nil, nil, errors.New(`no cache directory could be determined: set cache.dir or use cache.backend = "none"`)
	}

	switch cfg.Cache.Backend {
	case "sqlite":
		s, err := fetch.OpenSQLiteStore(filepath.Join(cfg.Cache.Dir, "pages.db"))
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		s, err := fetch.NewFSStore(filepath.Join(cfg.Cache.Dir, "pages"))
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	}
}

// siteName falls back to the configured default site.
func siteName(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.DefaultSite
}

// newPipeline selects the renderer for format and targets dir. Empty
// values and a zero size fall back to the config.
func newPipeline(format string, size int, dir string) (*pipeline.Pipeline, error) {
	if format == "" {
		format = cfg.Format
	}
	if size <= 0 {
		size = cfg.FontSize
	}
	if dir == "" {
		dir = cfg.OutputDir
	}

	var renderer core.Renderer
	switch format {
	case "html":
		renderer = render.NewHTMLRenderer(size)
	case "md":
		renderer = render.NewMarkdownRenderer()
	case "json":
		renderer = render.NewJSONRenderer()
	case "pdf":
		renderer = render.NewPDFRenderer(cfg.PDFFont, size)
	default:
		return nil, fmt.Errorf("unknown format %q (want html, md, json or pdf)", format)
	}

	writer, err := output.New(dir)
	if err != nil {
		return nil, fmt.Errorf("initializing output writer: %w", err)
	}
	return pipeline.New(renderer, writer), nil
}

var (
	reportHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	reportColumn = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginRight(1)
)

// printMismatch writes the stanza layout of each language side by side when
// err is a stanza mismatch, and returns err unchanged.
func printMismatch(w io.Writer, err error) error {
	var mismatch *normalize.MismatchError
	if !errors.As(err, &mismatch) {
		return err
	}
	report := mismatch.Report

	columns := make([]string, 0, len(report.Languages))
	for _, lang := range report.Langs() {
		header := reportHeader.Render(fmt.Sprintf("%s (%d stanzas)", lang, report.Counts[lang]))
		columns = append(columns, reportColumn.Render(header+"\n\n"+report.Languages[lang].Text))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	fmt.Fprintf(w, "Longest stanza: %d lines\n", report.MaxLines)
	return err
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// sortedAlbums returns the distinct non-empty album names.
func sortedAlbums(results []core.IndexResult) []string {
	seen := make(map[string]struct{})
	var albums []string
	for _, r := range results {
		if r.Album == "" {
			continue
		}
		if _, ok := seen[r.Album]; ok {
			continue
		}
		seen[r.Album] = struct{}{}
		albums = append(albums, r.Album)
	}
	sort.Strings(albums)
	return albums
}

func written(path string) {
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
}

// songFlags are shared by the commands that write a song.
type songFlags struct {
	title     string
	outputDir string
	fontSize  int
	format    string
	ignoreLen bool
}

func addSongFlags(c *cobra.Command, f *songFlags, withIgnore bool) {
	c.Flags().StringVarP(&f.title, "title", "t", "", "Title to use (default: discovered from the lyrics page)")
	c.Flags().StringVarP(&f.outputDir, "output", "o", "", "Output directory (default: config output_dir or <user cache dir>/lyric_fetcher/lyrics)")
	c.Flags().IntVarP(&f.fontSize, "size", "z", 0, "Font size for html and pdf output (default: config font_size)")
	c.Flags().StringVarP(&f.format, "format", "f", "", "Output format: html, md, json or pdf (default: config format)")
	if withIgnore {
		c.Flags().BoolVarP(&f.ignoreLen, "ignore-length", "i", false, "Write the song even if stanza counts differ")
	}
}

func (f *songFlags) pipeline() (*pipeline.Pipeline, error) {
	return newPipeline(f.format, f.fontSize, f.outputDir)
}
