package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/lyricpipe/core"
	"github.com/gaurav-prasanna/lyricpipe/core/chunk"
	"github.com/gaurav-prasanna/lyricpipe/core/normalize"
	"github.com/gaurav-prasanna/lyricpipe/core/pipeline"
)

type searchForm struct {
	Query    string
	SubQuery string
	Site     string
	Index    bool
}

type searchPage struct {
	Title        string
	Form         searchForm
	Sites        []string
	Error        string
	Results      []core.SearchResult
	IndexResults []core.IndexResult
}

type languageText struct {
	Name string
	Text string
}

type reformatPage struct {
	Title       string
	Error       string
	OriginalURL string
	Languages   []languageText
	Rows        int
}

type errorPage struct {
	Title  string
	Status string
	Error  string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/search/", http.StatusFound)
}

// handleSearchPost turns a submitted form into a bookmarkable GET.
func (s *Server) handleSearchPost(w http.ResponseWriter, r *http.Request) {
	form := readSearchForm(r)
	params := url.Values{}
	if form.Query != "" {
		params.Set("q", form.Query)
	}
	if form.SubQuery != "" {
		params.Set("subq", form.SubQuery)
	}
	if form.Site != "" {
		params.Set("site", form.Site)
	}
	if form.Index {
		params.Set("index", "1")
	}

	target := "/search/"
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	form := readSearchForm(r)
	if form.Site == "" {
		form.Site = s.defaultSite
	}
	page := searchPage{Title: "Lyric Search", Form: form, Sites: s.registry.Names()}

	// A bare visit shows the empty form.
	if len(r.URL.Query()) == 0 {
		s.render(w, r, http.StatusOK, "search.html", page)
		return
	}

	site, err := s.registry.Get(form.Site)
	if err != nil {
		page.Error = "Invalid site."
		s.render(w, r, http.StatusOK, "search.html", page)
		return
	}
	if form.Query == "" {
		page.Error = "You must provide a valid query."
		s.render(w, r, http.StatusOK, "search.html", page)
		return
	}

	if form.Index {
		page.IndexResults, err = site.Index(r.Context(), form.Query)
	} else {
		page.Results, err = site.Search(r.Context(), form.Query, form.SubQuery)
	}
	if err != nil {
		if errors.Is(err, core.ErrUnsupported) {
			s.httpError(w, r, err, http.StatusNotImplemented)
			return
		}
		s.httpError(w, r, err, http.StatusBadGateway)
		return
	}
	if len(page.Results) == 0 && len(page.IndexResults) == 0 {
		page.Error = "No results."
	}
	s.render(w, r, http.StatusOK, "search.html", page)
}

func (s *Server) handleSong(w http.ResponseWriter, r *http.Request) {
	endpoint := r.PathValue("endpoint")
	query := r.URL.Query()

	siteName := query.Get("site")
	if siteName == "" {
		siteName = s.defaultSite
	}
	site, err := s.registry.Get(siteName)
	if err != nil {
		s.httpError(w, r, err, http.StatusBadRequest)
		return
	}

	req := pipeline.Request{
		Endpoint:  endpoint,
		Title:     strings.TrimSpace(query.Get("title")),
		Site:      site.Name(),
		SourceURL: site.SongURL(endpoint),
		Options:   normalize.Options{TolerateMismatch: flag(query.Get("ignore_len"))},
	}
	song, err := pipeline.Song(r.Context(), site, req)

	var mismatch *normalize.MismatchError
	switch {
	case errors.As(err, &mismatch):
		s.render(w, r, http.StatusOK, "reformat.html", newReformatPage(song.Title, req.SourceURL, mismatch))
		return
	case errors.Is(err, core.ErrUnsupported):
		s.httpError(w, r, err, http.StatusNotImplemented)
		return
	case err != nil:
		s.httpError(w, r, err, http.StatusBadGateway)
		return
	}
	s.writeSong(w, r, song)
}

func (s *Server) handleReformatted(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.httpError(w, r, err, http.StatusBadRequest)
		return
	}
	song := core.Song{
		Title: strings.TrimSpace(r.PostForm.Get("title")),
		Stanzas: core.StanzaSet{
			core.Korean:  chunk.Split(r.PostForm.Get(core.Korean)),
			core.English: chunk.Split(r.PostForm.Get(core.English)),
		},
	}

	if report := normalize.Check(song.Stanzas); report != nil {
		page := newReformatPage(song.Title, "", &normalize.MismatchError{Report: report})
		s.render(w, r, http.StatusOK, "reformat.html", page)
		return
	}
	s.writeSong(w, r, song)
}

func (s *Server) writeSong(w http.ResponseWriter, r *http.Request, song core.Song) {
	data, err := s.song.Render(song)
	if err != nil {
		s.httpError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

func newReformatPage(title, originalURL string, mismatch *normalize.MismatchError) reformatPage {
	page := reformatPage{
		Title:       title,
		Error:       mismatch.Error(),
		OriginalURL: originalURL,
		Rows:        mismatch.Report.TextLines(),
	}
	for _, lang := range mismatch.Report.Langs() {
		page.Languages = append(page.Languages, languageText{
			Name: lang,
			Text: mismatch.Report.Languages[lang].Text,
		})
	}
	return page
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "template error", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// httpError logs err with the request ID and renders the error page.
func (s *Server) httpError(w http.ResponseWriter, r *http.Request, err error, status int) {
	slog.WarnContext(r.Context(), "http error",
		"request_id", RequestID(r.Context()),
		"status", status,
		"error", err,
	)
	text := strconv.Itoa(status) + " " + http.StatusText(status)
	s.render(w, r, status, "error.html", errorPage{Title: text, Status: text, Error: err.Error()})
}

func readSearchForm(r *http.Request) searchForm {
	return searchForm{
		Query:    strings.TrimSpace(r.FormValue("q")),
		SubQuery: strings.TrimSpace(r.FormValue("subq")),
		Site:     strings.TrimSpace(r.FormValue("site")),
		Index:    flag(r.FormValue("index")),
	}
}

// flag reads a checkbox style parameter. Any non-empty value other than a
// recognised false is true.
func flag(v string) bool {
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err != nil || b
}
