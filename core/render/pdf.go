package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

const (
	pdfFamily = "lyrics"
	pdfMargin = 15.0 // mm
	pdfGutter = 8.0  // mm between the two columns
)

// PDFRenderer renders the song as a two-column PDF: Korean on the left,
// translation on the right, one row per stanza. The core PDF fonts have no
// Hangul, so a UTF-8 TrueType font file is required.
type PDFRenderer struct {
	FontPath string
	FontSize int
}

// NewPDFRenderer creates a PDFRenderer using the font at fontPath.
func NewPDFRenderer(fontPath string, fontSize int) *PDFRenderer {
	if fontSize < 1 {
		fontSize = DefaultFontSize
	}
	return &PDFRenderer{FontPath: fontPath, FontSize: fontSize}
}

// Render lays out the stanza rows. A row never splits across pages.
func (r *PDFRenderer) Render(song core.Song) ([]byte, error) {
	if r.FontPath == "" {
		return nil, ErrNoFont
	}
	if _, err := os.Stat(r.FontPath); err != nil {
		return nil, fmt.Errorf("loading pdf font: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8Font(pdfFamily, "", r.FontPath)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(song.Title, true)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	colW := (pageW - 2*pdfMargin - pdfGutter) / 2
	size := float64(r.FontSize)
	lineH := size * 0.5

	pdf.SetFont(pdfFamily, "", size*1.5)
	pdf.MultiCell(0, size*0.75, song.Title, "", "L", false)
	pdf.Ln(lineH)

	pdf.SetFont(pdfFamily, "", size)
	for _, row := range Rows(song) {
		left := wrapStanza(pdf, row.Korean, colW)
		right := wrapStanza(pdf, row.Translation, colW)
		h := float64(max(len(left), len(right))) * lineH

		if pdf.GetY()+h > pageH-pdfMargin {
			pdf.AddPage()
		}
		y := pdf.GetY()
		writeColumn(pdf, left, pdfMargin, y, colW, lineH)
		pdf.SetTextColor(70, 70, 70)
		writeColumn(pdf, right, pdfMargin+colW+pdfGutter, y, colW, lineH)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetY(y + h + lineH)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func writeColumn(pdf *gofpdf.Fpdf, lines []string, x, y, w, lineH float64) {
	for i, line := range lines {
		pdf.SetXY(x, y+float64(i)*lineH)
		pdf.CellFormat(w, lineH, line, "", 0, "L", false, 0, "")
	}
}

// wrapStanza breaks each line at word boundaries to fit width.
func wrapStanza(pdf *gofpdf.Fpdf, stanza core.Stanza, width float64) []string {
	var out []string
	for _, line := range stanza {
		out = append(out, wrapLine(pdf, line, width)...)
	}
	return out
}

func wrapLine(pdf *gofpdf.Fpdf, line string, width float64) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var out []string
	current := words[0]
	for _, word := range words[1:] {
		next := current + " " + word
		if pdf.GetStringWidth(next) > width {
			out = append(out, current)
			current = word
			continue
		}
		current = next
	}
	return append(out, current)
}
