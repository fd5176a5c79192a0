package shoppinglist

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Renderer turns a shopping list into a downloadable document.
type Renderer interface {
	ContentType() string
	Extension() string
	Render(w io.Writer, title string, items []Item) error
}

const (
	FormatText = "txt"
	FormatPDF  = "pdf"
)

// RendererFor returns the renderer registered for format.
func RendererFor(format string) (Renderer, bool) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return TextRenderer{}, true
	case FormatPDF:
		return PDFRenderer{}, true
	}
	return nil, false
}

// FormatLine is the printed form of one item.
func FormatLine(it Item) string {
	return fmt.Sprintf("%s — %d %s", it.Name, it.TotalAmount, it.MeasurementUnit)
}

type TextRenderer struct{}

func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }
func (TextRenderer) Extension() string   { return FormatText }

func (TextRenderer) Render(w io.Writer, title string, items []Item) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := fmt.Fprintln(w, FormatLine(it)); err != nil {
			return err
		}
	}
	return nil
}

// PDFRenderer lays the list out on A4 pages with the core Helvetica font.
// Text is transcoded to cp1252, so characters outside it are replaced.
type PDFRenderer struct{}

func (PDFRenderer) ContentType() string { return "application/pdf" }
func (PDFRenderer) Extension() string   { return FormatPDF }

func (PDFRenderer) Render(w io.Writer, title string, items []Item) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, it := range items {
		pdf.CellFormat(0, 8, tr(FormatLine(it)), "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
