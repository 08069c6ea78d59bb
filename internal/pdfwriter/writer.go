// =============================================================================
// Daily Report Generator - PDF Writer Module
// =============================================================================
//
// This module renders the aggregated report model into a paginated PDF
// using the fpdf library. The document layout:
//
//   Daily Report — 06/15/2023          <- title, bold, centered
//   Sorted by Work Order # within each craft
//
//   Alloy Mech Days                    <- one heading per craft section
//   +--------+-------------+----------+------+-------------+---------+
//   | Name   | Work Order #| Sum of   | Type | Description | Problem |
//   |        |             | Hours    |      |             |         |
//   +--------+-------------+----------+------+-------------+---------+
//   | ...    | ...         | 5.50     | ...  | ...         | ...     |
//
// Rows arrive already grouped and sorted; the writer performs no
// aggregation logic and never reorders what it is given. Long cell text
// wraps within its column, and a craft section that spans a page break
// repeats its column header row on the new page.
//
// =============================================================================

package pdfwriter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ginjaninja78/nas-daily-report/internal/aggregate"
)

// =============================================================================
// LAYOUT CONSTANTS
// =============================================================================

const (
	defaultPageSize   = "Letter"
	defaultMargin     = 36.0 // half inch in points
	defaultFontFamily = "Helvetica"

	titleFontSize    = 18.0
	subtitleFontSize = 10.0
	headingFontSize  = 14.0
	headerFontSize   = 9.0
	bodyFontSize     = 8.0

	titleLeading    = 22.0
	subtitleLeading = 12.0
	headingLeading  = 18.0
	headerLeading   = 11.0
	bodyLeading     = 10.0

	// Vertical rhythm: small gap after the title and each table, a
	// larger one between craft sections.
	titleGap   = 6.0
	headingGap = 6.0
	tableGap   = 6.0
	sectionGap = 12.0

	cellPadding   = 2.0
	gridLineWidth = 0.25
)

// columnTitles is the fixed header row of every craft table.
var columnTitles = []string{"Name", "Work Order #", "Sum of Hours", "Type", "Description", "Problem"}

// columnWeights are the relative column widths. They are scaled to the
// printable width at render time, so the annotation columns get roughly
// twice the room of the identifier columns.
var columnWeights = []float64{110, 90, 90, 90, 170, 170}

// =============================================================================
// WRITER OPTIONS
// =============================================================================

// Options contains options for PDF rendering.
type Options struct {
	// PageSize is the fpdf page size name.
	// Default: "Letter"
	PageSize string

	// Margin is applied on all four sides, in points.
	// Default: 36 (half inch)
	Margin float64

	// FontFamily is the core font used throughout.
	// Default: "Helvetica"
	FontFamily string

	// CreationDate pins the document metadata timestamp. The zero value
	// lets fpdf stamp the current time; tests pin it to get
	// byte-identical output for identical input.
	CreationDate time.Time
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		PageSize:   defaultPageSize,
		Margin:     defaultMargin,
		FontFamily: defaultFontFamily,
	}
}

// =============================================================================
// WRITER
// =============================================================================

// Writer renders report models into PDF documents.
type Writer struct {
	opts Options
}

// New creates a Writer with default options.
func New() *Writer {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a Writer. Zero-valued options fall back to
// their defaults.
func NewWithOptions(opts Options) *Writer {
	if opts.PageSize == "" {
		opts.PageSize = defaultPageSize
	}
	if opts.Margin <= 0 {
		opts.Margin = defaultMargin
	}
	if opts.FontFamily == "" {
		opts.FontFamily = defaultFontFamily
	}
	return &Writer{opts: opts}
}

// tableLayout carries the per-document geometry shared by the section
// rendering helpers.
type tableLayout struct {
	printable float64   // width between the side margins
	breakY    float64   // y beyond which a new page is needed
	widths    []float64 // column widths scaled to the printable width
}

// Render produces the PDF document for one report model.
//
// PARAMETERS:
//   - report: The aggregated model, including its production date
//
// RETURNS:
//   - The complete PDF as a byte slice
//   - An error if document assembly fails
//
// An empty report still renders a valid document with the title block
// and no craft sections.
func (w *Writer) Render(report *aggregate.Report) ([]byte, error) {
	pdf := fpdf.New("P", "pt", w.opts.PageSize, "")
	pdf.SetTitle(fmt.Sprintf("Daily Report — %s", report.Date), true)
	if !w.opts.CreationDate.IsZero() {
		pdf.SetCreationDate(w.opts.CreationDate)
	}
	pdf.SetMargins(w.opts.Margin, w.opts.Margin, w.opts.Margin)

	// Page breaks are decided row by row so header rows can repeat.
	pdf.SetAutoPageBreak(false, w.opts.Margin)

	// Core fonts are cp1252; the translator covers the title dash and
	// whatever annotation text the exports carry.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	layout := tableLayout{
		printable: pageW - 2*w.opts.Margin,
		breakY:    pageH - w.opts.Margin,
		widths:    scaleWidths(pageW - 2*w.opts.Margin),
	}

	pdf.SetFont(w.opts.FontFamily, "B", titleFontSize)
	pdf.CellFormat(layout.printable, titleLeading,
		tr(fmt.Sprintf("Daily Report — %s", report.Date)), "", 1, "C", false, 0, "")
	pdf.Ln(titleGap)

	pdf.SetFont(w.opts.FontFamily, "", subtitleFontSize)
	pdf.CellFormat(layout.printable, subtitleLeading,
		"Sorted by Work Order # within each craft", "", 1, "L", false, 0, "")
	pdf.Ln(sectionGap)

	for i, craftDesc := range report.Crafts() {
		if i > 0 {
			pdf.Ln(sectionGap)
		}
		w.renderSection(pdf, tr, layout, craftDesc, report.Rows(craftDesc))
		pdf.Ln(tableGap)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report document: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// SECTION RENDERING
// =============================================================================

// renderSection writes one craft heading and its table.
func (w *Writer) renderSection(pdf *fpdf.Fpdf, tr func(string) string, layout tableLayout, craftDesc string, rows []aggregate.Row) {
	// Keep the heading attached to at least the column header row.
	needed := headingLeading + headingGap + headerLeading + 2*cellPadding
	if pdf.GetY()+needed > layout.breakY {
		pdf.AddPage()
	}

	pdf.SetFont(w.opts.FontFamily, "B", headingFontSize)
	pdf.CellFormat(layout.printable, headingLeading, tr(craftDesc), "", 1, "L", false, 0, "")
	pdf.Ln(headingGap)

	w.renderHeaderRow(pdf, tr, layout)

	for _, row := range rows {
		pdf.SetFont(w.opts.FontFamily, "", bodyFontSize)
		cells := []string{
			tr(row.Name),
			tr(row.OrderNumber),
			fmt.Sprintf("%.2f", row.SumOfHours),
			tr(row.Type),
			tr(row.Description),
			tr(row.Problem),
		}
		lines, rowH := measureRow(pdf, cells, layout.widths, bodyLeading)
		if pdf.GetY()+rowH > layout.breakY {
			pdf.AddPage()
			w.renderHeaderRow(pdf, tr, layout)
			pdf.SetFont(w.opts.FontFamily, "", bodyFontSize)
		}
		paintRow(pdf, lines, layout.widths, rowH, bodyLeading, false)
	}
}

// renderHeaderRow writes the shaded column header row at the current
// position.
func (w *Writer) renderHeaderRow(pdf *fpdf.Fpdf, tr func(string) string, layout tableLayout) {
	pdf.SetFont(w.opts.FontFamily, "B", headerFontSize)
	cells := make([]string, len(columnTitles))
	for i, title := range columnTitles {
		cells[i] = tr(title)
	}
	lines, rowH := measureRow(pdf, cells, layout.widths, headerLeading)
	paintRow(pdf, lines, layout.widths, rowH, headerLeading, true)
}

// =============================================================================
// TABLE PRIMITIVES
// =============================================================================

// measureRow wraps each cell's text to its column width and returns the
// wrapped lines plus the resulting row height. Must be called with the
// row's font already set, since wrapping measures with the current font.
func measureRow(pdf *fpdf.Fpdf, cells []string, widths []float64, leading float64) ([][]string, float64) {
	lines := make([][]string, len(cells))
	maxLines := 1
	for i, text := range cells {
		if text == "" {
			lines[i] = []string{""}
			continue
		}
		lines[i] = pdf.SplitText(text, widths[i]-2*cellPadding)
		if len(lines[i]) == 0 {
			lines[i] = []string{""}
		}
		if len(lines[i]) > maxLines {
			maxLines = len(lines[i])
		}
	}
	return lines, float64(maxLines)*leading + 2*cellPadding
}

// paintRow draws one table row (grid cells plus text) at the current
// position and advances below it. Text is already translated and
// wrapped; every cell is top-aligned.
func paintRow(pdf *fpdf.Fpdf, lines [][]string, widths []float64, rowH, leading float64, fill bool) {
	left, _, _, _ := pdf.GetMargins()
	y0 := pdf.GetY()

	pdf.SetLineWidth(gridLineWidth)
	pdf.SetDrawColor(128, 128, 128)
	style := "D"
	if fill {
		pdf.SetFillColor(245, 245, 245)
		style = "FD"
	}

	x := left
	for i, cellLines := range lines {
		pdf.Rect(x, y0, widths[i], rowH, style)
		for j, line := range cellLines {
			pdf.SetXY(x+cellPadding, y0+cellPadding+float64(j)*leading)
			pdf.CellFormat(widths[i]-2*cellPadding, leading, line, "", 0, "L", false, 0, "")
		}
		x += widths[i]
	}

	pdf.SetXY(left, y0+rowH)
}

// scaleWidths maps the relative column weights onto the printable width.
func scaleWidths(printable float64) []float64 {
	total := 0.0
	for _, weight := range columnWeights {
		total += weight
	}
	widths := make([]float64, len(columnWeights))
	for i, weight := range columnWeights {
		widths[i] = weight / total * printable
	}
	return widths
}
