package output

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/dhabedank/genchecklist/internal/core"
)

// EmptyMessage is printed instead of tables when a checklist has no groups.
const EmptyMessage = "This checklist is currently empty."

const (
	pdfMargin     = 14.0
	pdfLineHeight = 5.0
	pdfCellPad    = 1.5
	pdfTableGap   = 10.0
	pdfFont       = "Helvetica"
)

// PDFAdapter renders a checklist as a paginated document with one table per
// group.
type PDFAdapter struct{}

// NewPDFAdapter creates a PDF adapter.
func NewPDFAdapter() *PDFAdapter {
	return &PDFAdapter{}
}

func (a *PDFAdapter) Name() string {
	return "pdf"
}

func (a *PDFAdapter) Extension() string {
	return "pdf"
}

func (a *PDFAdapter) Write(w io.Writer, checklist core.Checklist, config Config) (*Result, error) {
	spec, ok := checklist.Domain.Spec()
	if !ok {
		return nil, fmt.Errorf("unknown domain: %q", checklist.Domain)
	}
	title := config.Title
	if title == "" {
		title = spec.Title
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	// Rows are placed by hand so a row never splits across pages.
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(title, true)
	pdf.AddPage()

	r := &pdfRenderer{pdf: pdf, spec: spec, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	r.layoutColumns()

	pdf.SetFont(pdfFont, "B", 18)
	pdf.Text(pdfMargin, 20, r.tr(title))
	pdf.SetFont(pdfFont, "", 10)
	pdf.Text(pdfMargin, 26, "Generated on: "+config.GeneratedAt.Format(time.DateOnly))
	pdf.SetY(35)

	groups := make([]core.Group, 0, len(checklist.Groups))
	for _, g := range checklist.Groups {
		if len(g.Items) > 0 {
			groups = append(groups, g)
		}
	}

	var result *Result
	if len(groups) == 0 {
		pdf.SetFont(pdfFont, "", 12)
		pdf.Text(pdfMargin, 35, EmptyMessage)
		result = &Result{Empty: true}
	} else {
		result = r.renderGroups(groups)
	}

	if err := pdf.Output(w); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return result, nil
}

type pdfRenderer struct {
	pdf    *fpdf.Fpdf
	spec   core.DomainSpec
	tr     func(string) string
	widths []float64
}

// layoutColumns gives the name column what the detail columns leave over.
func (r *pdfRenderer) layoutColumns() {
	pageW, _ := r.pdf.GetPageSize()
	usable := pageW - 2*pdfMargin

	n := len(r.spec.Columns)
	r.widths = make([]float64, n+1)
	if n == 0 {
		r.widths[0] = usable
		return
	}
	share := 0.3
	if n > 1 {
		share = 0.6 / float64(n)
	}
	r.widths[0] = usable * (1 - share*float64(n))
	for i := 1; i <= n; i++ {
		r.widths[i] = usable * share
	}
}

// renderGroups draws every group and reports what was drawn. Each group must
// have at least one item.
func (r *pdfRenderer) renderGroups(groups []core.Group) *Result {
	result := &Result{}
	for _, g := range groups {
		rows := r.renderGroup(g)
		result.Tables++
		result.Rows += rows
	}
	return result
}

func (r *pdfRenderer) renderGroup(g core.Group) int {
	headerH := pdfLineHeight + 2*pdfCellPad
	first := r.rowCells(g.Items[0])
	// Keep the group title, column header and first row together.
	r.ensureSpace(2*headerH + r.rowHeight(first))

	r.pdf.SetFont(pdfFont, "B", 11)
	r.pdf.SetFillColor(230, 230, 230)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.CellFormat(r.totalWidth(), headerH, r.tr(g.Key), "", 1, "L", true, 0, "")
	r.columnHeader()

	for i, it := range g.Items {
		cells := r.rowCells(it)
		h := r.rowHeight(cells)
		if r.remaining() < h {
			r.pdf.AddPage()
			r.columnHeader()
		}
		r.row(cells, h, i%2 == 1)
	}
	r.pdf.Ln(pdfTableGap)
	return len(g.Items)
}

func (r *pdfRenderer) columnHeader() {
	headers := make([]string, 0, len(r.widths))
	headers = append(headers, r.spec.NameHeader)
	for _, c := range r.spec.Columns {
		headers = append(headers, c.Header)
	}

	r.pdf.SetFont(pdfFont, "B", 10)
	r.pdf.SetFillColor(75, 85, 99)
	r.pdf.SetTextColor(255, 255, 255)
	h := pdfLineHeight + 2*pdfCellPad
	for i, text := range headers {
		r.pdf.CellFormat(r.widths[i], h, r.tr(text), "", 0, "L", true, 0, "")
	}
	r.pdf.Ln(h)
	r.pdf.SetTextColor(0, 0, 0)
}

func (r *pdfRenderer) rowCells(it core.Item) []string {
	marker := "[ ] "
	if it.Done {
		marker = "[X] "
	}
	cells := make([]string, 0, len(r.widths))
	cells = append(cells, r.tr(marker+it.Name))
	for _, c := range r.spec.Columns {
		v := it.Field(c.Field)
		if v == "" {
			v = "-"
		}
		cells = append(cells, r.tr(v))
	}
	return cells
}

func (r *pdfRenderer) rowHeight(cells []string) float64 {
	r.pdf.SetFont(pdfFont, "", 9)
	lines := 1
	for i, text := range cells {
		n := len(r.pdf.SplitLines([]byte(text), r.widths[i]-2*pdfCellPad))
		if n > lines {
			lines = n
		}
	}
	return float64(lines)*pdfLineHeight + 2*pdfCellPad
}

func (r *pdfRenderer) row(cells []string, h float64, striped bool) {
	r.pdf.SetFont(pdfFont, "", 9)
	x, y := r.pdf.GetXY()
	for i, text := range cells {
		if striped {
			r.pdf.SetFillColor(245, 245, 245)
			r.pdf.Rect(x, y, r.widths[i], h, "F")
		}
		r.pdf.SetXY(x+pdfCellPad, y+pdfCellPad)
		r.pdf.MultiCell(r.widths[i]-2*pdfCellPad, pdfLineHeight, text, "", "L", false)
		x += r.widths[i]
	}
	r.pdf.SetXY(pdfMargin, y+h)
}

func (r *pdfRenderer) ensureSpace(h float64) {
	if r.remaining() < h {
		r.pdf.AddPage()
	}
}

func (r *pdfRenderer) remaining() float64 {
	_, pageH := r.pdf.GetPageSize()
	return pageH - pdfMargin - r.pdf.GetY()
}

func (r *pdfRenderer) totalWidth() float64 {
	var w float64
	for _, cw := range r.widths {
		w += cw
	}
	return w
}
