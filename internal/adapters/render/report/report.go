// Package report exports a suburb summary as a one-page PDF.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/okian/socio/internal/domain/model"
)

// DefaultTitle prefixes the suburb name in the report heading.
const DefaultTitle = "Socioeconomic Report"

const (
	font         = "Arial"
	lineHeight   = 8.0
	pageMargin   = 10.0
	footerHeight = 15.0
	minChartH    = 40.0
	maxChartH    = 110.0
	chartImage   = "leaderboard"
)

// Info describes a rendered report.
type Info struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Filename    string    `json:"filename"`
	GeneratedAt time.Time `json:"generated_at"`

	// OmittedFields counts fields that did not fit above the footer.
	OmittedFields int `json:"omitted_fields,omitempty"`
	// ChartOmitted is set when a chart was supplied but no space was left.
	ChartOmitted bool `json:"chart_omitted,omitempty"`
}

// Filename returns the download name for a suburb's report.
func Filename(suburb string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '_'
		}
		return r
	}, suburb)
	return clean + "_Socioeconomic_Report.pdf"
}

// Render writes rec as a PDF to w: a centred title, one "Label: value" line
// per field, the optional chart, and a footer with the report ID.
func Render(w io.Writer, rec model.SummaryRecord, opts ...Option) (Info, error) {
	if strings.TrimSpace(rec.Suburb) == "" {
		return Info{}, ErrEmptySummary
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	info := Info{
		ID:          o.newID(),
		Title:       fmt.Sprintf("%s - %s", o.title, rec.Suburb),
		Filename:    Filename(rec.Suburb),
		GeneratedAt: o.now().UTC(),
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(info.GeneratedAt)
	pdf.SetTitle(info.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-footerHeight)
		pdf.SetFont(font, "I", 8)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Report %s - generated %s",
			info.ID, info.GeneratedAt.Format(time.RFC3339))), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	_, pageH := pdf.GetPageSize()
	bottom := pageH - footerHeight - pageMargin

	pdf.SetFont(font, "B", 16)
	pdf.CellFormat(0, 12, tr(info.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(font, "", 12)
	for i, f := range rec.Fields {
		if pdf.GetY()+lineHeight > bottom {
			info.OmittedFields = len(rec.Fields) - i
			break
		}
		pdf.MultiCell(0, lineHeight, tr(f.Label+": "+f.Text()), "", "L", false)
	}

	if len(o.chart) > 0 {
		pdf.Ln(4)
		y := pdf.GetY()
		if h := min(bottom-y, maxChartH); h >= minChartH {
			opt := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
			pdf.RegisterImageOptionsReader(chartImage, opt, bytes.NewReader(o.chart))
			pdf.ImageOptions(chartImage, pageMargin, y, 0, h, false, opt, 0, "")
		} else {
			info.ChartOmitted = true
		}
	}

	if err := pdf.Output(w); err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return info, nil
}
