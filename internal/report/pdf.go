package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/selamanalytics/fidash/internal/cli"
	"github.com/selamanalytics/fidash/internal/model"
)

const (
	marginLeft   = 18.0
	marginTop    = 18.0
	marginRight  = 18.0
	marginBottom = 18.0
	contentWidth = 210.0 - marginLeft - marginRight
)

type pdfBrief struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	r   Report
}

// WritePDF renders a printable policy brief: headline KPIs, goal status,
// each forecast table and the policy recommendations.
func WritePDF(w io.Writer, r Report) error {
	b := &pdfBrief{pdf: fpdf.New("P", "mm", "A4", ""), r: r}
	b.tr = b.pdf.UnicodeTranslatorFromDescriptor("")

	b.pdf.SetMargins(marginLeft, marginTop, marginRight)
	b.pdf.SetAutoPageBreak(true, marginBottom)
	b.pdf.SetTitle(pageTitle, true)
	b.pdf.SetFooterFunc(b.footer)

	b.addOverview()
	for _, fv := range r.Forecasts {
		b.addForecastTable(fv)
	}
	b.addPolicy()

	if err := b.pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf report: %w", err)
	}
	return nil
}

func (b *pdfBrief) heading(size float64, text string) {
	b.pdf.SetFont("Helvetica", "B", size)
	b.pdf.SetTextColor(44, 62, 80)
	b.pdf.CellFormat(contentWidth, size*0.6, b.tr(text), "", 1, "L", false, 0, "")
	b.pdf.Ln(2)
}

func (b *pdfBrief) body(text string) {
	b.pdf.SetFont("Helvetica", "", 10)
	b.pdf.SetTextColor(50, 50, 50)
	b.pdf.MultiCell(contentWidth, 5, b.tr(text), "", "L", false)
	b.pdf.Ln(2)
}

func (b *pdfBrief) addOverview() {
	ov := b.r.Overview
	b.pdf.AddPage()

	b.heading(20, ov.Title)
	b.body(ov.Subtitle)
	if !b.r.GeneratedAt.IsZero() {
		b.pdf.SetFont("Helvetica", "I", 9)
		b.pdf.CellFormat(contentWidth, 5, "Generated: "+b.r.GeneratedAt.Format("2 January 2006"), "", 1, "L", false, 0, "")
		b.pdf.Ln(4)
	}

	b.pdf.SetFillColor(245, 247, 250)
	b.pdf.SetDrawColor(200, 200, 200)
	colW := contentWidth / 3
	b.pdf.SetFont("Helvetica", "B", 10)
	for _, h := range []string{"Metric", "Value", "Note"} {
		b.pdf.CellFormat(colW, 7, h, "1", 0, "C", true, 0, "")
	}
	b.pdf.Ln(-1)

	b.pdf.SetFont("Helvetica", "", 10)
	for _, k := range ov.KPIs {
		note := k.Caption
		if k.HasDelta {
			note = cli.FormatPointDelta(k.Delta)
		}
		b.pdf.CellFormat(colW, 7, b.tr(k.Label), "1", 0, "L", false, 0, "")
		b.pdf.CellFormat(colW, 7, cli.FormatKPI(k), "1", 0, "R", false, 0, "")
		b.pdf.CellFormat(colW, 7, b.tr(note), "1", 1, "L", false, 0, "")
	}
	b.pdf.Ln(4)

	g := ov.Goal
	b.heading(13, fmt.Sprintf("Progress toward %.0f%% Inclusion Goal", g.TargetPct))
	b.progressBar(g.Progress, g.OnTrack)
	b.body(fmt.Sprintf("Current: %s | Target: %s | Status: %s",
		cli.FormatPct(g.Current), cli.FormatPct(g.TargetPct), g.Status))

	for _, n := range ov.Notes {
		b.body("Note: " + n)
	}
}

func (b *pdfBrief) progressBar(fraction float64, good bool) {
	x, y := b.pdf.GetX(), b.pdf.GetY()
	b.pdf.SetFillColor(230, 230, 230)
	b.pdf.Rect(x, y, contentWidth, 5, "F")
	if good {
		b.pdf.SetFillColor(39, 174, 96)
	} else {
		b.pdf.SetFillColor(192, 57, 43)
	}
	b.pdf.Rect(x, y, contentWidth*fraction, 5, "F")
	b.pdf.Ln(8)
}

func (b *pdfBrief) addForecastTable(fv model.ForecastView) {
	b.pdf.Ln(4)
	b.heading(13, fv.Title)

	colW := contentWidth / 4
	b.pdf.SetFillColor(245, 247, 250)
	b.pdf.SetFont("Helvetica", "B", 10)
	for _, h := range []string{"Year", "Base", "Pessimistic", "Optimistic"} {
		b.pdf.CellFormat(colW, 7, h, "1", 0, "C", true, 0, "")
	}
	b.pdf.Ln(-1)

	b.pdf.SetFont("Helvetica", "", 10)
	for _, row := range fv.Table {
		b.pdf.CellFormat(colW, 6, fmt.Sprintf("%d", row.Year), "1", 0, "C", false, 0, "")
		b.pdf.CellFormat(colW, 6, cli.FormatValue(row.Base, fv.Forecast.Unit), "1", 0, "R", false, 0, "")
		b.pdf.CellFormat(colW, 6, cli.FormatValue(row.Pessimistic, fv.Forecast.Unit), "1", 0, "R", false, 0, "")
		b.pdf.CellFormat(colW, 6, cli.FormatValue(row.Optimistic, fv.Forecast.Unit), "1", 1, "R", false, 0, "")
	}
	if fv.ScenarioNote != "" {
		b.pdf.Ln(2)
		b.body(fv.ScenarioNote)
	}
}

func (b *pdfBrief) addPolicy() {
	p := b.r.Policy
	b.pdf.AddPage()
	b.heading(18, p.Title)

	for i, in := range p.Insights {
		b.heading(12, fmt.Sprintf("%d. %s", i+1, in.Title))
		b.body(in.Body)
		for _, bullet := range in.Bullets {
			b.body("- " + bullet)
		}
	}

	b.heading(11, "Data Sources")
	for _, s := range p.Sources {
		b.body("- " + s)
	}
}

func (b *pdfBrief) footer() {
	b.pdf.SetY(-12)
	b.pdf.SetFont("Helvetica", "I", 8)
	b.pdf.SetTextColor(128, 128, 128)
	b.pdf.CellFormat(0, 8, b.tr(b.r.Policy.Footer), "", 0, "L", false, 0, "")
	b.pdf.SetX(marginLeft)
	b.pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", b.pdf.PageNo()), "", 0, "R", false, 0, "")
}
