package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/bobmcallan/verdex/internal/models"
)

// Report palette, RGB.
var (
	colorHeader  = [3]int{31, 56, 100}
	colorGood    = [3]int{39, 174, 96}
	colorBad     = [3]int{231, 76, 60}
	colorNeutral = [3]int{149, 165, 166}
	colorAccent  = [3]int{243, 156, 18}
	colorDark    = [3]int{44, 62, 80}
	colorLight   = [3]int{127, 140, 141}
)

// reportPDF wraps fpdf with the layout helpers the report pages share.
type reportPDF struct {
	*fpdf.Fpdf
	imageCount int
}

func newReportPDF() *reportPDF {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(colorLight[0], colorLight[1], colorLight[2])
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	return &reportPDF{Fpdf: pdf}
}

func (p *reportPDF) mainHeader(title, subtitle string) {
	p.SetFillColor(colorHeader[0], colorHeader[1], colorHeader[2])
	p.SetTextColor(255, 255, 255)
	p.SetFont("Arial", "B", 18)
	p.CellFormat(0, 14, title, "", 1, "C", true, 0, "")

	if subtitle != "" {
		p.SetFont("Arial", "", 11)
		p.CellFormat(0, 8, subtitle, "", 1, "C", true, 0, "")
	}

	p.SetTextColor(colorDark[0], colorDark[1], colorDark[2])
	p.Ln(4)
}

func (p *reportPDF) sectionHeader(title string) {
	p.SetFont("Arial", "B", 12)
	p.SetTextColor(colorHeader[0], colorHeader[1], colorHeader[2])
	p.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	p.SetDrawColor(colorHeader[0], colorHeader[1], colorHeader[2])
	p.SetLineWidth(0.4)
	p.Line(10, p.GetY(), 200, p.GetY())
	p.Ln(2)
	p.SetTextColor(colorDark[0], colorDark[1], colorDark[2])
}

func (p *reportPDF) sectionSeparator() {
	p.Ln(3)
	p.SetDrawColor(colorLight[0], colorLight[1], colorLight[2])
	p.SetLineWidth(0.2)
	p.Line(10, p.GetY(), 200, p.GetY())
	p.Ln(4)
}

func (p *reportPDF) infoPair(label, value string) {
	p.SetFont("Arial", "B", 10)
	p.CellFormat(55, 6, label, "", 0, "L", false, 0, "")
	p.SetFont("Arial", "", 10)
	p.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func judgmentColor(j models.Judgment) [3]int {
	switch j {
	case models.JudgmentFavorable:
		return colorGood
	case models.JudgmentUnfavorable:
		return colorBad
	default:
		return colorNeutral
	}
}

// coloredBox renders a status banner with supporting reasoning below.
func (p *reportPDF) coloredBox(label, status string, judgment models.Judgment, reasoning string) {
	c := judgmentColor(judgment)

	p.SetFont("Arial", "B", 10)
	p.SetFillColor(c[0], c[1], c[2])
	p.SetTextColor(255, 255, 255)
	p.CellFormat(0, 8, fmt.Sprintf("%s: %s", label, status), "", 1, "L", true, 0, "")

	if reasoning != "" {
		p.SetFont("Arial", "", 9)
		p.SetTextColor(colorLight[0], colorLight[1], colorLight[2])
		p.MultiCell(0, 5, reasoning, "", "L", false)
	}

	p.SetTextColor(colorDark[0], colorDark[1], colorDark[2])
	p.Ln(2)
}

// embedPNG places PNG bytes at the current position, full content width.
func (p *reportPDF) embedPNG(png []byte) {
	if len(png) == 0 {
		return
	}

	p.imageCount++
	name := fmt.Sprintf("chart-%d", p.imageCount)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	if p.Err() {
		return
	}

	if p.GetY() > 180 {
		p.AddPage()
	}
	p.ImageOptions(name, 15, p.GetY(), 180, 0, true, opts, 0, "")
	p.Ln(4)
}

// verdictBanner renders the large final verdict cell.
func (p *reportPDF) verdictBanner(tier string, judgmentLike models.Judgment) {
	c := judgmentColor(judgmentLike)

	p.Ln(5)
	p.SetFont("Arial", "B", 20)
	p.SetFillColor(c[0], c[1], c[2])
	p.SetTextColor(255, 255, 255)
	p.CellFormat(0, 20, tier, "", 1, "C", true, 0, "")
	p.SetTextColor(colorDark[0], colorDark[1], colorDark[2])
}

// confidenceBar draws a horizontal gauge filled to confidence percent.
func (p *reportPDF) confidenceBar(confidence int) {
	const barWidth = 170.0
	filled := float64(confidence) / 100 * barWidth

	y := p.GetY()
	p.SetDrawColor(colorLight[0], colorLight[1], colorLight[2])
	p.SetLineWidth(0.3)
	p.Rect(15, y, barWidth, 8, "D")

	switch {
	case confidence >= 75:
		p.SetFillColor(colorGood[0], colorGood[1], colorGood[2])
	case confidence >= 50:
		p.SetFillColor(colorAccent[0], colorAccent[1], colorAccent[2])
	default:
		p.SetFillColor(colorBad[0], colorBad[1], colorBad[2])
	}

	if filled > 0 {
		p.Rect(15, y, filled, 8, "F")
	}
	p.Ln(12)
}
