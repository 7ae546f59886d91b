package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/pq_analyzer_go/internal/analysis"
)

const (
	pdfPageWidth     = 210.0 // A4 portrait, mm
	pdfPageHeight    = 297.0
	pdfMargin        = 14.0
	pdfContentWidth  = pdfPageWidth - 2*pdfMargin
	pdfUsableHeight  = pdfPageHeight - 2*pdfMargin
	maxReportRecs    = 10
	maxKeyObserv     = 4
	maxDetailFinding = 12
)

// pdfStyler holds reusable styling and flowing-Y state for PDF assembly.
type pdfStyler struct {
	pdf        *gofpdf.Fpdf
	styles     map[string]func()
	lineHeight float64
	currentY   float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:        pdf,
		styles:     make(map[string]func()),
		lineHeight: 6,
		currentY:   pdfMargin,
	}
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 13)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["muted"] = func() {
		s.pdf.SetFont("Arial", "I", 9)
		s.pdf.SetTextColor(90, 90, 90)
	}
	s.styles["score"] = func() {
		s.pdf.SetFont("Arial", "B", 22)
		s.pdf.SetTextColor(0, 0, 0)
	}
	return s
}

func (s *pdfStyler) applyStyle(name string) {
	if fn, ok := s.styles[name]; ok {
		fn()
		return
	}
	s.styles["normal"]()
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > pdfUsableHeight+pdfMargin {
		s.pdf.AddPage()
		s.currentY = pdfMargin
	}
}

func (s *pdfStyler) writeParagraph(text, style, align string) {
	s.applyStyle(style)
	s.checkAddPage(s.lineHeight * 2)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) writeBullets(items []string, style string) {
	for _, it := range items {
		s.writeParagraph("- "+it, style, "L")
	}
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addImage(png []byte, name string, width, height float64) {
	if len(png) == 0 {
		return
	}
	s.pdf.RegisterImageReader(name, "PNG", bytes.NewReader(png))
	if width > pdfContentWidth {
		height *= pdfContentWidth / width
		width = pdfContentWidth
	}
	s.checkAddPage(height + 2)
	s.pdf.Image(name, pdfMargin, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height + 2
}

// ReportImage is one chart destined for the PDF, keyed for registration.
type ReportImage struct {
	Key   string
	Title string
	PNG   []byte
}

// BuildPDF composes the risk report: executive summary, key observations,
// recommendations, technical summary, and the rendered charts.
func BuildPDF(outPath, facilityName string, oc *analysis.RunOutcome, images []ReportImage, deltaPNG []byte) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	s := newPDFStyler(pdf)

	s.writeParagraph("Power Quality Risk Report", "h1", "C")
	s.writeParagraph(facilityName, "h2", "C")
	s.writeParagraph(oc.Mode, "muted", "C")
	s.addSpacer(4)

	s.writeParagraph(fmt.Sprintf("%d / 100  (%s)", oc.FacilityScore, oc.Band), "score", "C")
	if oc.BaselineScore != nil && oc.ScoreDelta != nil {
		s.writeParagraph(
			fmt.Sprintf("Baseline score: %d / 100 (delta %+d)", *oc.BaselineScore, *oc.ScoreDelta),
			"normal", "C")
	}
	s.addSpacer(4)

	s.writeParagraph("Executive Summary", "h2", "L")
	s.writeParagraph(oc.ExecutiveVerdict, "normal", "L")
	s.addSpacer(3)

	s.writeParagraph("Key Observations", "h2", "L")
	observations := oc.TopRisks
	if len(observations) > maxKeyObserv {
		observations = observations[:maxKeyObserv]
	}
	if len(observations) == 0 {
		observations = []string{"No critical risk indicators identified."}
	}
	s.writeBullets(observations, "normal")
	s.addSpacer(3)

	s.writeParagraph("Recommendations", "h2", "L")
	recs := oc.Recommendations
	if len(recs) > maxReportRecs {
		recs = recs[:maxReportRecs]
	}
	s.writeBullets(recs, "normal")
	s.addSpacer(3)

	s.writeParagraph("Technical Summary", "h2", "L")
	s.writeBullets(oc.SummaryLines, "normal")
	findings := oc.Findings
	if len(findings) > maxDetailFinding {
		findings = findings[:maxDetailFinding]
	}
	s.writeBullets(findings, "muted")

	if len(deltaPNG) > 0 {
		s.addSpacer(3)
		s.addImage(deltaPNG, "risk_delta", pdfContentWidth*0.55, pdfContentWidth*0.55*0.45)
	}

	if len(images) > 0 {
		pdf.AddPage()
		s.currentY = pdfMargin
		s.writeParagraph("Charts", "h1", "C")
		s.addSpacer(2)
		imgWidth := pdfContentWidth
		imgHeight := imgWidth * (260.0 / 660.0)
		for _, img := range images {
			s.writeParagraph(img.Title, "h2", "L")
			s.addImage(img.PNG, img.Key, imgWidth, imgHeight)
			s.addSpacer(2)
		}
	}

	return pdf.OutputFileAndClose(outPath)
}
