// Package report renders the pipeline outcome into PNG charts and a
// composed PDF.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/user/pq_analyzer_go/internal/analysis"
)

// Build renders all charts for the outcome and composes the PDF under
// outDir, returning the PDF path. A failed chart is logged and skipped;
// only a failed PDF write is fatal.
func Build(outDir, facilityName string, oc *analysis.RunOutcome) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	var images []ReportImage
	for _, ph := range oc.Phases {
		key := fmt.Sprintf("timeseries_phase_%s", ph.Phase)
		png, err := TimeseriesPlot(ph.Series, fmt.Sprintf("Phase %s - Current vs Time", ph.Phase))
		if err != nil {
			log.Warn().Err(err).Str("phase", ph.Phase).Msg("time-series chart failed")
		} else {
			images = append(images, ReportImage{Key: key, Title: fmt.Sprintf("Phase %s - Current vs Time", ph.Phase), PNG: png})
			writePNG(outDir, key, png)
		}

		if ph.Spectrum == nil {
			continue
		}
		key = fmt.Sprintf("spectrum_phase_%s", ph.Phase)
		png, err = SpectrumPlot(ph.Spectrum, fmt.Sprintf("Phase %s - Harmonic Spectrum", ph.Phase))
		if err != nil {
			log.Warn().Err(err).Str("phase", ph.Phase).Msg("spectrum chart failed")
			continue
		}
		images = append(images, ReportImage{Key: key, Title: fmt.Sprintf("Phase %s - Harmonic Spectrum", ph.Phase), PNG: png})
		writePNG(outDir, key, png)
	}

	var deltaPNG []byte
	if oc.BaselineScore != nil {
		png, err := DeltaPlot(*oc.BaselineScore, oc.FacilityScore)
		if err != nil {
			log.Warn().Err(err).Msg("risk delta chart failed")
		} else {
			deltaPNG = png
			writePNG(outDir, "risk_delta", png)
		}
	}

	pdfPath := filepath.Join(outDir, "power_quality_report.pdf")
	if err := BuildPDF(pdfPath, facilityName, oc, images, deltaPNG); err != nil {
		return "", fmt.Errorf("failed to build PDF report: %w", err)
	}
	return pdfPath, nil
}

func writePNG(outDir, key string, png []byte) {
	path := filepath.Join(outDir, key+".png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to write chart")
	}
}
