package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/med-tools/clinreport/pkg/models/domain"
	"github.com/med-tools/clinreport/pkg/services/config"
	"github.com/med-tools/clinreport/pkg/services/pdf"
)

// loadReport reads a report JSON file and assigns caller-side defaults for
// identity fields the generator refuses to invent.
func loadReport(path string) (domain.ReportData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.ReportData{}, fmt.Errorf("read report file: %w", err)
	}

	var report domain.ReportData
	if err := json.Unmarshal(raw, &report); err != nil {
		return domain.ReportData{}, fmt.Errorf("parse report file: %w", err)
	}

	if report.ReportID == "" {
		report.ReportID = "REP-" + uuid.NewString()[:8]
	}
	if report.GeneratedDate == "" {
		report.GeneratedDate = time.Now().UTC().Format("2006-01-02")
	}
	return report, nil
}

// renderOptions resolves generator options from an optional YAML render
// profile, defaulting to everything enabled with the standard style.
func renderOptions(renderConfigPath string) (pdf.Options, error) {
	if renderConfigPath == "" {
		return pdf.Options{Include: pdf.AllSections(), Style: pdf.DefaultStyle()}, nil
	}
	cfg, err := config.LoadRenderConfig(renderConfigPath)
	if err != nil {
		return pdf.Options{}, err
	}
	return cfg.Options(), nil
}
