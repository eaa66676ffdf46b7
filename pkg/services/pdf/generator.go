package pdf

import (
	"fmt"

	"github.com/med-tools/clinreport/pkg/models/domain"
)

// IncludeOptions toggles each optional section independently. A disabled
// section contributes nothing to the document, not even reserved margin.
// CustomSections lists the custom-section titles to render, in the order
// they should appear (which may differ from the data order).
type IncludeOptions struct {
	Summary          bool     `json:"summary" mapstructure:"summary"`
	RiskAssessment   bool     `json:"risk_assessment" mapstructure:"risk_assessment"`
	ModelExplanation bool     `json:"model_explanation" mapstructure:"model_explanation"`
	Recommendations  bool     `json:"recommendations" mapstructure:"recommendations"`
	PatientData      bool     `json:"patient_data" mapstructure:"patient_data"`
	CustomSections   []string `json:"custom_sections,omitempty" mapstructure:"custom_sections"`
}

// AllSections enables every toggle.
func AllSections() IncludeOptions {
	return IncludeOptions{
		Summary:          true,
		RiskAssessment:   true,
		ModelExplanation: true,
		Recommendations:  true,
		PatientData:      true,
	}
}

// Options configure one generation run.
type Options struct {
	Include IncludeOptions
	Style   Style
	// ChartImage is an optional pre-captured PNG placed under the model
	// explanation. Empty bytes are a silent no-op, mirroring a failed
	// chart capture upstream.
	ChartImage []byte
}

// section pairs a renderer with the vertical space it wants available
// before it starts; the layout engine breaks the page when less remains.
type section struct {
	name    string
	reserve float64
	render  func(s Surface, y float64) float64
}

// Generate lays out the report into a finished PDF byte stream. It is a
// deterministic, non-backtracking single pass: sections render in fixed
// order, placed content is never re-flowed onto a previous page, and the
// footer and disclaimer run strictly after all content is down. Each call
// builds its own document, so concurrent generations share no state.
func Generate(data domain.ReportData, opts Options) ([]byte, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report: %w", err)
	}

	style := opts.Style
	if style.PrimaryColor == (RGB{}) {
		style.PrimaryColor = defaultPrimary
	}
	if style.SecondaryColor == (RGB{}) {
		style.SecondaryColor = colorGray
	}

	doc := newDocument(style, data.GeneratedDate)
	layout(doc, &data, opts, style)
	return doc.encode()
}

// layout runs the full composition pass over any Surface.
func layout(doc Surface, data *domain.ReportData, opts Options, style Style) {
	cursorY := renderHeader(doc, data, style)

	for _, sec := range enabledSections(data, opts, style) {
		if cursorY > doc.PageHeight()-sec.reserve {
			doc.NewPage()
			cursorY = topMargin
		}
		cursorY = sec.render(doc, cursorY)
	}

	renderFooter(doc, data.GeneratedDate, style)
	renderDisclaimer(doc, style)
}

// enabledSections collapses the include flags and the ordered custom-title
// list into one ordered descriptor slice, so the layout loop has a single
// sequence to walk instead of interleaved boolean checks.
func enabledSections(data *domain.ReportData, opts Options, style Style) []section {
	var sections []section
	add := func(name string, reserve float64, render func(Surface, float64) float64) {
		sections = append(sections, section{name: name, reserve: reserve, render: render})
	}

	if opts.Include.PatientData && len(data.PatientInfo) > 0 {
		add("patient_info", 60, func(s Surface, y float64) float64 {
			return renderPatientInfo(s, data, y, style)
		})
	}
	if opts.Include.Summary {
		add("summary", 60, func(s Surface, y float64) float64 {
			return renderSummary(s, data, y, style)
		})
	}
	if opts.Include.RiskAssessment && data.RiskAssessment != nil {
		add("risk_assessment", 80, func(s Surface, y float64) float64 {
			return renderRiskAssessment(s, data, y, style)
		})
	}
	if opts.Include.ModelExplanation {
		add("model_explanation", 100, func(s Surface, y float64) float64 {
			return renderExplanation(s, data, y, style, opts.ChartImage)
		})
	}
	if opts.Include.Recommendations && data.Guidance != nil {
		add("clinical_guidance", 100, func(s Surface, y float64) float64 {
			return renderGuidance(s, data, y, style)
		})
	}
	if opts.Include.Recommendations {
		add("safety_alerts", 60, func(s Surface, y float64) float64 {
			return renderSafetyAlerts(s, data, y, style)
		})
	}
	for _, title := range opts.Include.CustomSections {
		sec, ok := findCustomSection(data.CustomSections, title)
		if !ok {
			continue
		}
		add("custom:"+title, 60, func(s Surface, y float64) float64 {
			return renderCustomSection(s, sec, y, style)
		})
	}
	return sections
}

// findCustomSection returns the first data section with a matching title.
func findCustomSection(sections []domain.CustomSection, title string) (domain.CustomSection, bool) {
	for _, sec := range sections {
		if sec.Title == title {
			return sec, true
		}
	}
	return domain.CustomSection{}, false
}
