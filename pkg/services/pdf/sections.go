package pdf

import (
	"fmt"
	"math"
	"strings"

	"github.com/med-tools/clinreport/pkg/models/domain"
)

// Page geometry shared by all renderers, in millimeters.
const (
	marginLeft     = 15
	marginRight    = 15
	topMargin      = 20
	headerHeight   = 25
	lineHeight     = 6
	trailingMargin = 10
	bulletIndent   = 20
)

// Literal fallbacks. These are tested contracts, not debug artifacts.
const (
	noSummaryText     = "No summary available for this report."
	noFactorsText     = "No feature importance data available."
	noAlertsText      = "No safety alerts identified."
	disclaimerHeading = "Medical Disclaimer"
	disclaimerText    = "This report is generated by an AI system and is intended for informational purposes only. " +
		"It is not a substitute for professional medical advice, diagnosis, or treatment. Always seek the advice " +
		"of a qualified healthcare provider with any questions regarding a medical condition."
)

// explanationFactorLimit caps the explanation section; the risk assessment
// bullet list has no such cap.
const explanationFactorLimit = 10

// renderHeader draws the fixed colored band on the first page. It is never
// repeated on later pages.
func renderHeader(s Surface, r *domain.ReportData, st Style) float64 {
	s.PlaceRect(0, 0, s.PageWidth(), headerHeight, st.PrimaryColor)
	s.PlaceText(marginLeft, 15, fmt.Sprintf("%s Report", r.ReportType),
		TextStyle{Size: 18, Bold: true, Color: colorWhite})
	right := s.PageWidth() - marginRight
	s.PlaceText(right, 10, fmt.Sprintf("Report ID: %s", r.ReportID),
		TextStyle{Size: 10, Color: colorWhite, Align: AlignRight})
	s.PlaceText(right, 15, fmt.Sprintf("Generated: %s", r.GeneratedDate),
		TextStyle{Size: 10, Color: colorWhite, Align: AlignRight})
	return 40
}

func heading(s Surface, text string, y float64) float64 {
	s.PlaceText(marginLeft, y, text, TextStyle{Size: 14, Bold: true, Color: colorBlack})
	return y + 8
}

func renderPatientInfo(s Surface, r *domain.ReportData, y float64, _ Style) float64 {
	y = heading(s, "Patient Information", y)
	for _, key := range r.PatientInfoKeys() {
		line := fmt.Sprintf("%s: %v", domain.TitleCaseKey(key), r.PatientInfo[key])
		s.PlaceText(marginLeft, y, line, TextStyle{Size: 11, Color: colorBlack})
		y += lineHeight
	}
	return y + trailingMargin
}

// summaryText concatenates the assessment narrative; an empty assessment
// degrades to the literal fallback.
func summaryText(ra *domain.RiskAssessment) string {
	if ra == nil {
		return noSummaryText
	}
	var parts []string
	if ra.Interpretation != "" {
		parts = append(parts, ra.Interpretation+".")
	}
	if ra.DetailedAnalysis != "" {
		parts = append(parts, ra.DetailedAnalysis)
	}
	if ra.TimeFrame != "" {
		parts = append(parts, fmt.Sprintf("(Time frame: %s)", ra.TimeFrame))
	}
	if len(parts) == 0 {
		return noSummaryText
	}
	return strings.Join(parts, " ")
}

func renderSummary(s Surface, r *domain.ReportData, y float64, _ Style) float64 {
	y = heading(s, "Summary", y)
	body := TextStyle{Size: 11, Color: colorBlack}
	for _, line := range s.WrapText(summaryText(r.RiskAssessment), s.PageWidth()-marginLeft-marginRight, body) {
		s.PlaceText(marginLeft, y, line, body)
		y += lineHeight
	}
	return y + trailingMargin
}

func renderRiskAssessment(s Surface, r *domain.ReportData, y float64, _ Style) float64 {
	ra := r.RiskAssessment
	if ra == nil {
		return y
	}
	y = heading(s, "Risk Assessment", y) + 2

	s.PlaceText(marginLeft, y, fmt.Sprintf("Risk Score: %d%%", int(math.Round(ra.Score*100))),
		TextStyle{Size: 12, Color: colorBlack})
	y += lineHeight

	level := ra.RiskLevel()
	s.PlaceText(marginLeft, y, fmt.Sprintf("Risk Level: %s", level),
		TextStyle{Size: 12, Bold: true, Color: RiskColor(level)})
	y += trailingMargin

	s.PlaceText(marginLeft, y, "Key Risk Indicators:", TextStyle{Size: 12, Bold: true, Color: colorBlack})
	y += lineHeight

	// Unlimited here, unlike the explanation section.
	for _, factor := range domain.SortedRiskFactors(r.KeyRiskFactors) {
		s.PlaceText(bulletIndent, y, "- "+factor.Label(), TextStyle{Size: 11, Color: colorBlack})
		y += lineHeight
	}
	return y + trailingMargin
}

// explanationPercent keeps the source subsystem's legacy x10 scaling. The
// on-screen UI scales by 100; the document contract is x10 and changing it
// breaks downstream consumers that parse these reports.
func explanationPercent(value float64) float64 {
	return math.Round(math.Abs(value)*10*10) / 10
}

func renderExplanation(s Surface, r *domain.ReportData, y float64, st Style, chart []byte) float64 {
	y = heading(s, "Model Explanation", y) + 2

	if len(r.KeyRiskFactors) == 0 {
		s.PlaceText(marginLeft, y, noFactorsText, TextStyle{Size: 11, Color: colorBlack})
		return y + lineHeight + trailingMargin
	}

	const barX, barWidth, barHeight = 100.0, 80.0, 5.0
	for _, factor := range domain.TopRiskFactors(r.KeyRiskFactors, explanationFactorLimit) {
		pct := explanationPercent(factor.Value)
		s.PlaceText(marginLeft, y, fmt.Sprintf("%s: %.1f%%", factor.Feature, pct),
			TextStyle{Size: 11, Color: colorBlack})
		s.PlaceRect(barX, y-4, barWidth, barHeight, colorBarTrack)
		fill := barWidth * pct / 100
		if fill > barWidth {
			fill = barWidth
		}
		if fill > 0 {
			s.PlaceRect(barX, y-4, fill, barHeight, st.PrimaryColor)
		}
		y += 8
	}
	y += 5

	if ra := r.RiskAssessment; ra != nil && ra.DetailedAnalysis != "" {
		body := TextStyle{Size: 11, Color: colorBlack}
		for _, line := range s.WrapText(ra.DetailedAnalysis, s.PageWidth()-marginLeft-marginRight, body) {
			s.PlaceText(marginLeft, y, line, body)
			y += lineHeight
		}
	}

	if len(chart) > 0 {
		s.PlaceImage(marginLeft, y, s.PageWidth()-marginLeft-marginRight, 60, chart)
		y += 65
	}
	return y + trailingMargin
}

func subheading(s Surface, text string, y float64) float64 {
	s.PlaceText(marginLeft, y, text, TextStyle{Size: 12, Bold: true, Color: colorBlack})
	return y + lineHeight
}

// bulletList renders a titled bullet list, skipping silently when empty.
func bulletList(s Surface, title string, items []string, y float64) float64 {
	if len(items) == 0 {
		return y
	}
	y = subheading(s, title, y)
	for _, item := range items {
		s.PlaceText(bulletIndent, y, "- "+item, TextStyle{Size: 11, Color: colorBlack})
		y += lineHeight
	}
	return y + 4
}

func renderGuidance(s Surface, r *domain.ReportData, y float64, _ Style) float64 {
	g := r.Guidance
	if g == nil {
		return y
	}
	y = heading(s, "Clinical Guidance", y)

	y = bulletList(s, "Monitoring", g.Monitoring, y)
	y = bulletList(s, "Diagnostic Tests", g.DiagnosticTests, y)
	y = bulletList(s, "Immediate Medications", g.TreatmentOptions.ImmediateMedications, y)
	y = antibioticChoices(s, g.TreatmentOptions.AntibioticChoices, y)
	y = bulletList(s, "Required Actions", g.RequiredActions, y)
	return y + trailingMargin
}

// antibioticChoices branches on the wire shape: a flat list renders as one
// bullet list, a category map as labeled subsections in fixed order.
func antibioticChoices(s Surface, ac domain.AntibioticChoices, y float64) float64 {
	if ac.IsZero() {
		return y
	}
	if ac.Categories == nil {
		return bulletList(s, "Antibiotic Choices", ac.Flat, y)
	}
	y = subheading(s, "Antibiotic Choices", y)
	categories := []struct {
		label string
		items []string
	}{
		{"Community Acquired", ac.Categories.CommunityAcquired},
		{"Hospital Acquired", ac.Categories.HospitalAcquired},
		{"Penicillin Allergy", ac.Categories.PenicillinAllergy},
	}
	for _, c := range categories {
		if len(c.items) == 0 {
			continue
		}
		s.PlaceText(bulletIndent, y, c.label, TextStyle{Size: 11, Bold: true, Color: colorBlack})
		y += lineHeight
		for _, item := range c.items {
			s.PlaceText(bulletIndent+5, y, "- "+item, TextStyle{Size: 11, Color: colorBlack})
			y += lineHeight
		}
		y += 2
	}
	return y + 2
}

func isCriticalAlert(alert string) bool {
	lower := strings.ToLower(alert)
	return strings.Contains(lower, "critical") || strings.Contains(lower, "urgent")
}

func renderSafetyAlerts(s Surface, r *domain.ReportData, y float64, _ Style) float64 {
	y = heading(s, "Safety Alerts", y)

	if len(r.SafetyAlerts) == 0 {
		s.PlaceText(marginLeft, y, noAlertsText, TextStyle{Size: 11, Color: colorBlack})
		return y + lineHeight + trailingMargin
	}

	// The source bullets only the first alert and indents the rest without
	// a glyph; the asymmetry is preserved.
	for i, alert := range r.SafetyAlerts {
		color := colorBlack
		if isCriticalAlert(alert) {
			color = colorAlertRed
		}
		if i == 0 {
			s.PlaceText(bulletIndent, y, "- "+alert, TextStyle{Size: 11, Color: color})
		} else {
			s.PlaceText(bulletIndent+2, y, alert, TextStyle{Size: 11, Color: color})
		}
		y += lineHeight
	}
	return y + trailingMargin
}

func renderCustomSection(s Surface, sec domain.CustomSection, y float64, _ Style) float64 {
	y = heading(s, sec.Title, y)
	body := TextStyle{Size: 11, Color: colorBlack}

	switch sec.Type {
	case domain.LayoutList:
		for _, item := range sec.Content.AsLines() {
			s.PlaceText(bulletIndent, y, "- "+item, body)
			y += lineHeight
		}
	case domain.LayoutKeyValue:
		for _, line := range sec.Content.AsLines() {
			key, value, found := strings.Cut(line, ":")
			if found {
				line = fmt.Sprintf("%s: %s", strings.TrimSpace(key), strings.TrimSpace(value))
			}
			s.PlaceText(marginLeft, y, line, body)
			y += lineHeight
		}
	default: // LayoutText
		for _, line := range s.WrapText(sec.Content.AsText(), s.PageWidth()-marginLeft-marginRight, body) {
			s.PlaceText(marginLeft, y, line, body)
			y += lineHeight
		}
	}
	return y + trailingMargin
}

// renderFooter is a strict second pass over the finished page list; it must
// not run before all sections are placed.
func renderFooter(s Surface, generatedDate string, st Style) {
	total := s.PageCount()
	for i := 1; i <= total; i++ {
		s.UsePage(i)
		s.PlaceText(s.PageWidth()/2, s.PageHeight()-10,
			fmt.Sprintf("Page %d of %d | Generated: %s", i, total, generatedDate),
			TextStyle{Size: 10, Color: st.SecondaryColor, Align: AlignCenter})
	}
}

// renderDisclaimer draws the fixed legal box near the bottom of the last
// page. It is unconditional and ignores every include option.
func renderDisclaimer(s Surface, st Style) {
	s.UsePage(s.PageCount())
	y := s.PageHeight() - 40
	s.PlaceRect(marginLeft, y-5, s.PageWidth()-marginLeft-marginRight, 25, colorBoxRed)
	s.PlaceText(bulletIndent, y, disclaimerHeading, TextStyle{Size: 12, Bold: true, Color: colorDarkRed})

	body := TextStyle{Size: 10, Color: st.SecondaryColor}
	lineY := y + 5
	for _, line := range s.WrapText(disclaimerText, s.PageWidth()-2*bulletIndent, body) {
		s.PlaceText(bulletIndent, lineY, line, body)
		lineY += 4
	}
}
