package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// RiskLevel is one of Low, Moderate, High, derived from a numeric score
// via the shared threshold rule used everywhere risk color-coding occurs.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// Threshold rule: boundary values map to the higher band.
const (
	HighRiskThreshold     = 0.75
	ModerateRiskThreshold = 0.5
)

// RiskLevelForScore maps a score in [0,1] to a risk level.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= HighRiskThreshold:
		return RiskHigh
	case score >= ModerateRiskThreshold:
		return RiskModerate
	default:
		return RiskLow
	}
}

// ReportData is a normalized clinical prediction report for one patient.
// ReportType, ReportID and GeneratedDate are required; every other field is
// optional and its absence degrades to a placeholder or a skipped section.
type ReportData struct {
	ReportType     string                 `json:"report_type"`
	ReportID       string                 `json:"report_id"`
	GeneratedDate  string                 `json:"generated_date"`
	RiskAssessment *RiskAssessment        `json:"risk_assessment,omitempty"`
	KeyRiskFactors []RiskFactor           `json:"key_risk_factors,omitempty"`
	Guidance       *ClinicalGuidance      `json:"clinical_guidance,omitempty"`
	SafetyAlerts   []string               `json:"safety_alerts,omitempty"`
	PatientInfo    map[string]interface{} `json:"patient_info,omitempty"`
	CustomSections []CustomSection        `json:"custom_sections,omitempty"`
}

// Validate checks the minimal invariant of a report.
func (r *ReportData) Validate() error {
	if strings.TrimSpace(r.ReportType) == "" {
		return fmt.Errorf("report_type is required")
	}
	if strings.TrimSpace(r.ReportID) == "" {
		return fmt.Errorf("report_id is required")
	}
	if strings.TrimSpace(r.GeneratedDate) == "" {
		return fmt.Errorf("generated_date is required")
	}
	return nil
}

// RiskAssessment holds the model's risk verdict for a patient.
type RiskAssessment struct {
	Score            float64   `json:"score"`
	Level            RiskLevel `json:"level,omitempty"`
	Interpretation   string    `json:"interpretation,omitempty"`
	DetailedAnalysis string    `json:"detailed_analysis,omitempty"`
	TimeFrame        string    `json:"time_frame,omitempty"`
}

// RiskLevel returns the explicit level when set, otherwise derives it
// from the score via the shared threshold rule.
func (ra *RiskAssessment) RiskLevel() RiskLevel {
	if ra.Level != "" {
		return ra.Level
	}
	return RiskLevelForScore(ra.Score)
}

// RiskFactor is a signed feature-importance weight.
type RiskFactor struct {
	Feature     string  `json:"feature"`
	Value       float64 `json:"value"`
	Description string  `json:"description,omitempty"`
}

// Label returns the display text for a factor, preferring the description.
func (f RiskFactor) Label() string {
	if f.Description != "" {
		return f.Description
	}
	return f.Feature
}

// SortedRiskFactors returns a copy sorted by descending absolute value.
// The sort is stable so equal weights keep their input order.
func SortedRiskFactors(factors []RiskFactor) []RiskFactor {
	sorted := make([]RiskFactor, len(factors))
	copy(sorted, factors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return abs(sorted[i].Value) > abs(sorted[j].Value)
	})
	return sorted
}

// TopRiskFactors returns at most n factors sorted by descending |value|.
func TopRiskFactors(factors []RiskFactor, n int) []RiskFactor {
	sorted := SortedRiskFactors(factors)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ClinicalGuidance carries the recommendation block of a report.
type ClinicalGuidance struct {
	Monitoring       []string         `json:"monitoring,omitempty"`
	DiagnosticTests  []string         `json:"diagnostic_tests,omitempty"`
	TreatmentOptions TreatmentOptions `json:"treatment_options"`
	RequiredActions  []string         `json:"required_actions,omitempty"`
}

type TreatmentOptions struct {
	ImmediateMedications []string          `json:"immediate_medications,omitempty"`
	AntibioticChoices    AntibioticChoices `json:"antibiotic_choices,omitempty"`
}

// AntibioticChoices is polymorphic on the wire: either a flat list of
// drugs or a map of patient categories. At most one variant is set.
type AntibioticChoices struct {
	Flat       []string
	Categories *AntibioticCategories
}

type AntibioticCategories struct {
	CommunityAcquired []string `json:"community_acquired,omitempty"`
	HospitalAcquired  []string `json:"hospital_acquired,omitempty"`
	PenicillinAllergy []string `json:"penicillin_allergy,omitempty"`
}

// IsZero reports whether neither variant holds any entries.
func (ac AntibioticChoices) IsZero() bool {
	if len(ac.Flat) > 0 {
		return false
	}
	if ac.Categories == nil {
		return true
	}
	return len(ac.Categories.CommunityAcquired) == 0 &&
		len(ac.Categories.HospitalAcquired) == 0 &&
		len(ac.Categories.PenicillinAllergy) == 0
}

func (ac *AntibioticChoices) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, &ac.Flat)
	}
	ac.Categories = &AntibioticCategories{}
	return json.Unmarshal(data, ac.Categories)
}

func (ac AntibioticChoices) MarshalJSON() ([]byte, error) {
	if ac.Categories != nil {
		return json.Marshal(ac.Categories)
	}
	if ac.Flat != nil {
		return json.Marshal(ac.Flat)
	}
	return []byte("null"), nil
}

// SectionLayout selects how a custom section's content is laid out.
type SectionLayout string

const (
	LayoutText     SectionLayout = "text"
	LayoutList     SectionLayout = "list"
	LayoutKeyValue SectionLayout = "keyValue"
)

// CustomSection is a caller-defined report section. Content accepts either
// a single string or an array of strings on the wire.
type CustomSection struct {
	Title   string         `json:"title"`
	Content SectionContent `json:"content"`
	Type    SectionLayout  `json:"type"`
}

// SectionContent holds the decoded string-or-array content variant.
type SectionContent struct {
	Text  string
	Lines []string
}

func (sc *SectionContent) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, &sc.Lines)
	}
	return json.Unmarshal(data, &sc.Text)
}

func (sc SectionContent) MarshalJSON() ([]byte, error) {
	if sc.Lines != nil {
		return json.Marshal(sc.Lines)
	}
	return json.Marshal(sc.Text)
}

// AsLines flattens either variant to a list of lines.
func (sc SectionContent) AsLines() []string {
	if len(sc.Lines) > 0 {
		return sc.Lines
	}
	if sc.Text != "" {
		return []string{sc.Text}
	}
	return nil
}

// AsText flattens either variant to one paragraph.
func (sc SectionContent) AsText() string {
	if sc.Text != "" {
		return sc.Text
	}
	return strings.Join(sc.Lines, " ")
}

// TitleCaseKey turns a snake_case field name into a display label,
// e.g. "admission_date" -> "Admission Date".
func TitleCaseKey(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// PatientInfoKeys returns the patient_info keys in a stable order.
func (r *ReportData) PatientInfoKeys() []string {
	keys := make([]string, 0, len(r.PatientInfo))
	for k := range r.PatientInfo {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
