package api

import "github.com/med-tools/clinreport/pkg/models/domain"

// IncludeOptions mirrors the section toggles on the wire.
type IncludeOptions struct {
	Summary          bool     `json:"summary"`
	RiskAssessment   bool     `json:"risk_assessment"`
	ModelExplanation bool     `json:"model_explanation"`
	Recommendations  bool     `json:"recommendations"`
	PatientData      bool     `json:"patient_data"`
	CustomSections   []string `json:"custom_sections,omitempty"`
}

// RenderStyle carries optional style overrides.
type RenderStyle struct {
	PrimaryColor   []int  `json:"primary_color,omitempty"`
	SecondaryColor []int  `json:"secondary_color,omitempty"`
	Font           string `json:"font,omitempty"`
}

// RenderRequest asks for a report to be rendered into a document.
type RenderRequest struct {
	Report   domain.ReportData `json:"report"`
	Include  *IncludeOptions   `json:"include,omitempty"`
	Style    *RenderStyle      `json:"style,omitempty"`
	Filename string            `json:"filename,omitempty"`
}

// EmailRequest asks for a rendered report to be emailed.
type EmailRequest struct {
	Email      string            `json:"email"`
	ReportName string            `json:"report_name,omitempty"`
	Report     domain.ReportData `json:"report"`
	Include    *IncludeOptions   `json:"include,omitempty"`
	Style      *RenderStyle      `json:"style,omitempty"`
}

// EmailResponse acknowledges a delivered report.
type EmailResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

// Error is the JSON error envelope.
type Error struct {
	Detail string `json:"detail"`
}
