package pdf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/med-tools/clinreport/pkg/models/domain"
)

func TestRenderHeader(t *testing.T) {
	s := newFakeSurface()
	r := &domain.ReportData{ReportType: "SepsisAI", ReportID: "REP-1", GeneratedDate: "2024-01-01"}

	y := renderHeader(s, r, DefaultStyle())

	assert.Equal(t, 40.0, y)
	require.NotEmpty(t, s.rects)
	band := s.rects[0]
	assert.Equal(t, 0.0, band.x)
	assert.Equal(t, 0.0, band.y)
	assert.Equal(t, s.PageWidth(), band.w)
	assert.Equal(t, float64(headerHeight), band.h)
	assert.Equal(t, defaultPrimary, band.fill)

	assert.True(t, s.hasText("SepsisAI Report"))
	assert.True(t, s.hasText("Report ID: REP-1"))
	assert.True(t, s.hasText("Generated: 2024-01-01"))
}

func TestSummaryText(t *testing.T) {
	tests := []struct {
		name     string
		ra       *domain.RiskAssessment
		expected string
	}{
		{
			name:     "nil assessment falls back",
			ra:       nil,
			expected: "No summary available for this report.",
		},
		{
			name:     "empty assessment falls back",
			ra:       &domain.RiskAssessment{Score: 0.3},
			expected: "No summary available for this report.",
		},
		{
			name: "interpretation with time frame",
			ra: &domain.RiskAssessment{
				Score:          0.82,
				Interpretation: "Elevated risk",
				TimeFrame:      "6h",
			},
			expected: "Elevated risk. (Time frame: 6h)",
		},
		{
			name: "all parts",
			ra: &domain.RiskAssessment{
				Interpretation:   "Elevated risk",
				DetailedAnalysis: "MAP trending down.",
				TimeFrame:        "6h",
			},
			expected: "Elevated risk. MAP trending down. (Time frame: 6h)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, summaryText(tc.ra))
		})
	}
}

func TestRenderSummary_Fallback(t *testing.T) {
	s := newFakeSurface()
	y := renderSummary(s, &domain.ReportData{}, 40, DefaultStyle())

	assert.True(t, s.hasText("No summary available for this report."))
	assert.Greater(t, y, 40.0)
}

func TestRenderRiskAssessment_Scenario(t *testing.T) {
	s := newFakeSurface()
	r := &domain.ReportData{
		RiskAssessment: &domain.RiskAssessment{
			Score:          0.82,
			Interpretation: "Elevated risk",
			TimeFrame:      "6h",
		},
	}

	renderRiskAssessment(s, r, 40, DefaultStyle())

	assert.True(t, s.hasText("Risk Score: 82%"))
	level, ok := s.findText("Risk Level: High")
	require.True(t, ok)
	assert.Equal(t, colorAlertRed, level.style.Color)
	assert.True(t, level.style.Bold)
}

func TestRenderRiskAssessment_FactorsSortedAndUnlimited(t *testing.T) {
	s := newFakeSurface()
	var factors []domain.RiskFactor
	for i := 1; i <= 12; i++ {
		factors = append(factors, domain.RiskFactor{Feature: fmt.Sprintf("f%d", i), Value: float64(i) / 100})
	}
	r := &domain.ReportData{
		RiskAssessment: &domain.RiskAssessment{Score: 0.6},
		KeyRiskFactors: factors,
	}

	renderRiskAssessment(s, r, 40, DefaultStyle())

	// all 12 factors listed, strongest first
	assert.True(t, s.hasText("- f1"))
	assert.True(t, s.hasText("- f12"))
	assert.Less(t, s.textIndex("- f12"), s.textIndex("- f11"))
}

func TestRenderExplanation_LegacyScaling(t *testing.T) {
	s := newFakeSurface()
	r := &domain.ReportData{
		KeyRiskFactors: []domain.RiskFactor{
			{Feature: "Resp", Value: -3.456},
			{Feature: "HR", Value: 0.85},
		},
	}

	renderExplanation(s, r, 40, DefaultStyle(), nil)

	// percentage is |value|*10, not *100
	assert.True(t, s.hasText("Resp: 34.6%"))
	assert.True(t, s.hasText("HR: 8.5%"))
	assert.False(t, s.hasText("HR: 85.0%"))

	// a track and a fill bar per factor
	assert.Len(t, s.rects, 4)
	assert.Equal(t, colorBarTrack, s.rects[0].fill)
	assert.Equal(t, defaultPrimary, s.rects[1].fill)
	assert.InDelta(t, 80*0.346, s.rects[1].w, 0.01)
}

func TestRenderExplanation_EmptyFactors(t *testing.T) {
	s := newFakeSurface()

	renderExplanation(s, &domain.ReportData{}, 40, DefaultStyle(), nil)

	assert.True(t, s.hasText("No feature importance data available."))
	assert.Empty(t, s.rects, "no bars drawn for the fallback")
}

func TestRenderExplanation_TopTenOnly(t *testing.T) {
	s := newFakeSurface()
	var factors []domain.RiskFactor
	for i := 0; i < 12; i++ {
		factors = append(factors, domain.RiskFactor{Feature: fmt.Sprintf("f%d", i), Value: 1})
	}

	renderExplanation(s, &domain.ReportData{KeyRiskFactors: factors}, 40, DefaultStyle(), nil)

	tracks := 0
	for _, rect := range s.rects {
		if rect.fill == colorBarTrack {
			tracks++
		}
	}
	assert.Equal(t, 10, tracks)
}

func TestRenderExplanation_BarClampedAt100(t *testing.T) {
	s := newFakeSurface()
	// |value|*10 > 100; the fill bar must not exceed the track
	renderExplanation(s, &domain.ReportData{
		KeyRiskFactors: []domain.RiskFactor{{Feature: "f", Value: 42}},
	}, 40, DefaultStyle(), nil)

	require.Len(t, s.rects, 2)
	assert.Equal(t, s.rects[0].w, s.rects[1].w)
}

func TestRenderExplanation_ChartImage(t *testing.T) {
	s := newFakeSurface()
	r := &domain.ReportData{KeyRiskFactors: []domain.RiskFactor{{Feature: "f", Value: 1}}}

	renderExplanation(s, r, 40, DefaultStyle(), []byte{0x89, 0x50})
	assert.Len(t, s.images, 1)

	// failed capture upstream means empty bytes and no image
	s2 := newFakeSurface()
	renderExplanation(s2, r, 40, DefaultStyle(), nil)
	assert.Empty(t, s2.images)
}

func TestRenderGuidance_FlatAntibiotics(t *testing.T) {
	s := newFakeSurface()
	r := &domain.ReportData{
		Guidance: &domain.ClinicalGuidance{
			Monitoring: []string{"Hourly vitals"},
			TreatmentOptions: domain.TreatmentOptions{
				AntibioticChoices: domain.AntibioticChoices{Flat: []string{"Ceftriaxone", "Azithromycin"}},
			},
		},
	}

	renderGuidance(s, r, 40, DefaultStyle())

	assert.True(t, s.hasText("Antibiotic Choices"))
	assert.True(t, s.hasText("- Ceftriaxone"))
	assert.True(t, s.hasText("- Azithromycin"))
	assert.False(t, s.hasText("Community Acquired"))
	assert.False(t, s.hasText("Hospital Acquired"))
}

func TestRenderGuidance_CategorizedAntibiotics(t *testing.T) {
	s := newFakeSurface()
	r := &domain.ReportData{
		Guidance: &domain.ClinicalGuidance{
			TreatmentOptions: domain.TreatmentOptions{
				AntibioticChoices: domain.AntibioticChoices{
					Categories: &domain.AntibioticCategories{
						CommunityAcquired: []string{"A"},
						HospitalAcquired:  []string{"B"},
					},
				},
			},
		},
	}

	renderGuidance(s, r, 40, DefaultStyle())

	assert.True(t, s.hasText("Community Acquired"))
	assert.True(t, s.hasText("Hospital Acquired"))
	assert.Less(t, s.textIndex("Community Acquired"), s.textIndex("Hospital Acquired"))
	assert.False(t, s.hasText("Penicillin Allergy"))
}

func TestRenderGuidance_FixedSubsectionOrder(t *testing.T) {
	s := newFakeSurface()
	r := &domain.ReportData{
		Guidance: &domain.ClinicalGuidance{
			Monitoring:      []string{"m"},
			DiagnosticTests: []string{"d"},
			TreatmentOptions: domain.TreatmentOptions{
				ImmediateMedications: []string{"med"},
				AntibioticChoices:    domain.AntibioticChoices{Flat: []string{"abx"}},
			},
			RequiredActions: []string{"act"},
		},
	}

	renderGuidance(s, r, 40, DefaultStyle())

	order := []string{"Monitoring", "Diagnostic Tests", "Immediate Medications", "Antibiotic Choices", "Required Actions"}
	last := -1
	for _, title := range order {
		idx := s.textIndex(title)
		require.GreaterOrEqual(t, idx, 0, title)
		assert.Greater(t, idx, last, "%s out of order", title)
		last = idx
	}
}

func TestRenderGuidance_MissingSubListsSkipped(t *testing.T) {
	s := newFakeSurface()
	r := &domain.ReportData{
		Guidance: &domain.ClinicalGuidance{Monitoring: []string{"m"}},
	}

	renderGuidance(s, r, 40, DefaultStyle())

	assert.True(t, s.hasText("Monitoring"))
	assert.False(t, s.hasText("Diagnostic Tests"))
	assert.False(t, s.hasText("Antibiotic Choices"))
	assert.False(t, s.hasText("Required Actions"))
}

func TestRenderSafetyAlerts_Empty(t *testing.T) {
	s := newFakeSurface()
	renderSafetyAlerts(s, &domain.ReportData{}, 40, DefaultStyle())
	assert.True(t, s.hasText("No safety alerts identified."))
}

func TestRenderSafetyAlerts_ColorsAndBulleting(t *testing.T) {
	s := newFakeSurface()
	r := &domain.ReportData{
		SafetyAlerts: []string{
			"Monitor renal function",
			"CRITICAL: lactate rising",
			"Urgent review required",
		},
	}

	renderSafetyAlerts(s, r, 40, DefaultStyle())

	first, ok := s.findText("- Monitor renal function")
	require.True(t, ok, "first alert carries a bullet")
	assert.Equal(t, colorBlack, first.style.Color)

	critical, ok := s.findText("CRITICAL: lactate rising")
	require.True(t, ok, "later alerts are indented without a glyph")
	assert.Equal(t, colorAlertRed, critical.style.Color)
	assert.Greater(t, critical.x, first.x)

	urgent, ok := s.findText("Urgent review required")
	require.True(t, ok)
	assert.Equal(t, colorAlertRed, urgent.style.Color)
}

func TestRenderCustomSection_Layouts(t *testing.T) {
	t.Run("text wraps", func(t *testing.T) {
		s := newFakeSurface()
		renderCustomSection(s, domain.CustomSection{
			Title:   "Notes",
			Type:    domain.LayoutText,
			Content: domain.SectionContent{Text: "short note"},
		}, 40, DefaultStyle())
		assert.True(t, s.hasText("Notes"))
		assert.True(t, s.hasText("short note"))
	})

	t.Run("list bullets each item", func(t *testing.T) {
		s := newFakeSurface()
		renderCustomSection(s, domain.CustomSection{
			Title:   "Orders",
			Type:    domain.LayoutList,
			Content: domain.SectionContent{Lines: []string{"one", "two"}},
		}, 40, DefaultStyle())
		assert.True(t, s.hasText("- one"))
		assert.True(t, s.hasText("- two"))
	})

	t.Run("keyValue splits on first colon", func(t *testing.T) {
		s := newFakeSurface()
		renderCustomSection(s, domain.CustomSection{
			Title:   "Labs",
			Type:    domain.LayoutKeyValue,
			Content: domain.SectionContent{Lines: []string{"Lactate: 3.1: rising", "no colon here"}},
		}, 40, DefaultStyle())
		assert.True(t, s.hasText("Lactate: 3.1: rising"))
		assert.True(t, s.hasText("no colon here"))
	})
}

func TestRenderPatientInfo(t *testing.T) {
	s := newFakeSurface()
	r := &domain.ReportData{
		PatientInfo: map[string]interface{}{
			"admission_date": "2024-05-08",
			"age":            65,
		},
	}

	renderPatientInfo(s, r, 40, DefaultStyle())

	assert.True(t, s.hasText("Patient Information"))
	assert.True(t, s.hasText("Admission Date: 2024-05-08"))
	assert.True(t, s.hasText("Age: 65"))
}

func TestRenderFooter_EveryPage(t *testing.T) {
	s := newFakeSurface()
	s.NewPage()
	s.NewPage()

	renderFooter(s, "2024-01-01", DefaultStyle())

	for i := 1; i <= 3; i++ {
		text, ok := s.findText(fmt.Sprintf("Page %d of 3 | Generated: 2024-01-01", i))
		require.True(t, ok)
		assert.Equal(t, i, text.page)
		assert.Equal(t, AlignCenter, text.style.Align)
		assert.Equal(t, s.PageHeight()-10, text.y)
	}
}

func TestRenderDisclaimer_LastPage(t *testing.T) {
	s := newFakeSurface()
	s.NewPage()

	renderDisclaimer(s, DefaultStyle())

	require.NotEmpty(t, s.rects)
	box := s.rects[0]
	assert.Equal(t, 2, box.page)
	assert.Equal(t, colorBoxRed, box.fill)

	title, ok := s.findText("Medical Disclaimer")
	require.True(t, ok)
	assert.Equal(t, colorDarkRed, title.style.Color)
	assert.Equal(t, 2, title.page)
}
