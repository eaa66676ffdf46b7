package adapters

import (
	"github.com/med-tools/clinreport/pkg/models/api"
	"github.com/med-tools/clinreport/pkg/services/pdf"
)

// MapAPIOptionsToRenderOptions converts wire-level render settings into
// generator options. Nil include falls back to everything enabled, nil
// style to the defaults.
func MapAPIOptionsToRenderOptions(include *api.IncludeOptions, style *api.RenderStyle) pdf.Options {
	opts := pdf.Options{
		Include: pdf.AllSections(),
		Style:   pdf.DefaultStyle(),
	}

	if include != nil {
		opts.Include = pdf.IncludeOptions{
			Summary:          include.Summary,
			RiskAssessment:   include.RiskAssessment,
			ModelExplanation: include.ModelExplanation,
			Recommendations:  include.Recommendations,
			PatientData:      include.PatientData,
			CustomSections:   include.CustomSections,
		}
	}
	if style != nil {
		if c, ok := asRGB(style.PrimaryColor); ok {
			opts.Style.PrimaryColor = c
		}
		if c, ok := asRGB(style.SecondaryColor); ok {
			opts.Style.SecondaryColor = c
		}
		if style.Font != "" {
			opts.Style.Font = style.Font
		}
	}
	return opts
}

func asRGB(triple []int) (pdf.RGB, bool) {
	if len(triple) != 3 {
		return pdf.RGB{}, false
	}
	return pdf.RGB{triple[0], triple[1], triple[2]}, true
}
