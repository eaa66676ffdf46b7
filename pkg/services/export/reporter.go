package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/med-tools/clinreport/pkg/models/domain"
)

type TableConfig struct {
	FeatureWidth    int
	ImportanceWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		FeatureWidth:    40,
		ImportanceWidth: 12,
	}
}

// Reporter renders a plain-text preview of a report, the terminal analog
// of the generated document.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.ReportData) error {
	funcMap := template.FuncMap{
		"formatRow": func(feature string, importance interface{}) string {
			return fmt.Sprintf("| %-*s | %-*v |",
				c.config.FeatureWidth, feature,
				c.config.ImportanceWidth, importance)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.FeatureWidth+2),
				strings.Repeat("-", c.config.ImportanceWidth+2))
		},
		"riskLevel": func(ra *domain.RiskAssessment) string {
			if ra == nil {
				return "Unknown"
			}
			return string(ra.RiskLevel())
		},
		"sortedFactors": domain.SortedRiskFactors,
	}

	tmpl := `
{{.ReportType}} Report ({{.ReportID}})

Generated: {{.GeneratedDate}}
{{if .RiskAssessment}}
Risk Score: {{printf "%.0f" (mulPercent .RiskAssessment.Score)}}%
Risk Level: {{riskLevel .RiskAssessment}}
{{if .RiskAssessment.Interpretation}}
{{.RiskAssessment.Interpretation}}
{{end}}{{end}}
{{if .KeyRiskFactors}}
=== Key Risk Factors ===

{{separator}}
{{formatRow "Feature" "Importance"}}
{{separator}}
{{range sortedFactors .KeyRiskFactors}}{{formatRow .Feature (printf "%.3f" .Value)}}
{{end}}{{separator}}
{{end}}
{{if .SafetyAlerts}}
=== Safety Alerts ===
{{range .SafetyAlerts}}
- {{.}}
{{end}}{{end}}
`

	funcMap["mulPercent"] = func(score float64) float64 { return score * 100 }

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
