package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/med-tools/clinreport/pkg/services/config"
	"github.com/med-tools/clinreport/pkg/services/export"
	"github.com/med-tools/clinreport/pkg/services/pdf"
)

type EmailCmd struct {
	inputPath   string
	to          string
	reportName  string
	profilePath string
	profile     string
	configPath  string
}

func NewEmailCmd() *cobra.Command {
	ec := &EmailCmd{}
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Render a report and send it through the delivery service",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.inputPath, "input", "", "Path to the report JSON file")
	cmd.Flags().StringVar(&ec.to, "to", "", "Recipient email address")
	cmd.Flags().StringVar(&ec.reportName, "name", "", "Report name used in the email (defaults to the download filename)")
	cmd.Flags().StringVar(&ec.profilePath, "profile-config", "", "Path to the endpoint profile file")
	cmd.Flags().StringVar(&ec.profile, "profile", "default", "Endpoint profile to use")
	cmd.Flags().StringVar(&ec.configPath, "render-config", "", "Path to a YAML render profile")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("profile-config")

	return cmd
}

func (ec *EmailCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	report, err := loadReport(ec.inputPath)
	if err != nil {
		return err
	}

	opts, err := renderOptions(ec.configPath)
	if err != nil {
		return err
	}

	registry, err := config.NewRegistry(ec.profilePath)
	if err != nil {
		return fmt.Errorf("failed to load endpoint profiles: %w", err)
	}
	endpoint, err := registry.GetEndpoint(ctx, ec.profile)
	if err != nil {
		return err
	}

	blob, err := pdf.Generate(report, opts)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	name := ec.reportName
	if name == "" {
		name = export.DefaultFilename(report.ReportType, report.GeneratedDate)
	}

	mailer := export.NewMailer(endpoint.Host, nil)
	if err := mailer.Send(ctx, ec.to, blob, name); err != nil {
		return err
	}

	cmd.Printf("report sent to %s\n", ec.to)
	return nil
}
