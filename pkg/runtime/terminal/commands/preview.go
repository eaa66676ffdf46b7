package commands

import (
	"github.com/spf13/cobra"

	"github.com/med-tools/clinreport/pkg/services/export"
)

type PreviewCmd struct {
	inputPath string
	reporter  *export.Reporter
}

func NewPreviewCmd(reporter *export.Reporter) *cobra.Command {
	pc := &PreviewCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print a plain-text preview of a report",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.inputPath, "input", "", "Path to the report JSON file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (pc *PreviewCmd) run(_ *cobra.Command, _ []string) error {
	report, err := loadReport(pc.inputPath)
	if err != nil {
		return err
	}
	return pc.reporter.Handle(&report)
}
