package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFilename builds the conventional report filename,
// "{report-type}-report-{ISO date}.pdf".
func DefaultFilename(reportType, generatedDate string) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(reportType), " ", "-"))
	return fmt.Sprintf("%s-report-%s.pdf", slug, generatedDate)
}

// SaveFile materializes a generated document on the local filesystem.
func SaveFile(path string, blob []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	return nil
}
