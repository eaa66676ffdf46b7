package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Mailer delivers an encoded report to a recipient.
type Mailer interface {
	Send(ctx context.Context, email string, pdf []byte, reportName string) error
}

// sendReportRequest is the wire body of the send-report endpoint.
type sendReportRequest struct {
	Email      string `json:"email"`
	PDFBase64  string `json:"pdf_base64"`
	ReportName string `json:"report_name"`
}

type httpMailer struct {
	baseURL string
	client  *http.Client
}

// NewMailer returns a Mailer that POSTs reports to
// {baseURL}/api/v1/send-report. Exactly one attempt is made per call;
// there are no retries and no cancellation orchestration beyond ctx.
func NewMailer(baseURL string, client *http.Client) Mailer {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &httpMailer{baseURL: baseURL, client: client}
}

// ToBase64 encodes a finished document blob for transport.
func ToBase64(blob []byte) string {
	return base64.StdEncoding.EncodeToString(blob)
}

func (m *httpMailer) Send(ctx context.Context, email string, pdf []byte, reportName string) error {
	logger := zerolog.Ctx(ctx)

	body, err := json.Marshal(sendReportRequest{
		Email:      email,
		PDFBase64:  ToBase64(pdf),
		ReportName: reportName,
	})
	if err != nil {
		return fmt.Errorf("encode send-report request: %w", err)
	}

	url := m.baseURL + "/api/v1/send-report"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build send-report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		logger.Info().
			Str("email", email).
			Str("report_name", reportName).
			Msg("report sent")
		return nil
	}

	return fmt.Errorf("failed to send report: %s", failureDetail(resp.Body))
}

// failureDetail extracts the server-reported `detail` message from an
// error body, falling back to a generic message when the field is absent
// or not a string.
func failureDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil {
		return "unable to send report"
	}
	var payload struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "unable to send report"
	}
	if detail, ok := payload.Detail.(string); ok && detail != "" {
		return detail
	}
	return "unable to send report"
}
