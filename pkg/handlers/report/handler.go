package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/med-tools/clinreport/pkg/adapters"
	"github.com/med-tools/clinreport/pkg/models/api"
	"github.com/med-tools/clinreport/pkg/models/domain"
	"github.com/med-tools/clinreport/pkg/services/export"
	"github.com/med-tools/clinreport/pkg/services/pdf"
)

type Handler struct {
	mailer export.Mailer
}

func NewHandler(mailer export.Mailer) *Handler {
	return &Handler{mailer: mailer}
}

// Render generates a PDF and streams it back as a download.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fillDefaults(&req.Report)

	blob, err := pdf.Generate(req.Report, adapters.MapAPIOptionsToRenderOptions(req.Include, req.Style))
	if err != nil {
		logger.Error().Err(err).Str("report_id", req.Report.ReportID).Msg("report generation failed")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	filename := req.Filename
	if filename == "" {
		filename = export.DefaultFilename(req.Report.ReportType, req.Report.GeneratedDate)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(blob); err != nil {
		logger.Error().Err(err).Msg("failed to write document response")
	}
}

// Email generates a PDF and forwards it to the delivery service.
func (h *Handler) Email(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	fillDefaults(&req.Report)

	blob, err := pdf.Generate(req.Report, adapters.MapAPIOptionsToRenderOptions(req.Include, req.Style))
	if err != nil {
		logger.Error().Err(err).Str("report_id", req.Report.ReportID).Msg("report generation failed")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	reportName := req.ReportName
	if reportName == "" {
		reportName = export.DefaultFilename(req.Report.ReportType, req.Report.GeneratedDate)
	}

	if err := h.mailer.Send(ctx, req.Email, blob, reportName); err != nil {
		logger.Error().Err(err).Str("email", req.Email).Msg("report delivery failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(api.EmailResponse{Status: "sent", Email: req.Email}); err != nil {
		logger.Error().Err(err).Msg("failed to encode email response")
	}
}

// fillDefaults assigns caller-side identity fields the generator itself
// refuses to invent: report IDs and dates are inputs to the core.
func fillDefaults(report *domain.ReportData) {
	if report.ReportID == "" {
		report.ReportID = "REP-" + uuid.NewString()[:8]
	}
	if report.GeneratedDate == "" {
		report.GeneratedDate = time.Now().UTC().Format("2006-01-02")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Detail: detail})
}
