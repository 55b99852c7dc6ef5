package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/julienschmidt/httprouter"

	"portcall/internal/berths/report"
	"portcall/internal/berths/service"
	apperrors "portcall/pkg/errors"
	httputil "portcall/pkg/http"
	"portcall/pkg/logger"
	"portcall/pkg/model"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BerthHandler struct {
	berths   service.BerthService
	resolver service.ResolverService
	log      *logger.Logger

	resolveTimeout time.Duration
}

func NewBerthHandler(berths service.BerthService, resolver service.ResolverService, log *logger.Logger) *BerthHandler {
	return &BerthHandler{
		berths:   berths,
		resolver: resolver,
		log:      log,
	}
}

// WithResolveTimeout bounds each resolution. It must be shorter than the
// request timeout middleware's deadline.
func (h *BerthHandler) WithResolveTimeout(d time.Duration) *BerthHandler {
	h.resolveTimeout = d
	return h
}

// Resolve answers with the reservation outcome. Malformed or invalid requests
// get the regular error body; every other failure keeps the outcome shape.
func (h *BerthHandler) Resolve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.VesselVisitRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Resolve", err)
		return
	}

	ctx := r.Context()
	if h.resolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.resolveTimeout)
		defer cancel()
	}

	outcome, err := h.resolver.Resolve(ctx, &req)
	if err != nil {
		appErr := apperrors.AsAppError(err)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && appErr.Code != apperrors.CodeTimeout {
			appErr = apperrors.Timeout("Berth resolution timed out")
		}
		if appErr.Code == apperrors.CodeValidation {
			h.writeError(w, "Resolve", err)
			return
		}

		failed := model.Unassigned(&req)
		failed.Error = appErr.Message
		if writeErr := httputil.WriteJSON(w, httputil.StatusFor(appErr), failed); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Resolve", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, outcome); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Resolve", "operation", "WriteJSON", "error", err)
	}
}

func (h *BerthHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var berth model.Berth
	if err := httputil.DecodeJSON(r, &berth); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.berths.Create(r.Context(), &berth); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, berth); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BerthHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	berths, total, err := h.berths.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, berths, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *BerthHandler) GetByName(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	berth, err := h.berths.GetByName(r.Context(), ps.ByName("name"))
	if err != nil {
		h.writeError(w, "GetByName", err)
		return
	}

	if err := httputil.WriteSuccess(w, berth); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByName", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BerthHandler) Schedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	entries, err := h.berths.Schedule(r.Context(), ps.ByName("name"))
	if err != nil {
		h.writeError(w, "Schedule", err)
		return
	}

	if err := httputil.WriteSuccess(w, entries); err != nil {
		h.log.Error("failed to write success response", "handler", "Schedule", "operation", "WriteSuccess", "error", err)
	}
}

// ExportSchedule renders the workbook in memory first so a failure can still
// be reported as JSON.
func (h *BerthHandler) ExportSchedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	berth, err := h.berths.GetByName(r.Context(), ps.ByName("name"))
	if err != nil {
		h.writeError(w, "ExportSchedule", err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteSchedule(&buf, berth); err != nil {
		h.log.Error("Failed to render schedule workbook", "berth", berth.Name, "error", err)
		h.writeError(w, "ExportSchedule", apperrors.Internal("Failed to export schedule", err))
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+url.PathEscape(berth.Name)+`-schedule.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.log.Error("failed to write workbook", "handler", "ExportSchedule", "operation", "Write", "error", err)
	}
}

func (h *BerthHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BerthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/berths/resolve", h.Resolve)
	router.POST("/api/v1/berths", h.Create)
	router.GET("/api/v1/berths", h.GetAll)
	router.GET("/api/v1/berths/name/:name", h.GetByName)
	router.GET("/api/v1/berths/name/:name/schedule", h.Schedule)
	router.GET("/api/v1/berths/name/:name/schedule/export", h.ExportSchedule)
}
