package analyses

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ghostorshell-backend/internal/extract"
	"ghostorshell-backend/internal/shared/server/respond"
	"ghostorshell-backend/internal/visitors"
)

// Handler wires HTTP handlers to the analysis pipeline.
type Handler struct {
	Svc     *Service
	Credits *visitors.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, credits *visitors.Service) *Handler {
	return &Handler{Svc: svc, Credits: credits}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.analyze)
	rg.GET("/analyses/recent", h.recent)
	rg.GET("/analyses/stats", h.stats)
}

// RegisterDevRoutes attaches destructive maintenance routes, dev only.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/analyses/old", h.deleteOld)
}

func (h *Handler) analyze(c *gin.Context) {
	visitorID, ip := visitors.Identity(c.Request)
	c.Set("visitorId", visitorID)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, extract.MaxFileSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	// The free-tier gate: spend one credit per analysis attempt, atomically.
	if _, err := h.Credits.Use(c.Request.Context(), visitorID, ip); err != nil {
		if errors.Is(err, visitors.ErrNoCredits) {
			respond.Error(c, http.StatusPaymentRequired, "no_credits", "no analysis credits remaining", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to check credits", nil)
		return
	}

	outcome, err := h.Svc.Analyze(c.Request.Context(), UploadInput{
		Filename:  fileHeader.Filename,
		MimeType:  fileHeader.Header.Get("Content-Type"),
		Data:      data,
		IPAddress: ip,
		VisitorID: visitorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "unsupported_type", err.Error(), nil)
		case errors.Is(err, extract.ErrNoText), errors.Is(err, ErrInsufficientText):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_error", err.Error(), nil)
		case errors.Is(err, ErrDetection):
			respond.Error(c, http.StatusBadGateway, "classification_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_error", err.Error(), nil)
		}
		return
	}

	if outcome.RecordID != "" {
		c.Set("analysisId", outcome.RecordID)
	}
	respond.OK(c, outcome)
}

func (h *Handler) recent(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	records, err := h.Svc.Recent(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}
	if records == nil {
		records = []Analysis{}
	}
	respond.OK(c, records)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute stats", nil)
		return
	}
	respond.OK(c, stats)
}

func (h *Handler) deleteOld(c *gin.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "days must be a positive integer", nil)
			return
		}
		days = parsed
	}

	deleted, err := h.Svc.DeleteOldRecords(c.Request.Context(), days)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete old records", nil)
		return
	}
	respond.OK(c, gin.H{"deleted": deleted, "days": days})
}
