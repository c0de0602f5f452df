package screenings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"neuroscan-backend/internal/inference"
	"neuroscan-backend/internal/patients"
	"neuroscan-backend/internal/providers"
	"neuroscan-backend/internal/shared/server/middleware"
	"neuroscan-backend/internal/shared/server/respond"
	"neuroscan-backend/internal/usage"
)

const maxScanSize = 100 << 20 // 100MB

// Handler wires the screening workflow to HTTP.
type Handler struct {
	Svc       *Service
	Providers *providers.Service
}

func NewHandler(svc *Service, providerSvc *providers.Service) *Handler {
	return &Handler{Svc: svc, Providers: providerSvc}
}

// RegisterRoutes attaches screening routes to a doctor-guarded group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/patients/:id/screenings", h.run)
	rg.GET("/screenings/usage", h.allowance)
}

func (h *Handler) run(c *gin.Context) {
	provider, ok := h.resolveProvider(c)
	if !ok {
		return
	}

	patientID := c.Param("id")
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxScanSize)

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

	c.Set("statusTransition", StatusIdle+"->"+StatusSaving)

	result, err := h.Svc.Run(c.Request.Context(), provider.ID, patientID, fileHeader.Filename, file)
	if err != nil {
		c.Set("statusTransition", StatusSaving+"->"+StatusError)
		switch {
		case errors.Is(err, patients.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "patient not found", nil)
		case errors.Is(err, usage.ErrLimitReached):
			respond.Error(c, http.StatusTooManyRequests, "limit_reached", "monthly screening allowance reached", nil)
		case errors.Is(err, inference.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "inference_unavailable", "inference service not configured", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "screening_failed", "screening workflow failed", nil)
		}
		return
	}

	c.Set("statusTransition", StatusSaving+"->"+StatusSuccess)
	c.Set("scanId", result.Scan.ID)
	c.Set("reportId", result.Report.ID)
	respond.JSON(c, http.StatusCreated, result)
}

func (h *Handler) allowance(c *gin.Context) {
	provider, ok := h.resolveProvider(c)
	if !ok {
		return
	}
	allowance, err := h.Svc.Allowance(c.Request.Context(), provider.ID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load allowance", nil)
		return
	}
	respond.JSON(c, http.StatusOK, allowance)
}

func (h *Handler) resolveProvider(c *gin.Context) (providers.Provider, bool) {
	email := middleware.UserEmailFromContext(c)
	provider, err := h.Providers.ByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, providers.ErrNotFound) {
			respond.Error(c, http.StatusForbidden, "forbidden", "complete provider registration first", nil)
			return providers.Provider{}, false
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to resolve provider", nil)
		return providers.Provider{}, false
	}
	return provider, true
}
