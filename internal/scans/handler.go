package scans

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"neuroscan-backend/internal/listview"
	"neuroscan-backend/internal/patients"
	"neuroscan-backend/internal/providers"
	"neuroscan-backend/internal/shared/server/middleware"
	"neuroscan-backend/internal/shared/server/respond"
)

const maxUploadSize = 100 << 20 // 100MB, full-resolution NIfTI volumes

// defaultPageSize matches the portal's scan table.
const defaultPageSize = 10

// Handler wires scan HTTP routes to the service. Every route resolves
// the requesting provider and refuses scans of patients outside their
// roster.
type Handler struct {
	Svc       *Service
	Providers *providers.Service
	Patients  *patients.Service
}

func NewHandler(svc *Service, providerSvc *providers.Service, patientSvc *patients.Service) *Handler {
	return &Handler{Svc: svc, Providers: providerSvc, Patients: patientSvc}
}

// RegisterRoutes attaches scan routes to a doctor-guarded group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/patients/:id/scans", h.upload)
	rg.GET("/patients/:id/scans", h.list)
	rg.GET("/scans/:id", h.get)
	rg.GET("/scans/:id/download", h.download)
	rg.DELETE("/scans/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	provider, ok := h.resolveProvider(c)
	if !ok {
		return
	}
	patientID := c.Param("id")
	if !h.ownsPatient(c, provider, patientID) {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

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

	scan, err := h.Svc.Upload(c.Request.Context(), patientID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload scan", nil)
		}
		return
	}

	c.Set("scanId", scan.ID)
	respond.JSON(c, http.StatusCreated, toResponse(scan))
}

func (h *Handler) list(c *gin.Context) {
	provider, ok := h.resolveProvider(c)
	if !ok {
		return
	}
	patientID := c.Param("id")
	if !h.ownsPatient(c, provider, patientID) {
		return
	}

	state := listview.StateFromQuery(c.Request.URL.Query(), listview.SortByDate, defaultPageSize)

	page, err := h.Svc.ListPage(c.Request.Context(), patientID, state)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list scans", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toPageResponse(page))
}

func (h *Handler) get(c *gin.Context) {
	scan, ok := h.ownedScan(c)
	if !ok {
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(scan))
}

func (h *Handler) download(c *gin.Context) {
	scan, ok := h.ownedScan(c)
	if !ok {
		return
	}
	c.Redirect(http.StatusFound, scan.ImageURL)
}

func (h *Handler) remove(c *gin.Context) {
	scan, ok := h.ownedScan(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), scan.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "scan not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete scan", nil)
		return
	}
	c.Set("scanId", scan.ID)
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

// ownedScan loads the :id scan and verifies its patient belongs to the
// requesting provider. Foreign scans read as not found.
func (h *Handler) ownedScan(c *gin.Context) (Scan, bool) {
	provider, ok := h.resolveProvider(c)
	if !ok {
		return Scan{}, false
	}

	scan, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "scan not found", nil)
			return Scan{}, false
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch scan", nil)
		return Scan{}, false
	}

	if _, err := h.Patients.Get(c.Request.Context(), provider.ID, scan.PatientID); err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "scan not found", nil)
			return Scan{}, false
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch scan", nil)
		return Scan{}, false
	}
	return scan, true
}

func (h *Handler) ownsPatient(c *gin.Context, provider providers.Provider, patientID string) bool {
	if _, err := h.Patients.Get(c.Request.Context(), provider.ID, patientID); err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "patient not found", nil)
			return false
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load patient", nil)
		return false
	}
	return true
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
