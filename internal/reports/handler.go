package reports

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

const defaultPageSize = 10

// Handler wires report HTTP routes to the service. Doctor-facing routes
// resolve the requesting provider and refuse reports of patients outside
// their roster.
type Handler struct {
	Svc       *Service
	Providers *providers.Service
	Patients  *patients.Service
}

func NewHandler(svc *Service, providerSvc *providers.Service, patientSvc *patients.Service) *Handler {
	return &Handler{Svc: svc, Providers: providerSvc, Patients: patientSvc}
}

// RegisterRoutes attaches the doctor-facing report routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/patients/:id/reports", h.listForPatient)
	rg.GET("/reports/:id", h.get)
}

// RegisterSelfRoutes attaches the patient-facing report routes. The
// signed-in account is matched to its patient record by email.
func (h *Handler) RegisterSelfRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports", h.selfList)
}

func (h *Handler) selfList(c *gin.Context) {
	email := middleware.UserEmailFromContext(c)
	patient, err := h.Svc.Patients.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no patient record for this account", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to resolve patient", nil)
		return
	}

	state := listview.StateFromQuery(c.Request.URL.Query(), listview.SortByDate, defaultPageSize)
	page, err := h.Svc.ListPage(c.Request.Context(), patient.ID, state)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list reports", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toPageResponse(page))
}

func (h *Handler) listForPatient(c *gin.Context) {
	provider, ok := h.resolveProvider(c)
	if !ok {
		return
	}
	patientID := c.Param("id")
	if _, err := h.Patients.Get(c.Request.Context(), provider.ID, patientID); err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "patient not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load patient", nil)
		return
	}

	state := listview.StateFromQuery(c.Request.URL.Query(), listview.SortByDate, defaultPageSize)
	page, err := h.Svc.ListPage(c.Request.Context(), patientID, state)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list reports", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toPageResponse(page))
}

func (h *Handler) get(c *gin.Context) {
	provider, ok := h.resolveProvider(c)
	if !ok {
		return
	}

	report, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "report not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch report", nil)
		return
	}

	// Foreign reports read as not found.
	if _, err := h.Patients.Get(c.Request.Context(), provider.ID, report.PatientID); err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "report not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch report", nil)
		return
	}

	c.Set("reportId", report.ID)
	respond.JSON(c, http.StatusOK, report)
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
