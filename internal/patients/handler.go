package patients

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"neuroscan-backend/internal/providers"
	"neuroscan-backend/internal/shared/server/middleware"
	"neuroscan-backend/internal/shared/server/respond"
)

// Handler wires roster and patient self-service routes.
type Handler struct {
	Svc       *Service
	Providers *providers.Service
}

func NewHandler(svc *Service, providerSvc *providers.Service) *Handler {
	return &Handler{Svc: svc, Providers: providerSvc}
}

// RegisterRoutes attaches roster routes to a doctor-guarded group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/patients", h.create)
	rg.GET("/patients", h.roster)
	rg.GET("/patients/:id", h.get)
	rg.PUT("/patients/:id", h.update)
	rg.DELETE("/patients/:id", h.remove)
}

// RegisterSelfRoutes attaches self-service routes to a patient-guarded
// group.
func (h *Handler) RegisterSelfRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.self)
	rg.PUT("/profile", h.selfUpdate)
}

type patientRequest struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

type selfUpdateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *Handler) create(c *gin.Context) {
	provider, ok := h.resolveProvider(c)
	if !ok {
		return
	}

	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	patient, err := h.Svc.Create(c.Request.Context(), provider.ID, Patient{
		Name:   req.Name,
		Age:    req.Age,
		Gender: req.Gender,
		Email:  req.Email,
		Phone:  req.Phone,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create patient", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, patient)
}

func (h *Handler) roster(c *gin.Context) {
	provider, ok := h.resolveProvider(c)
	if !ok {
		return
	}

	list, err := h.Svc.Roster(c.Request.Context(), provider.ID, c.Query("search"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list patients", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"items": list, "totalItems": len(list)})
}

func (h *Handler) get(c *gin.Context) {
	provider, ok := h.resolveProvider(c)
	if !ok {
		return
	}

	patient, err := h.Svc.Get(c.Request.Context(), provider.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "patient not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load patient", nil)
		return
	}
	respond.JSON(c, http.StatusOK, patient)
}

func (h *Handler) update(c *gin.Context) {
	provider, ok := h.resolveProvider(c)
	if !ok {
		return
	}

	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	patient, err := h.Svc.Update(c.Request.Context(), provider.ID, c.Param("id"), Patient{
		Name:   req.Name,
		Age:    req.Age,
		Gender: req.Gender,
		Email:  req.Email,
		Phone:  req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "patient not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update patient", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, patient)
}

func (h *Handler) remove(c *gin.Context) {
	provider, ok := h.resolveProvider(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), provider.ID, c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "patient not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete patient", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) self(c *gin.Context) {
	email := middleware.UserEmailFromContext(c)
	patient, err := h.Svc.SelfByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no patient record for this account", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}
	respond.JSON(c, http.StatusOK, patient)
}

func (h *Handler) selfUpdate(c *gin.Context) {
	var req selfUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	email := middleware.UserEmailFromContext(c)
	patient, err := h.Svc.SelfUpdate(c.Request.Context(), email, req.Name, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no patient record for this account", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, patient)
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
