package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"neuroscan-backend/internal/patients"
	"neuroscan-backend/internal/profiles"
	"neuroscan-backend/internal/providers"
	"neuroscan-backend/internal/shared/server/middleware"
	"neuroscan-backend/internal/shared/server/respond"
)

// MeHandler serves the signed-in account's combined view: auth identity,
// portal profile and the role-specific record behind it.
type MeHandler struct {
	Profiles  *profiles.Service
	Providers *providers.Service
	Patients  *patients.Service
}

// RegisterRoutes attaches the account routes. These sit behind auth but
// outside the role guards so first-login accounts can reach them.
func (h *MeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.POST("/me/complete-profile", h.completeProfile)
}

func (h *MeHandler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	response := gin.H{"userId": userID}
	if email := middleware.UserEmailFromContext(c); email != "" {
		response["email"] = email
	}
	if name := middleware.UserNameFromContext(c); name != "" {
		response["name"] = name
	}

	ctx := c.Request.Context()
	profile, err := h.Profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			respond.JSON(c, http.StatusOK, response)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}

	response["role"] = profile.UserType
	response["firstLogin"] = profile.FirstLogin

	switch profile.UserType {
	case profiles.UserTypeDoctor:
		if provider, err := h.Providers.ByEmail(ctx, profile.Email); err == nil {
			response["provider"] = provider
		}
	case profiles.UserTypePatient:
		if patient, err := h.Patients.SelfByEmail(ctx, profile.Email); err == nil {
			response["patient"] = patient
		}
	}

	respond.JSON(c, http.StatusOK, response)
}

type completeProfileRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// completeProfile finishes first-login onboarding. Doctors register a
// provider record; patients only clear the first-login flag since their
// record is created by their doctor.
func (h *MeHandler) completeProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	ctx := c.Request.Context()
	profile, err := h.Profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			respond.Error(c, http.StatusForbidden, "forbidden", "no portal profile for this account", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}

	response := gin.H{"role": profile.UserType}

	if profile.UserType == profiles.UserTypeDoctor {
		var req completeProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
		name := req.Name
		if name == "" {
			name = middleware.UserNameFromContext(c)
		}
		provider, err := h.Providers.Register(ctx, profile.Email, name, req.Specialization)
		if err != nil {
			if errors.Is(err, providers.ErrInvalidInput) {
				respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register provider", nil)
			return
		}
		response["provider"] = provider
	}

	if err := h.Profiles.CompleteFirstLogin(ctx, userID); err != nil && !errors.Is(err, profiles.ErrNotFound) {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		return
	}
	response["firstLogin"] = false

	respond.JSON(c, http.StatusOK, response)
}
