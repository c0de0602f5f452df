package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "neuroscan-backend/internal/auth"
	"neuroscan-backend/internal/patients"
	"neuroscan-backend/internal/profiles"
	"neuroscan-backend/internal/providers"
	"neuroscan-backend/internal/reports"
	"neuroscan-backend/internal/scans"
	"neuroscan-backend/internal/screenings"
	"neuroscan-backend/internal/shared/config"
	"neuroscan-backend/internal/shared/metrics"
	"neuroscan-backend/internal/shared/server/middleware"
	"neuroscan-backend/internal/shared/server/respond"
	"neuroscan-backend/internal/shared/storage/object"
	"neuroscan-backend/internal/uploads"
)

// Deps carries the wired services and handlers the router needs. They
// are constructed in bootstrap so tests can swap implementations.
type Deps struct {
	Profiles    *profiles.Service
	GoogleAuth  *googleauth.GoogleService
	Me          *MeHandler
	Patients    *patients.Handler
	Scans       *scans.Handler
	Reports     *reports.Handler
	Screenings  *screenings.Handler
	ProviderSvc *providers.Service
	PatientSvc  *patients.Service
	Store       object.ObjectStore
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(rateLimits()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	api.GET("/files/*key", serveFile(deps.Store))

	deps.GoogleAuth.RegisterRoutes(api)
	deps.Me.RegisterRoutes(api)

	resolveRole := func(c *gin.Context) (string, error) {
		return deps.Profiles.RoleOf(c.Request.Context(), middleware.UserIDFromContext(c))
	}

	doctor := api.Group("", middleware.RequireRole(resolveRole, profiles.UserTypeDoctor))
	deps.Patients.RegisterRoutes(doctor)
	deps.Scans.RegisterRoutes(doctor)
	deps.Reports.RegisterRoutes(doctor)
	deps.Screenings.RegisterRoutes(doctor)
	uploads.RegisterRoutes(doctor, deps.ProviderSvc, deps.PatientSvc)

	patient := api.Group("", middleware.RequireRole(resolveRole, profiles.UserTypePatient))
	deps.Patients.RegisterSelfRoutes(patient)
	deps.Reports.RegisterSelfRoutes(patient)

	return r
}

// rateLimits keeps polling endpoints looser than mutation traffic.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 10, Burst: 20},
			"POLLING": {Rate: 5, Burst: 10},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodGet {
				return "DEFAULT"
			}
			switch c.FullPath() {
			case "/api/v1/reports/:id", "/api/v1/screenings/usage":
				return "POLLING"
			}
			return "DEFAULT"
		},
	}
}

// serveFile streams locally stored objects. S3-backed deployments hand
// out direct object URLs and never hit this route.
func serveFile(store object.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" || strings.Contains(key, "..") {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file key", nil)
			return
		}

		rc, err := store.Open(c.Request.Context(), key)
		if err != nil {
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}
		defer rc.Close()

		contentType := "application/octet-stream"
		if strings.HasSuffix(key, ".txt") {
			contentType = "text/plain; charset=utf-8"
		}
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		_, _ = io.Copy(c.Writer, rc)
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
