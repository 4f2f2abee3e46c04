// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	healthfeature "github.com/dalemusser/rosterhub/internal/app/features/health"
	listsfeature "github.com/dalemusser/rosterhub/internal/app/features/lists"
	notificationsfeature "github.com/dalemusser/rosterhub/internal/app/features/notifications"
	"github.com/dalemusser/rosterhub/internal/app/system/apierr"
	"github.com/dalemusser/rosterhub/internal/app/system/auth"
	"github.com/dalemusser/rosterhub/internal/app/system/metrics"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed, so the stores and workers created there
// are available here.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// The auth middleware fetches the user document fresh per request so
	// admin/verified flag changes take effect immediately.
	authMW := auth.NewMiddleware(users, users, logger)

	r := chi.NewRouter()
	r.Use(apierr.RequestID)
	r.Use(authMW.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.RosterHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus exposition
	r.Handle("/metrics", metrics.Handler())

	// Lists API
	listsHandler := listsfeature.NewHandler(lists, users, notifier, deactivator, logger)
	r.Mount("/lists", listsfeature.Routes(listsHandler))

	// Per-user notification feed
	notificationsHandler := notificationsfeature.NewHandler(notifications, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler))

	return r, nil
}
