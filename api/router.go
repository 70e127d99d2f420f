package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	appmw "github.com/prasetyowira/qrforge/api/middleware"
	"github.com/prasetyowira/qrforge/constant"
	appLogger "github.com/prasetyowira/qrforge/infrastructure/logger"
	"github.com/prasetyowira/qrforge/infrastructure/ratelimit"
)

// Router represents the application router
type Router struct {
	handler *Handler
	limiter *ratelimit.Limiter
	router  *chi.Mux
}

// NewRouter creates a new router
func NewRouter(handler *Handler, limiter *ratelimit.Limiter) *Router {
	r := chi.NewRouter()

	// Middleware setup
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(appmw.RequestLogger())

	return &Router{
		handler: handler,
		limiter: limiter,
		router:  r,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	limited := appmw.RateLimit(r.limiter)

	// Generation routes spend the caller's daily quota
	r.router.With(limited).Post(constant.RouteGenerateQRPage, r.handler.GenerateQRPage)
	r.router.With(limited).Post(constant.RouteGenerateBarcodePage, r.handler.GenerateBarcodePage)
	r.router.With(limited).Post(constant.RouteAPIGenerateQR, r.handler.APIGenerateQR)
	r.router.With(limited).Post(constant.RouteAPIGenerateBarcode, r.handler.APIGenerateBarcode)
	r.router.With(limited).Post(constant.RouteAPIGenerateWifiQR, r.handler.APIGenerateWifiQR)

	// Public routes
	r.router.Get(constant.RouteHome, r.handler.Home)
	r.router.Get(constant.RouteDocs, r.handler.Docs)
	r.router.Get(constant.RouteGenerateQRPage, r.handler.Home)
	r.router.Get(constant.RouteArtifactView, r.handler.ViewArtifact)
	r.router.Get(constant.RouteArtifactImage, r.handler.ArtifactImage)
	r.router.Get(constant.RouteArtifactScan, r.handler.ScanArtifact)

	// Admin routes
	r.router.Post(constant.RouteAdminLogin, r.handler.AdminLogin)
	r.router.Get(constant.RouteAdminDashboard, r.handler.AdminDashboard)

	// Healthcheck
	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, req *http.Request) {
		appLogger.CtxDebug(req.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(constant.MsgHealthy))
	})
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
