package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shuul-console/internal/handlers"
	"shuul-console/internal/middlewares"
)

func setupRouter(ctx *middlewares.AppContext) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middlewares.ClientIPMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.MetricsMiddleware)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(ctx.SessionManager.LoadAndSave)

	r.Use(middlewares.AppContextMiddleware(ctx))
	r.Use(middlewares.SessionTaskMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ctx.Config.CORS.AllowedOrigins,
		AllowedMethods:   ctx.Config.CORS.AllowedMethods,
		AllowedHeaders:   ctx.Config.CORS.AllowedHeaders,
		ExposedHeaders:   ctx.Config.CORS.ExposedHeaders,
		AllowCredentials: ctx.Config.CORS.AllowCredentials,
		MaxAge:           ctx.Config.CORS.MaxAgeSeconds,
	}))

	r.Use(middleware.Compress(5))

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/dist/assets"))))
	r.Handle("/favicon.ico", http.FileServer(http.Dir("web/dist")))

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, "web/dist/index.html")
	})

	r.Route("/api/console", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/status", ctx.HandlerFunc(handlers.AuthStatusHandler))
			r.Post("/login", ctx.HandlerFunc(handlers.LoginPOST))
			r.Post("/logout", ctx.HandlerFunc(handlers.LogoutPOST))
		})

		r.Route("/prefs", func(r chi.Router) {
			r.Get("/", ctx.HandlerFunc(handlers.PrefsGET))
			r.Post("/mode", ctx.HandlerFunc(handlers.ModePOST))
			r.Post("/locale", ctx.HandlerFunc(handlers.LocalePOST))
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireAdmin)

			r.Get("/dashboard", ctx.HandlerFunc(handlers.DashboardGET))

			r.Route("/charts", func(r chi.Router) {
				r.Get("/top_countries", ctx.HandlerFunc(handlers.TopCountriesGET))
				r.Get("/top_rules", ctx.HandlerFunc(handlers.TopRulesGET))
				r.Get("/evolution", ctx.HandlerFunc(handlers.EvolutionGET))
			})

			r.Get("/resources", ctx.HandlerFunc(handlers.ResourcesGET))

			r.Route("/tables/{resource}", func(r chi.Router) {
				r.Get("/", ctx.HandlerFunc(handlers.TableGET))
				r.Post("/filter", ctx.HandlerFunc(handlers.TableFilterPOST))
				r.Post("/change", ctx.HandlerFunc(handlers.TableChangePOST))
				r.Route("/dialog", func(r chi.Router) {
					r.Post("/open", ctx.HandlerFunc(handlers.DialogOpenPOST))
					r.Post("/field", ctx.HandlerFunc(handlers.DialogFieldPOST))
					r.Post("/confirm", ctx.HandlerFunc(handlers.DialogConfirmPOST))
					r.Post("/cancel", ctx.HandlerFunc(handlers.DialogCancelPOST))
				})
			})
		})

		r.Get("/healthz", ctx.HandlerFunc(handlers.HandlerHealth))
	})

	return r
}

func setupDebugRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/debug", middleware.Profiler())

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
