package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"swipe-go/internal/config"
	"swipe-go/internal/observability/metrics"
	"swipe-go/internal/transport/httpserver/handler"
	authmw "swipe-go/internal/transport/httpserver/middleware"
	"swipe-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.TokenAuth, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))
	r.Use(metrics.HTTPMetricsMiddleware)

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())
	if cfg.Media.Root != "" {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.Media.Root))))
	}

	r.Post("/auth/users", handlers.RegisterClient)
	r.Post("/auth/token/login", handlers.Login)
	r.With(auth.Middleware).Post("/auth/token/logout", handlers.Logout)

	r.Route("/users/api", func(r chi.Router) {
		r.Post("/developers", handlers.RegisterDeveloper)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/clients", handlers.ListClients)
			r.Get("/clients/me", handlers.Me)
			r.Patch("/clients/update-profile", handlers.UpdateProfile)
			r.Get("/clients/{id}", handlers.GetClient)
			r.Put("/clients/{id}", handlers.UpdateClient)
			r.Patch("/clients/{id}", handlers.UpdateClient)
			r.Patch("/clients/{id}/blacklist", handlers.ToggleBlacklist)

			r.Get("/developers", handlers.ListDevelopers)
			r.Get("/developers/{id}", handlers.GetDeveloper)
			r.Put("/developers/{id}", handlers.UpdateDeveloper)
			r.Patch("/developers/{id}", handlers.UpdateDeveloper)
			r.Delete("/developers/{id}", handlers.DeleteDeveloper)

			r.Get("/notaries", handlers.ListNotaries)
			r.Post("/notaries", handlers.CreateNotary)
			r.Get("/notaries/{id}", handlers.GetNotary)
			r.Put("/notaries/{id}", handlers.UpdateNotary)
			r.Patch("/notaries/{id}", handlers.UpdateNotary)
			r.Delete("/notaries/{id}", handlers.DeleteNotary)
		})
	})

	r.Route("/swipe/api", func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Get("/houses", handlers.ListHouses)
		r.Post("/houses", handlers.CreateHouse)
		r.Get("/houses/get-client-favourites", handlers.ListFavouriteHouses)
		r.Get("/houses/{id}", handlers.GetHouse)
		r.Put("/houses/{id}", handlers.UpdateHouse)
		r.Patch("/houses/{id}", handlers.UpdateHouse)
		r.Delete("/houses/{id}", handlers.DeleteHouse)
		r.Get("/houses/{id}/get-photos", handlers.ListHousePhotos)
		r.Post("/houses/{id}/add-photo", handlers.AddHousePhoto)
		r.Delete("/houses/{id}/remove-photo/{imageID}", handlers.RemoveHousePhoto)
		r.Post("/houses/{id}/add-to-client-favourites", handlers.AddHouseToFavourites)
		r.Delete("/houses/{id}/remove-from-client-favourites", handlers.RemoveHouseFromFavourites)

		r.Get("/flats", handlers.ListFlats)
		r.Post("/flats", handlers.CreateFlat)
		r.Get("/flats/{id}", handlers.GetFlat)
		r.Put("/flats/{id}", handlers.UpdateFlat)
		r.Patch("/flats/{id}", handlers.UpdateFlat)
		r.Delete("/flats/{id}", handlers.DeleteFlat)

		r.Get("/house_news", handlers.ListNews)
		r.Post("/house_news", handlers.CreateNews)
		r.Get("/house_news/{id}", handlers.GetNews)
		r.Put("/house_news/{id}", handlers.UpdateNews)
		r.Patch("/house_news/{id}", handlers.UpdateNews)
		r.Delete("/house_news/{id}", handlers.DeleteNews)

		r.Get("/announcements", handlers.ListAnnouncements)
		r.Post("/announcements", handlers.CreateAnnouncement)
		r.Get("/announcements/get-client-announcements", handlers.ListClientAnnouncements)
		r.Get("/announcements/get-unmoderated-announcements", handlers.ListUnmoderatedAnnouncements)
		r.Get("/announcements/get-client-favourites", handlers.ListFavouriteAnnouncements)
		r.Get("/announcements/{id}", handlers.GetAnnouncement)
		r.Put("/announcements/{id}", handlers.UpdateAnnouncement)
		r.Patch("/announcements/{id}", handlers.UpdateAnnouncement)
		r.Delete("/announcements/{id}", handlers.DeleteAnnouncement)
		r.Patch("/announcements/{id}/moderate", handlers.ModerateAnnouncement)
		r.Patch("/announcements/{id}/to-the-top", handlers.AnnouncementToTheTop)
		r.Get("/announcements/{id}/get-photos", handlers.ListAnnouncementPhotos)
		r.Post("/announcements/{id}/add-photo", handlers.AddAnnouncementPhoto)
		r.Delete("/announcements/{id}/remove-photo/{imageID}", handlers.RemoveAnnouncementPhoto)
		r.Post("/announcements/{id}/add-to-client-favourites", handlers.AddAnnouncementToFavourites)
		r.Delete("/announcements/{id}/remove-from-client-favourites", handlers.RemoveAnnouncementFromFavourites)

		r.Get("/promotions/{announcementID}", handlers.GetPromotion)
		r.Put("/promotions/{announcementID}", handlers.UpdatePromotion)
		r.Patch("/promotions/{announcementID}", handlers.UpdatePromotion)
	})

	return otelhttp.NewHandler(r, "swipe-api")
}
