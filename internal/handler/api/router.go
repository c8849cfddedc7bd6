// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/emckay/folio/internal/middleware"
)

// Router builds the full route tree: public reads, the rate-limited
// subscribe endpoint, feeds, uploads serving, and the token-guarded admin
// surface.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))

	// Feeds and crawler endpoints live at the root, outside /api.
	r.Get("/rss.xml", h.RSS)
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
	r.Get("/healthz", h.Healthz)

	// Stored uploads are served directly from disk.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.cfg.UploadsDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		// Public surface.
		r.Get("/posts", h.ListPublishedPosts)
		r.Get("/posts/{slug}", h.GetPublishedPost)
		r.Get("/prep", h.ListPublishedPaths)
		r.Get("/prep/{id}", h.GetPublishedPathTree)
		r.Get("/moments", h.ListMoments)
		r.Get("/moments/{id}", h.GetMoment)
		r.Get("/content/{key}", h.GetPageContent)
		r.Get("/social/{platform}", h.GetSocialFeed)

		r.Group(func(r chi.Router) {
			r.Use(middleware.PerIPRateLimit(1, 5))
			r.Post("/subscribe", h.Subscribe)
		})

		// Admin surface.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(h.cfg.AdminToken))

			r.Get("/posts", h.ListAllPosts)
			r.Post("/posts", h.CreatePost)
			r.Get("/posts/{slug}", h.GetPost)
			r.Put("/posts/{slug}", h.UpdatePost)
			r.Delete("/posts/{slug}", h.DeletePost)

			r.Get("/prep", h.ListPaths)
			r.Post("/prep", h.CreatePath)
			r.Get("/prep/{id}", h.GetPathTree)
			r.Put("/prep/{id}", h.UpdatePath)
			r.Delete("/prep/{id}", h.DeletePath)
			r.Post("/prep/topics", h.CreateTopic)
			r.Put("/prep/topics/{id}", h.UpdateTopic)
			r.Delete("/prep/topics/{id}", h.DeleteTopic)
			r.Post("/prep/questions", h.CreateQuestion)
			r.Put("/prep/questions/{id}", h.UpdateQuestion)
			r.Delete("/prep/questions/{id}", h.DeleteQuestion)
			r.Post("/prep/resources", h.CreateResource)
			r.Put("/prep/resources/{id}", h.UpdateResource)
			r.Delete("/prep/resources/{id}", h.DeleteResource)

			r.Post("/moments", h.CreateMoment)
			r.Put("/moments/{id}", h.UpdateMoment)
			r.Delete("/moments/{id}", h.DeleteMoment)

			r.Get("/events", h.ListEvents)
			r.Get("/events/upcoming", h.UpcomingEvents)
			r.Post("/events", h.CreateEvent)
			r.Put("/events/{id}", h.UpdateEvent)
			r.Delete("/events/{id}", h.DeleteEvent)

			r.Get("/journal", h.ListJournal)
			r.Post("/journal", h.CreateJournalEntry)
			r.Put("/journal/{id}", h.UpdateJournalEntry)
			r.Delete("/journal/{id}", h.DeleteJournalEntry)

			r.Get("/finance", h.ListTransactions)
			r.Post("/finance", h.CreateTransaction)
			r.Put("/finance/{id}", h.UpdateTransaction)
			r.Delete("/finance/{id}", h.DeleteTransaction)

			r.Get("/notes", h.ListNotes)
			r.Post("/notes", h.CreateNote)
			r.Put("/notes/{id}", h.UpdateNote)
			r.Delete("/notes/{id}", h.DeleteNote)

			r.Put("/content/{key}", h.PutPageContent)
			r.Get("/subscribers", h.ListSubscribers)
			r.Post("/social/{platform}/refresh", h.RefreshSocialFeed)
			r.Post("/uploads/{bucket}", h.Upload)
			r.Delete("/uploads/{bucket}/{name}", h.DeleteUpload)
			r.Post("/assist", h.Assist)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteNotFound(w, "route not found")
	})

	return r
}
