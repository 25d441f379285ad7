package handler

import "net/http"

// RegisterRoutes mounts the HTML surface and the JSON API (Go 1.22+ patterns).
func RegisterRoutes(mux *http.ServeMux, pages *PageHandler, api *APIHandler) {
	// Health check
	mux.HandleFunc("GET /health", api.HealthCheck)

	// Page
	mux.HandleFunc("GET /{$}", pages.Index)
	mux.HandleFunc("POST /view", pages.ShowView)
	mux.HandleFunc("POST /search", pages.Search)
	mux.HandleFunc("POST /categories/toggle", pages.ToggleCategory)
	mux.HandleFunc("POST /admin", pages.SetAdmin)

	// Articles
	mux.HandleFunc("POST /articles/new", pages.NewArticle)
	mux.HandleFunc("POST /articles/{id}/open", pages.OpenArticle)
	mux.HandleFunc("POST /articles/{id}/edit", pages.EditArticle)
	mux.HandleFunc("POST /articles/{id}/trash", pages.TrashArticle)
	mux.HandleFunc("POST /articles/{id}/publish", pages.PublishNow)
	mux.HandleFunc("POST /articles/{id}/feedback", pages.Feedback)
	mux.HandleFunc("POST /articles/{id}/versions", pages.Versions)
	mux.HandleFunc("POST /articles/{id}/versions/{index}/restore", pages.RestoreVersion)
	mux.HandleFunc("GET /articles/{id}/export.md", api.ExportMarkdown)

	// Editors
	mux.HandleFunc("POST /editor/article", pages.ArticleEditor)
	mux.HandleFunc("POST /editor/modal", pages.Modal)
	mux.HandleFunc("POST /editor/update", pages.UpdateEditor)

	// Updates
	mux.HandleFunc("POST /updates/new", pages.NewUpdate)
	mux.HandleFunc("POST /updates/{id}/like", pages.LikeUpdate)
	mux.HandleFunc("POST /updates/{id}/trash", pages.TrashUpdate)

	// Trash
	mux.HandleFunc("POST /trash/{index}/restore", pages.RestoreTrash)
	mux.HandleFunc("POST /trash/{index}/purge", pages.PurgeTrash)

	// JSON API
	mux.HandleFunc("GET /api/articles", api.ListArticles)
	mux.HandleFunc("GET /api/articles/{id}", api.GetArticle)
	mux.HandleFunc("POST /api/articles/{id}/feedback", api.RecordFeedback)
	mux.HandleFunc("GET /api/updates", api.ListUpdates)
	mux.HandleFunc("POST /api/updates/{id}/like", api.LikeUpdate)
	mux.HandleFunc("GET /api/scheduled", api.ListScheduled)
	mux.HandleFunc("GET /api/trash", api.ListTrash)
	mux.HandleFunc("GET /api/analytics", api.GetAnalytics)
	mux.HandleFunc("GET /api/vocabulary", api.GetVocabulary)
	mux.HandleFunc("GET /api/state", api.GetState)
}
