package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes sets up the public, authenticated and admin route groups
func setupRoutes(r chi.Router, handlers *routeHandlers, sessions sessionMiddleware, admins adminMiddleware) {
	// Public routes; the viewer is resolved when a session cookie is present
	// so engagement flags reflect the signed-in user
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(sessions.resolveViewer)

		r.Post("/api/auth/register", handlers.authHandler.register())
		r.Post("/api/auth/login", handlers.authHandler.login())
		r.Post("/api/auth/logout", handlers.authHandler.logout())

		r.Get("/api/projects", handlers.projectHandler.getProjects())
		r.Get("/api/projects/featured", handlers.projectHandler.getFeaturedProject())
		r.Get("/api/projects/trending", handlers.projectHandler.getTrendingProjects())
		r.Get("/api/projects/{projectID}", handlers.projectHandler.getProject())
		r.Post("/api/projects/{projectID}/view", handlers.projectHandler.recordView())
		r.Post("/api/projects/{projectID}/share", handlers.projectHandler.shareProject())
		r.Get("/api/projects/{projectID}/comments", handlers.commentHandler.getComments())

		r.Get("/api/tags", handlers.projectHandler.getTags())

		r.Get("/api/blog", handlers.blogPostHandler.getBlogPosts())
		r.Get("/api/blog/{slug}", handlers.blogPostHandler.getBlogPost())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(sessions.resolveViewer)
		r.Use(sessions.requireAuth)

		r.Get("/api/auth/me", handlers.authHandler.me())
		r.Put("/api/auth/me", handlers.authHandler.updateProfile())

		r.Post("/api/projects", handlers.projectHandler.createProject())
		r.Put("/api/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/api/projects/{projectID}", handlers.projectHandler.deleteProject())
		r.Post("/api/projects/{projectID}/evaluate", handlers.projectHandler.evaluateProject())
		r.Post("/api/projects/{projectID}/image", handlers.projectHandler.uploadProjectImage())

		r.Post("/api/projects/{projectID}/like", handlers.engagementHandler.likeProject())
		r.Delete("/api/projects/{projectID}/like", handlers.engagementHandler.unlikeProject())
		r.Post("/api/projects/{projectID}/bookmark", handlers.engagementHandler.bookmarkProject())
		r.Delete("/api/projects/{projectID}/bookmark", handlers.engagementHandler.unbookmarkProject())
		r.Get("/api/bookmarks", handlers.engagementHandler.getBookmarkedProjects())

		r.Post("/api/projects/{projectID}/comments", handlers.commentHandler.createComment())
		r.Delete("/api/comments/{commentID}", handlers.commentHandler.deleteComment())
		r.Post("/api/comments/{commentID}/replies", handlers.commentHandler.createReply())
		r.Post("/api/comments/{commentID}/like", handlers.engagementHandler.likeComment())
		r.Delete("/api/comments/{commentID}/like", handlers.engagementHandler.unlikeComment())
		r.Post("/api/replies/{replyID}/like", handlers.engagementHandler.likeReply())
		r.Delete("/api/replies/{replyID}/like", handlers.engagementHandler.unlikeReply())

		r.Get("/api/notifications/stream", handlers.engagementHandler.streamNotifications())

		r.Post("/api/blog", handlers.blogPostHandler.createBlogPost())
		r.Put("/api/blog/{slug}", handlers.blogPostHandler.updateBlogPost())
		r.Delete("/api/blog/{slug}", handlers.blogPostHandler.deleteBlogPost())
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(sessions.resolveViewer)
		r.Use(sessions.requireAuth)
		r.Use(admins.requireAdmin)

		r.Get("/api/admin/users", handlers.adminHandler.getUsers())
		r.Post("/api/admin/projects/{projectID}/feature", handlers.adminHandler.featureProject())
		r.Delete("/api/admin/projects/{projectID}", handlers.adminHandler.deleteProject())
	})
}
