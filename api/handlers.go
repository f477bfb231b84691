package api

import (
	"github.com/vibehub/showcase-backend/database"
	"github.com/vibehub/showcase-backend/notify"
	"github.com/vibehub/showcase-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, bus *notify.Bus, storage *services.StorageService) *routeHandlers {
	passwords := services.NewPasswordService()

	return &routeHandlers{
		authHandler:       newAuthHandler(db.UserRepo(), db.SessionRepo(), passwords),
		projectHandler:    newProjectHandler(db.ProjectRepo(), db.ViewRepo(), db.TagRepo(), storage),
		engagementHandler: newEngagementHandler(db.ProjectRepo(), db.LikeRepo(), db.BookmarkRepo(), db.CommentRepo(), bus),
		commentHandler:    newCommentHandler(db.ProjectRepo(), db.CommentRepo(), bus),
		blogPostHandler:   newBlogPostHandler(db.BlogPostRepo(), db.UserRepo()),
		adminHandler:      newAdminHandler(db.ProjectRepo(), db.UserRepo()),
	}
}
