package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vibehub/showcase-backend/database"
	"github.com/vibehub/showcase-backend/errs"
	"github.com/vibehub/showcase-backend/models"
	"github.com/vibehub/showcase-backend/notify"
)

type engagementHandler struct {
	responder    Responder
	logger       zerolog.Logger
	projectRepo  *database.ProjectRepo
	likeRepo     *database.LikeRepo
	bookmarkRepo *database.BookmarkRepo
	commentRepo  *database.CommentRepo
	bus          *notify.Bus
}

func newEngagementHandler(projectRepo *database.ProjectRepo, likeRepo *database.LikeRepo, bookmarkRepo *database.BookmarkRepo, commentRepo *database.CommentRepo, bus *notify.Bus) engagementHandler {
	logger := log.With().Str("handlerName", "engagementHandler").Logger()

	return engagementHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		projectRepo:  projectRepo,
		likeRepo:     likeRepo,
		bookmarkRepo: bookmarkRepo,
		commentRepo:  commentRepo,
		bus:          bus,
	}
}

// likeProject likes a project for the signed-in user
// @Summary Like project
// @Tags Engagement
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} map[string]int64 "New like count"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID}/like [post]
func (h engagementHandler) likeProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		projectID, ok := parseIDParam(chi.URLParam(r, "projectID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID, viewerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.likeRepo.Add(r.Context(), models.NewProjectLike(viewerID, projectID)); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "like", err))
			return
		}

		h.bus.Publish(notify.Event{
			Type:        notify.EventProjectLiked,
			ActorID:     viewerID,
			RecipientID: project.Project.AuthorID,
			ProjectID:   projectID,
		})

		count, err := h.likeRepo.CountForProject(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "likes", err))
			return
		}

		h.responder.WriteJSON(w, map[string]int64{"likesCount": count})
	}
}

// unlikeProject removes the user's like from a project
// @Summary Unlike project
// @Tags Engagement
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} map[string]int64 "New like count"
// @Router /api/projects/{projectID}/like [delete]
func (h engagementHandler) unlikeProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		projectID, ok := parseIDParam(chi.URLParam(r, "projectID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.likeRepo.Remove(r.Context(), models.NewProjectLike(viewerID, projectID)); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "like", err))
			return
		}

		count, err := h.likeRepo.CountForProject(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "likes", err))
			return
		}

		h.responder.WriteJSON(w, map[string]int64{"likesCount": count})
	}
}

// likeComment likes a comment
// @Summary Like comment
// @Tags Engagement
// @Param commentID path int true "Comment ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Comment not found"
// @Router /api/comments/{commentID}/like [post]
func (h engagementHandler) likeComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		commentID, ok := parseIDParam(chi.URLParam(r, "commentID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid commentID"))
			return
		}

		comment, err := h.commentRepo.FindByID(r.Context(), commentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comment", err))
			return
		}
		if comment == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("comment not found"))
			return
		}

		if err := h.likeRepo.Add(r.Context(), models.NewCommentLike(viewerID, commentID)); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "like", err))
			return
		}

		h.bus.Publish(notify.Event{
			Type:        notify.EventCommentLiked,
			ActorID:     viewerID,
			RecipientID: comment.AuthorID,
			ProjectID:   comment.ProjectID,
			CommentID:   commentID,
		})

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// unlikeComment removes the user's like from a comment
// @Summary Unlike comment
// @Tags Engagement
// @Param commentID path int true "Comment ID"
// @Success 200 {object} map[string]string "Success message"
// @Router /api/comments/{commentID}/like [delete]
func (h engagementHandler) unlikeComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		commentID, ok := parseIDParam(chi.URLParam(r, "commentID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid commentID"))
			return
		}

		if err := h.likeRepo.Remove(r.Context(), models.NewCommentLike(viewerID, commentID)); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "like", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// likeReply likes a comment reply
// @Summary Like reply
// @Tags Engagement
// @Param replyID path int true "Reply ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Reply not found"
// @Router /api/replies/{replyID}/like [post]
func (h engagementHandler) likeReply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		replyID, ok := parseIDParam(chi.URLParam(r, "replyID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid replyID"))
			return
		}

		reply, err := h.commentRepo.FindReplyByID(r.Context(), replyID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "reply", err))
			return
		}
		if reply == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("reply not found"))
			return
		}

		if err := h.likeRepo.Add(r.Context(), models.NewReplyLike(viewerID, replyID)); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "like", err))
			return
		}

		h.bus.Publish(notify.Event{
			Type:        notify.EventReplyLiked,
			ActorID:     viewerID,
			RecipientID: reply.AuthorID,
			CommentID:   reply.CommentID,
			ReplyID:     replyID,
		})

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// unlikeReply removes the user's like from a reply
// @Summary Unlike reply
// @Tags Engagement
// @Param replyID path int true "Reply ID"
// @Success 200 {object} map[string]string "Success message"
// @Router /api/replies/{replyID}/like [delete]
func (h engagementHandler) unlikeReply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		replyID, ok := parseIDParam(chi.URLParam(r, "replyID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid replyID"))
			return
		}

		if err := h.likeRepo.Remove(r.Context(), models.NewReplyLike(viewerID, replyID)); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "like", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// bookmarkProject bookmarks a project for the signed-in user
// @Summary Bookmark project
// @Tags Engagement
// @Param projectID path int true "Project ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID}/bookmark [post]
func (h engagementHandler) bookmarkProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		projectID, ok := parseIDParam(chi.URLParam(r, "projectID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID, viewerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.bookmarkRepo.Add(r.Context(), viewerID, projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "bookmark", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// unbookmarkProject removes the user's bookmark
// @Summary Remove bookmark
// @Tags Engagement
// @Param projectID path int true "Project ID"
// @Success 200 {object} map[string]string "Success message"
// @Router /api/projects/{projectID}/bookmark [delete]
func (h engagementHandler) unbookmarkProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		projectID, ok := parseIDParam(chi.URLParam(r, "projectID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.bookmarkRepo.Remove(r.Context(), viewerID, projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "bookmark", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// getBookmarkedProjects lists the signed-in user's bookmarked projects
// @Summary List bookmarked projects
// @Tags Engagement
// @Produce json
// @Success 200 {object} map[string]interface{} "Bookmarked projects"
// @Router /api/bookmarks [get]
func (h engagementHandler) getBookmarkedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		ids, err := h.bookmarkRepo.ProjectIDsForUser(r.Context(), viewerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "bookmarks", err))
			return
		}

		projects := make([]models.ProjectCard, 0, len(ids))
		for _, id := range ids {
			card, err := h.projectRepo.FindByID(r.Context(), id, viewerID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
				return
			}
			// Bookmarks can outlive visibility of the project
			if card != nil {
				projects = append(projects, *card)
			}
		}

		h.responder.WriteJSON(w, map[string]interface{}{"projects": projects})
	}
}
