package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vibehub/showcase-backend/database"
	"github.com/vibehub/showcase-backend/errs"
	"github.com/vibehub/showcase-backend/models"
	"github.com/vibehub/showcase-backend/notify"
)

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	commentRepo *database.CommentRepo
	bus         *notify.Bus
}

func newCommentHandler(projectRepo *database.ProjectRepo, commentRepo *database.CommentRepo, bus *notify.Bus) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		commentRepo: commentRepo,
		bus:         bus,
	}
}

type commentRequest struct {
	Content string `json:"content"`
}

// getComments lists a project's comments, oldest first, with replies
// @Summary List project comments
// @Tags Comments
// @Produce json
// @Param projectID path int true "Project ID"
// @Param page query int false "1-based page number"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} database.CommentPage "Page of comments"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID}/comments [get]
func (h commentHandler) getComments() http.HandlerFunc {
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

		page, limit := parsePageParams(r, database.DefaultCommentLimit)

		result, err := h.commentRepo.ListForProject(r.Context(), projectID, viewerID, page, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "comments", err))
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

// createComment adds a comment to a project
// @Summary Create comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Param comment body commentRequest true "Comment content"
// @Success 201 {object} map[string]interface{} "Created comment"
// @Failure 400 {object} ErrorResponse "Empty content"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID}/comments [post]
func (h commentHandler) createComment() http.HandlerFunc {
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

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode comment request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		content := strings.TrimSpace(req.Content)
		if content == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "content", "content is required"))
			return
		}

		comment := models.Comment{
			ProjectID: projectID,
			AuthorID:  viewerID,
			Content:   content,
		}
		if err := h.commentRepo.Add(r.Context(), &comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		h.bus.Publish(notify.Event{
			Type:        notify.EventCommentAdded,
			ActorID:     viewerID,
			RecipientID: project.Project.AuthorID,
			ProjectID:   projectID,
			CommentID:   comment.ID,
		})

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]interface{}{"comment": comment})
	}
}

// createReply adds a reply under a comment
// @Summary Reply to comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param commentID path int true "Comment ID"
// @Param reply body commentRequest true "Reply content"
// @Success 201 {object} map[string]interface{} "Created reply"
// @Failure 404 {object} ErrorResponse "Comment not found"
// @Router /api/comments/{commentID}/replies [post]
func (h commentHandler) createReply() http.HandlerFunc {
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

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode reply request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		content := strings.TrimSpace(req.Content)
		if content == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "content", "content is required"))
			return
		}

		reply := models.CommentReply{
			CommentID: commentID,
			AuthorID:  viewerID,
			Content:   content,
		}
		if err := h.commentRepo.AddReply(r.Context(), &reply); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "reply", err))
			return
		}

		h.bus.Publish(notify.Event{
			Type:        notify.EventReplyAdded,
			ActorID:     viewerID,
			RecipientID: comment.AuthorID,
			ProjectID:   comment.ProjectID,
			CommentID:   commentID,
			ReplyID:     reply.ID,
		})

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]interface{}{"reply": reply})
	}
}

// deleteComment removes a comment authored by the signed-in user
// @Summary Delete comment
// @Tags Comments
// @Produce json
// @Param commentID path int true "Comment ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 403 {object} ErrorResponse "Not the comment author"
// @Failure 404 {object} ErrorResponse "Comment not found"
// @Router /api/comments/{commentID} [delete]
func (h commentHandler) deleteComment() http.HandlerFunc {
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
		if comment.AuthorID != viewerID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author can delete a comment"))
			return
		}

		if err := h.commentRepo.Delete(r.Context(), commentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "comment", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "comment deleted successfully",
		})
	}
}
