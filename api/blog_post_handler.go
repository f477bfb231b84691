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
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
	userRepo     *database.UserRepo
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo, userRepo *database.UserRepo) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		userRepo:     userRepo,
	}
}

type blogPostRequest struct {
	Title     string   `json:"title"`
	Summary   *string  `json:"summary,omitempty"`
	Content   string   `json:"content"`
	CoverURL  *string  `json:"coverUrl,omitempty"`
	Published bool     `json:"published"`
	Tags      []string `json:"tags"`
}

// getBlogPosts lists published blog posts, plus the viewer's own drafts
// @Summary List blog posts
// @Tags Blog
// @Produce json
// @Success 200 {object} map[string]interface{} "Blog posts"
// @Router /api/blog [get]
func (h blogPostHandler) getBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		posts, err := h.blogPostRepo.FindAll(r.Context(), viewerID, viewerID != 0)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{"posts": posts})
	}
}

// getBlogPost returns one blog post by slug
// @Summary Get blog post
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} map[string]interface{} "Blog post"
// @Failure 404 {object} ErrorResponse "Post not found"
// @Router /api/blog/{slug} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		post, err := h.blogPostRepo.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		// Drafts are only visible to their author
		if post == nil || (!post.Published && post.AuthorID != ctxViewerID(r.Context())) {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{"post": post})
	}
}

// createBlogPost creates a blog post for the signed-in user
// @Summary Create blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param post body blogPostRequest true "Post data"
// @Success 201 {object} map[string]interface{} "Created post"
// @Failure 400 {object} ErrorResponse "Invalid post data"
// @Router /api/blog [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		var req blogPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "title", "title is required"))
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "content", "content is required"))
			return
		}

		post := models.BlogPost{
			AuthorID:  viewerID,
			Title:     req.Title,
			Summary:   req.Summary,
			Content:   req.Content,
			CoverURL:  req.CoverURL,
			Published: req.Published,
		}
		for _, value := range req.Tags {
			post.Tags = append(post.Tags, models.BlogTag{Value: value})
		}

		if err := h.blogPostRepo.Add(r.Context(), &post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog post", err))
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]interface{}{"post": post})
	}
}

// updateBlogPost updates a blog post authored by the signed-in user
// @Summary Update blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param post body blogPostRequest true "Updated post data"
// @Success 200 {object} map[string]interface{} "Updated post"
// @Failure 403 {object} ErrorResponse "Not the post author"
// @Failure 404 {object} ErrorResponse "Post not found"
// @Router /api/blog/{slug} [put]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		post, err := h.blogPostRepo.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}
		if post.AuthorID != viewerID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author can update a blog post"))
			return
		}

		var req blogPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "title", "title is required"))
			return
		}

		post.Title = req.Title
		post.Summary = req.Summary
		post.Content = req.Content
		post.CoverURL = req.CoverURL
		post.Published = req.Published
		post.Tags = nil
		for _, value := range req.Tags {
			post.Tags = append(post.Tags, models.BlogTag{BlogPostID: post.ID, Value: value})
		}

		if err := h.blogPostRepo.Update(r.Context(), post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{"post": post})
	}
}

// deleteBlogPost removes a blog post authored by the signed-in user
// @Summary Delete blog post
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} map[string]string "Success message"
// @Failure 403 {object} ErrorResponse "Not the post author"
// @Failure 404 {object} ErrorResponse "Post not found"
// @Router /api/blog/{slug} [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		post, err := h.blogPostRepo.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}
		if post.AuthorID != viewerID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author can delete a blog post"))
			return
		}

		if err := h.blogPostRepo.Delete(r.Context(), post.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "blog post deleted successfully",
		})
	}
}
