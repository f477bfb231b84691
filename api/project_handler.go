package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vibehub/showcase-backend/database"
	"github.com/vibehub/showcase-backend/errs"
	"github.com/vibehub/showcase-backend/models"
	"github.com/vibehub/showcase-backend/ranking"
	"github.com/vibehub/showcase-backend/services"
)

// maxImageUpload caps a single project image upload.
const maxImageUpload = 8 << 20 // 8MB

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	viewRepo    *database.ProjectViewRepo
	tagRepo     *database.TagRepo
	storage     *services.StorageService
}

func newProjectHandler(projectRepo *database.ProjectRepo, viewRepo *database.ProjectViewRepo, tagRepo *database.TagRepo, storage *services.StorageService) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		viewRepo:    viewRepo,
		tagRepo:     tagRepo,
		storage:     storage,
	}
}

// projectRequest is the payload for creating or updating a project.
type projectRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription *string  `json:"longDescription,omitempty"`
	ProjectURL      string   `json:"projectUrl"`
	ImageURL        string   `json:"imageUrl"`
	VibeCodingTool  *string  `json:"vibeCodingTool,omitempty"`
	IsPrivate       bool     `json:"isPrivate"`
	Tags            []string `json:"tags"`
	Gallery         []string `json:"gallery"`
}

// getProjects lists projects with filtering, sorting and pagination
// @Summary List projects
// @Description Lists visible projects filtered by tag, tool, search and author, sorted by trending, latest, popular or featured
// @Tags Projects
// @Produce json
// @Param page query int false "1-based page number"
// @Param limit query int false "Page size (default 6)"
// @Param tag query string false "Tag filter, case-insensitive"
// @Param tool query string false "Tool filter, case-insensitive"
// @Param search query string false "Substring match on title and description"
// @Param user query string false "Author username filter"
// @Param sort query string false "trending (default), latest, popular or featured"
// @Success 200 {object} database.ProjectPage "Page of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /api/projects [get]
func (h projectHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := parsePageParams(r, database.DefaultPageLimit)
		query := r.URL.Query()

		filter := database.ProjectFilter{
			Tag:            query.Get("tag"),
			Tool:           query.Get("tool"),
			Search:         query.Get("search"),
			AuthorUsername: query.Get("user"),
			ViewerID:       ctxViewerID(r.Context()),
			Sort:           query.Get("sort"),
			Page:           page,
			Limit:          limit,
		}

		result, err := h.projectRepo.List(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "projects", err))
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

// getFeaturedProject returns the currently featured project
// @Summary Get featured project
// @Tags Projects
// @Produce json
// @Success 200 {object} map[string]interface{} "Featured project or null"
// @Router /api/projects/featured [get]
func (h projectHandler) getFeaturedProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projectRepo.FindFeatured(r.Context(), ctxViewerID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "featured project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{"project": project})
	}
}

// getTrendingProjects returns the top projects by trending score
// @Summary Get trending projects
// @Tags Projects
// @Produce json
// @Param limit query int false "Number of projects (default 6)"
// @Success 200 {object} map[string]interface{} "Trending projects"
// @Router /api/projects/trending [get]
func (h projectHandler) getTrendingProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, limit := parsePageParams(r, database.DefaultPageLimit)

		projects, err := h.projectRepo.Trending(r.Context(), ctxViewerID(r.Context()), limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "trending projects", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{"projects": projects})
	}
}

// getProject returns one project by id
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} map[string]interface{} "Project details"
// @Failure 400 {object} ErrorResponse "Invalid projectID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := parseIDParam(chi.URLParam(r, "projectID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID, ctxViewerID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{"project": project})
	}
}

// createProject creates a new project with tags and gallery images
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body projectRequest true "Project data"
// @Success 201 {object} map[string]interface{} "Created project"
// @Failure 400 {object} ErrorResponse "Invalid project data"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "title", "title is required"))
			return
		}
		if req.Description == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "description", "description is required"))
			return
		}

		project := models.Project{
			Title:           req.Title,
			Description:     req.Description,
			LongDescription: req.LongDescription,
			ProjectURL:      req.ProjectURL,
			ImageURL:        req.ImageURL,
			VibeCodingTool:  req.VibeCodingTool,
			IsPrivate:       req.IsPrivate,
			AuthorID:        viewerID,
		}

		if err := h.projectRepo.Add(r.Context(), &project, req.Tags, req.Gallery); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		created, err := h.projectRepo.FindByID(r.Context(), project.ID, viewerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "project", err))
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]interface{}{"project": created})
	}
}

// updateProject updates an existing project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Param project body projectRequest true "Updated project data"
// @Success 200 {object} map[string]interface{} "Updated project"
// @Failure 403 {object} ErrorResponse "Not the project author"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		projectID, ok := parseIDParam(chi.URLParam(r, "projectID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		existing, err := h.projectRepo.FindByID(r.Context(), projectID, viewerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}
		if existing.Project.AuthorID != viewerID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author can update a project"))
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "title", "title is required"))
			return
		}

		project := existing.Project
		project.Title = req.Title
		project.Description = req.Description
		project.LongDescription = req.LongDescription
		project.ProjectURL = req.ProjectURL
		project.ImageURL = req.ImageURL
		project.VibeCodingTool = req.VibeCodingTool
		project.IsPrivate = req.IsPrivate

		if err := h.projectRepo.Update(r.Context(), &project, req.Tags); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		updated, err := h.projectRepo.FindByID(r.Context(), projectID, viewerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{"project": updated})
	}
}

// deleteProject deletes a project and its engagement rows
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 403 {object} ErrorResponse "Not the project author"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		projectID, ok := parseIDParam(chi.URLParam(r, "projectID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		existing, err := h.projectRepo.FindByID(r.Context(), projectID, viewerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}
		if existing.Project.AuthorID != viewerID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author can delete a project"))
			return
		}

		if err := h.projectRepo.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// recordView counts one view of a project
// @Summary Record project view
// @Tags Projects
// @Param projectID path int true "Project ID"
// @Success 204 "View recorded"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID}/view [post]
func (h projectHandler) recordView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := parseIDParam(chi.URLParam(r, "projectID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.viewRepo.Record(r.Context(), projectID, time.Now()); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("record", "project view", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// shareProject increments the share counter
// @Summary Share project
// @Tags Projects
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} map[string]int64 "New share count"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID}/share [post]
func (h projectHandler) shareProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := parseIDParam(chi.URLParam(r, "projectID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		count, err := h.projectRepo.IncrementShare(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("share", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]int64{"sharesCount": count})
	}
}

// evaluateProject runs the market-fit evaluation for the author
// @Summary Evaluate project market fit
// @Tags Projects
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} services.MarketFitEvaluation "Evaluation result"
// @Failure 403 {object} ErrorResponse "Not the project author"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID}/evaluate [post]
func (h projectHandler) evaluateProject() http.HandlerFunc {
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
		if project.Project.AuthorID != viewerID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author can request an evaluation"))
			return
		}

		description := project.Project.Description
		if project.Project.LongDescription != nil {
			description = *project.Project.LongDescription
		}
		tool := ""
		if project.Project.VibeCodingTool != nil {
			tool = *project.Project.VibeCodingTool
		}

		evaluation, err := services.EvaluateMarketFit(r.Context(), project.Project.Title, tool, description)
		if err != nil {
			h.logger.Error().Err(err).Uint("projectID", projectID).Msg("Market-fit evaluation failed")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("evaluation failed", err))
			return
		}

		h.responder.WriteJSON(w, evaluation)
	}
}

// uploadProjectImage stores a project image and sets it as the cover
// @Summary Upload project image
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Param projectID path int true "Project ID"
// @Param image formData file true "Image file"
// @Success 200 {object} map[string]string "Public image URL"
// @Failure 403 {object} ErrorResponse "Not the project author"
// @Router /api/projects/{projectID}/image [post]
func (h projectHandler) uploadProjectImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxViewerID(r.Context())

		if h.storage == nil {
			h.responder.WriteError(w, errs.NewInternalError("image storage is not configured"))
			return
		}

		projectID, ok := parseIDParam(chi.URLParam(r, "projectID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		existing, err := h.projectRepo.FindByID(r.Context(), projectID, viewerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}
		if existing.Project.AuthorID != viewerID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author can upload images"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxImageUpload)
		file, header, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("missing image file"))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		switch contentType {
		case "image/png", "image/jpeg", "image/gif", "image/webp":
		default:
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "image", "unsupported image type"))
			return
		}

		url, err := h.storage.UploadProjectImage(r.Context(), projectID, header.Filename, contentType, file)
		if err != nil {
			h.logger.Error().Err(err).Uint("projectID", projectID).Msg("Image upload failed")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("image upload failed", err))
			return
		}

		project := existing.Project
		project.ImageURL = url
		if err := h.projectRepo.Update(r.Context(), &project, nil); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"imageUrl": url})
	}
}

// getTags lists stored tags with canonical display casing plus the known
// canonical names not yet in use
// @Summary List tags
// @Tags Tags
// @Produce json
// @Success 200 {object} map[string]interface{} "Tag names"
// @Router /api/tags [get]
func (h projectHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stored, err := h.tagRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "tags", err))
			return
		}

		seen := map[string]bool{}
		names := make([]string, 0, len(stored))
		for _, tag := range stored {
			display := ranking.CanonicalTagName(tag.Name)
			if !seen[display] {
				seen[display] = true
				names = append(names, display)
			}
		}
		for _, display := range ranking.KnownTagNames() {
			if !seen[display] {
				seen[display] = true
				names = append(names, display)
			}
		}

		h.responder.WriteJSON(w, map[string]interface{}{"tags": names})
	}
}
