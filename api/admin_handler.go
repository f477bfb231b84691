package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vibehub/showcase-backend/database"
	"github.com/vibehub/showcase-backend/errs"
)

type adminHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	userRepo    *database.UserRepo
}

func newAdminHandler(projectRepo *database.ProjectRepo, userRepo *database.UserRepo) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// featureProject marks a project as the featured one, clearing any other
// @Summary Feature project
// @Tags Admin
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/admin/projects/{projectID}/feature [post]
func (h adminHandler) featureProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := parseIDParam(chi.URLParam(r, "projectID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.projectRepo.Feature(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("feature", "project", err))
			return
		}

		h.logger.Info().Uint("projectID", projectID).Msg("Project featured")
		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// deleteProject removes any project regardless of author
// @Summary Delete project (admin)
// @Tags Admin
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/admin/projects/{projectID} [delete]
func (h adminHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := parseIDParam(chi.URLParam(r, "projectID"))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.projectRepo.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.logger.Info().Uint("projectID", projectID).Msg("Project deleted by admin")
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// getUsers lists all registered users
// @Summary List users
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{} "All users"
// @Router /api/admin/users [get]
func (h adminHandler) getUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.userRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "users", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{"users": users})
	}
}
