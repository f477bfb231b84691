package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vibehub/showcase-backend/database"
	"github.com/vibehub/showcase-backend/errs"
	"github.com/vibehub/showcase-backend/models"
	"github.com/vibehub/showcase-backend/services"
)

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	userRepo    *database.UserRepo
	sessionRepo *database.SessionRepo
	passwords   services.PasswordService
}

func newAuthHandler(userRepo *database.UserRepo, sessionRepo *database.SessionRepo, passwords services.PasswordService) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwords:   passwords,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h authHandler) setSessionCookie(w http.ResponseWriter, session *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h authHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// register creates a user account and signs it in
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body registerRequest true "New account credentials"
// @Success 201 {object} map[string]interface{} "Created user"
// @Failure 400 {object} ErrorResponse "Invalid credentials"
// @Failure 409 {object} ErrorResponse "Username or email taken"
// @Router /api/auth/register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode register request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))

		if req.Username == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "username", "username is required"))
			return
		}
		if req.Email == "" || !strings.Contains(req.Email, "@") {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "email", "a valid email is required"))
			return
		}
		if len(req.Password) < 8 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "password", "password must be at least 8 characters"))
			return
		}

		if existing, err := h.userRepo.FindByUsername(r.Context(), req.Username); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		} else if existing != nil {
			h.responder.WriteError(w, errs.NewConflictError("username is already taken"))
			return
		}
		if existing, err := h.userRepo.FindByEmail(r.Context(), req.Email); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		} else if existing != nil {
			h.responder.WriteError(w, errs.NewConflictError("email is already registered"))
			return
		}

		hash, err := h.passwords.Hash(req.Password)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to hash password")
			h.responder.WriteError(w, errs.NewInternalError("failed to create account"))
			return
		}

		user := models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
		}
		if err := h.userRepo.Add(r.Context(), &user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		session, err := h.sessionRepo.Create(r.Context(), user.ID, database.DefaultSessionTTL)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "session", err))
			return
		}
		h.setSessionCookie(w, session)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]interface{}{"user": user})
	}
}

// login verifies credentials and issues a session cookie
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{} "Signed-in user"
// @Failure 401 {object} ErrorResponse "Invalid username or password"
// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode login request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.userRepo.FindByUsername(r.Context(), strings.TrimSpace(req.Username))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		// Verify against a dummy hash on unknown usernames so both failure
		// modes take comparable time
		if user == nil {
			h.passwords.Verify("$2a$12$C6UzMDM.H6dfI/f/IKcEeO7ZBpIuQ9mUmVXpqBghIHrucCTusS7mG", req.Password)
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid username or password"))
			return
		}

		if !h.passwords.Verify(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid username or password"))
			return
		}

		session, err := h.sessionRepo.Create(r.Context(), user.ID, database.DefaultSessionTTL)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "session", err))
			return
		}
		h.setSessionCookie(w, session)

		h.responder.WriteJSON(w, map[string]interface{}{"user": user})
	}
}

// logout revokes the current session
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string "Success message"
// @Router /api/auth/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := ctxSessionToken(r.Context()); token != "" {
			if err := h.sessionRepo.Revoke(r.Context(), token); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("delete", "session", err))
				return
			}
		}
		h.clearSessionCookie(w)

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// me returns the signed-in user's profile
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Current user"
// @Failure 401 {object} ErrorResponse "Not signed in"
// @Router /api/auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.userRepo.FindByID(r.Context(), ctxViewerID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{"user": user})
	}
}

type profileRequest struct {
	AvatarURL *string `json:"avatarUrl"`
	Bio       *string `json:"bio"`
}

// updateProfile updates the signed-in user's avatar and bio
// @Summary Update profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param profile body profileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{} "Updated user"
// @Router /api/auth/me [put]
func (h authHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.userRepo.FindByID(r.Context(), ctxViewerID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode profile request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.AvatarURL != nil {
			user.AvatarURL = req.AvatarURL
		}
		if req.Bio != nil {
			user.Bio = req.Bio
		}

		if err := h.userRepo.Update(r.Context(), user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{"user": user})
	}
}
