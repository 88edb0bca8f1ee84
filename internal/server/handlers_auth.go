package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/10543610-ai/WealthFlow-AI/internal/common"
	"github.com/10543610-ai/WealthFlow-AI/internal/models"
	"github.com/10543610-ai/WealthFlow-AI/internal/session"
	"github.com/10543610-ai/WealthFlow-AI/internal/storage"
)

// --- JWT helpers ---

// signJWT creates a signed HMAC-SHA256 JWT for the given identity.
func signJWT(rec *models.IdentityRecord, config *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   rec.UserID,
		"email": rec.Email,
		"name":  rec.Name,
		"iss":   "wealthflow-server",
		"iat":   now.Unix(),
		"exp":   now.Add(config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// validateJWT parses and validates a JWT token string using the given secret.
func validateJWT(tokenString string, secret []byte) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// requireIdentity returns the identity resolved by the bearer middleware,
// or writes a 401 and returns nil. Unauthenticated requests get no
// access to financial state.
func (s *Server) requireIdentity(w http.ResponseWriter, r *http.Request) *common.IdentityContext {
	ic := common.IdentityFromContext(r.Context())
	if ic == nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil
	}
	return ic
}

// requireSession resolves the live session for the request identity,
// lazily re-opening it when the token outlived a server restart.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, *common.IdentityContext) {
	ic := s.requireIdentity(w, r)
	if ic == nil {
		return nil, nil
	}
	sess := s.app.Sessions.Get(ic.UserID)
	if sess == nil {
		var err error
		sess, err = s.app.Sessions.SignIn(r.Context(), ic.UserID)
		if err != nil {
			WriteError(w, http.StatusServiceUnavailable, "failed to load financial data")
			return nil, nil
		}
	}
	return sess, ic
}

// --- Auth handlers ---

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token    string          `json:"token"`
	Identity models.Identity `json:"identity"`
}

// handleAuthRegister handles POST /api/auth/register.
func (s *Server) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req registerRequest
	if !DecodeValid(w, r, &req) {
		return
	}

	ctx := r.Context()
	store := s.app.Storage.IdentityStore()

	if _, err := store.GetIdentityByEmail(ctx, req.Email); err == nil {
		WriteError(w, http.StatusConflict, "email already registered")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		WriteError(w, http.StatusInternalServerError, "failed to check existing identity")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	now := time.Now().UTC()
	rec := &models.IdentityRecord{
		UserID:       uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		CreatedAt:    now,
		ModifiedAt:   now,
	}
	if err := store.SaveIdentity(ctx, rec); err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to save identity")
		return
	}

	// Registration signs straight in; the first session seeds the
	// sample dataset.
	if _, err := s.app.Sessions.SignIn(ctx, rec.UserID); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "failed to open session")
		return
	}

	token, err := signJWT(rec, &s.app.Config.Auth)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	s.logger.Info().Str("user_id", rec.UserID).Msg("Identity registered")
	WriteJSON(w, http.StatusCreated, authResponse{Token: token, Identity: rec.Identity()})
}

// handleAuthLogin handles POST /api/auth/login.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req loginRequest
	if !DecodeValid(w, r, &req) {
		return
	}

	ctx := r.Context()
	rec, err := s.app.Storage.IdentityStore().GetIdentityByEmail(ctx, req.Email)
	if err != nil {
		// Same response for unknown email and bad password.
		WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(req.Password)); err != nil {
		WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if _, err := s.app.Sessions.SignIn(ctx, rec.UserID); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "failed to open session")
		return
	}

	token, err := signJWT(rec, &s.app.Config.Auth)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	s.logger.Info().Str("user_id", rec.UserID).Msg("Identity signed in")
	WriteJSON(w, http.StatusOK, authResponse{Token: token, Identity: rec.Identity()})
}

// handleAuthLogout handles POST /api/auth/logout. Edits still inside
// the debounce window are abandoned.
func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	ic := s.requireIdentity(w, r)
	if ic == nil {
		return
	}

	s.app.Sessions.SignOut(ic.UserID)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// handleAuthValidate handles GET /api/auth/validate.
func (s *Server) handleAuthValidate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ic := s.requireIdentity(w, r)
	if ic == nil {
		return
	}

	state := "signed_out"
	if sess := s.app.Sessions.Get(ic.UserID); sess != nil {
		state = string(sess.State())
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"identity": models.Identity{ID: ic.UserID, Name: ic.Name, Email: ic.Email},
		"session":  state,
	})
}
