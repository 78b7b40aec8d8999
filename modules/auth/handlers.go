package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/bearer"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/session"
)

// Handler exposes the authentication flow as a JSON API. Mount it under a
// prefix of your choosing:
//
//	r := chi.NewRouter()
//	r.Mount("/auth", handler.Handle())
type Handler struct {
	service    *Service
	dispatcher *Dispatcher
	sessions   *session.Manager
	tokens     *bearer.Service
	log        *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets the structured logger for the HTTP layer.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) { h.log = log }
}

// NewHandler creates the HTTP surface over the authentication service.
// Sessions and tokens back the two issuance schemes; the dispatcher guards
// the authenticated routes.
func NewHandler(service *Service, dispatcher *Dispatcher, sessions *session.Manager, tokens *bearer.Service, opts ...HandlerOption) *Handler {
	h := &Handler{
		service:    service,
		dispatcher: dispatcher,
		sessions:   sessions,
		tokens:     tokens,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle returns the mountable router for the module.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", h.login)
	r.Post("/2fa", h.twoFactor)

	r.Group(func(r chi.Router) {
		r.Use(h.dispatcher.Middleware)
		r.Post("/logout", h.logout)
		r.Get("/2fa/setup", h.beginSetup)
		r.Post("/2fa/verify", h.verifySetup)
		r.Post("/2fa/reset", h.resetSetup)
	})

	return r
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type twoFactorRequest struct {
	TwoFactorToken string `json:"twoFactorToken"`
	Code           string `json:"code"`
}

type verifyRequest struct {
	Code string `json:"code"`
}

type authResponse struct {
	Succeeded         bool     `json:"succeeded"`
	Message           string   `json:"message,omitempty"`
	RequiresTwoFactor bool     `json:"requiresTwoFactor,omitempty"`
	TwoFactorToken    string   `json:"twoFactorToken,omitempty"`
	IsLockedOut       bool     `json:"isLockedOut,omitempty"`
	RecoveryCodes     []string `json:"recoveryCodes,omitempty"`
	AccessToken       string   `json:"accessToken,omitempty"`
}

type setupResponse struct {
	SharedKey        string `json:"sharedKey"`
	AuthenticatorURI string `json:"authenticatorUri"`
	QRCodeImage      string `json:"qrCodeImage"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	switch {
	case result.LockedOut:
		writeJSON(w, http.StatusLocked, authResponse{Message: result.Message, IsLockedOut: true})
	case result.RequiresTwoFactor:
		writeJSON(w, http.StatusOK, authResponse{
			Succeeded:         true,
			RequiresTwoFactor: true,
			TwoFactorToken:    result.ChallengeToken,
		})
	case result.Succeeded:
		token, err := h.establish(w, r, result.IdentityID, result.Role)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, authResponse{Succeeded: true, AccessToken: token})
	default:
		writeJSON(w, http.StatusUnauthorized, authResponse{Message: result.Message})
	}
}

func (h *Handler) twoFactor(w http.ResponseWriter, r *http.Request) {
	var req twoFactorRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.SubmitSecondFactor(r.Context(), req.TwoFactorToken, req.Code)
	if errors.Is(err, ErrNoPendingChallenge) {
		writeJSON(w, http.StatusUnauthorized, authResponse{Message: msgNoChallenge})
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	switch {
	case result.LockedOut:
		writeJSON(w, http.StatusLocked, authResponse{Message: result.Message, IsLockedOut: true})
	case result.Succeeded:
		token, err := h.establish(w, r, result.IdentityID, result.Role)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, authResponse{
			Succeeded:     true,
			Message:       result.Message,
			RecoveryCodes: result.RecoveryCodes,
			AccessToken:   token,
		})
	default:
		writeJSON(w, http.StatusUnauthorized, authResponse{Message: result.Message})
	}
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromContext(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// Bearer tokens are stateless: nothing to revoke server-side, they
	// simply age out. Cookie sessions are destroyed.
	if principal.Scheme == SchemeCookie {
		if err := h.sessions.Destroy(r.Context(), w, r); err != nil && !errors.Is(err, session.ErrNoSession) {
			h.fail(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, authResponse{Succeeded: true})
}

func (h *Handler) beginSetup(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromContext(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	material, err := h.service.BeginProvisioning(r.Context(), principal.IdentityID)
	if errors.Is(err, ErrAlreadyEnabled) {
		writeJSON(w, http.StatusConflict, authResponse{Message: "Two-factor authentication is already enabled."})
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, setupResponse{
		SharedKey:        material.SharedKey,
		AuthenticatorURI: material.ProvisioningURI,
		QRCodeImage:      material.QRCode,
	})
}

func (h *Handler) verifySetup(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromContext(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req verifyRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.VerifyProvisioning(r.Context(), principal.IdentityID, req.Code)
	if errors.Is(err, ErrNotProvisioned) || errors.Is(err, ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, authResponse{Message: msgInvalidSetupCode})
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	switch {
	case result.LockedOut:
		writeJSON(w, http.StatusLocked, authResponse{Message: result.Message, IsLockedOut: true})
	case result.Succeeded:
		writeJSON(w, http.StatusOK, authResponse{
			Succeeded:     true,
			Message:       result.Message,
			RecoveryCodes: result.RecoveryCodes,
		})
	default:
		writeJSON(w, http.StatusBadRequest, authResponse{Message: result.Message})
	}
}

func (h *Handler) resetSetup(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromContext(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	material, err := h.service.ResetProvisioning(r.Context(), principal.IdentityID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, setupResponse{
		SharedKey:        material.SharedKey,
		AuthenticatorURI: material.ProvisioningURI,
		QRCodeImage:      material.QRCode,
	})
}

// establish creates the session under the scheme the client asked for,
// defaulting to a cookie session. The returned token is empty under the
// cookie scheme.
func (h *Handler) establish(w http.ResponseWriter, r *http.Request, identityID uuid.UUID, role string) (string, error) {
	var issuer Issuer = NewCookieIssuer(h.sessions)
	scheme := SchemeCookie
	if strings.EqualFold(r.Header.Get(sessionSchemeHeader), string(SchemeBearer)) {
		issuer = NewBearerIssuer(h.tokens)
		scheme = SchemeBearer
	}

	token, err := issuer.Establish(r.Context(), w, identityID, role)
	if err != nil {
		return "", err
	}
	h.log.InfoContext(r.Context(), "session established",
		logger.IdentityID(identityID), logger.Scheme(string(scheme)))
	return token, nil
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, authResponse{Message: "Invalid request body."})
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, authResponse{Message: "Invalid request body."})
		return
	}
	if errors.Is(err, ErrUnauthenticated) {
		writeJSON(w, http.StatusUnauthorized, authResponse{Message: http.StatusText(http.StatusUnauthorized)})
		return
	}
	h.log.ErrorContext(r.Context(), "request failed", logger.Error(err))
	writeJSON(w, http.StatusInternalServerError, authResponse{Message: "Something went wrong."})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
