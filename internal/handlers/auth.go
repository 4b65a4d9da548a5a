// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"broadcasthub/internal/middleware"
	"broadcasthub/internal/models"
	"broadcasthub/internal/session"
)

// totpIssuer is the issuer name shown in authenticator apps.
const totpIssuer = "BroadcastHub"

// OperatorStore is the operator persistence surface the auth handlers
// need. Satisfied by *store.OperatorStore.
type OperatorStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Operator, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Operator, error)
	SetTOTPSecret(ctx context.Context, id uuid.UUID, secret string) error
	EnableTOTP(ctx context.Context, id uuid.UUID) error
	CheckPassword(o *models.Operator, password string) bool
}

// Sessions is the session lifecycle surface the auth handlers need.
// Satisfied by *session.Store.
type Sessions interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Update(ctx context.Context, r *http.Request, data *session.Data) error
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	sessions  Sessions
	operators OperatorStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions Sessions, operators OperatorStore) *Auth {
	return &Auth{sessions: sessions, operators: operators}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and opens a session. The session starts
// with TwoFADone false; the operator must complete 2FA before reaching
// the console API.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &models.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	operator, err := a.operators.FindByEmail(r.Context(), req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if operator == nil || !a.operators.CheckPassword(operator, req.Password) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		OperatorID:  operator.ID,
		Email:       operator.Email,
		DisplayName: operator.DisplayName,
		TwoFADone:   false,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"display_name":        operator.DisplayName,
		"two_fa_setup_needed": operator.Needs2FASetup(),
	})
}

// Me returns the session identity, so the SPA can restore its auth state
// on reload.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"email":        sess.Email,
		"display_name": sess.DisplayName,
		"two_fa_done":  sess.TwoFADone,
	})
}

// TwoFASetup generates a fresh TOTP secret for the operator and returns
// it with a QR code PNG (base64) for authenticator enrollment.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if err := a.operators.SetTOTPSecret(r.Context(), sess.OperatorID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"secret": key.Secret(),
		"qr_png": base64.StdEncoding.EncodeToString(qrPNG),
	})
}

type twoFAVerifyRequest struct {
	Code string `json:"code"`
}

// TwoFAVerify validates the TOTP code and marks the session as fully
// authenticated. On first-time setup it also flips the enabled flag.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req twoFAVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &models.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	operator, err := a.operators.FindByID(r.Context(), sess.OperatorID)
	if err != nil || operator == nil {
		slog.Error("operator lookup for 2fa failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if operator.TOTPSecret == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "two-factor setup has not been started"})
		return
	}

	if !totp.Validate(req.Code, *operator.TOTPSecret) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid code"})
		return
	}

	if !operator.TOTPEnabled {
		if err := a.operators.EnableTOTP(r.Context(), operator.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Logout destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	w.WriteHeader(http.StatusNoContent)
}
