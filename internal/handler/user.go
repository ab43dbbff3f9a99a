package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mernventory/inventory-api/internal/auth"
	"github.com/mernventory/inventory-api/internal/httputil"
	"github.com/mernventory/inventory-api/internal/middleware"
	"github.com/mernventory/inventory-api/internal/payload"
	"github.com/mernventory/inventory-api/internal/usecase"
	"github.com/mernventory/inventory-api/internal/validation"
)

// UserHandler serves the account endpoints: registration, login/logout,
// profile, password change and the password reset flow.
type UserHandler struct {
	authUsecase          usecase.AuthUsecase
	userUsecase          usecase.UserUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	jwtAuth              auth.JWTAuthenticator
	validator            *validation.Validator
	logger               *zerolog.Logger
	sessionExpiresIn     time.Duration
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(
	authUsecase usecase.AuthUsecase,
	userUsecase usecase.UserUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	jwtAuth auth.JWTAuthenticator,
	validator *validation.Validator,
	logger *zerolog.Logger,
	sessionExpiresIn time.Duration,
) *UserHandler {
	return &UserHandler{
		authUsecase:          authUsecase,
		userUsecase:          userUsecase,
		passwordResetUsecase: passwordResetUsecase,
		jwtAuth:              jwtAuth,
		validator:            validator,
		logger:               logger,
		sessionExpiresIn:     sessionExpiresIn,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, token, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyUsed):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	middleware.SetSessionCookie(w, token, h.sessionExpiresIn)
	httputil.RespondJSON(w, http.StatusCreated, payload.NewAuthResponse(user, token))
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			httputil.RespondError(w, http.StatusUnauthorized, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	middleware.SetSessionCookie(w, token, h.sessionExpiresIn)
	httputil.RespondJSON(w, http.StatusOK, payload.NewAuthResponse(user, token))
}

// Logout clears the session cookie. A token the client already holds stays
// valid via the Authorization header until it expires; there is no server-side
// revocation.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	httputil.RespondMessage(w, http.StatusOK, "Successfully logged out")
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, payload.NewUserResponse(user))
}

// LoginStatus reports whether the request carries a verifiable session token.
// The response body is a bare JSON boolean.
func (h *UserHandler) LoginStatus(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractToken(r)
	if token == "" {
		httputil.RespondJSON(w, http.StatusOK, false)
		return
	}

	if _, err := h.jwtAuth.Verify(token); err != nil {
		httputil.RespondJSON(w, http.StatusOK, false)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, true)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	var req payload.UpdateProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.userUsecase.UpdateProfile(r.Context(), user.ID.Hex(), usecase.UpdateProfileParams{
		Name:  req.Name,
		Photo: req.Photo,
		Phone: req.Phone,
		Bio:   req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, payload.NewUserResponse(updated))
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	var req payload.ChangePasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.userUsecase.ChangePassword(r.Context(), user.ID.Hex(), req.OldPassword, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrWrongOldPassword):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecase.ErrUserNotFound):
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Password changed successfully")
}

func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			httputil.RespondError(w, http.StatusNotFound, "User does not exist")
		case errors.Is(err, usecase.ErrEmailNotDelivered):
			httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, payload.ForgotPasswordResponse{
		Success: true,
		Message: "Reset Email Sent",
	})
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	resetToken := chi.URLParam(r, "resetToken")

	var req payload.ResetPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.passwordResetUsecase.ResetPassword(r.Context(), resetToken, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrResetTokenInvalid):
			httputil.RespondError(w, http.StatusNotFound, "Invalid or expired token")
		default:
			h.internalError(w, r, err)
		}
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Password reset successful, please login")
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On failure it writes a 400 response and returns false.
func (h *UserHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return false
	}

	return true
}

func (h *UserHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected error")
	httputil.RespondError(w, http.StatusInternalServerError, "something went wrong")
}
