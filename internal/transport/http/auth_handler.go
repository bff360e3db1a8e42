package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/evangadi/forum-backend/internal/service"
	"github.com/evangadi/forum-backend/internal/util"
)

type AuthHandler struct {
	auth   *service.AuthService
	resets *service.PasswordResetService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, resets *service.PasswordResetService) {
	handler := &AuthHandler{auth: auth, resets: resets}

	users := e.Group("/api/users")
	users.POST("/register", handler.register)
	users.POST("/login", handler.login)
	users.GET("/check", handler.check, RequireAuth(auth))
	users.POST("/logout", handler.logout, RequireAuth(auth))

	users.POST("/forgot-password", handler.forgotPassword)
	users.POST("/verify-otp", handler.verifyOTP)
	users.POST("/reset-password", handler.resetPassword)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide all required fields"))
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.FirstName) == "" ||
		strings.TrimSpace(req.LastName) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide all required fields"))
	}

	_, err := h.auth.Register(c.Request().Context(), req.Username, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			return c.JSON(http.StatusBadRequest, util.Msg("User with this username or email already exists"))
		case errors.Is(err, service.ErrPasswordTooWeak):
			return c.JSON(http.StatusBadRequest, util.Msg("Password must be at least 8 characters long"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Msg("Something went wrong, please try again later"))
		}
	}
	return c.JSON(http.StatusCreated, util.Msg("User registered successfully"))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Msg("Please enter all required fields"))
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, util.Msg("Please enter all required fields"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, util.Msg("Invalid credentials"))
		}
		return c.JSON(http.StatusInternalServerError, util.Msg("Something went wrong, please try again later"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"msg":   "Login successful",
		"token": result.Token,
	})
}

func (h *AuthHandler) check(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Msg("Authentication invalid"))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"msg":      "Valid user",
		"username": user.Username,
		"userid":   user.ID,
	})
}

func (h *AuthHandler) logout(c echo.Context) error {
	token, ok := CurrentToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Msg("Authentication invalid"))
	}
	if err := h.auth.Logout(c.Request().Context(), token); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Msg("Something went wrong, please try again later"))
	}
	return c.JSON(http.StatusOK, util.Msg("Logout successful"))
}

// forgotPassword answers identically whether or not the account exists, so
// the endpoint cannot be used to enumerate registered emails.
func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide email address"))
	}
	if strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide email address"))
	}

	if err := h.resets.RequestReset(c.Request().Context(), req.Email); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Msg("Something went wrong, please try again later"))
	}
	return c.JSON(http.StatusOK, util.Msg("OTP sent to your email address"))
}

func (h *AuthHandler) verifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide email and OTP"))
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.OTP) == "" {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide email and OTP"))
	}

	token, _, err := h.resets.VerifyOTP(c.Request().Context(), req.Email, strings.TrimSpace(req.OTP))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResetNotFound):
			return c.JSON(http.StatusBadRequest, util.Msg("No OTP found for this email. Please request a new one."))
		case errors.Is(err, service.ErrResetOTPExpired):
			return c.JSON(http.StatusBadRequest, util.Msg("OTP has expired. Please request a new one."))
		case errors.Is(err, service.ErrResetOTPMismatch):
			return c.JSON(http.StatusBadRequest, util.Msg("Invalid OTP. Please try again."))
		default:
			return c.JSON(http.StatusInternalServerError, util.Msg("Something went wrong, please try again later"))
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"msg":   "OTP verified successfully",
		"token": token,
	})
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide all required fields"))
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Token) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide all required fields"))
	}

	err := h.resets.CompleteReset(c.Request().Context(), req.Email, strings.TrimSpace(req.Token), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			return c.JSON(http.StatusBadRequest, util.Msg("Invalid or expired token"))
		case errors.Is(err, service.ErrPasswordTooWeak):
			return c.JSON(http.StatusBadRequest, util.Msg("Password must be at least 8 characters long"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Msg("Something went wrong, please try again later"))
		}
	}
	return c.JSON(http.StatusOK, util.Msg("Password reset successfully"))
}
