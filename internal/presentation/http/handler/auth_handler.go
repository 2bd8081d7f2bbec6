package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymdesk-api/internal/application/service"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
	"github.com/sangkips/gymdesk-api/pkg/logger"
	"github.com/sangkips/gymdesk-api/pkg/oauth"
	"github.com/sangkips/gymdesk-api/pkg/utils"
)

const oauthStateCookie = "oauth_state"

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService  *service.AuthService
	googleOAuth  *oauth.GoogleOAuthService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. googleOAuth may be nil.
func NewAuthHandler(authService *service.AuthService, googleOAuth *oauth.GoogleOAuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, googleOAuth: googleOAuth, secureCookie: secureCookie}
}

func userBody(user *entity.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"full_name":   user.FullName,
		"email":       user.Email,
		"phone":       user.Phone,
		"status":      user.Status,
		"branch_id":   user.BranchID,
		"role":        user.Role.Name,
		"permissions": user.GetPermissions(),
	}
}

func tokenBody(pair service.TokenPair) gin.H {
	return gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    pair.ExpiresIn,
		"token_type":    "Bearer",
	}
}

// Login handles staff login
// @Summary Login
// @Description Authenticate a staff account and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	body := tokenBody(output.TokenPair)
	body["user"] = userBody(output.User)
	response.OK(c, "Login successful", body)
}

// MemberLogin handles member login
// @Summary Member Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /auth/member/login [post]
func (h *AuthHandler) MemberLogin(c *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.MemberLogin(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	body := tokenBody(output.TokenPair)
	body["member"] = output.Member
	response.OK(c, "Login successful", body)
}

// RefreshToken handles token refresh
// @Summary Refresh Token
// @Description Refresh access token using refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed successfully", tokenBody(*output))
}

// Logout handles user logout. Tokens are stateless; the client discards them.
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, "Logged out successfully", nil)
}

// GetProfile returns the signed-in staff account or member
// @Summary Get Profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	id, ok := requireUserID(c)
	if !ok {
		return
	}

	if GetPrincipalKind(c) == utils.KindMember {
		member, err := h.authService.GetCurrentMember(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Profile retrieved successfully", gin.H{"member": member})
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	body := userBody(user)
	body["created_at"] = user.CreatedAt
	body["last_login_at"] = user.LastLoginAt
	response.OK(c, "Profile retrieved successfully", gin.H{"user": body})
}

// ChangePassword handles password change for staff and members
// @Summary Change Password
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ChangePasswordRequest true "Password change data"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /profile/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	id, ok := requireUserID(c)
	if !ok {
		return
	}

	var req request.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), &service.ChangePasswordInput{
		UserID:          id,
		Kind:            GetPrincipalKind(c),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password changed successfully", nil)
}

// ForgotPassword handles forgot password request
// @Summary Forgot Password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.ForgotPasswordRequest true "Forgot password request"
// @Success 200 {object} response.APIResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req request.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		logger.ErrorLog(c.Request.Context(), "forgot password failed", err)
	}

	// same answer whether or not the account exists
	response.OK(c, "If the email exists, a reset link has been sent", nil)
}

// ResetPassword handles password reset
// @Summary Reset Password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.ResetPasswordRequest true "Reset password request"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req request.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), &service.ResetPasswordInput{
		Email:       req.Email,
		Token:       req.Token,
		NewPassword: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password reset successfully", nil)
}

// GoogleLogin redirects to the Google consent screen
// @Summary Google Login
// @Tags auth
// @Success 307
// @Router /auth/google [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if h.googleOAuth == nil || !h.googleOAuth.IsConfigured() {
		response.ErrorWithCode(c, http.StatusServiceUnavailable, oauth.ErrOAuthNotConfigured.Error())
		return
	}

	authURL, state := h.googleOAuth.AuthURL()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback finishes the Google sign-in and redirects to the frontend
// with the issued tokens, or with an error reason
// @Summary Google Callback
// @Tags auth
// @Param code query string true "Authorization code"
// @Param state query string true "State"
// @Success 307
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.googleOAuth == nil || !h.googleOAuth.IsConfigured() {
		response.ErrorWithCode(c, http.StatusServiceUnavailable, oauth.ErrOAuthNotConfigured.Error())
		return
	}

	fail := func(reason string) {
		c.Redirect(http.StatusTemporaryRedirect, h.googleOAuth.ErrorRedirect(reason))
	}

	if errParam := c.Query("error"); errParam != "" {
		fail(errParam)
		return
	}

	state := c.Query("state")
	cookieState, _ := c.Cookie(oauthStateCookie)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookie, true)
	if state == "" || state != cookieState || h.googleOAuth.VerifyState(state) != nil {
		fail("invalid_state")
		return
	}

	ctx := c.Request.Context()
	profile, err := h.googleOAuth.Authenticate(ctx, c.Query("code"))
	if err != nil {
		logger.WarnLog(ctx, "google sign-in failed: %v", err)
		if errors.Is(err, oauth.ErrEmailNotVerified) {
			fail("email_not_verified")
			return
		}
		fail("authentication_failed")
		return
	}

	output, err := h.authService.LoginWithGoogle(ctx, profile)
	if err != nil {
		switch appErr := apperror.GetAppError(err); appErr.Code {
		case http.StatusUnauthorized:
			fail("account_not_found")
		case http.StatusForbidden:
			fail("account_disabled")
		default:
			logger.ErrorLog(ctx, "google sign-in failed", err)
			fail("server_error")
		}
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuth.SuccessRedirect(output.AccessToken, output.RefreshToken, output.ExpiresIn))
}
