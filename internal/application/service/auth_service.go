package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
	"github.com/sangkips/gymdesk-api/pkg/email"
	"github.com/sangkips/gymdesk-api/pkg/logger"
	"github.com/sangkips/gymdesk-api/pkg/oauth"
	"github.com/sangkips/gymdesk-api/pkg/utils"
)

const passwordResetTTL = time.Hour

// AuthService handles sign-in for staff and members plus password recovery
type AuthService struct {
	userRepo          repository.UserRepository
	memberRepo        repository.MemberRepository
	passwordResetRepo repository.PasswordResetTokenRepository
	txManager         repository.TxManager
	jwtManager        *utils.JWTManager
	emailService      *email.EmailService
	now               func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	memberRepo repository.MemberRepository,
	passwordResetRepo repository.PasswordResetTokenRepository,
	txManager repository.TxManager,
	jwtManager *utils.JWTManager,
	emailService *email.EmailService,
) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		memberRepo:        memberRepo,
		passwordResetRepo: passwordResetRepo,
		txManager:         txManager,
		jwtManager:        jwtManager,
		emailService:      emailService,
		now:               time.Now,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// TokenPair is an issued access/refresh token pair
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// LoginOutput represents a staff sign-in result
type LoginOutput struct {
	User *entity.User
	TokenPair
}

// MemberLoginOutput represents a member sign-in result
type MemberLoginOutput struct {
	Member *entity.Member
	TokenPair
}

// Login authenticates a staff account with email and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == "" {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, apperror.ErrAccountDisabled
	}

	return s.signInStaff(ctx, user)
}

// LoginWithGoogle signs in the existing staff account matching a verified Google profile.
// Google sign-in never creates accounts.
func (s *AuthService) LoginWithGoogle(ctx context.Context, profile *oauth.GoogleProfile) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(profile.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewAppError(http.StatusUnauthorized, "No account is registered for this email")
	}
	if !user.IsActive() {
		return nil, apperror.ErrAccountDisabled
	}

	if user.ProviderID == nil || *user.ProviderID != profile.ID {
		providerID := profile.ID
		user.ProviderID = &providerID
		user.Provider = "google"
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return s.signInStaff(ctx, user)
}

func (s *AuthService) signInStaff(ctx context.Context, user *entity.User) (*LoginOutput, error) {
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		logger.WarnLog(ctx, "failed to record last login for %s: %v", user.ID, err)
	}

	pair, err := s.issueStaffTokens(user)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{User: user, TokenPair: *pair}, nil
}

func (s *AuthService) issueStaffTokens(user *entity.User) (*TokenPair, error) {
	return s.issue(utils.TokenSubject{
		ID:          user.ID,
		Email:       user.Email,
		Kind:        utils.KindStaff,
		Roles:       user.RoleNames(),
		Permissions: user.GetPermissions(),
		BranchID:    user.BranchID,
	})
}

func (s *AuthService) issueMemberTokens(member *entity.Member) (*TokenPair, error) {
	return s.issue(utils.TokenSubject{
		ID:          member.ID,
		Email:       member.Email,
		Kind:        utils.KindMember,
		Roles:       []string{entity.RoleMember},
		Permissions: []string{entity.PermBookClasses},
		BranchID:    member.BranchID,
	})
}

func (s *AuthService) issue(sub utils.TokenSubject) (*TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(sub)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(sub.ID, sub.Kind)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.AccessTokenExpiry().Seconds()),
	}, nil
}

// MemberLogin authenticates a member with email and password
func (s *AuthService) MemberLogin(ctx context.Context, input *LoginInput) (*MemberLoginOutput, error) {
	member, err := s.memberRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if member == nil || !utils.CheckPasswordHash(input.Password, member.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !member.IsActive() {
		return nil, apperror.ErrMemberInactive
	}

	pair, err := s.issueMemberTokens(member)
	if err != nil {
		return nil, err
	}
	return &MemberLoginOutput{Member: member, TokenPair: *pair}, nil
}

// RefreshToken issues a new token pair for the principal named in a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	id, kind, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	switch kind {
	case utils.KindStaff:
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperror.ErrInvalidToken
		}
		if !user.IsActive() {
			return nil, apperror.ErrAccountDisabled
		}
		return s.issueStaffTokens(user)

	case utils.KindMember:
		member, err := s.memberRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, apperror.ErrInvalidToken
		}
		if !member.IsActive() {
			return nil, apperror.ErrMemberInactive
		}
		return s.issueMemberTokens(member)
	}

	return nil, apperror.ErrInvalidToken
}

// GetCurrentUser returns the signed-in staff account
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// GetCurrentMember returns the signed-in member
func (s *AuthService) GetCurrentMember(ctx context.Context, memberID uuid.UUID) (*entity.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Member")
	}
	return member, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	Kind            string
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the password of the signed-in staff account or member
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	if input.Kind == utils.KindMember {
		member, err := s.GetCurrentMember(ctx, input.UserID)
		if err != nil {
			return err
		}
		if !utils.CheckPasswordHash(input.CurrentPassword, member.Password) {
			return apperror.NewBadRequestError("Current password is incorrect")
		}
		member.Password = hashed
		return s.memberRepo.Update(ctx, member)
	}

	user, err := s.GetCurrentUser(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user.Password != "" && !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hashed)
}

// ForgotPassword emails a single-use reset link to a staff account.
// It reports success for unknown emails so accounts cannot be enumerated.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = normalizeEmail(emailAddr)
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		logger.ErrorLog(ctx, "password reset lookup failed", err)
		return nil
	}
	if user == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.passwordResetRepo.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		return s.passwordResetRepo.Create(ctx, &entity.PasswordResetToken{
			UserID:    user.ID,
			TokenHash: hashToken(token),
			ExpiresAt: s.now().Add(passwordResetTTL),
		})
	})
	if err != nil {
		return err
	}

	if s.emailService == nil || !s.emailService.IsConfigured() {
		logger.WarnLog(ctx, "email is not configured, password reset for %s not sent", user.Email)
		return nil
	}
	if err := s.emailService.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
		logger.ErrorLog(ctx, "failed to send password reset email", err)
	}
	return nil
}

// ResetPasswordInput represents the reset password input
type ResetPasswordInput struct {
	Email       string
	Token       string
	NewPassword string
}

// ResetPassword sets a new password using an emailed reset token
func (s *AuthService) ResetPassword(ctx context.Context, input *ResetPasswordInput) error {
	invalid := apperror.NewBadRequestError("Invalid or expired reset token")

	resetToken, err := s.passwordResetRepo.GetByHash(ctx, hashToken(input.Token))
	if err != nil {
		return err
	}
	if resetToken == nil || !resetToken.IsValid(s.now()) {
		return invalid
	}

	user, err := s.userRepo.GetByID(ctx, resetToken.UserID)
	if err != nil {
		return err
	}
	if user == nil || !strings.EqualFold(user.Email, strings.TrimSpace(input.Email)) {
		return invalid
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.passwordResetRepo.MarkAsUsed(ctx, resetToken.ID, s.now()); err != nil {
			return invalid
		}
		if err := s.userRepo.UpdatePassword(ctx, user.ID, hashed); err != nil {
			return err
		}
		return s.passwordResetRepo.DeleteByUser(ctx, user.ID)
	})
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
