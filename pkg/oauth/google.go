package oauth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var (
	ErrInvalidCode        = errors.New("invalid authorization code")
	ErrFailedToGetUser    = errors.New("failed to get user info from Google")
	ErrInvalidState       = errors.New("invalid state parameter")
	ErrOAuthNotConfigured = errors.New("Google OAuth is not configured")
	ErrEmailNotVerified   = errors.New("Google account email is not verified")
)

// GoogleProfile is the subset of the Google userinfo payload used for staff sign-in
type GoogleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleOAuthConfig holds the configuration for Google OAuth
type GoogleOAuthConfig struct {
	ClientID           string
	ClientSecret       string
	RedirectURL        string
	FrontendSuccessURL string
	FrontendErrorURL   string
	// StateSecret signs the state parameter. Falls back to ClientSecret.
	StateSecret string
	StateTTL    time.Duration
}

// GoogleOAuthService handles the Google sign-in flow for staff accounts
type GoogleOAuthService struct {
	config      *oauth2.Config
	cfg         GoogleOAuthConfig
	userInfoURL string
	now         func() time.Time
}

// NewGoogleOAuthService creates a new Google OAuth service
func NewGoogleOAuthService(cfg GoogleOAuthConfig) *GoogleOAuthService {
	if cfg.StateSecret == "" {
		cfg.StateSecret = cfg.ClientSecret
	}
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = 10 * time.Minute
	}

	return &GoogleOAuthService{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		cfg:         cfg,
		userInfoURL: defaultUserInfoURL,
		now:         time.Now,
	}
}

// IsConfigured checks if Google OAuth is properly configured
func (s *GoogleOAuthService) IsConfigured() bool {
	return s.config.ClientID != "" && s.config.ClientSecret != ""
}

// AuthURL returns the consent URL together with the signed state it embeds
func (s *GoogleOAuthService) AuthURL() (string, string) {
	state := s.NewState()
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOnline), state
}

// NewState returns a timestamped state value signed with the state secret
func (s *GoogleOAuthService) NewState() string {
	ts := strconv.FormatInt(s.now().Unix(), 10)
	return ts + "." + s.sign(ts)
}

// VerifyState checks the signature and age of a state value
func (s *GoogleOAuthService) VerifyState(state string) error {
	ts, sig, ok := strings.Cut(state, ".")
	if !ok || !hmac.Equal([]byte(sig), []byte(s.sign(ts))) {
		return ErrInvalidState
	}
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrInvalidState
	}
	if s.now().Sub(time.Unix(unix, 0)) > s.cfg.StateTTL {
		return ErrInvalidState
	}
	return nil
}

func (s *GoogleOAuthService) sign(v string) string {
	mac := hmac.New(sha256.New, []byte(s.cfg.StateSecret))
	mac.Write([]byte(v))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Authenticate exchanges the authorization code and returns the verified Google profile
func (s *GoogleOAuthService) Authenticate(ctx context.Context, code string) (*GoogleProfile, error) {
	if !s.IsConfigured() {
		return nil, ErrOAuthNotConfigured
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	profile, err := s.fetchProfile(ctx, s.config.Client(ctx, token))
	if err != nil {
		return nil, err
	}
	if !profile.VerifiedEmail {
		return nil, ErrEmailNotVerified
	}
	return profile, nil
}

func (s *GoogleOAuthService) fetchProfile(ctx context.Context, client *http.Client) (*GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUser, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrFailedToGetUser, resp.StatusCode, string(body))
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUser, err)
	}
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	return &profile, nil
}

// SuccessRedirect builds the frontend redirect carrying the issued tokens in the fragment
func (s *GoogleOAuthService) SuccessRedirect(accessToken, refreshToken string, expiresIn int64) string {
	v := url.Values{}
	v.Set("access_token", accessToken)
	v.Set("refresh_token", refreshToken)
	v.Set("expires_in", strconv.FormatInt(expiresIn, 10))
	return s.cfg.FrontendSuccessURL + "#" + v.Encode()
}

// ErrorRedirect builds the frontend redirect for a failed sign-in
func (s *GoogleOAuthService) ErrorRedirect(reason string) string {
	sep := "?"
	if strings.Contains(s.cfg.FrontendErrorURL, "?") {
		sep = "&"
	}
	return s.cfg.FrontendErrorURL + sep + "error=" + url.QueryEscape(reason)
}
