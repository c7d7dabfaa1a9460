package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"civictrack/internal/auth"
	"civictrack/internal/config"
	"civictrack/internal/model"
	"civictrack/internal/repository"
)

const defaultUserInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// ErrGoogleLoginFailed is returned for any provider-side failure. The caller
// gets this generic error regardless of what the provider reported.
var ErrGoogleLoginFailed = errors.New("Google login failed")

// GoogleUserInfo represents the user information returned by Google.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	VerifiedEmail bool   `json:"verified_email"`
}

// OAuthService handles the two-step Google identity exchange. Client id,
// secret and redirect URI come from static server configuration only; they
// are never read from the request.
type OAuthService interface {
	// AuthCodeURL returns the provider authorization URL together with the
	// state nonce stored server-side for the duration of the round trip.
	AuthCodeURL(ctx context.Context) (url, state string, err error)
	// HandleCallback validates state, exchanges the code, fetches the
	// verified identity and returns an access token for it. A user is
	// created on first login, marked verified.
	HandleCallback(ctx context.Context, code, state string) (accessToken string, user *model.User, err error)
}

type oauthService struct {
	oauth      *oauth2.Config
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	stateStore auth.StateStoreInterface
	httpClient *http.Client

	// UserInfoEndpoint is overridable in tests.
	userInfoEndpoint string
}

// NewOAuthService creates a Google OAuth service from static configuration.
func NewOAuthService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	stateStore auth.StateStoreInterface,
) OAuthService {
	return &oauthService{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userRepo:         userRepo,
		jwtService:       jwtService,
		stateStore:       stateStore,
		httpClient:       &http.Client{Timeout: cfg.HTTPClientTimeout},
		userInfoEndpoint: defaultUserInfoEndpoint,
	}
}

func (s *oauthService) AuthCodeURL(ctx context.Context) (string, string, error) {
	state, err := s.stateStore.Issue(ctx)
	if err != nil {
		return "", "", fmt.Errorf("issue oauth state: %w", err)
	}
	return s.oauth.AuthCodeURL(state), state, nil
}

func (s *oauthService) HandleCallback(ctx context.Context, code, state string) (string, *model.User, error) {
	ok, err := s.stateStore.Consume(ctx, state)
	if err != nil {
		return "", nil, fmt.Errorf("consume oauth state: %w", err)
	}
	if !ok {
		// Unknown, expired or replayed state. Indistinguishable on purpose.
		return "", nil, ErrGoogleLoginFailed
	}

	// Bound both provider calls by the configured client timeout.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", nil, ErrGoogleLoginFailed
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return "", nil, ErrGoogleLoginFailed
	}
	if info.Email == "" {
		return "", nil, ErrGoogleLoginFailed
	}

	user, err := s.findOrCreateUser(ctx, info)
	if err != nil {
		return "", nil, fmt.Errorf("find or create user: %w", err)
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, user, nil
}

func (s *oauthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create userinfo request: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("userinfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	return &info, nil
}

func (s *oauthService) findOrCreateUser(ctx context.Context, info *GoogleUserInfo) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, info.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &model.User{
		Name:       info.Name,
		Email:      info.Email,
		IsVerified: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
