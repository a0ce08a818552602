package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/ratelimit"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/pkg/storeapi"
)

type AuthService interface {
	Login(ctx context.Context, sess *session.Session, req *models.LoginRequest) (*models.AuthUser, error)
	Register(ctx context.Context, req *models.RegisterRequest) error
	Logout(ctx context.Context, sess *session.Session)
}

type authService struct {
	api     storeapi.Client
	limiter ratelimit.Limiter
}

func NewAuthService(api storeapi.Client, limiter ratelimit.Limiter) AuthService {
	return &authService{api: api, limiter: limiter}
}

func (s *authService) Login(ctx context.Context, sess *session.Session, req *models.LoginRequest) (*models.AuthUser, error) {
	logger := middleware.LoggerFromContext(ctx)

	decision, err := s.limiter.Allow(ctx, strings.ToLower(req.Username))
	if err != nil {
		return nil, appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !decision.Allowed {
		minutes := int(math.Ceil(decision.RetryAfter.Minutes()))
		return nil, appErrors.TooManyRequestsError(
			fmt.Sprintf("Too many login attempts. Please try again in %d minute(s).", max(minutes, 1)))
	}

	auth, err := s.api.Login(ctx, req)
	if err != nil {
		var apiErr *storeapi.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError && apiErr.StatusCode != http.StatusTooManyRequests {
			logger.Info("Login rejected", slog.String("username", req.Username), slog.Int("remaining_attempts", decision.Remaining))
			return nil, appErrors.UnauthorizedError("Invalid username or password").WithError(err)
		}

		logger.Error("Login request failed", slog.Any("error", err))
		return nil, upstreamError(err, "sign in")
	}

	if auth.Token == "" {
		return nil, appErrors.ThirdPartyError("Failed to sign in").WithDetail("no token in login response")
	}

	sess.SignIn(auth)
	logger.Info("User signed in", slog.String("username", auth.Username), slog.String("role", auth.Role))

	return sess.User(), nil
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) error {
	if err := s.api.Register(ctx, req); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Registration failed", slog.String("username", req.Username), slog.Any("error", err))
		return upstreamError(err, "create the account")
	}

	middleware.LoggerFromContext(ctx).Info("Account registered", slog.String("username", req.Username))
	return nil
}

func (s *authService) Logout(ctx context.Context, sess *session.Session) {
	if user := sess.User(); user != nil {
		middleware.LoggerFromContext(ctx).Info("User signed out", slog.String("username", user.Username))
	}
	sess.SignOut()
}
