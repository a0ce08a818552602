package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/session"
)

// CreateTestRequestWithSession builds a request the way the middleware chain
// would hand it to a handler: a discarding logger and sess in the context.
func CreateTestRequestWithSession(method, target string, body io.Reader, sess *session.Session, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutSession(method, target, body, pathParams)
	return req.WithContext(session.NewContext(req.Context(), sess))
}

func CreateTestRequestWithoutSession(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return req.WithContext(middleware.WithLogger(req.Context(), logger))
}

// CreateFormRequest posts form as application/x-www-form-urlencoded.
func CreateFormRequest(target string, form url.Values, sess *session.Session, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithSession(http.MethodPost, target, strings.NewReader(form.Encode()), sess, pathParams)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// SignedInSession returns a session already logged in with role.
func SignedInSession(id, role string) *session.Session {
	sess := session.New(id)
	sess.SignIn(&models.AuthResponse{
		Token:    "token-" + id,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     role,
	})
	return sess
}
