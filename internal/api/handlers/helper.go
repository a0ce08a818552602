package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cart"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/aaravmahajanofficial/storefront/internal/view"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var errNoSession = errors.New("no session in request context")

// pages holds what every HTML handler needs to render a view.
type pages struct {
	renderer *view.Renderer
}

// render fills the shared layout data from the request's session and writes
// the named page. Flashes are consumed here.
func (p pages) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	logger := middleware.LoggerFromContext(r.Context())

	page := view.Page{Title: title, Data: data}
	if sess, ok := session.FromContext(r.Context()); ok {
		page.User = sess.User()
		page.Flashes = sess.PopFlashes()
		sess.WithCart(func(l *cart.Ledger) {
			page.CartCount = l.ItemCount()
		})
	}

	if err := p.renderer.Render(w, status, name, page); err != nil {
		logger.Error("Failed to render page", slog.String("page", name), slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// renderError shows the error page with the status and message carried by err.
func (p pages) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)

	p.render(w, r, status, "error", http.StatusText(status), view.ErrorData{
		Status:  status,
		Message: appErrors.UserMessage(err),
	})
}

// NotFound renders the error page for any path no route matched.
func (p pages) NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.renderError(w, r, appErrors.NotFoundError("Page not found"))
	}
}

func statusOf(err error) int {
	if appErr, ok := appErrors.IsAppError(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func requestSession(r *http.Request) (*session.Session, error) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		return nil, appErrors.InternalError("Session unavailable").WithError(errNoSession)
	}
	return sess, nil
}

// redirectWithFlash stores a one-shot message and sends the browser to target
// with 303 so a reload never re-submits the form.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, sess *session.Session, kind session.FlashKind, message, target string) {
	if message != "" {
		sess.AddFlash(kind, message)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, sess *session.Session, err error, target string) {
	logger := middleware.LoggerFromContext(r.Context())

	if appErr, ok := appErrors.IsAppError(err); ok && appErr.StatusCode < http.StatusInternalServerError {
		logger.Warn("Request rejected", slog.String("code", appErr.Code), slog.String("error", err.Error()))
	} else {
		logger.Error("Request failed", slog.String("error", err.Error()))
	}

	redirectWithFlash(w, r, sess, session.FlashError, appErrors.UserMessage(err), target)
}

// backTo returns the local path the request came from, or fallback. Only the
// path of the Referer is used so the redirect never leaves the site.
func backTo(r *http.Request, fallback string) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return fallback
	}
	if ref.Host != "" && ref.Host != r.Host {
		return fallback
	}
	return ref.Path
}

// validationFailure converts validator output into a user-facing AppError.
func validationFailure(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return appErrors.ValidationError(strings.Join(response.ValidationMessages(errs), "; "))
	}
	if appErr, ok := appErrors.IsAppError(err); ok {
		return appErr
	}
	return appErrors.ValidationError("Invalid input data")
}

func pathID(r *http.Request) (models.ID, error) {
	id, ok := models.ParseID(r.PathValue("id"))
	if !ok {
		return "", appErrors.BadRequestError("Missing item id")
	}
	return id, nil
}

func percentLabel(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
