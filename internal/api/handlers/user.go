package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/view"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	pages
	authService service.AuthService
	validator   *validator.Validate
}

func NewUserHandler(authService service.AuthService, renderer *view.Renderer) *UserHandler {
	return &UserHandler{pages: pages{renderer: renderer}, authService: authService, validator: utils.NewValidator()}
}

func (h *UserHandler) LoginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := session.FromContext(r.Context()); ok && sess.IsAuthenticated() {
			http.Redirect(w, r, middleware.HomePath, http.StatusSeeOther)
			return
		}

		h.render(w, r, http.StatusOK, "login", "Log in", view.LoginData{})
	}
}

// Login re-renders the form on failure so the username survives; the
// password never does.
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		req := models.LoginRequest{
			Username: strings.TrimSpace(r.PostFormValue("username")),
			Password: r.PostFormValue("password"),
		}

		if err := utils.ValidateStruct(h.validator, &req); err != nil {
			h.loginFailed(w, r, sess, &req, validationFailure(err))
			return
		}

		user, err := h.authService.Login(r.Context(), sess, &req)
		if err != nil {
			h.loginFailed(w, r, sess, &req, err)
			return
		}

		redirectWithFlash(w, r, sess, session.FlashSuccess, fmt.Sprintf("Welcome back, %s!", user.Username), middleware.HomePath)
	}
}

func (h *UserHandler) loginFailed(w http.ResponseWriter, r *http.Request, sess *session.Session, req *models.LoginRequest, err error) {
	sess.AddFlash(session.FlashError, appErrors.UserMessage(err))
	h.render(w, r, statusOf(err), "login", "Log in", view.LoginData{Username: req.Username})
}

func (h *UserHandler) SignupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, "signup", "Sign up", view.SignupData{})
	}
}

func (h *UserHandler) Signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		req := models.RegisterRequest{
			FullName:    strings.TrimSpace(r.PostFormValue("fullName")),
			Username:    strings.TrimSpace(r.PostFormValue("username")),
			Email:       strings.TrimSpace(r.PostFormValue("email")),
			Password:    r.PostFormValue("password"),
			PhoneNumber: strings.TrimSpace(r.PostFormValue("phoneNumber")),
			Address:     strings.TrimSpace(r.PostFormValue("address")),
		}

		if err := utils.ValidateStruct(h.validator, &req); err != nil {
			h.signupFailed(w, r, sess, req, validationFailure(err))
			return
		}

		if err := h.authService.Register(r.Context(), &req); err != nil {
			h.signupFailed(w, r, sess, req, err)
			return
		}

		redirectWithFlash(w, r, sess, session.FlashSuccess, "Account created. Please log in.", middleware.LoginPath)
	}
}

func (h *UserHandler) signupFailed(w http.ResponseWriter, r *http.Request, sess *session.Session, form models.RegisterRequest, err error) {
	form.Password = ""
	sess.AddFlash(session.FlashError, appErrors.UserMessage(err))
	h.render(w, r, statusOf(err), "signup", "Sign up", view.SignupData{Form: form})
}

func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		h.authService.Logout(r.Context(), sess)

		redirectWithFlash(w, r, sess, session.FlashSuccess, "You have been logged out", middleware.HomePath)
	}
}
