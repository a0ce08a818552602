// Package session keeps per-visitor state: the API token of a signed-in user
// and the visitor's cart. Sessions live in process memory only.
package session

import (
	"context"
	"sync"

	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind    FlashKind
	Message string
}

// Session is shared by every request of one browser; all access goes through
// its mutex.
type Session struct {
	ID string

	mu      sync.Mutex
	token   string
	user    *models.AuthUser
	cart    *cart.Ledger
	flashes []Flash
}

func New(id string) *Session {
	return &Session{ID: id, cart: cart.New()}
}

// WithCart runs fn with exclusive access to the session's cart.
func (s *Session) WithCart(fn func(l *cart.Ledger)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cart)
}

func (s *Session) SignIn(auth *models.AuthResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = auth.Token
	s.user = &models.AuthUser{Username: auth.Username, Email: auth.Email, Role: auth.Role}
}

// SignOut forgets the credentials; the cart stays with the visitor.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

// Token is the bearer token handed to the store API, empty when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) User() *models.AuthUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Session) IsAdmin() bool {
	return s.User().IsAdmin()
}

func (s *Session) AddFlash(kind FlashKind, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes = append(s.flashes, Flash{Kind: kind, Message: message})
}

// PopFlashes returns pending messages and forgets them.
func (s *Session) PopFlashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	flashes := s.flashes
	s.flashes = nil
	return flashes
}

type contextKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
