// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dalemusser/rosterhub/internal/domain/models"
)

// Session establishment (login flows) happens in a separate front-end
// service; this package only attaches an already-authenticated acting user
// to the request context, from either a signed session cookie or a service
// credential. Everything past this middleware does authorization only.

const (
	SessionName = "rosterhub-session"

	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

// UserFetcher loads the full user document for an authenticated id. Fetching
// fresh on every request means admin/verified flag changes take effect
// immediately instead of at next login.
type UserFetcher interface {
	FetchUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// CredentialChecker resolves a service credential (basic auth) to a user.
type CredentialChecker interface {
	FetchUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the acting user attached by LoadSessionUser.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	return u, ok
}

// WithTestUser attaches a user directly to the request context. Test helper;
// production requests go through LoadSessionUser.
func WithTestUser(r *http.Request, u *models.User) *http.Request {
	return withUser(r, u)
}

// Middleware resolves the acting user for each request.
type Middleware struct {
	fetcher UserFetcher
	creds   CredentialChecker
	log     *zap.Logger
}

// NewMiddleware builds the auth middleware.
func NewMiddleware(fetcher UserFetcher, creds CredentialChecker, log *zap.Logger) *Middleware {
	return &Middleware{fetcher: fetcher, creds: creds, log: log}
}

// LoadSessionUser injects the acting user into context when the request
// carries a valid session cookie or service-credential basic auth. Requests
// without credentials pass through anonymous; RequireSignedIn gates them.
func (m *Middleware) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := m.fromSession(r); u != nil {
			next.ServeHTTP(w, withUser(r, u))
			return
		}
		if u := m.fromBasicAuth(r); u != nil {
			next.ServeHTTP(w, withUser(r, u))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) fromSession(r *http.Request) *models.User {
	if Store == nil || m.fetcher == nil {
		return nil
	}
	sess, _ := Store.Get(r, SessionName)
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return nil
	}
	idHex, _ := sess.Values[userIDKey].(string)
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		// Malformed id in a signed session means corruption; fail closed.
		return nil
	}
	u, err := m.fetcher.FetchUser(r.Context(), id)
	if err != nil {
		m.log.Debug("session user fetch failed", zap.String("user_id", idHex), zap.Error(err))
		return nil
	}
	return u
}

// fromBasicAuth authenticates trusted service callers: basic auth with the
// user's email and a pre-shared secret checked against its bcrypt hash.
func (m *Middleware) fromBasicAuth(r *http.Request) *models.User {
	if m.creds == nil {
		return nil
	}
	email, secret, ok := r.BasicAuth()
	if !ok {
		return nil
	}
	u, err := m.creds.FetchUserByEmail(r.Context(), email)
	if err != nil || u.APISecretHash == "" {
		return nil
	}
	if bcrypt.CompareHashAndPassword([]byte(u.APISecretHash), []byte(secret)) != nil {
		m.log.Warn("service credential rejected", zap.String("email", email))
		return nil
	}
	return u
}

// RequireSignedIn ensures an acting user is in context; otherwise 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HashSecret hashes a service-credential secret for storage.
func HashSecret(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// InitSessionStore initializes the global session Store. In dev, an empty
// key falls back to a random per-process key so unsigned cookies never slip
// through; production must supply a stable key.
func InitSessionStore(sessionKey, domain string, secure bool, logger *zap.Logger) error {
	key := []byte(sessionKey)
	if len(key) == 0 {
		if secure {
			return fmt.Errorf("session key is empty; provide at least 32 random chars")
		}
		key = securecookie.GenerateRandomKey(32)
		logger.Warn("session key empty; using random per-process key (dev only)")
	} else if len(key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(key)))
	}

	store := sessions.NewCookieStore(key)
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts
	Store = store

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))
	return nil
}

func withUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}
