package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	// SessionName is the cookie name carrying the encrypted session id.
	SessionName = "stockroom_session"

	sessionOperatorKey = "operator"

	// LoginPath is where anonymous callers are sent.
	LoginPath = "/login"
)

// ErrAuthRejected is returned by Login for any credential mismatch. The message
// never says which of the two fields was wrong.
var ErrAuthRejected = errors.New("invalid username or password")

// Credentials is the single configured operator identity.
type Credentials struct {
	Username string
	Password string
}

// sessionDiscarder is implemented by stores that keep session state server-side
// and can drop the state behind a session id.
type sessionDiscarder interface {
	Discard(ctx context.Context, session *sessions.Session) error
}

// Gate moves a browser session between the Anonymous and Authenticated states.
type Gate struct {
	store sessions.Store
	creds Credentials
}

func NewGate(store sessions.Store, creds Credentials) *Gate {
	return &Gate{store: store, creds: creds}
}

// Login authenticates the session on r when username and password match the
// configured pair exactly. On mismatch the session is left untouched. On
// success the session gets a fresh id; the pre-login id is discarded.
func (g *Gate) Login(w http.ResponseWriter, r *http.Request, username, password string) error {
	if !g.matches(username, password) {
		return ErrAuthRejected
	}
	session, err := g.store.Get(r, SessionName)
	if err != nil && session == nil {
		return fmt.Errorf("load session: %w", err)
	}
	if session.ID != "" {
		if d, ok := g.store.(sessionDiscarder); ok {
			if err := d.Discard(r.Context(), session); err != nil {
				return fmt.Errorf("discard pre-login session: %w", err)
			}
		}
		session.ID = ""
	}
	session.Values[sessionOperatorKey] = g.creds.Username
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout returns the session to Anonymous by expiring it.
func (g *Gate) Logout(w http.ResponseWriter, r *http.Request) error {
	session, err := g.store.Get(r, SessionName)
	if err != nil && session == nil {
		return fmt.Errorf("load session: %w", err)
	}
	delete(session.Values, sessionOperatorKey)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("expire session: %w", err)
	}
	return nil
}

// Decision is the guard outcome for a request: either Allow with the
// authenticated operator, or a redirect to RedirectTo.
type Decision struct {
	Allow      bool
	Operator   string
	RedirectTo string
}

// Decide inspects the session on r. A missing, tampered, or unauthenticated
// session yields a redirect to the login path.
func (g *Gate) Decide(r *http.Request) Decision {
	session, err := g.store.Get(r, SessionName)
	if err != nil || session == nil {
		return Decision{RedirectTo: LoginPath}
	}
	op, ok := session.Values[sessionOperatorKey].(string)
	if !ok || op == "" {
		return Decision{RedirectTo: LoginPath}
	}
	return Decision{Allow: true, Operator: op}
}

func (g *Gate) matches(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.creds.Password)) == 1
	return userOK && passOK && g.creds.Username != ""
}
