package sessions

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/leasehub/go-auth-gateway/provider"
)

// AccessTokenCookie is the fixed name of the session cookie.
const AccessTokenCookie = "access_token"

// CookieIssuer writes the session cookie after a successful sign-in. The
// Secure flag is decided once at startup from configuration rather than being
// hardcoded per environment.
type CookieIssuer struct {
	secure bool
}

func NewCookieIssuer(secure bool) *CookieIssuer {
	return &CookieIssuer{secure: secure}
}

// Issue writes the session cookie. Only a non-nil provider session may become
// a cookie; every other outcome must leave the response cookie-free.
// MaxAge is the provider expiry verbatim: both the provider payload and Go
// response cookies count in seconds.
func (ci *CookieIssuer) Issue(w http.ResponseWriter, session *provider.Session) error {
	if session == nil || session.AccessToken == "" {
		return errors.New("[CookieIssuer.Issue] no session to issue")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    session.AccessToken,
		Path:     "/",
		MaxAge:   session.ExpiresIn,
		HttpOnly: true, // never readable from page scripts
		Secure:   ci.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Clear expires the session cookie on sign-out.
func (ci *CookieIssuer) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ci.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
