package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/leasehub/go-auth-gateway/auth"
	"github.com/leasehub/go-auth-gateway/sessions"
)

const serverErrorMsg = "Server error"

type messageResponse struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(messageResponse{Message: message})
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates a provider account for a pre-provisioned tenant
// email. No session is issued; the user confirms their email and signs in
// separately.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusInternalServerError, serverErrorMsg)
			return
		}

		err := s.lifecycle.Register(r.Context(), req.Email, req.Password)
		switch {
		case err == nil:
			writeMessage(w, http.StatusOK, "Account registered.")
		case errors.Is(err, auth.UnknownTenantErr):
			writeMessage(w, http.StatusNotFound, "Unable to register account. Contact your leasing operator.")
		case errors.Is(err, auth.WeakPasswordErr):
			writeMessage(w, http.StatusInternalServerError, "Password not strong enough. Must be at least 6 characters.")
		default:
			writeMessage(w, http.StatusInternalServerError, "Error signing up")
		}
	}
}

// ForgotPasswordHandler asks the provider to mail a recovery link. The
// response is the same whether or not the email is registered.
func (s *Server) ForgotPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusInternalServerError, serverErrorMsg)
			return
		}

		if err := s.lifecycle.RequestPasswordReset(r.Context(), req.Email); err != nil {
			writeMessage(w, http.StatusBadRequest, "something went wrong")
			return
		}
		writeMessage(w, http.StatusOK, "Password reset email sent.")
	}
}

// UpdatePasswordHandler finishes a password reset. The recovery context is the
// session issued by the recovery confirmation, carried as a bearer token or as
// the session cookie.
func (s *Server) UpdatePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Not authorized. Unable to reset password.")
			return
		}

		if err := s.lifecycle.CompletePasswordReset(r.Context(), s.accessToken(r), req.Password); err != nil {
			writeMessage(w, http.StatusBadRequest, "Not authorized. Unable to reset password.")
			return
		}
		writeMessage(w, http.StatusOK, "Password reset successfully.")
	}
}

// ConfirmHandler lands the one-time link from the recovery email. Every
// validation or exchange failure ends on the configured error page; the
// redirect is a 303 so the follow-up request is always a GET.
func (s *Server) ConfirmHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		decision := s.lifecycle.ConfirmRecovery(r.Context(), query.Get("token_hash"), query.Get("type"), query.Get("next"))

		location := s.config.GetErrorPageURL()
		if decision.OK {
			location = decision.Location
		}
		http.Redirect(w, r, location, http.StatusSeeOther)
	}
}

// SignInHandler authenticates credentials and sets the session cookie. The
// cookie is only written when the provider returned a session.
func (s *Server) SignInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusInternalServerError, serverErrorMsg)
			return
		}

		session, err := s.lifecycle.SignIn(r.Context(), req.Email, req.Password)
		switch {
		case err == nil:
			if err := s.cookies.Issue(w, session); err != nil {
				writeMessage(w, http.StatusInternalServerError, serverErrorMsg)
				return
			}
			writeMessage(w, http.StatusOK, "Signed in successfully")
		case errors.Is(err, auth.SessionUnavailableErr):
			writeMessage(w, http.StatusInternalServerError, "failed to retrieve session.")
		default:
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password. Please try again.")
		}
	}
}

// SignOutHandler revokes the provider session and clears the cookie.
func (s *Server) SignOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.lifecycle.SignOut(r.Context(), s.accessToken(r)); err != nil {
			writeMessage(w, http.StatusUnauthorized, "Sign out error.")
			return
		}

		s.cookies.Clear(w)
		writeMessage(w, http.StatusOK, "Signed out successfully")
	}
}

// ResetTestHandler bounces to the client app's update-password page. DEV only.
func (s *Server) ResetTestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://localhost:5173/update-password", http.StatusSeeOther)
	}
}

// accessToken pulls the session token from the Authorization header, falling
// back to the session cookie.
func (s *Server) accessToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie(sessions.AccessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
