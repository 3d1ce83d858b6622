package mockapi

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ctxKey struct{}

// ownerFrom returns the email of the authenticated caller
func ownerFrom(ctx context.Context) string {
	email, _ := ctx.Value(ctxKey{}).(string)
	return email
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validateCredentials(c credentials, minPassword int) []issue {
	var issues []issue
	if _, err := mail.ParseAddress(c.Email); err != nil || !strings.Contains(c.Email, "@") {
		issues = append(issues, issue{Loc: []string{"body", "email"}, Msg: "value is not a valid email address", Type: "value_error"})
	}
	if len(c.Password) < minPassword {
		issues = append(issues, issue{Loc: []string{"body", "password"}, Msg: "String should have at least 6 characters", Type: "string_too_short"})
	}
	if len(c.Password) > 100 {
		issues = append(issues, issue{Loc: []string{"body", "password"}, Msg: "String should have at most 100 characters", Type: "string_too_long"})
	}
	return issues
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "TaskFlow Backend is running 🚀",
		"status":  "healthy",
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if !decodeBody(w, r, &c) {
		return
	}
	if issues := validateCredentials(c, 6); len(issues) > 0 {
		writeIssues(w, issues)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.MinCost)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Error creating user account")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[c.Email]; exists {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	s.users[c.Email] = &user{Email: c.Email, PasswordHash: hash}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "User registered successfully ✅",
		"email":   c.Email,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if !decodeBody(w, r, &c) {
		return
	}
	if issues := validateCredentials(c, 6); len(issues) > 0 {
		writeIssues(w, issues)
		return
	}

	s.mu.Lock()
	u, ok := s.users[c.Email]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(c.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := s.IssueToken(u.Email)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Could not create access token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
		"email":        u.Email,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"email":   ownerFrom(r.Context()),
		"message": "You are authenticated ✅",
	})
}

// IssueToken signs an access token for email
func (s *Server) IssueToken(email string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
		if err != nil || claims.Subject == "" {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		s.mu.Lock()
		_, known := s.users[claims.Subject]
		s.mu.Unlock()
		if !known {
			writeDetail(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RegisterUser creates an account directly, bypassing the signup endpoint
func (s *Server) RegisterUser(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = &user{Email: email, PasswordHash: hash}
	return nil
}
