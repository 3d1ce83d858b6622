package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionLifecycle(t *testing.T) {
	sess := New(nil)

	if sess.IsAuthenticated() {
		t.Fatal("new session should not be authenticated")
	}

	if err := sess.SetToken("abc"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	if !sess.IsAuthenticated() {
		t.Fatal("expected session to be authenticated after SetToken")
	}
	token, ok := sess.Token()
	if !ok || token != "abc" {
		t.Fatalf("Token() = %q, %v; want %q, true", token, ok, "abc")
	}

	if err := sess.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if sess.IsAuthenticated() {
		t.Fatal("expected session to be cleared after Logout")
	}
}

func TestSetTokenDoesNotValidate(t *testing.T) {
	sess := New(nil)

	if err := sess.SetToken("not a jwt at all"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	if !sess.IsAuthenticated() {
		t.Fatal("any non-empty token should count as authenticated")
	}
}

func TestTokenStorePersistsAcrossSessions(t *testing.T) {
	dir := t.TempDir()

	first := New(NewTokenStore(dir))
	if err := first.SetToken("persisted"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, TokenFileName))
	if err != nil {
		t.Fatalf("token file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("token file mode = %v, want 0600", info.Mode().Perm())
	}

	second := New(NewTokenStore(dir))
	token, ok := second.Token()
	if !ok || token != "persisted" {
		t.Fatalf("Token() = %q, %v; want persisted token", token, ok)
	}

	if err := second.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, TokenFileName)); !os.IsNotExist(err) {
		t.Error("token file should have been removed")
	}

	third := New(NewTokenStore(dir))
	if third.IsAuthenticated() {
		t.Error("session should not be authenticated after logout")
	}
}

func TestTokenStoreClearWithoutFile(t *testing.T) {
	store := NewTokenStore(t.TempDir())
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() on missing file error = %v", err)
	}
	token, err := store.Load()
	if err != nil || token != "" {
		t.Fatalf("Load() = %q, %v; want empty, nil", token, err)
	}
}

func TestClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ada@example.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims, err := Claims(token)
	if err != nil {
		t.Fatalf("Claims() error = %v", err)
	}
	if claims.Subject != "ada@example.com" {
		t.Errorf("Subject = %q", claims.Subject)
	}
	if !claims.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt, exp)
	}

	if _, err := Claims("opaque"); err == nil {
		t.Error("expected error for non-JWT token")
	}
}
