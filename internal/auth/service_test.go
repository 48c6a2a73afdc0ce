package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewService(nil, "test-secret")

	token, err := s.issueToken("user_abc123")
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	userID, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != "user_abc123" {
		t.Errorf("userID = %q, want user_abc123", userID)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService(nil, "secret-a")
	token, err := issuer.issueToken("user_abc123")
	if err != nil {
		t.Fatal(err)
	}

	other := NewService(nil, "secret-b")
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret validated")
	}
}

func TestValidateTokenRejectsUnsignedToken(t *testing.T) {
	claims := jwt.MapClaims{"sub": "user_abc123"}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	s := NewService(nil, "test-secret")
	if _, err := s.ValidateToken(unsigned); err == nil {
		t.Fatal("alg=none token validated")
	}
	if _, err := s.ValidateToken("not-a-token"); err == nil {
		t.Fatal("garbage token validated")
	}
}

func TestAuthMiddlewarePopulatesContext(t *testing.T) {
	s := NewService(nil, "test-secret")
	token, err := s.issueToken("user_abc123")
	if err != nil {
		t.Fatal(err)
	}

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserIDFromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.AuthMiddleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got != "user_abc123" {
		t.Errorf("context userID = %q, want user_abc123", got)
	}
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	s := NewService(nil, "test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without credentials")
	})

	req := httptest.NewRequest("GET", "/api/documents", nil)
	rec := httptest.NewRecorder()
	s.AuthMiddleware(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing header status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/documents", nil)
	req.Header.Set("Authorization", "Token abc")
	rec = httptest.NewRecorder()
	s.AuthMiddleware(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("non-bearer scheme status = %d, want 401", rec.Code)
	}
}
