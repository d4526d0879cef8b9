package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "abc123",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func runGuard(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/admin/api/orders", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	AdminAuth(testSecret)(c)
	return rec, c
}

func TestAdminAuthAcceptsAdminToken(t *testing.T) {
	rec, c := runGuard(t, "Bearer "+signToken(t, testSecret, "admin"))
	if rec.Code != http.StatusOK || c.IsAborted() {
		t.Fatalf("expected pass-through, got %d aborted=%v", rec.Code, c.IsAborted())
	}

	claims, ok := ClaimsFrom(c)
	if !ok {
		t.Fatalf("expected claims on context")
	}
	if claims["role"] != "admin" || claims["sub"] != "abc123" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestAdminAuthRejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + func() string {
			t2 := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"})
			s, _ := t2.SignedString([]byte("other-secret"))
			return s
		}(), http.StatusUnauthorized},
	}

	for _, tc := range cases {
		rec, _ := runGuard(t, tc.header)
		if rec.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.status, rec.Code)
		}
	}
}

func TestAdminAuthRejectsNonAdminRole(t *testing.T) {
	rec, _ := runGuard(t, "Bearer "+signToken(t, testSecret, "customer"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin role, got %d", rec.Code)
	}
}
