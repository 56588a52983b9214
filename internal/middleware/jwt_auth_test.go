package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return s
}

func TestJWTAuth(t *testing.T) {
	var seen string
	h := JWTAuth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	valid := jwt.MapClaims{"sub": "u1", "email": "a@b.c", "exp": time.Now().Add(time.Hour).Unix()}
	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), valid), http.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix()}), http.StatusUnauthorized},
		{"no subject", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}), http.StatusUnauthorized},
		{"hs512 rejected", "Bearer " + sign(t, jwt.SigningMethodHS512, []byte("secret"), valid), http.StatusUnauthorized},
		{"valid", "bearer " + sign(t, jwt.SigningMethodHS256, []byte("secret"), valid), http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("expected %d got %d (%s)", tc.want, w.Code, w.Body.String())
			}
			if tc.want != http.StatusUnauthorized {
				if seen != "u1" {
					t.Fatalf("expected user u1 in context, got %q", seen)
				}
				return
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("expected JSON error, got content type %q", ct)
			}
			if !strings.Contains(w.Body.String(), `"error":"unauthorized"`) {
				t.Fatalf("unexpected body %s", w.Body.String())
			}
			if seen != "" {
				t.Fatalf("handler ran for a rejected request")
			}
		})
	}
}
