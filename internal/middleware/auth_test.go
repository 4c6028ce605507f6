package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/ledger-backend/pkg/helpers"
)

type stubVerifier struct {
	token    *auth.Token
	err      error
	gotToken string
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	s.gotToken = idToken
	return s.token, s.err
}

func newToken() *auth.Token {
	return &auth.Token{
		UID:      "uid-1",
		Claims:   map[string]interface{}{"email": "a@example.com"},
		Firebase: auth.FirebaseInfo{SignInProvider: "google.com"},
	}
}

func TestFirebaseAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		upgrade    bool
		query      string
		wantStatus int
		wantToken  string
	}{
		{"bearer header", "Bearer abc", false, "", http.StatusOK, "abc"},
		{"missing header", "", false, "", http.StatusUnauthorized, ""},
		{"malformed header", "Token abc", false, "", http.StatusUnauthorized, ""},
		{"query token on upgrade", "", true, "?token=ws", http.StatusOK, "ws"},
		{"query token without upgrade", "", false, "?token=ws", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{token: newToken()}
			m := NewMiddleware(verifier)

			var gotUID, gotEmail, gotProvider string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUID = UID(r.Context())
				gotEmail = Email(r.Context())
				gotProvider = Provider(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/ws"+tt.query, nil).WithContext(helpers.TestCtx())
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.upgrade {
				req.Header.Set("Upgrade", "websocket")
			}
			rr := httptest.NewRecorder()

			m.FirebaseAuth(next).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			if verifier.gotToken != tt.wantToken {
				t.Fatalf("verified token %q, want %q", verifier.gotToken, tt.wantToken)
			}
			if gotUID != "uid-1" || gotEmail != "a@example.com" || gotProvider != "google.com" {
				t.Fatalf("identity not on context: %s %s %s", gotUID, gotEmail, gotProvider)
			}
		})
	}
}

func TestFirebaseAuthRejectsBadToken(t *testing.T) {
	m := NewMiddleware(&stubVerifier{err: errors.New("expired")})
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.Header.Set("Authorization", "Bearer old")
	rr := httptest.NewRecorder()
	m.FirebaseAuth(next).ServeHTTP(rr, req)

	if called || rr.Code != http.StatusUnauthorized {
		t.Fatalf("expired token let through: called=%v status=%d", called, rr.Code)
	}
}
