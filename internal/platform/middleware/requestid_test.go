package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func serveRequestID(t *testing.T, incoming string, set bool) (captured, header string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if set {
		req.Header.Set(chimiddleware.RequestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = chimiddleware.GetReqID(r.Context())
	})).ServeHTTP(rec, req)
	return captured, rec.Header().Get(chimiddleware.RequestIDHeader)
}

func TestRequestIDGeneratesUUIDv4(t *testing.T) {
	captured, header := serveRequestID(t, "", false)

	if captured == "" {
		t.Fatal("expected generated request ID")
	}
	if header != captured {
		t.Fatalf("expected response header %q, got %q", captured, header)
	}
	parsed, err := uuid.Parse(captured)
	if err != nil {
		t.Fatalf("request ID %q is not a valid UUID: %v", captured, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("expected UUIDv4, got version %d", parsed.Version())
	}
}

func TestRequestIDHeaderValidation(t *testing.T) {
	tests := []struct {
		name    string
		inputID string
		wantNew bool
	}{
		{"alphanumeric is preserved", "abc123-XYZ", false},
		{"uuid is preserved", "550e8400-e29b-41d4-a716-446655440000", false},
		{"printable punctuation is preserved", "req:42/a b~", false},
		{"max length is preserved", strings.Repeat("a", maxRequestIDLength), false},
		{"empty is replaced", "", true},
		{"too long is replaced", strings.Repeat("a", maxRequestIDLength+1), true},
		{"tab is replaced", "abc\tdef", true},
		{"DEL is replaced", "abc\x7fdef", true},
		{"non-ASCII is replaced", "café", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captured, header := serveRequestID(t, tt.inputID, true)
			if header != captured {
				t.Fatalf("header %q does not match context %q", header, captured)
			}
			if tt.wantNew {
				if captured == tt.inputID {
					t.Fatalf("expected %q to be replaced", tt.inputID)
				}
				if _, err := uuid.Parse(captured); err != nil {
					t.Fatalf("replacement %q is not a UUID: %v", captured, err)
				}
				return
			}
			if captured != tt.inputID {
				t.Fatalf("expected %q to be preserved, got %q", tt.inputID, captured)
			}
		})
	}
}

func TestRequestIDUniquePerRequest(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, _ := serveRequestID(t, "", false)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = struct{}{}
	}
}
