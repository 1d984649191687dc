package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kiwari-pos/qrcounter/internal/auth"
	"github.com/kiwari-pos/qrcounter/internal/middleware"
)

const testSecret = "test-secret"

func okHandler(t *testing.T, wantClaims bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if wantClaims && claims == nil {
			t.Fatal("expected claims in context")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func failHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})
}

func TestRequireOperator_BearerToken(t *testing.T) {
	token, _ := auth.GenerateOperatorToken(testSecret)
	handler := middleware.RequireOperator(testSecret, true)(okHandler(t, true))

	req := httptest.NewRequest("POST", "/add_item", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestRequireOperator_Cookie(t *testing.T) {
	token, _ := auth.GenerateOperatorToken(testSecret)
	handler := middleware.RequireOperator(testSecret, true)(okHandler(t, true))

	req := httptest.NewRequest("POST", "/add_item", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestRequireOperator_MissingToken(t *testing.T) {
	handler := middleware.RequireOperator(testSecret, true)(failHandler(t))

	req := httptest.NewRequest("POST", "/add_item", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestRequireOperator_InvalidToken(t *testing.T) {
	handler := middleware.RequireOperator(testSecret, true)(failHandler(t))

	req := httptest.NewRequest("POST", "/add_item", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestRequireOperator_WrongSecret(t *testing.T) {
	token, _ := auth.GenerateOperatorToken("other-secret")
	handler := middleware.RequireOperator(testSecret, true)(failHandler(t))

	req := httptest.NewRequest("POST", "/remove_item", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestRequireOperator_BadHeaderFormat(t *testing.T) {
	handler := middleware.RequireOperator(testSecret, true)(failHandler(t))

	req := httptest.NewRequest("POST", "/add_item", nil)
	req.Header.Set("Authorization", "Token abc")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestRequireOperator_Disabled(t *testing.T) {
	handler := middleware.RequireOperator(testSecret, false)(okHandler(t, false))

	req := httptest.NewRequest("POST", "/add_item", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
}
