package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/kiwari-pos/qrcounter/internal/handler"
)

func TestMobilePage(t *testing.T) {
	r := chi.NewRouter()
	handler.NewMobileHandler().RegisterRoutes(r)

	rr := doForm(t, r, "GET", "/mobile", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type: %s", ct)
	}
	body := rr.Body.String()
	for _, want := range []string{"/ws", "order_summary", "reset_order"} {
		if !strings.Contains(body, want) {
			t.Errorf("page should reference %q", want)
		}
	}
}
