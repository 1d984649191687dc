package handler

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed static/mobile.html
var mobilePage []byte

// MobileHandler serves the customer-facing display page.
type MobileHandler struct{}

func NewMobileHandler() *MobileHandler { return &MobileHandler{} }

func (h *MobileHandler) RegisterRoutes(r chi.Router) {
	r.Get("/mobile", h.Page)
}

func (h *MobileHandler) Page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(mobilePage)
}
