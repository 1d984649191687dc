package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kiwari-pos/qrcounter/internal/enum"
	"github.com/kiwari-pos/qrcounter/internal/pos"
	"github.com/kiwari-pos/qrcounter/internal/service"
)

// CatalogServicer is the catalog surface the counter page needs.
// Satisfied by *service.CatalogService; narrow interface for testability.
type CatalogServicer interface {
	ListItems(ctx context.Context) ([]pos.Item, error)
	AddItem(ctx context.Context, name, cost string) (pos.Item, error)
	RemoveItem(ctx context.Context, id int) error
}

// OrderServicer is satisfied by *service.OrderService.
type OrderServicer interface {
	PlaceOrder(ctx context.Context, req service.PlaceOrderRequest) (*service.OrderResult, error)
	NextOrder()
	ListTransactions(ctx context.Context) ([]pos.Transaction, error)
}

// PosHandler serves the counter page and its form posts.
type PosHandler struct {
	catalog CatalogServicer
	orders  OrderServicer
	guard   func(http.Handler) http.Handler
}

// NewPosHandler creates a new PosHandler. guard wraps the catalog edit
// routes; pass nil to leave them open.
func NewPosHandler(catalog CatalogServicer, orders OrderServicer, guard func(http.Handler) http.Handler) *PosHandler {
	if guard == nil {
		guard = func(next http.Handler) http.Handler { return next }
	}
	return &PosHandler{catalog: catalog, orders: orders, guard: guard}
}

// RegisterRoutes registers the counter endpoints on the given Chi router.
func (h *PosHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Group(func(r chi.Router) {
		r.Use(h.guard)
		r.Post("/add_item", h.AddItem)
		r.Post("/remove_item", h.RemoveItem)
	})
	r.Post("/place_order", h.PlaceOrder)
	r.Get("/next_order", h.NextOrder)
	r.Get("/transactions", h.Transactions)
}

// --- Response types ---

type indexResponse struct {
	Items []pos.Item `json:"items"`
	Flash *Flash     `json:"flash"`
}

// --- Handlers ---

// Index lists the catalog and hands over any pending flash.
func (h *PosHandler) Index(w http.ResponseWriter, r *http.Request) {
	flash := popFlash(w, r)

	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		level, msg := flashForError("list items", err)
		writeJSON(w, http.StatusInternalServerError, indexResponse{Items: []pos.Item{}, Flash: &Flash{Level: level, Message: msg}})
		return
	}
	if items == nil {
		items = []pos.Item{}
	}

	writeJSON(w, http.StatusOK, indexResponse{Items: items, Flash: flash})
}

// AddItem appends a catalog item from form fields name and cost.
func (h *PosHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, enum.FlashDanger, "invalid form")
		return
	}

	if _, err := h.catalog.AddItem(r.Context(), r.PostForm.Get("name"), r.PostForm.Get("cost")); err != nil {
		level, msg := flashForError("add item", err)
		redirectWithFlash(w, r, level, msg)
		return
	}

	redirectWithFlash(w, r, enum.FlashSuccess, "Item added successfully")
}

// RemoveItem deletes the catalog item named by form field item_id.
func (h *PosHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, enum.FlashDanger, "invalid form")
		return
	}

	id, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("item_id")))
	if err != nil {
		redirectWithFlash(w, r, enum.FlashDanger, "item_id must be an integer")
		return
	}

	if err := h.catalog.RemoveItem(r.Context(), id); err != nil {
		level, msg := flashForError("remove item", err)
		redirectWithFlash(w, r, level, msg)
		return
	}

	redirectWithFlash(w, r, enum.FlashSuccess, "Item removed successfully")
}

// PlaceOrder prices the submitted items and returns the order confirmation.
// Fields items[] and quantities[] repeat and pair up by position.
func (h *PosHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, enum.FlashDanger, "invalid form")
		return
	}

	ids, err := parseInts(r.PostForm["items[]"])
	if err != nil {
		redirectWithFlash(w, r, enum.FlashDanger, "items[] must be integers")
		return
	}
	qtys, err := parseInts(r.PostForm["quantities[]"])
	if err != nil {
		redirectWithFlash(w, r, enum.FlashDanger, "quantities[] must be integers")
		return
	}

	result, err := h.orders.PlaceOrder(r.Context(), service.PlaceOrderRequest{
		CustomerName: r.PostForm.Get("customer_name"),
		PlotNumber:   r.PostForm.Get("plot_number"),
		ItemIDs:      ids,
		Quantities:   qtys,
	})
	if err != nil {
		level, msg := flashForError("place order", err)
		redirectWithFlash(w, r, level, msg)
		return
	}
	if result.QRError != "" {
		setFlash(w, enum.FlashWarning, "Order recorded without a payment QR code")
	}

	writeJSON(w, http.StatusOK, result)
}

// NextOrder clears the paired displays.
func (h *PosHandler) NextOrder(w http.ResponseWriter, r *http.Request) {
	h.orders.NextOrder()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Transactions returns the full order history.
func (h *PosHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.orders.ListTransactions(r.Context())
	if err != nil {
		log.Printf("ERROR: list transactions: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if txns == nil {
		txns = []pos.Transaction{}
	}
	writeJSON(w, http.StatusOK, txns)
}

func parseInts(vals []string) ([]int, error) {
	out := make([]int, len(vals))
	for i, v := range vals {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
