package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kiwari-pos/qrcounter/internal/enum"
	"github.com/kiwari-pos/qrcounter/internal/pos"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// flashForError maps a service error to what the operator sees.
// Validation and lookup failures are shown verbatim, anything else is logged.
func flashForError(op string, err error) (level, message string) {
	switch {
	case errors.Is(err, pos.ErrValidation), errors.Is(err, pos.ErrNotFound):
		return enum.FlashDanger, err.Error()
	default:
		log.Printf("ERROR: %s: %v", op, err)
		return enum.FlashDanger, "internal error, please try again"
	}
}
