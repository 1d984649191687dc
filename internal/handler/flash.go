package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "flash"

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func setFlash(w http.ResponseWriter, level, message string) {
	b, _ := json.Marshal(Flash{Level: level, Message: message})
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending flash, if any, and clears it.
// A malformed cookie is dropped silently.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return nil
	}
	return &f
}

// redirectWithFlash is the post/redirect/get tail of every form handler.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, level, message string) {
	setFlash(w, level, message)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
