package auth_test

import (
	"errors"
	"testing"

	"github.com/kiwari-pos/qrcounter/internal/auth"
)

func TestHashAndCheckPIN(t *testing.T) {
	hash, err := auth.HashPIN("4321")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "4321" {
		t.Fatal("hash must not equal the pin")
	}
	if !auth.CheckPIN(hash, "4321") {
		t.Error("correct pin rejected")
	}
	if auth.CheckPIN(hash, "1234") {
		t.Error("wrong pin accepted")
	}
}

func TestCheckPIN_Empty(t *testing.T) {
	hash, _ := auth.HashPIN("4321")
	if auth.CheckPIN(hash, "") {
		t.Error("empty pin accepted")
	}
	if auth.CheckPIN("", "4321") {
		t.Error("empty hash accepted")
	}
}

func TestHashPIN_Empty(t *testing.T) {
	if _, err := auth.HashPIN(""); !errors.Is(err, auth.ErrEmptyPIN) {
		t.Fatalf("expected ErrEmptyPIN, got %v", err)
	}
}
