package session

import (
	"testing"

	"flashmart/internal/models"
)

func TestCartDefaultsToEmpty(t *testing.T) {
	s := NewStore()
	cart := s.Cart("nobody")
	if cart == nil {
		t.Fatal("Cart returned nil for an unknown session")
	}
	if len(cart) != 0 {
		t.Errorf("cart = %v, want empty", cart)
	}
}

func TestSaveCartRoundTrip(t *testing.T) {
	s := NewStore()
	s.SaveCart("sid", models.CartState{"1": 2})

	got := s.Cart("sid")
	if got["1"] != 2 || len(got) != 1 {
		t.Errorf("cart = %v, want map[1:2]", got)
	}
}

func TestCartCopiesAreIsolated(t *testing.T) {
	s := NewStore()
	original := models.CartState{"1": 2}
	s.SaveCart("sid", original)

	// Mutating either the input or an output must not leak into the store.
	original["1"] = 99
	first := s.Cart("sid")
	first["1"] = 77

	if got := s.Cart("sid"); got["1"] != 2 {
		t.Errorf("stored cart was mutated through a copy: %v", got)
	}
}

func TestCartsAreIndependentPerSession(t *testing.T) {
	s := NewStore()
	s.SaveCart("a", models.CartState{"1": 1})
	s.SaveCart("b", models.CartState{"1": 5})

	if got := s.Cart("a"); got["1"] != 1 {
		t.Errorf("session a cart = %v", got)
	}
	if got := s.Cart("b"); got["1"] != 5 {
		t.Errorf("session b cart = %v", got)
	}
}

func TestFlashesPopOnce(t *testing.T) {
	s := NewStore()
	s.AddFlash("sid", FlashSuccess, "first")
	s.AddFlash("sid", FlashWarning, "second")

	flashes := s.Flashes("sid")
	if len(flashes) != 2 {
		t.Fatalf("%d flashes, want 2", len(flashes))
	}
	if flashes[0].Level != FlashSuccess || flashes[0].Text != "first" {
		t.Errorf("unexpected first flash: %+v", flashes[0])
	}
	if flashes[1].Level != FlashWarning || flashes[1].Text != "second" {
		t.Errorf("unexpected second flash: %+v", flashes[1])
	}

	if again := s.Flashes("sid"); again != nil {
		t.Errorf("second read returned %v, want nil", again)
	}
}

func TestFlashesUnknownSession(t *testing.T) {
	s := NewStore()
	if got := s.Flashes("nobody"); got != nil {
		t.Errorf("Flashes = %v, want nil", got)
	}
}
