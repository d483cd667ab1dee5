package auth

import "testing"

func TestNewOpaqueToken_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		tok, err := NewOpaqueToken()
		if err != nil {
			t.Fatalf("NewOpaqueToken() error = %v", err)
		}
		if len(tok) != opaqueTokenBytes*2 {
			t.Fatalf("token length = %d, want %d hex chars", len(tok), opaqueTokenBytes*2)
		}
		if seen[tok] {
			t.Fatal("duplicate opaque token generated")
		}
		seen[tok] = true
	}
}

func TestHashOpaque_Stable(t *testing.T) {
	raw, err := NewOpaqueToken()
	if err != nil {
		t.Fatalf("NewOpaqueToken() error = %v", err)
	}
	if HashOpaque(raw) != HashOpaque(raw) {
		t.Error("hashing the same token twice should be deterministic")
	}
	if HashOpaque(raw) == raw {
		t.Error("hash should differ from the raw token")
	}
}
