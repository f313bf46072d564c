package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("12345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, err := VerifyPassword("12345678", hash)
	if err != nil || !ok {
		t.Fatalf("expected password to verify, got %v (%v)", ok, err)
	}

	ok, err = VerifyPassword("87654321", hash)
	if err != nil || ok {
		t.Fatalf("expected wrong password to fail, got %v (%v)", ok, err)
	}

	other, _ := HashPassword("12345678")
	if other == hash {
		t.Fatalf("expected a fresh salt per hash")
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	for _, h := range []string{"", "plain", "$bcrypt$v=19$m=1,t=1,p=1$aaaa$bbbb", "$argon2id$v=19$m=x$aaaa$bbbb"} {
		if _, err := VerifyPassword("x", h); !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("VerifyPassword(%q): expected ErrInvalidHash, got %v", h, err)
		}
	}
	if _, err := VerifyPassword("x", "$argon2id$v=16$m=1,t=1,p=1$aaaa$bbbb"); !errors.Is(err, ErrIncompatibleVersion) {
		t.Fatalf("expected ErrIncompatibleVersion, got %v", err)
	}
}
