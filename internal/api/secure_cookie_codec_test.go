package api

import (
	"errors"
	"testing"
)

func TestSecureCookieCodecRoundTripBindsPurpose(t *testing.T) {
	codec, err := newSecureCookieCodec([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("init codec: %v", err)
	}

	sealed, err := codec.seal(authCookiePurpose, []byte("token-value"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	opened, err := codec.open(authCookiePurpose, sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(opened) != "token-value" {
		t.Fatalf("expected round trip, got %q", opened)
	}

	if _, err := codec.open("other", sealed); !errors.Is(err, errInvalidSecureCookieValue) {
		t.Fatalf("expected purpose mismatch to fail, got %v", err)
	}
	if _, err := codec.open(authCookiePurpose, "v1.not-base64!"); !errors.Is(err, errInvalidSecureCookieValue) {
		t.Fatalf("expected malformed value to fail, got %v", err)
	}

	otherCodec, err := newSecureCookieCodec([]byte("fedcba9876543210fedcba9876543210"))
	if err != nil {
		t.Fatalf("init other codec: %v", err)
	}
	if _, err := otherCodec.open(authCookiePurpose, sealed); !errors.Is(err, errInvalidSecureCookieValue) {
		t.Fatalf("expected foreign key to fail, got %v", err)
	}
}
