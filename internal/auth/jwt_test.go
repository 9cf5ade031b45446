package auth

import (
	"testing"
	"time"

	"github.com/bantam-social/bantam/pkg/config"
)

func newTestIssuer(t *testing.T, ttl time.Duration) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(&config.AuthConfig{
		JWTSecret: "test-secret-key",
		TokenTTL:  ttl,
	})
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}
	return issuer
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer(&config.AuthConfig{TokenTTL: time.Hour}); err == nil {
		t.Error("NewTokenIssuer() accepted empty secret")
	}
}

func TestIssueAndVerify(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)

	signed, claims, err := issuer.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if claims.ID == "" {
		t.Error("token issued without a JTI")
	}

	parsed, err := issuer.Verify(signed)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if parsed.UserID != 42 {
		t.Errorf("user ID = %d, want 42", parsed.UserID)
	}
	if parsed.Username != "alice" {
		t.Errorf("username = %q, want alice", parsed.Username)
	}
	if parsed.ID != claims.ID {
		t.Errorf("JTI = %q, want %q", parsed.ID, claims.ID)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)

	if _, err := issuer.Verify("not.a.token"); err == nil {
		t.Error("Verify() accepted garbage")
	}

	// a token signed with a different secret
	other := newTestIssuer(t, time.Hour)
	other.secret = []byte("different-secret")
	signed, _, err := other.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := issuer.Verify(signed); err == nil {
		t.Error("Verify() accepted a token signed with the wrong secret")
	}
}

func TestVerifyRejectsExpiredTokens(t *testing.T) {
	issuer := newTestIssuer(t, -time.Minute)

	signed, _, err := issuer.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := issuer.Verify(signed); err == nil {
		t.Error("Verify() accepted an expired token")
	}
}
