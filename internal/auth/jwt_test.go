package auth

import (
	"testing"
	"time"

	"campusfound/internal/model"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateToken(secret, 1, "Admin", "admin@example.com", model.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != 1 {
		t.Errorf("expected user_id 1, got %d", claims.UserID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("expected email 'admin@example.com', got %q", claims.Email)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("expected role 'admin', got %q", claims.Role)
	}
	if claims.ID == "" {
		t.Error("expected non-empty JTI")
	}
}

func TestTokensHaveUniqueJTI(t *testing.T) {
	secret := "test"
	t1, _ := GenerateToken(secret, 1, "A", "a@example.com", model.RoleUser)
	t2, _ := GenerateToken(secret, 1, "A", "a@example.com", model.RoleUser)

	c1, _ := ValidateToken(secret, t1)
	c2, _ := ValidateToken(secret, t2)
	if c1.ID == c2.ID {
		t.Error("expected distinct JTIs for separately issued tokens")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret1", 1, "Admin", "admin@example.com", model.RoleAdmin)

	_, err := ValidateToken("secret2", token)
	if err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("secret", "not-a-token")
	if err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestTokenExpiry(t *testing.T) {
	secret := "test"
	token, _ := GenerateToken(secret, 1, "Test", "test@example.com", model.RoleUser)
	claims, _ := ValidateToken(secret, token)

	expiresAt := claims.ExpiresAt.Time
	expectedExpiry := time.Now().Add(TokenExpiry)

	diff := expectedExpiry.Sub(expiresAt)
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("token expiry too far from expected: diff=%v", diff)
	}
}
