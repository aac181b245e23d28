package service

import (
	"errors"
	"testing"
	"time"

	"github.com/campusworks/rollbook-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTAdminSecret:   "admin-test-secret",
		JWTFacultySecret: "faculty-test-secret",
		SessionTTL:       24 * time.Hour,
		BcryptCost:       bcrypt.MinCost,
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := NewAuthService(testAuthConfig())

	hash, err := svc.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}

	if err := svc.CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Errorf("CheckPassword with correct password: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CheckPassword with wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(testAuthConfig())

	for _, role := range []Role{RoleAdmin, RoleFaculty} {
		token, err := svc.GenerateToken(role, 42)
		if err != nil {
			t.Fatalf("GenerateToken(%s): %v", role, err)
		}

		claims, err := svc.ValidateToken(role, token)
		if err != nil {
			t.Fatalf("ValidateToken(%s): %v", role, err)
		}
		if claims.UserID != 42 {
			t.Errorf("UserID = %d, want 42", claims.UserID)
		}
		if claims.Role != role {
			t.Errorf("Role = %s, want %s", claims.Role, role)
		}
	}
}

func TestTokenRejectedAcrossRoles(t *testing.T) {
	svc := NewAuthService(testAuthConfig())

	adminToken, err := svc.GenerateToken(RoleAdmin, 1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	// Role-specific signing secrets: an admin token must fail faculty
	// validation outright.
	if _, err := svc.ValidateToken(RoleFaculty, adminToken); err == nil {
		t.Fatal("admin token accepted by faculty validation")
	}

	facultyToken, err := svc.GenerateToken(RoleFaculty, 2)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := svc.ValidateToken(RoleAdmin, facultyToken); err == nil {
		t.Fatal("faculty token accepted by admin validation")
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(testAuthConfig())

	for _, tokenStr := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ValidateToken(RoleAdmin, tokenStr); err == nil {
			t.Errorf("ValidateToken(%q) accepted", tokenStr)
		}
	}
}
