package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Ada@Example.COM", "ada@example.com"},
		{"  ada@example.com  ", "ada@example.com"},
		{"ada@example.com", "ada@example.com"},
	}
	for _, tc := range tests {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Fatalf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPublic_OmitsPasswordHash(t *testing.T) {
	t.Parallel()

	u := &User{
		ID:           "u1",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$secret",
		FullName:     "Ada Lovelace",
		Role:         "student",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	body, err := json.Marshal(u.Public())
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if strings.Contains(string(body), "secret") || strings.Contains(string(body), "password") {
		t.Fatalf("projection must not leak the password hash: %s", body)
	}
}

func TestClone_IsDeep(t *testing.T) {
	t.Parallel()

	u := &User{ID: "u1", Skills: []string{"go"}}
	c := u.Clone()
	c.Skills[0] = "mutated"

	if u.Skills[0] != "go" {
		t.Fatalf("Clone must copy the skills slice, got %v", u.Skills)
	}
}
