package auth

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		ok       bool
		msgPart  string
	}{
		{"too short", "abc", false, "at least 8 characters"},
		{"missing lowercase", "PASSWORD1", false, "lowercase"},
		{"missing uppercase", "password1", false, "uppercase"},
		{"missing digit", "Password", false, "digit"},
		{"valid", "Password1", true, ""},
		{"short despite other classes", "Pa1!", false, "at least 8 characters"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, msg := ValidatePassword(tc.password)
			if ok != tc.ok {
				t.Fatalf("ValidatePassword(%q) ok = %v, want %v (msg %q)", tc.password, ok, tc.ok, msg)
			}
			if !tc.ok && !strings.Contains(msg, tc.msgPart) {
				t.Fatalf("ValidatePassword(%q) msg = %q, want to mention %q", tc.password, msg, tc.msgPart)
			}
			if tc.ok && msg != "" {
				t.Fatalf("ValidatePassword(%q) msg = %q, want empty", tc.password, msg)
			}
		})
	}
}

func TestClassifyStrength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		want     Strength
	}{
		{"abc", StrengthWeak},
		{"password", StrengthWeak},     // only lowercase: score 1
		{"Short1!", StrengthWeak},      // under min length, classes ignored
		{"password1", StrengthMedium},  // lowercase + digit
		{"Password1", StrengthMedium},  // three classes, short
		{"Password1!2345", StrengthStrong},
		{"PASSWORDONLY", StrengthMedium}, // uppercase + long
		{"Xy1!aaaaaaaa", StrengthStrong}, // all five criteria
	}

	for _, tc := range tests {
		if got := ClassifyStrength(tc.password); got != tc.want {
			t.Fatalf("ClassifyStrength(%q) = %q, want %q", tc.password, got, tc.want)
		}
	}
}
