package domain

import (
	"testing"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("Should create user with normalized identity", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("123", " Test Pilot ", " Pilot ", "  Test.User@Gmail.COM  ")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if user.Email != "test.user@gmail.com" {
			t.Errorf("Expected normalized email, got %s", user.Email)
		}
		if user.Username != "pilot" {
			t.Errorf("Expected normalized username, got %s", user.Username)
		}
		if user.FullName != "Test Pilot" {
			t.Errorf("Expected trimmed name, got %q", user.FullName)
		}
		if user.CreatedAt.IsZero() {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("Should fail with invalid email", func(t *testing.T) {
		t.Parallel()
		_, err := NewUser("123", "Name", "pilot", "invalid-email-format")

		if err != ErrInvalidEmail {
			t.Errorf("Expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("Should reject whitespace in username", func(t *testing.T) {
		t.Parallel()
		_, err := NewUser("123", "Name", "pi lot", "a@b.co")

		if err != ErrInvalidUsernameChar {
			t.Errorf("Expected ErrInvalidUsernameChar, got %v", err)
		}
	})
}

func TestUserPassword(t *testing.T) {
	t.Parallel()

	user := &User{ID: "1"}

	if err := user.SetPassword("short"); err != ErrPasswordTooShort {
		t.Errorf("Expected ErrPasswordTooShort, got %v", err)
	}

	if err := user.SetPassword("password123"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.PasswordHash == "" || user.PasswordHash == "password123" {
		t.Error("Expected password to be hashed")
	}
	if err := user.CheckPassword("password123"); err != nil {
		t.Errorf("Expected password to match, got %v", err)
	}
	if err := user.CheckPassword("password124"); err == nil {
		t.Error("Expected mismatch to fail")
	}
	if user.Public().PasswordHash != "" {
		t.Error("Public must strip the hash")
	}
}

func TestSignupInput_Validate(t *testing.T) {
	t.Parallel()

	full := SignupInput{FullName: "A", Username: "a", Email: "a@b.co", Password: "password123", ConfirmPassword: "password123"}

	tests := []struct {
		name  string
		input func() SignupInput
		want  error
	}{
		{"valid", func() SignupInput { return full }, nil},
		{"blank name", func() SignupInput { in := full; in.FullName = "  "; return in }, ErrMissingIdentity},
		{"missing confirmation", func() SignupInput { in := full; in.ConfirmPassword = ""; return in }, ErrMissingIdentity},
		{"mismatch", func() SignupInput { in := full; in.ConfirmPassword = "password124"; return in }, ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.input().Validate(); got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}
