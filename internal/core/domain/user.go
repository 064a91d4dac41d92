package domain

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrMissingIdentity     = errors.New("complete all node identity fields")
	ErrPasswordMismatch    = errors.New("encryption keys do not match")
	ErrMissingCredentials  = errors.New("system requires valid credentials")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrUnauthorized        = errors.New("unauthorized access")
	ErrInvalidUsernameChar = errors.New("username cannot contain whitespace")
)

const bcryptCost = 12

type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public strips the password hash before the user leaves the service layer.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

func NewUser(id, fullName, username, email string) (*User, error) {
	fullName = strings.TrimSpace(fullName)
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if fullName == "" || username == "" || email == "" {
		return nil, ErrMissingIdentity
	}
	if strings.ContainsAny(username, " \t\n") {
		return nil, ErrInvalidUsernameChar
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	return &User{
		ID:        id,
		FullName:  fullName,
		Username:  strings.ToLower(username),
		Email:     strings.ToLower(email),
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (u *User) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcryptCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword))
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

type SignupInput struct {
	FullName        string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate performs the inline checks that never touch storage.
func (in SignupInput) Validate() error {
	if strings.TrimSpace(in.FullName) == "" ||
		strings.TrimSpace(in.Username) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		in.Password == "" || in.ConfirmPassword == "" {
		return ErrMissingIdentity
	}
	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// AuthProvider is the identity boundary. The progress engine never depends on how
// a user id was established.
type AuthProvider interface {
	Signup(ctx context.Context, input SignupInput) (*Session, error)
	Login(ctx context.Context, identifier, password string) (*Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*User, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByIdentifier resolves either an email address or a username.
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
}
