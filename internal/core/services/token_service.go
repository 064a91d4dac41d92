package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

// RevocationStore remembers the ids of tokens that were logged out.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type TokenClaims struct {
	UserID    string
	JTI       string
	ExpiresAt time.Time
}

type TokenService struct {
	secretKey     []byte
	issuer        string
	tokenDuration time.Duration
	userRepo      domain.UserRepository
	revocations   RevocationStore
}

func NewTokenService(secretKey string, issuer string, tokenDuration time.Duration, userRepo domain.UserRepository, revocations RevocationStore) *TokenService {
	return &TokenService{
		secretKey:     []byte(secretKey),
		issuer:        issuer,
		tokenDuration: tokenDuration,
		userRepo:      userRepo,
		revocations:   revocations,
	}
}

func (s *TokenService) GenerateToken(userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"exp": expiresAt.Unix(),
		"iat": now.Unix(),
		"iss": s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token service: failed to sign token: %w", err)
	}

	return signedToken, time.Unix(expiresAt.Unix(), 0).UTC(), nil
}

// ParseToken checks signature, expiry and issuer without touching storage.
func (s *TokenService) ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	if iss, ok := claims["iss"].(string); !ok || iss != s.issuer {
		return nil, fmt.Errorf("%w: invalid issuer", domain.ErrInvalidToken)
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("%w: invalid subject", domain.ErrInvalidToken)
	}

	jti, _ := claims["jti"].(string)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: missing expiry", domain.ErrInvalidToken)
	}

	return &TokenClaims{UserID: userID, JTI: jti, ExpiresAt: exp.Time}, nil
}

// ValidateToken resolves a bearer token to a user id. Revoked tokens and tokens of
// deleted users are rejected.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if s.revocations != nil && claims.JTI != "" {
		revoked, err := s.revocations.IsRevoked(ctx, claims.JTI)
		if err != nil {
			return "", fmt.Errorf("token service: revocation lookup: %w", err)
		}
		if revoked {
			return "", fmt.Errorf("%w: revoked", domain.ErrInvalidToken)
		}
	}

	if _, err := s.userRepo.GetByID(ctx, claims.UserID); err != nil {
		return "", fmt.Errorf("%w: user no longer exists: %v", domain.ErrInvalidToken, err)
	}

	return claims.UserID, nil
}

func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return err
	}
	if s.revocations == nil || claims.JTI == "" {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.JTI, claims.ExpiresAt); err != nil {
		return fmt.Errorf("token service: revoke: %w", err)
	}
	return nil
}
