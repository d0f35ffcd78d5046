package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/cube/simple/internal/auth/domain"
	cryptoDomain "github.com/cube/simple/internal/crypto/domain"
)

// tokenClaims is the JWT payload: sub, iat, exp, jti plus role and typ.
type tokenClaims struct {
	Role string `json:"role"`
	Type string `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

// TokenServiceOption configures a token service.
type TokenServiceOption func(*tokenService)

// WithClock overrides the time source used for iat, exp and verification.
func WithClock(now func() time.Time) TokenServiceOption {
	return func(s *tokenService) {
		s.now = now
	}
}

// tokenService implements TokenService using HS256 JWTs.
type tokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
	parser     *jwt.Parser
	validator  *jwt.Validator
}

// NewTokenService creates a TokenService signing with the KeyMaterial signing secret.
func NewTokenService(
	keyMaterial *cryptoDomain.KeyMaterial,
	accessTTL, refreshTTL time.Duration,
	opts ...TokenServiceOption,
) TokenService {
	s := &tokenService{
		secret:     keyMaterial.SigningSecret(),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Claims are validated separately so the signature is always checked first.
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
		jwt.WithStrictDecoding(),
	)
	s.validator = jwt.NewValidator(
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	return s
}

func (s *tokenService) Issue(subject string, role authDomain.Role, ttl time.Duration) (string, error) {
	token, _, err := s.sign(subject, role, authDomain.TokenTypeAccess, ttl)
	return token, err
}

func (s *tokenService) IssueAccessToken(subject string, role authDomain.Role) (*authDomain.IssuedToken, error) {
	return s.issue(subject, role, authDomain.TokenTypeAccess, s.accessTTL)
}

func (s *tokenService) IssueRefreshToken(subject string, role authDomain.Role) (*authDomain.IssuedToken, error) {
	return s.issue(subject, role, authDomain.TokenTypeRefresh, s.refreshTTL)
}

func (s *tokenService) issue(
	subject string,
	role authDomain.Role,
	typ authDomain.TokenType,
	ttl time.Duration,
) (*authDomain.IssuedToken, error) {
	token, expiresAt, err := s.sign(subject, role, typ, ttl)
	if err != nil {
		return nil, err
	}
	return &authDomain.IssuedToken{Token: token, Type: typ, ExpiresAt: expiresAt}, nil
}

func (s *tokenService) sign(
	subject string,
	role authDomain.Role,
	typ authDomain.TokenType,
	ttl time.Duration,
) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("%w: subject is empty", cryptoDomain.ErrInvalidArgument)
	}

	now := s.now()
	expiresAt := now.Add(ttl)
	claims := tokenClaims{
		Role: string(role),
		Type: string(typ),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

func (s *tokenService) Verify(token string) (*authDomain.Claims, error) {
	claims := &tokenClaims{}
	_, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", authDomain.ErrSignatureInvalid, err)
	}

	if err := s.validator.Validate(claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", authDomain.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", authDomain.ErrSignatureInvalid, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", authDomain.ErrSignatureInvalid)
	}

	typ := authDomain.TokenType(claims.Type)
	if typ == "" {
		typ = authDomain.TokenTypeAccess
	}

	out := &authDomain.Claims{
		ID:        claims.ID,
		Subject:   claims.Subject,
		Role:      authDomain.Role(claims.Role),
		Type:      typ,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
