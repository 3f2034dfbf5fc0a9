package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/config"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type tokenType string

const (
	accessTokenType  tokenType = "access"
	refreshTokenType tokenType = "refresh"

	// tolerated drift between the signing and verifying hosts
	clockSkew = 10 * time.Second
)

var (
	ErrTokenExpired      = errors.New("token has expired")
	ErrTokenInvalid      = errors.New("token is invalid")
	ErrTokenTypeMismatch = errors.New("wrong token type")
)

type sessionClaims struct {
	jwt.RegisteredClaims
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	TokenType tokenType `json:"token_type"`
}

// JWTManager signs and verifies the HS256 session tokens handed out at login.
type JWTManager struct {
	cfg config.JWTConfig
	now func() time.Time
}

func NewJWTManager(cfg config.JWTConfig) *JWTManager {
	return &JWTManager{cfg: cfg, now: time.Now}
}

// GenerateTokenPair signs an access and a refresh token for the same
// identity. ExpiresAt on the pair is the access token's expiry.
func (m *JWTManager) GenerateTokenPair(claims *domain.Claims) (*domain.TokenPair, error) {
	pair := &domain.TokenPair{TokenType: "Bearer"}

	var err error
	if pair.AccessToken, pair.ExpiresAt, err = m.sign(claims, accessTokenType, m.cfg.AccessTokenTTL); err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	if pair.RefreshToken, _, err = m.sign(claims, refreshTokenType, m.cfg.RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}
	return pair, nil
}

func (m *JWTManager) ValidateAccessToken(tokenString string) (*domain.Claims, error) {
	return m.validateToken(tokenString, accessTokenType)
}

func (m *JWTManager) ValidateRefreshToken(tokenString string) (*domain.Claims, error) {
	return m.validateToken(tokenString, refreshTokenType)
}

func (m *JWTManager) sign(claims *domain.Claims, ttype tokenType, ttl time.Duration) (string, time.Time, error) {
	issued := m.now()
	expires := issued.Add(ttl)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   claims.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
			NotBefore: jwt.NewNumericDate(issued.Add(-clockSkew)),
		},
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      string(claims.Role),
		TokenType: ttype,
	}).SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func (m *JWTManager) validateToken(tokenString string, expectedType tokenType) (*domain.Claims, error) {
	var sc sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &sc, m.signingKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil, !token.Valid:
		return nil, ErrTokenInvalid
	case sc.TokenType != expectedType:
		return nil, ErrTokenTypeMismatch
	}

	return sc.toDomain()
}

func (m *JWTManager) signingKey(*jwt.Token) (any, error) {
	return []byte(m.cfg.Secret), nil
}

// toDomain rejects tokens whose subject is not a UUID or whose role is unknown.
func (sc *sessionClaims) toDomain() (*domain.Claims, error) {
	userID, err := uuid.Parse(sc.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	role := domain.Role(sc.Role)
	if !role.IsValid() {
		return nil, ErrTokenInvalid
	}
	return &domain.Claims{UserID: userID, Email: sc.Email, Name: sc.Name, Role: role}, nil
}
