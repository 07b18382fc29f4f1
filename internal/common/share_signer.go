package common

import (
	"errors"
	"fmt"
	"time"

	"github.com/andysilva90/flight-fare-optimizer/internal/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SharedRoute is the payload carried by a share token.
type SharedRoute struct {
	SourceCity      string
	DestinationCity string
	TokenID         string
	ExpiresAt       time.Time
}

// ShareSignerService generates and validates single-use share tokens for
// route searches. Tokens are HMAC-signed JWTs; single use is enforced by
// recording consumed token ids in the cache until they expire.
type ShareSignerService struct {
	secretKey []byte
	cache     CacheInterface
}

func NewShareSignerService(secretKey []byte, cache CacheInterface) *ShareSignerService {
	return &ShareSignerService{
		secretKey: secretKey,
		cache:     cache,
	}
}

// GenerateShareToken signs a single-use token for the given route search.
func (s *ShareSignerService) GenerateShareToken(
	sourceCity, destinationCity string,
	ttl time.Duration,
) (string, time.Time, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"src": sourceCity,
		"dst": destinationCity,
		"jti": tokenID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken parses a share token and returns the route it encodes.
func (s *ShareSignerService) ValidateToken(tokenString string) (*SharedRoute, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sourceCity, ok := (*claims)["src"].(string)
	if !ok {
		return nil, errors.New("missing or invalid src claim")
	}

	destinationCity, ok := (*claims)["dst"].(string)
	if !ok {
		return nil, errors.New("missing or invalid dst claim")
	}

	tokenID, ok := (*claims)["jti"].(string)
	if !ok {
		return nil, errors.New("missing or invalid jti claim")
	}

	expFloat, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)

	if time.Now().After(expiresAt) {
		return nil, errors.New("token expired")
	}

	if s.IsTokenUsed(tokenID) {
		return nil, errors.New("token already used")
	}

	return &SharedRoute{
		SourceCity:      sourceCity,
		DestinationCity: destinationCity,
		TokenID:         tokenID,
		ExpiresAt:       expiresAt,
	}, nil
}

// MarkTokenAsUsed records a token id so it cannot be redeemed twice. The
// record only needs to outlive the token itself.
func (s *ShareSignerService) MarkTokenAsUsed(tokenID string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl < time.Minute {
		ttl = time.Minute
	}
	s.cache.Set(string(constants.CachePrefixShareToken)+tokenID, "1", ttl)
}

// IsTokenUsed checks if a token has already been redeemed.
func (s *ShareSignerService) IsTokenUsed(tokenID string) bool {
	_, found := s.cache.Get(string(constants.CachePrefixShareToken) + tokenID)
	return found
}
