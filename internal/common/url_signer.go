package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"fleet-experiment/tarmac/internal/constants"
)

// ErrTokenUsed is returned when a single-use download token is redeemed twice.
var ErrTokenUsed = errors.New("download token already used")

// URLSignerService mints and validates single-use signed download URLs for
// stored scenario documents, so a dataset can be handed to a consumer
// without sharing an API key.
type URLSignerService struct {
	secretKey []byte
	redis     *redis.Client
}

// NewURLSignerService creates a new URL signer service
func NewURLSignerService(secretKey []byte, redis *redis.Client) *URLSignerService {
	return &URLSignerService{
		secretKey: secretKey,
		redis:     redis,
	}
}

// SignDownload generates a single-use token granting a download of runID.
func (s *URLSignerService) SignDownload(runID string, ttl time.Duration) (string, time.Time, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"run_id": runID,
		"jti":    tokenID,
		"exp":    expiresAt.Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// RedeemDownload validates a token and marks it used. Returns the run id the
// token grants access to.
func (s *URLSignerService) RedeemDownload(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}

	runID, _ := claims["run_id"].(string)
	tokenID, _ := claims["jti"].(string)
	if runID == "" || tokenID == "" {
		return "", errors.New("token missing run_id or jti")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", errors.New("token missing expiry")
	}

	// Single use: the first redeemer sets the marker, everyone after fails.
	key := string(constants.CachePrefixDownload) + tokenID
	ok, err = s.redis.SetNX(ctx, key, "used", time.Until(exp.Time)).Result()
	if err != nil {
		return "", fmt.Errorf("failed to mark token used: %w", err)
	}
	if !ok {
		return "", ErrTokenUsed
	}

	return runID, nil
}
