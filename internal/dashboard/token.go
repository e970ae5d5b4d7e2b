package dashboard

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"time"

	"github.com/google/uuid"

	"github.com/lueurxax/auto-news-dashboard/internal/core/errors"
)

// Session token layout constants.
const (
	sessionIDSize = 16 // UUID binary size
	expSize       = 8  // Unix timestamp big-endian
	sigSize       = 16 // Truncated HMAC-SHA256
	payloadSize   = sessionIDSize + expSize
	fullTokenSize = payloadSize + sigSize
)

// TokenPayload contains the decoded session token data.
type TokenPayload struct {
	SessionID uuid.UUID
	ExpiresAt time.Time
}

// TokenService signs and verifies the session cookie value.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService creates a token service with the given signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Generate creates a signed token for a session that expires at expiresAt.
func (s *TokenService) Generate(sessionID uuid.UUID, expiresAt time.Time) string {
	// Build payload: session_id (16) | exp (8)
	payload := make([]byte, payloadSize)
	copy(payload[:sessionIDSize], sessionID[:])

	//nolint:gosec // Unix timestamps fit safely in uint64 for foreseeable future
	binary.BigEndian.PutUint64(payload[sessionIDSize:], uint64(expiresAt.Unix()))

	sig := s.sign(payload)

	token := make([]byte, fullTokenSize)
	copy(token[:payloadSize], payload)
	copy(token[payloadSize:], sig[:sigSize])

	return base64.URLEncoding.EncodeToString(token)
}

// Verify validates and decodes a token.
func (s *TokenService) Verify(token string) (*TokenPayload, error) {
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}

	if len(data) != fullTokenSize {
		return nil, errors.ErrInvalidToken
	}

	payload := data[:payloadSize]
	providedSig := data[payloadSize:]

	expectedSig := s.sign(payload)
	if !hmac.Equal(providedSig, expectedSig[:sigSize]) {
		return nil, errors.ErrInvalidToken
	}

	var id uuid.UUID

	copy(id[:], payload[:sessionIDSize])

	//nolint:gosec // Unix timestamps fit in int64 for foreseeable future
	expiresAt := time.Unix(int64(binary.BigEndian.Uint64(payload[sessionIDSize:])), 0)

	if s.now().After(expiresAt) {
		return nil, errors.ErrSessionExpired
	}

	return &TokenPayload{
		SessionID: id,
		ExpiresAt: expiresAt,
	}, nil
}

// sign computes HMAC-SHA256 of the payload.
func (s *TokenService) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)

	return mac.Sum(nil)
}
