package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var b64 = base64.RawURLEncoding

type claims struct {
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// SignPrincipal creates a compact HS256 bearer token naming the principal.
func SignPrincipal(principal string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	h, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	c, err := json.Marshal(claims{
		Subject:   principal,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})
	if err != nil {
		return "", err
	}
	unsigned := b64.EncodeToString(h) + "." + b64.EncodeToString(c)
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(unsigned))
	return unsigned + "." + b64.EncodeToString(mac.Sum(nil)), nil
}

// VerifyPrincipal checks the token signature and expiry and returns the
// principal it names.
func VerifyPrincipal(token string, secret []byte) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", errors.New("invalid token format")
	}
	sig, err := b64.DecodeString(parts[2])
	if err != nil {
		return "", errors.New("invalid signature encoding")
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(parts[0] + "." + parts[1]))
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return "", errors.New("signature mismatch")
	}
	payload, err := b64.DecodeString(parts[1])
	if err != nil {
		return "", errors.New("invalid payload encoding")
	}
	var c claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return "", errors.New("invalid claims json")
	}
	if c.Subject == "" {
		return "", errors.New("token missing subject")
	}
	if time.Now().Unix() >= c.ExpiresAt {
		return "", fmt.Errorf("token expired at %d", c.ExpiresAt)
	}
	return c.Subject, nil
}
