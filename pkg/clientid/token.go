package clientid

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"
)

const (
	// TokenLength is the exact length of a self-issued identity token:
	// a 27-character digest followed by its 27-character MAC.
	TokenLength = 54

	digestLength = TokenLength / 2

	// hkdfInfo provides domain separation for derived signing keys.
	hkdfInfo = "sessionkit-clientid-v1"

	signingKeySize = 32
)

// cookieEncoding is standard base64 with '+' and '/' swapped for the
// cookie-safe '-' and '.', unpadded. A 20-byte digest encodes to exactly
// 27 characters.
var cookieEncoding = base64.NewEncoding(
	"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-.",
).WithPadding(base64.NoPadding)

var processStart = time.Now()

// newDigest builds the random half of a token from three independent
// samples: crypto/rand bytes, the wall clock, and the process monotonic
// clock. The samples are hashed so the output leaks none of them.
func newDigest() (string, error) {
	var buf [48]byte
	if _, err := io.ReadFull(rand.Reader, buf[:32]); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	binary.BigEndian.PutUint64(buf[32:40], uint64(time.Now().UnixNano()))
	binary.BigEndian.PutUint64(buf[40:48], uint64(time.Since(processStart).Nanoseconds()))

	sum := sha1.Sum(buf[:])
	return cookieEncoding.EncodeToString(sum[:]), nil
}

// deriveSigningKey stretches the manager secret into an HMAC key bound to
// the cookie name, so two managers sharing one secret but serving
// different cookies never validate each other's tokens.
func deriveSigningKey(secret, cookieName string) ([]byte, error) {
	kdf := hkdf.New(sha256.New, []byte(secret), []byte(cookieName), []byte(hkdfInfo))
	key := make([]byte, signingKeySize)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, errors.Join(ErrKeyDerivation, err)
	}
	return key, nil
}

// mac signs the digest half of a token with the manager's derived key.
func (m *Manager) mac(digest string) string {
	h := hmac.New(sha1.New, m.key)
	h.Write([]byte(digest))
	return cookieEncoding.EncodeToString(h.Sum(nil))
}

// Generate mints a new identity token: a fresh 27-character digest
// followed by its MAC under the manager's signing key.
func (m *Manager) Generate() (string, error) {
	digest, err := newDigest()
	if err != nil {
		return "", err
	}
	return digest + m.mac(digest), nil
}

// Verify reports whether token is a well-formed self-issued token whose
// MAC half matches its digest half under the manager's current key.
// Comparison is constant-time.
func (m *Manager) Verify(token string) bool {
	if len(token) != TokenLength {
		return false
	}
	expected := m.mac(token[:digestLength])
	return subtle.ConstantTimeCompare([]byte(token[digestLength:]), []byte(expected)) == 1
}
