// Package crypto implements the backup vault: AES-256-GCM encryption of
// book snapshots under a random data key, which is itself wrapped by a key
// derived from the user's passphrase.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltLength       = 16     // 128-bit salt
	KeyLength        = 32     // AES-256
	NonceLength      = 12     // GCM nonce
	PBKDF2Iterations = 310000 // OWASP recommendation
)

// GenerateRandomBytes returns length cryptographically secure random bytes.
func GenerateRandomBytes(length int) ([]byte, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return bytes, nil
}

// GenerateSalt returns a fresh KDF salt.
func GenerateSalt() ([]byte, error) {
	return GenerateRandomBytes(SaltLength)
}

// GenerateNonce returns a fresh AES-GCM nonce.
func GenerateNonce() ([]byte, error) {
	return GenerateRandomBytes(NonceLength)
}

// DeriveKey derives a 256-bit key from a passphrase using PBKDF2-SHA256.
func DeriveKey(passphrase string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, KeyLength, sha256.New)
}

// Encrypt seals plaintext with AES-256-GCM under key, returning the
// ciphertext and the nonce used.
func Encrypt(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	if len(key) != KeyLength {
		return nil, nil, fmt.Errorf("invalid key length: expected %d, got %d", KeyLength, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	nonce, err = GenerateNonce()
	if err != nil {
		return nil, nil, err
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Decrypt opens an AES-256-GCM ciphertext.
func Decrypt(ciphertext, nonce, key []byte) ([]byte, error) {
	if len(key) != KeyLength {
		return nil, fmt.Errorf("invalid key length: expected %d, got %d", KeyLength, len(key))
	}
	if len(nonce) != NonceLength {
		return nil, fmt.Errorf("invalid nonce length: expected %d, got %d", NonceLength, len(nonce))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

// BytesToBase64 converts bytes to a base64 string.
func BytesToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Base64ToBytes converts a base64 string back to bytes.
func Base64ToBytes(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// Zero overwrites key material in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
