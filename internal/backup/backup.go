// Package backup writes and reads encrypted snapshot files. A backup is a
// JSON envelope carrying the AES-GCM sealed snapshot; the data key comes
// from the vault and must be unlocked first.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tallybook/tallybook-cli/internal/book"
	"github.com/tallybook/tallybook-cli/internal/crypto"
)

const envelopeVersion = 1

type envelope struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Nonce     string    `json:"nonce"`   // base64
	Payload   string    `json:"payload"` // base64 AES-GCM ciphertext of the snapshot JSON
}

// Create encrypts snap into a new timestamped file under dir and returns
// the file path.
func Create(snap book.Snapshot, dir string) (string, error) {
	key, err := crypto.RetrieveDataKey()
	if err != nil {
		return "", err
	}
	defer crypto.Zero(key)

	plaintext, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	ciphertext, nonce, err := crypto.Encrypt(plaintext, key)
	if err != nil {
		return "", err
	}

	env := envelope{
		Version:   envelopeVersion,
		CreatedAt: time.Now(),
		Nonce:     crypto.BytesToBase64(nonce),
		Payload:   crypto.BytesToBase64(ciphertext),
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("tallybook-%s.tbk", time.Now().Format("20060102-150405")))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return path, nil
}

// Restore decrypts the backup at path back into a snapshot.
func Restore(path string) (book.Snapshot, error) {
	key, err := crypto.RetrieveDataKey()
	if err != nil {
		return book.Snapshot{}, err
	}
	defer crypto.Zero(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return book.Snapshot{}, fmt.Errorf("failed to read backup: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return book.Snapshot{}, fmt.Errorf("not a tallybook backup: %w", err)
	}
	if env.Version != envelopeVersion {
		return book.Snapshot{}, fmt.Errorf("unsupported backup version %d", env.Version)
	}

	nonce, err := crypto.Base64ToBytes(env.Nonce)
	if err != nil {
		return book.Snapshot{}, fmt.Errorf("corrupt backup nonce: %w", err)
	}
	ciphertext, err := crypto.Base64ToBytes(env.Payload)
	if err != nil {
		return book.Snapshot{}, fmt.Errorf("corrupt backup payload: %w", err)
	}

	plaintext, err := crypto.Decrypt(ciphertext, nonce, key)
	if err != nil {
		return book.Snapshot{}, err
	}
	var snap book.Snapshot
	if err := json.Unmarshal(plaintext, &snap); err != nil {
		return book.Snapshot{}, fmt.Errorf("corrupt backup contents: %w", err)
	}
	return snap, nil
}
