package crypto

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tallybook/tallybook-cli/internal/config"
)

// VaultConfig is the persisted vault setup (~/.tallybook/vault.json). It
// holds the passphrase-wrapped data key; the plaintext data key only ever
// lives in the keyring while the vault is unlocked.
type VaultConfig struct {
	Enabled          bool   `json:"enabled"`
	EncryptedDataKey string `json:"encrypted_data_key"` // base64
	KeyNonce         string `json:"key_nonce"`          // base64
	Salt             string `json:"salt"`               // base64
	KDFIterations    int    `json:"kdf_iterations"`
	KDFAlgorithm     string `json:"kdf_algorithm"`
}

// ErrVaultNotSet is returned when no vault has been initialised yet.
var ErrVaultNotSet = errors.New("vault not set up - run 'tallybook vault init' first")

func vaultConfigPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vault.json"), nil
}

// LoadVaultConfig reads the vault setup from disk. A missing file means the
// vault was never initialised.
func LoadVaultConfig() (*VaultConfig, error) {
	path, err := vaultConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &VaultConfig{Enabled: false}, nil
		}
		return nil, fmt.Errorf("failed to read vault config: %w", err)
	}
	var cfg VaultConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse vault config: %w", err)
	}
	return &cfg, nil
}

// SaveVaultConfig writes the vault setup with owner-only permissions.
func SaveVaultConfig(cfg *VaultConfig) error {
	path, err := vaultConfigPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal vault config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write vault config: %w", err)
	}
	return nil
}

// InitVault creates a fresh random data key, wraps it under the passphrase
// and persists the setup. The vault is left unlocked.
func InitVault(passphrase string) error {
	existing, err := LoadVaultConfig()
	if err != nil {
		return err
	}
	if existing.Enabled {
		return errors.New("vault already initialised")
	}

	dataKey, err := GenerateRandomBytes(KeyLength)
	if err != nil {
		return err
	}
	defer Zero(dataKey)

	salt, err := GenerateSalt()
	if err != nil {
		return err
	}
	wrapKey := DeriveKey(passphrase, salt, PBKDF2Iterations)
	defer Zero(wrapKey)

	wrapped, nonce, err := Encrypt(dataKey, wrapKey)
	if err != nil {
		return err
	}

	cfg := &VaultConfig{
		Enabled:          true,
		EncryptedDataKey: BytesToBase64(wrapped),
		KeyNonce:         BytesToBase64(nonce),
		Salt:             BytesToBase64(salt),
		KDFIterations:    PBKDF2Iterations,
		KDFAlgorithm:     "PBKDF2-SHA256",
	}
	if err := SaveVaultConfig(cfg); err != nil {
		return err
	}
	return StoreDataKey(dataKey)
}

// UnlockVault unwraps the data key with the passphrase and caches it for
// later invocations.
func UnlockVault(passphrase string) error {
	cfg, err := LoadVaultConfig()
	if err != nil {
		return err
	}
	if !cfg.Enabled {
		return ErrVaultNotSet
	}

	salt, err := Base64ToBytes(cfg.Salt)
	if err != nil {
		return fmt.Errorf("invalid salt: %w", err)
	}
	wrapped, err := Base64ToBytes(cfg.EncryptedDataKey)
	if err != nil {
		return fmt.Errorf("invalid encrypted key: %w", err)
	}
	nonce, err := Base64ToBytes(cfg.KeyNonce)
	if err != nil {
		return fmt.Errorf("invalid nonce: %w", err)
	}
	iterations := cfg.KDFIterations
	if iterations == 0 {
		iterations = PBKDF2Iterations
	}

	wrapKey := DeriveKey(passphrase, salt, iterations)
	defer Zero(wrapKey)

	dataKey, err := Decrypt(wrapped, nonce, wrapKey)
	if err != nil {
		return errors.New("invalid passphrase")
	}
	defer Zero(dataKey)

	return StoreDataKey(dataKey)
}

// LockVault drops the cached data key. Backups stay readable after the next
// unlock; nothing is re-encrypted.
func LockVault() error {
	return DeleteDataKey()
}

// VaultUnlocked reports whether a cached data key is available.
func VaultUnlocked() bool {
	return HasDataKey()
}
