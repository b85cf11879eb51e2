package crypto

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"

	"github.com/tallybook/tallybook-cli/internal/config"
)

const (
	keyringService = "tallybook-vault"
	keyringUser    = "data-key"
	fallbackFile   = ".vault.session"
)

// keyringAvailable probes the system keyring with a throwaway entry.
// Headless systems (no dbus/secret service) fall back to a 0600 file under
// the app directory.
func keyringAvailable() bool {
	const probe = "tallybook-keyring-probe"
	if err := keyring.Set(keyringService, probe, "ok"); err != nil {
		return false
	}
	_ = keyring.Delete(keyringService, probe)
	return true
}

func fallbackPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fallbackFile), nil
}

// StoreDataKey caches the unlocked data key for later invocations.
func StoreDataKey(key []byte) error {
	encoded := BytesToBase64(key)
	if keyringAvailable() {
		if err := keyring.Set(keyringService, keyringUser, encoded); err != nil {
			return fmt.Errorf("failed to store key in keyring: %w", err)
		}
		return nil
	}
	path, err := fallbackPath()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
		return fmt.Errorf("failed to write fallback key file: %w", err)
	}
	return nil
}

// RetrieveDataKey returns the cached data key, or an error if the vault is
// locked.
func RetrieveDataKey() ([]byte, error) {
	if encoded, err := keyring.Get(keyringService, keyringUser); err == nil {
		return Base64ToBytes(encoded)
	}
	path, err := fallbackPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vault is locked - run 'tallybook vault unlock' first")
	}
	return Base64ToBytes(string(data))
}

// DeleteDataKey drops the cached key from both the keyring and the fallback
// file. A failure in either backend is reported: a key left behind means the
// vault is still effectively unlocked.
func DeleteDataKey() error {
	keyringErr := keyring.Delete(keyringService, keyringUser)
	if keyringErr != nil && !errors.Is(keyringErr, keyring.ErrNotFound) && keyringAvailable() {
		// the keyring is reachable but refused the delete; the entry may
		// still hold the key
		return fmt.Errorf("failed to clear keyring entry: %w", keyringErr)
	}
	path, err := fallbackPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove fallback key file: %w", err)
	}
	return nil
}

// HasDataKey reports whether an unlocked data key is cached anywhere.
func HasDataKey() bool {
	if _, err := keyring.Get(keyringService, keyringUser); err == nil {
		return true
	}
	path, err := fallbackPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
