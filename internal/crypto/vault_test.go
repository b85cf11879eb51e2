package crypto

import (
	"testing"
)

func TestLoadVaultConfigFreshSystem(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadVaultConfig()
	if err != nil {
		t.Fatalf("LoadVaultConfig on fresh system: %v", err)
	}
	if cfg.Enabled {
		t.Errorf("fresh system reports an enabled vault")
	}
}

func TestVaultLifecycle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := InitVault("correct horse battery"); err != nil {
		t.Fatalf("InitVault on fresh system: %v", err)
	}

	cfg, err := LoadVaultConfig()
	if err != nil {
		t.Fatalf("LoadVaultConfig after init: %v", err)
	}
	if !cfg.Enabled {
		t.Fatalf("vault not enabled after init")
	}
	if cfg.KDFIterations != PBKDF2Iterations || cfg.KDFAlgorithm != "PBKDF2-SHA256" {
		t.Errorf("unexpected KDF params: %s/%d", cfg.KDFAlgorithm, cfg.KDFIterations)
	}
	if !VaultUnlocked() {
		t.Errorf("vault locked right after init")
	}

	// a second init must not replace the existing key material
	if err := InitVault("another passphrase"); err == nil {
		t.Errorf("second InitVault succeeded, want error")
	}

	if err := LockVault(); err != nil {
		t.Fatalf("LockVault: %v", err)
	}
	if VaultUnlocked() {
		t.Errorf("vault still unlocked after lock")
	}
	if _, err := RetrieveDataKey(); err == nil {
		t.Errorf("data key still retrievable after lock")
	}

	if err := UnlockVault("wrong passphrase"); err == nil {
		t.Errorf("UnlockVault accepted a wrong passphrase")
	}
	if err := UnlockVault("correct horse battery"); err != nil {
		t.Fatalf("UnlockVault with the right passphrase: %v", err)
	}
	if !VaultUnlocked() {
		t.Errorf("vault locked after successful unlock")
	}
}

func TestUnlockVaultRequiresInit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := UnlockVault("anything"); err != ErrVaultNotSet {
		t.Errorf("UnlockVault on fresh system = %v, want ErrVaultNotSet", err)
	}
}
