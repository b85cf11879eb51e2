package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/tallybook/tallybook-cli/internal/crypto"
)

// NewVaultCommand creates all subcommands for the 'vault' command group.
func NewVaultCommand() *cli.Command {
	return &cli.Command{
		Name:  "vault",
		Usage: "Manage backup encryption",
		Subcommands: []*cli.Command{
			vaultInitCmd(),
			vaultUnlockCmd(),
			vaultLockCmd(),
			vaultStatusCmd(),
		},
	}
}

func readPassphrase(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return pass, nil
}

func vaultInitCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create the encryption vault with a passphrase",
		Action: func(c *cli.Context) error {
			cfg, err := crypto.LoadVaultConfig()
			if err != nil {
				return err
			}
			if cfg.Enabled {
				fmt.Println("❌ Vault already initialized. Use 'tallybook vault unlock' instead.")
				return errors.New("vault already initialized")
			}

			pass, err := readPassphrase("Choose a vault passphrase: ")
			if err != nil {
				return err
			}
			defer crypto.Zero(pass)
			if len(pass) < 8 {
				fmt.Println("❌ Passphrase must be at least 8 characters")
				return errors.New("passphrase too short")
			}
			confirm, err := readPassphrase("Confirm passphrase: ")
			if err != nil {
				return err
			}
			defer crypto.Zero(confirm)
			if string(pass) != string(confirm) {
				fmt.Println("❌ Passphrases do not match")
				return errors.New("passphrase mismatch")
			}

			if err := crypto.InitVault(string(pass)); err != nil {
				return fmt.Errorf("failed to initialize vault: %w", err)
			}
			fmt.Println("✅ Vault created and unlocked")
			fmt.Println("💡 Encrypted backups are now available via 'tallybook backup create'")
			return nil
		},
	}
}

func vaultUnlockCmd() *cli.Command {
	return &cli.Command{
		Name:  "unlock",
		Usage: "Unlock the vault for this login session",
		Action: func(c *cli.Context) error {
			pass, err := readPassphrase("Vault passphrase: ")
			if err != nil {
				return err
			}
			defer crypto.Zero(pass)

			if err := crypto.UnlockVault(string(pass)); err != nil {
				if errors.Is(err, crypto.ErrVaultNotSet) {
					fmt.Println("❌ No vault configured. Run 'tallybook vault init' first.")
				} else {
					fmt.Printf("❌ %v\n", err)
				}
				return err
			}
			fmt.Println("🔓 Vault unlocked")
			return nil
		},
	}
}

func vaultLockCmd() *cli.Command {
	return &cli.Command{
		Name:  "lock",
		Usage: "Lock the vault again",
		Action: func(c *cli.Context) error {
			if err := crypto.LockVault(); err != nil {
				return err
			}
			fmt.Println("🔒 Vault locked")
			return nil
		},
	}
}

// vaultStatusMessage renders the status output for the current vault setup.
func vaultStatusMessage(cfg *crypto.VaultConfig, unlocked bool) string {
	if !cfg.Enabled {
		return "Vault: not configured\n💡 Run 'tallybook vault init' to enable encrypted backups\n"
	}
	state := "🔒 locked"
	if unlocked {
		state = "🔓 unlocked"
	}
	return fmt.Sprintf("Vault: %s (%s, %d KDF iterations)\n", state, cfg.KDFAlgorithm, cfg.KDFIterations)
}

func vaultStatusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show whether the vault exists and is unlocked",
		Action: func(c *cli.Context) error {
			cfg, err := crypto.LoadVaultConfig()
			if err != nil {
				return err
			}
			fmt.Print(vaultStatusMessage(cfg, cfg.Enabled && crypto.VaultUnlocked()))
			return nil
		},
	}
}
