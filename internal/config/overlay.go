// config/overlay.go
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// OverlayEnvFile loads KEY=VALUE pairs from envPath into the process
// environment (without clobbering variables already set) and then
// re-applies the LEADGEN_* overlay on cfg.
func OverlayEnvFile(cfg *Config, envPath string) error {
	if err := godotenv.Load(envPath); err != nil {
		// Missing .env should not kill startup
		if errors.Is(err, os.ErrNotExist) {
			ApplyEnv(cfg)
			return nil
		}
		return err
	}
	ApplyEnv(cfg)
	return nil
}
