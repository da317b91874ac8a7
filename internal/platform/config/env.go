package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvFileVar names an optional dotenv file loaded before parsing. Variables
// already present in the environment win over the file.
const EnvFileVar = "DILEMMA_ENV_FILE"

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := LoadEnvFile(); err != nil {
		return err
	}
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnvFile applies the dotenv file named by DILEMMA_ENV_FILE, if any.
func LoadEnvFile() error {
	path := strings.TrimSpace(os.Getenv(EnvFileVar))
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
