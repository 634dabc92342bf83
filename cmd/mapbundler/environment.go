package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadEnvironmentFile merges the key/value pairs in the .env-style file at
// path into the process environment, without overriding variables already
// set. Missing files are not an error. This backs the --env-file flag's
// defaults for output folder, compression, and asset root overrides.
func loadEnvironmentFile(path string) error {
	if path == "" {
		return nil
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("unable to resolve environment file path (%s): %w", path, err)
	}

	values, err := godotenv.Read(absolute)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("unable to load environment file (%s): %w", absolute, err)
	}

	for key, value := range values {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		os.Setenv(key, value)
	}
	return nil
}
