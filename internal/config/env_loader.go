package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvLoader handles loading environment variables from .env files.
type EnvLoader struct {
	loaded  map[string]string
	baseDir string
}

// NewEnvLoader creates a new environment loader.
func NewEnvLoader(baseDir string) *EnvLoader {
	return &EnvLoader{
		baseDir: baseDir,
		loaded:  make(map[string]string),
	}
}

// LoadEnvFiles loads environment variables from .env files in priority
// order, last file wins. Files that do not exist are skipped.
func (l *EnvLoader) LoadEnvFiles(environment string) error {
	envFiles := []string{
		".env.defaults",
		fmt.Sprintf(".env.%s", environment),
		".env.local",
		".env",
	}

	for _, filename := range envFiles {
		path := filepath.Join(l.baseDir, filename)
		if err := l.loadEnvFile(path); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: Error loading %s: %v\n", filename, err)
		}
	}

	// Real environment variables always win over file values.
	for key, value := range l.loaded {
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				fmt.Printf("Warning: Failed to set environment variable %s: %v\n", key, err)
			}
		}
	}

	return nil
}

// loadEnvFile loads a single .env file.
func (l *EnvLoader) loadEnvFile(path string) error {
	file, err := os.Open(path) // #nosec G304 -- path is built from known filenames
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			fmt.Printf("Warning: Failed to close file %s: %v\n", path, cerr)
		}
	}()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			fmt.Printf("Warning: Invalid format in %s at line %d: %s\n", path, lineNum, line)
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		l.loaded[key] = os.ExpandEnv(value)
	}

	return scanner.Err()
}

// AutoLoadEnv loads environment files based on the detected environment.
func AutoLoadEnv(baseDir string) error {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	return NewEnvLoader(baseDir).LoadEnvFiles(env)
}
