package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFile is the dotenv file read from the config dir and the working dir.
const EnvFile = ".env"

// LoadEnv loads credentials from .env files without overriding variables
// already set in the process environment. Returns the files that were read.
func LoadEnv(dir string) []string {
	files := []string{filepath.Join(dir, EnvFile), EnvFile}
	var loaded []string
	seen := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			continue
		}
		loaded = append(loaded, file)
	}
	return loaded
}
