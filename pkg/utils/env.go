package utils

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from a .env file if one exists.
// Missing files are not an error; deployments set real environment variables.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		LogDebug(".env file not loaded: " + err.Error())
	}
}

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}
