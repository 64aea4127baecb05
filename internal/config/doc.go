// Package config provides environment-based configuration.
//
// Loads a .env file when present (godotenv), then reads process
// environment variables into the Config struct. Validates required fields
// and the encryption key format.
package config
