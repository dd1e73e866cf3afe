package config

import (
	"os"

	"github.com/alcolens/alcolens-api/internal/sms"
)

// LoadSMSConfig reads the Jasmin gateway settings.  All variables are
// optional: with an unset gateway the invite consumer logs and skips
// delivery, and issuance still returns the link for manual sharing.
func LoadSMSConfig() sms.Config {
	return sms.Config{
		BaseURL:  os.Getenv("JASMIN_URL"),
		User:     os.Getenv("JASMIN_USER"),
		Password: os.Getenv("JASMIN_PASSWORD"),
		From:     os.Getenv("JASMIN_FROM"),
	}
}
