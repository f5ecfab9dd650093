package postgres

import (
	"fmt"
	"strings"

	"github.com/hedamo/hedamo-backend/config"
)

// DSN renders a lib/pq keyword/value connection string.
func DSN(cfg *config.DatabaseConfig) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quote(cfg.Host), cfg.Port, quote(cfg.User), quote(cfg.Password), quote(cfg.Name), sslmode,
	)
}

// quote escapes a value for the keyword/value format; empty values and
// values with spaces or quotes are wrapped in single quotes.
func quote(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
