package postgres

import (
	"fmt"

	"github.com/tunakleague/collabin-backend/config"
)

// DSN returns cfg.DSN when set, otherwise builds one from the discrete fields.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)
}
