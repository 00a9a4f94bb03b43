// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/GoStoreRating/GoStoreRating/internal/config"
)

// Create builds the Data Source Name for the configured gorm engine.
// A non empty DB.URL is returned unchanged.
func Create(cfg *config.Config) string {
	db := cfg.DB

	if db.URL != "" {
		return db.URL
	}

	switch db.GormEngine {
	case config.EngineMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		)
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			db.Host,
			db.Port,
			db.User,
			db.Password,
			db.Name,
		)
		if db.Extras != "" {
			out += " " + db.Extras
		}

		return out
	default:
		if db.Path == "" {
			return "storerate.db"
		}

		return db.Path
	}
}
