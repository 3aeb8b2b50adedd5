package cli

import (
	"fmt"

	"github.com/terraincognita07/finora/internal/db"
	"gorm.io/gorm"
)

// openDatabase opens the sqlite file and returns a close func for the
// one-shot commands.
func openDatabase(dbPath string) (*gorm.DB, func(), error) {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, func() { _ = sqlDB.Close() }, nil
}
