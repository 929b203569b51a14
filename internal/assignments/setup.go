package assignments

import (
	"fmt"

	"gorm.io/gorm"
)

// Init creates or updates the assignments table.
func Init(db *gorm.DB) error {
	if err := db.AutoMigrate(&Assignment{}); err != nil {
		return fmt.Errorf("auto-migrate assignments table: %w", err)
	}
	return nil
}
