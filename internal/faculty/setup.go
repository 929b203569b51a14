package faculty

import (
	"fmt"

	"gorm.io/gorm"
)

// Init creates or updates the faculty table.
func Init(db *gorm.DB) error {
	if err := db.AutoMigrate(&Faculty{}); err != nil {
		return fmt.Errorf("auto-migrate faculty table: %w", err)
	}
	return nil
}
