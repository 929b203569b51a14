package courses

import (
	"fmt"

	"gorm.io/gorm"
)

// Init creates or updates the courses table.
func Init(db *gorm.DB) error {
	if err := db.AutoMigrate(&Course{}); err != nil {
		return fmt.Errorf("auto-migrate courses table: %w", err)
	}
	return nil
}
