package assignments

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AssignedMap maps course codes to the faculty member teaching them, stored
// as a JSON-encoded column.
type AssignedMap map[string]string

func (m AssignedMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal assigned map: %w", err)
	}
	return string(raw), nil
}

func (m *AssignedMap) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported assigned column type %T", value)
	}
}

// Assignment is the completed faculty-to-course mapping for one
// (semester, branch, regulation) cohort. Re-submitting the same key replaces
// the map.
type Assignment struct {
	ID         string      `gorm:"primaryKey" json:"id"`
	Semester   string      `gorm:"not null;uniqueIndex:idx_assignment_key" json:"semester"`
	Branch     string      `gorm:"not null;uniqueIndex:idx_assignment_key" json:"branch"`
	Regulation string      `gorm:"not null;uniqueIndex:idx_assignment_key" json:"regulation"`
	Assigned   AssignedMap `gorm:"type:text" json:"assigned"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
