package faculty

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Contacts is a list of phone numbers stored as a JSON-encoded column so the
// same model works on Postgres and the sqlite test database.
type Contacts []string

func (c Contacts) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal contacts: %w", err)
	}
	return string(raw), nil
}

func (c *Contacts) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported contacts column type %T", value)
	}
}

// Faculty is one roster entry. Names are unique across departments, which is
// how the assignment map references them.
type Faculty struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"uniqueIndex;not null" json:"name"`
	Contacts   Contacts  `gorm:"type:text" json:"contact"`
	Department string    `gorm:"not null" json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
