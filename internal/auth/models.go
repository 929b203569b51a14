package auth

import "time"

// User is the credential-store record. ResetToken and ResetTokenExpiresAt are
// non-nil only while a password reset is in flight.
type User struct {
	UserID              string     `gorm:"primaryKey" json:"id"`
	FullName            string     `json:"fullname"`
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"-" json:"password,omitempty"`
	HashedPassword      string     `json:"-"`
	Role                string     `gorm:"default:'user'" json:"role"`
	ResetToken          *string    `gorm:"index" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"-"`
	UpdatedAt           time.Time  `json:"-"`
}

// Session is the server-side session record behind the session_id cookie.
// Expiry slides: LastTouchedAt tracks the most recent extension.
type Session struct {
	SessionID     string    `gorm:"primaryKey" json:"-"`
	UserID        string    `gorm:"not null;index" json:"-"`
	CreatedAt     time.Time `json:"-"`
	LastTouchedAt time.Time `json:"-"`
	ExpiresAt     time.Time `gorm:"not null" json:"-"`
}

// Projection is the secret-free view of a User returned to clients.
type Projection struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u User) Project() Projection {
	return Projection{
		ID:       u.UserID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}
}
