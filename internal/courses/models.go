package courses

import "time"

// Course is one catalog entry. Semester uses the "year-term" form the
// college uses, e.g. "3-2".
type Course struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	CourseCode string    `gorm:"uniqueIndex;not null" json:"courseCode"`
	Name       string    `gorm:"not null" json:"name"`
	ShortName  string    `gorm:"not null" json:"shortName"`
	Credits    int       `gorm:"not null" json:"credits"`
	Type       string    `gorm:"not null" json:"type"` // THEORY or LAB
	Department string    `gorm:"not null" json:"department"`
	Semester   string    `gorm:"not null" json:"semester"`
	Regulation string    `gorm:"not null" json:"regulation"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Option is a dropdown entry for the SPA's filter selects.
type Option struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
	Label string `json:"label"`
}

func toOptions(values []string) []Option {
	options := make([]Option, 0, len(values))
	for i, v := range values {
		options = append(options, Option{ID: i + 1, Value: v, Label: v})
	}
	return options
}
