// Package seeds loads the course catalog and faculty roster from YAML files
// and upserts them into the database. Running it twice is safe: rows are
// matched on their natural keys.
package seeds

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cse-nriit/tt-backend/internal/courses"
	"github.com/cse-nriit/tt-backend/internal/faculty"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type courseSeed struct {
	CourseCode string `yaml:"courseCode"`
	Name       string `yaml:"name"`
	ShortName  string `yaml:"shortName"`
	Credits    int    `yaml:"credits"`
	Type       string `yaml:"type"`
	Department string `yaml:"department"`
	Semester   string `yaml:"semester"`
	Regulation string `yaml:"regulation"`
}

type facultySeed struct {
	Name       string   `yaml:"name"`
	Contact    []string `yaml:"contact"`
	Department string   `yaml:"department"`
}

var titleCaser = cases.Title(language.English)

// normalizeName fixes the casing of hand-entered names ("dr. k. ramesh" ->
// "Dr. K. Ramesh").
func normalizeName(name string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(name)))
}

// SeedCourses upserts the course catalog from the YAML file at path.
func SeedCourses(db *gorm.DB, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read course seed file: %w", err)
	}

	var entries []courseSeed
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return 0, fmt.Errorf("parse course seed file: %w", err)
	}

	count := 0
	for _, entry := range entries {
		course := courses.Course{
			ID:         uuid.NewString(),
			CourseCode: entry.CourseCode,
			Name:       entry.Name,
			ShortName:  entry.ShortName,
			Credits:    entry.Credits,
			Type:       strings.ToUpper(entry.Type),
			Department: strings.ToUpper(strings.TrimSpace(entry.Department)),
			Semester:   entry.Semester,
			Regulation: entry.Regulation,
		}

		var existing courses.Course
		err := db.First(&existing, "course_code = ?", course.CourseCode).Error
		if err == nil {
			course.ID = existing.ID
			if err := db.Model(&existing).Updates(course).Error; err != nil {
				return count, fmt.Errorf("update course %s: %w", course.CourseCode, err)
			}
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&course).Error; err != nil {
				return count, fmt.Errorf("create course %s: %w", course.CourseCode, err)
			}
		} else {
			return count, fmt.Errorf("lookup course %s: %w", course.CourseCode, err)
		}
		count++
	}
	return count, nil
}

// SeedFaculty upserts the faculty roster from the YAML file at path.
func SeedFaculty(db *gorm.DB, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read faculty seed file: %w", err)
	}

	var entries []facultySeed
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return 0, fmt.Errorf("parse faculty seed file: %w", err)
	}

	count := 0
	for _, entry := range entries {
		member := faculty.Faculty{
			ID:         uuid.NewString(),
			Name:       normalizeName(entry.Name),
			Contacts:   entry.Contact,
			Department: strings.ToUpper(strings.TrimSpace(entry.Department)),
		}

		var existing faculty.Faculty
		err := db.First(&existing, "name = ?", member.Name).Error
		if err == nil {
			member.ID = existing.ID
			if err := db.Model(&existing).Updates(member).Error; err != nil {
				return count, fmt.Errorf("update faculty %s: %w", member.Name, err)
			}
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&member).Error; err != nil {
				return count, fmt.Errorf("create faculty %s: %w", member.Name, err)
			}
		} else {
			return count, fmt.Errorf("lookup faculty %s: %w", member.Name, err)
		}
		count++
	}
	return count, nil
}
