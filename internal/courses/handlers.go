package courses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cse-nriit/tt-backend/internal/logger"
	"github.com/cse-nriit/tt-backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Handler serves the course catalog: dropdown lookups, filtered listing, and
// the admin-gated CRUD.
type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

func (h *Handler) distinctOptions(w http.ResponseWriter, r *http.Request, column string) {
	var values []string
	err := h.DB.WithContext(r.Context()).Model(&Course{}).
		Distinct().Order(column).Pluck(column, &values).Error
	if err != nil {
		logger.FromRequest(r).Err(err).Str("column", column).Msg("dropdown lookup failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error fetching "+column+" options")
		return
	}
	utils.JSON(w, http.StatusOK, toOptions(values))
}

func (h *Handler) SemestersHandler(w http.ResponseWriter, r *http.Request) {
	h.distinctOptions(w, r, "semester")
}

func (h *Handler) BranchesHandler(w http.ResponseWriter, r *http.Request) {
	h.distinctOptions(w, r, "department")
}

func (h *Handler) RegulationsHandler(w http.ResponseWriter, r *http.Request) {
	h.distinctOptions(w, r, "regulation")
}

// CoursesHandler lists courses for a fully specified filter. All three keys
// are required; the SPA always sends them together.
func (h *Handler) CoursesHandler(w http.ResponseWriter, r *http.Request) {
	semester := r.URL.Query().Get("semester")
	branch := r.URL.Query().Get("branch")
	regulation := r.URL.Query().Get("regulation")

	if semester == "" {
		utils.Message(w, http.StatusBadRequest, false, "Semester is required")
		return
	}
	if branch == "" {
		utils.Message(w, http.StatusBadRequest, false, "Branch is required")
		return
	}
	if regulation == "" {
		utils.Message(w, http.StatusBadRequest, false, "Regulation is required")
		return
	}

	var list []Course
	err := h.DB.WithContext(r.Context()).
		Where("semester = ? AND department = ? AND regulation = ?", semester, branch, regulation).
		Find(&list).Error
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("course listing failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error fetching courses")
		return
	}

	if len(list) == 0 {
		utils.Message(w, http.StatusNotFound, false, "No courses found for the provided criteria")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    list,
		"count":   len(list),
	})
}

func (h *Handler) AddCourseHandler(w http.ResponseWriter, r *http.Request) {
	var course Course
	if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
		utils.Message(w, http.StatusBadRequest, false, "Invalid request format")
		return
	}

	missing := missingFields(course)
	if len(missing) > 0 {
		utils.Message(w, http.StatusBadRequest, false, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}
	if course.Credits < 1 || course.Credits > 6 {
		utils.Message(w, http.StatusBadRequest, false, "Credits must be between 1 and 6")
		return
	}
	if course.Type != "THEORY" && course.Type != "LAB" {
		utils.Message(w, http.StatusBadRequest, false, "Type must be THEORY or LAB")
		return
	}

	var existing Course
	err := h.DB.WithContext(r.Context()).First(&existing, "course_code = ?", course.CourseCode).Error
	if err == nil {
		utils.Message(w, http.StatusConflict, false, "Course with this code already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.FromRequest(r).Err(err).Msg("course lookup failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error adding course")
		return
	}

	course.ID = uuid.NewString()
	if err := h.DB.WithContext(r.Context()).Create(&course).Error; err != nil {
		logger.FromRequest(r).Err(err).Msg("course insert failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error adding course")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Course added successfully",
		"data":    course,
	})
}

func (h *Handler) UpdateCourseHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var course Course
	err := h.DB.WithContext(r.Context()).First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Message(w, http.StatusNotFound, false, "Course not found")
		return
	}
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("course lookup failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error updating course")
		return
	}

	var updates Course
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		utils.Message(w, http.StatusBadRequest, false, "Invalid request format")
		return
	}
	updates.ID = course.ID

	if err := h.DB.WithContext(r.Context()).Model(&course).Updates(updates).Error; err != nil {
		logger.FromRequest(r).Err(err).Msg("course update failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error updating course")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Course updated successfully",
		"data":    course,
	})
}

func (h *Handler) DeleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res := h.DB.WithContext(r.Context()).Where("id = ?", id).Delete(&Course{})
	if res.Error != nil {
		logger.FromRequest(r).Err(res.Error).Msg("course delete failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error deleting course")
		return
	}
	if res.RowsAffected == 0 {
		utils.Message(w, http.StatusNotFound, false, "Course not found")
		return
	}

	utils.Message(w, http.StatusOK, true, "Course deleted successfully")
}

func missingFields(c Course) []string {
	var missing []string
	if c.CourseCode == "" {
		missing = append(missing, "courseCode")
	}
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.ShortName == "" {
		missing = append(missing, "shortName")
	}
	if c.Credits == 0 {
		missing = append(missing, "credits")
	}
	if c.Type == "" {
		missing = append(missing, "type")
	}
	if c.Department == "" {
		missing = append(missing, "department")
	}
	if c.Semester == "" {
		missing = append(missing, "semester")
	}
	if c.Regulation == "" {
		missing = append(missing, "regulation")
	}
	return missing
}
