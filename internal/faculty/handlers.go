package faculty

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cse-nriit/tt-backend/internal/logger"
	"github.com/cse-nriit/tt-backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Handler serves the faculty roster.
type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// GetFacultyHandler lists faculty, optionally filtered by department.
func (h *Handler) GetFacultyHandler(w http.ResponseWriter, r *http.Request) {
	query := h.DB.WithContext(r.Context())
	if department := r.URL.Query().Get("department"); department != "" {
		query = query.Where("department = ?", department)
	}

	var list []Faculty
	if err := query.Find(&list).Error; err != nil {
		logger.FromRequest(r).Err(err).Msg("faculty listing failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error fetching faculty")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    list,
		"count":   len(list),
	})
}

func (h *Handler) AddFacultyHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name       string   `json:"name"`
		Contact    Contacts `json:"contact"`
		Department string   `json:"department"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Message(w, http.StatusBadRequest, false, "Invalid request format")
		return
	}

	if body.Name == "" || len(body.Contact) == 0 || body.Department == "" {
		utils.Message(w, http.StatusBadRequest, false, "Name, contact, and department are required")
		return
	}

	var existing Faculty
	err := h.DB.WithContext(r.Context()).First(&existing, "name = ?", body.Name).Error
	if err == nil {
		utils.Message(w, http.StatusConflict, false,
			fmt.Sprintf("Faculty with name '%s' already exists", body.Name))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.FromRequest(r).Err(err).Msg("faculty lookup failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error adding faculty")
		return
	}

	member := Faculty{
		ID:         uuid.NewString(),
		Name:       body.Name,
		Contacts:   body.Contact,
		Department: body.Department,
	}
	if err := h.DB.WithContext(r.Context()).Create(&member).Error; err != nil {
		logger.FromRequest(r).Err(err).Msg("faculty insert failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error adding faculty")
		return
	}

	// The SPA shows a per-department headcount after adding.
	var count int64
	if err := h.DB.WithContext(r.Context()).Model(&Faculty{}).
		Where("department = ?", member.Department).Count(&count).Error; err != nil {
		logger.FromRequest(r).Err(err).Msg("faculty count failed")
		count = 0
	}

	utils.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Faculty added successfully",
		"data":    member,
		"count":   count,
	})
}

func (h *Handler) UpdateFacultyHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var member Faculty
	err := h.DB.WithContext(r.Context()).First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Message(w, http.StatusNotFound, false, "Faculty not found")
		return
	}
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("faculty lookup failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error updating faculty")
		return
	}

	var body struct {
		Name       string   `json:"name"`
		Contact    Contacts `json:"contact"`
		Department string   `json:"department"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Message(w, http.StatusBadRequest, false, "Invalid request format")
		return
	}

	if body.Name != "" {
		member.Name = body.Name
	}
	if len(body.Contact) > 0 {
		member.Contacts = body.Contact
	}
	if body.Department != "" {
		member.Department = body.Department
	}

	if err := h.DB.WithContext(r.Context()).Save(&member).Error; err != nil {
		logger.FromRequest(r).Err(err).Msg("faculty update failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error updating faculty")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Faculty %s updated successfully", member.Name),
		"data":    member,
	})
}

func (h *Handler) DeleteFacultyHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var member Faculty
	err := h.DB.WithContext(r.Context()).First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Message(w, http.StatusNotFound, false, "Faculty not found")
		return
	}
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("faculty lookup failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error deleting faculty")
		return
	}

	if err := h.DB.WithContext(r.Context()).Delete(&member).Error; err != nil {
		logger.FromRequest(r).Err(err).Msg("faculty delete failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error deleting faculty")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Faculty deleted successfully",
		"data":    member,
	})
}
