package assignments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cse-nriit/tt-backend/internal/logger"
	"github.com/cse-nriit/tt-backend/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Handler serves the faculty-to-course assignment records.
type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// CompleteHandler upserts the assignment for a cohort key. A fresh key
// answers 201; replacing an existing map answers 200.
func (h *Handler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Semester   string      `json:"semester"`
		Branch     string      `json:"branch"`
		Regulation string      `json:"regulation"`
		Assigned   AssignedMap `json:"assigned"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Message(w, http.StatusBadRequest, false, "Invalid request format")
		return
	}

	var missing []string
	if body.Semester == "" {
		missing = append(missing, "semester")
	}
	if body.Branch == "" {
		missing = append(missing, "branch")
	}
	if body.Regulation == "" {
		missing = append(missing, "regulation")
	}
	if len(body.Assigned) == 0 {
		missing = append(missing, "assigned")
	}
	if len(missing) > 0 {
		utils.Message(w, http.StatusBadRequest, false,
			"Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	var existing Assignment
	err := h.DB.WithContext(r.Context()).
		First(&existing, "semester = ? AND branch = ? AND regulation = ?",
			body.Semester, body.Branch, body.Regulation).Error

	switch {
	case err == nil:
		update := h.DB.WithContext(r.Context()).Model(&existing).Update("assigned", body.Assigned)
		if update.Error != nil {
			logger.FromRequest(r).Err(update.Error).Msg("assignment update failed")
			utils.Message(w, http.StatusInternalServerError, false, "Internal Server Error")
			return
		}
		utils.Message(w, http.StatusOK, true,
			"Existing Faculty and Course assignment has been updated")

	case errors.Is(err, gorm.ErrRecordNotFound):
		assignment := Assignment{
			ID:         uuid.NewString(),
			Semester:   body.Semester,
			Branch:     body.Branch,
			Regulation: body.Regulation,
			Assigned:   body.Assigned,
		}
		if err := h.DB.WithContext(r.Context()).Create(&assignment).Error; err != nil {
			logger.FromRequest(r).Err(err).Msg("assignment insert failed")
			utils.Message(w, http.StatusInternalServerError, false, "Internal Server Error")
			return
		}
		utils.Message(w, http.StatusCreated, true,
			"Faculty assignment to course is completed successfully")

	default:
		logger.FromRequest(r).Err(err).Msg("assignment lookup failed")
		utils.Message(w, http.StatusInternalServerError, false, "Internal Server Error")
	}
}

// GetAssignmentHandler fetches the persisted assignment for a cohort key.
func (h *Handler) GetAssignmentHandler(w http.ResponseWriter, r *http.Request) {
	semester := r.URL.Query().Get("semester")
	branch := r.URL.Query().Get("branch")
	regulation := r.URL.Query().Get("regulation")

	if semester == "" || branch == "" || regulation == "" {
		utils.Message(w, http.StatusBadRequest, false,
			"semester, branch, and regulation are required")
		return
	}

	var assignment Assignment
	err := h.DB.WithContext(r.Context()).
		First(&assignment, "semester = ? AND branch = ? AND regulation = ?",
			semester, branch, regulation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Message(w, http.StatusNotFound, false, "No assignment found for the provided criteria")
		return
	}
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("assignment lookup failed")
		utils.Message(w, http.StatusInternalServerError, false, "Internal Server Error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    assignment,
	})
}
