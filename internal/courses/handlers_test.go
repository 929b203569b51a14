package courses_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cse-nriit/tt-backend/internal/courses"
	"github.com/cse-nriit/tt-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return gdb
}

// roleFetcher resolves fixed session ids to fixed roles, standing in for the
// auth store.
type roleFetcher map[string]string

func (f roleFetcher) FindSessionByID(ctx context.Context, id string) (utils.SessionData, error) {
	role, ok := f[id]
	if !ok {
		return utils.SessionData{}, fmt.Errorf("session not found")
	}
	return utils.SessionData{
		UserID:    "user-" + role,
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func newCoursesServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	gdb := newTestDB(t)
	require.NoError(t, courses.Init(gdb))

	fetcher := roleFetcher{"admin-session": "admin", "user-session": "user"}
	server := httptest.NewServer(courses.SetupRoutes(courses.NewHandler(gdb), fetcher))
	t.Cleanup(server.Close)
	return server, gdb
}

func doJSON(t *testing.T, method, url string, payload any, sessionID string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func seedCourse(t *testing.T, gdb *gorm.DB, code, semester string) courses.Course {
	t.Helper()
	course := courses.Course{
		ID:         "course-" + code,
		CourseCode: code,
		Name:       "Course " + code,
		ShortName:  code,
		Credits:    3,
		Type:       "THEORY",
		Department: "CSE",
		Semester:   semester,
		Regulation: "R20",
	}
	require.NoError(t, gdb.Create(&course).Error)
	return course
}

func TestCoursesListingRequiresFullFilter(t *testing.T) {
	server, gdb := newCoursesServer(t)
	seedCourse(t, gdb, "CS101", "3-2")

	for _, q := range []string{
		"?branch=CSE&regulation=R20",
		"?semester=3-2&regulation=R20",
		"?semester=3-2&branch=CSE",
	} {
		resp := doJSON(t, http.MethodGet, server.URL+"/courses"+q, nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "query %s", q)
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/courses?semester=3-2&branch=CSE&regulation=R20", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success bool             `json:"success"`
		Data    []courses.Course `json:"data"`
		Count   int              `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.Count)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "CS101", out.Data[0].CourseCode)
}

func TestCoursesListingEmptyIs404(t *testing.T) {
	server, _ := newCoursesServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/courses?semester=4-1&branch=ECE&regulation=R20", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDropdownOptionsAreDistinctAndOrdered(t *testing.T) {
	server, gdb := newCoursesServer(t)
	seedCourse(t, gdb, "CS101", "3-2")
	seedCourse(t, gdb, "CS102", "3-2")
	seedCourse(t, gdb, "CS201", "2-1")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/semesters", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var options []courses.Option
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&options))
	require.Len(t, options, 2, "duplicate semesters must collapse")
	assert.Equal(t, "2-1", options[0].Value)
	assert.Equal(t, "3-2", options[1].Value)
	assert.Equal(t, 1, options[0].ID)
}

func TestCourseMutationsAreAdminGated(t *testing.T) {
	server, _ := newCoursesServer(t)

	payload := map[string]any{
		"courseCode": "CS301",
		"name":       "Operating Systems",
		"shortName":  "OS",
		"credits":    3,
		"type":       "THEORY",
		"department": "CSE",
		"semester":   "3-1",
		"regulation": "R20",
	}

	resp := doJSON(t, http.MethodPost, server.URL+"/courses", payload, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "no session")

	resp = doJSON(t, http.MethodPost, server.URL+"/courses", payload, "user-session")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "non-admin session")

	resp = doJSON(t, http.MethodPost, server.URL+"/courses", payload, "admin-session")
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "admin session")
}

func TestAddCourseValidation(t *testing.T) {
	server, _ := newCoursesServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/courses", map[string]any{
		"courseCode": "CS301",
	}, "admin-session")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	msg, _ := out["message"].(string)
	assert.Contains(t, msg, "Missing required fields")
	assert.Contains(t, msg, "name")

	resp = doJSON(t, http.MethodPost, server.URL+"/courses", map[string]any{
		"courseCode": "CS301", "name": "OS", "shortName": "OS", "credits": 9,
		"type": "THEORY", "department": "CSE", "semester": "3-1", "regulation": "R20",
	}, "admin-session")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "credits out of range")

	resp = doJSON(t, http.MethodPost, server.URL+"/courses", map[string]any{
		"courseCode": "CS301", "name": "OS", "shortName": "OS", "credits": 3,
		"type": "SEMINAR", "department": "CSE", "semester": "3-1", "regulation": "R20",
	}, "admin-session")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "unknown course type")
}

func TestAddCourseDuplicateCode(t *testing.T) {
	server, gdb := newCoursesServer(t)
	seedCourse(t, gdb, "CS101", "3-2")

	resp := doJSON(t, http.MethodPost, server.URL+"/courses", map[string]any{
		"courseCode": "CS101", "name": "Repeat", "shortName": "RP", "credits": 3,
		"type": "THEORY", "department": "CSE", "semester": "3-2", "regulation": "R20",
	}, "admin-session")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUpdateAndDeleteCourse(t *testing.T) {
	server, gdb := newCoursesServer(t)
	course := seedCourse(t, gdb, "CS101", "3-2")

	resp := doJSON(t, http.MethodPut, server.URL+"/courses/"+course.ID, map[string]any{
		"name": "Renamed Course",
	}, "admin-session")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated courses.Course
	require.NoError(t, gdb.First(&updated, "id = ?", course.ID).Error)
	assert.Equal(t, "Renamed Course", updated.Name)
	assert.Equal(t, "CS101", updated.CourseCode, "untouched fields survive a partial update")

	resp = doJSON(t, http.MethodPut, server.URL+"/courses/missing-id", map[string]any{
		"name": "Nope",
	}, "admin-session")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, server.URL+"/courses/"+course.ID, nil, "admin-session")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, server.URL+"/courses/"+course.ID, nil, "admin-session")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "second delete finds nothing")
}
