package faculty_test

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

	"github.com/cse-nriit/tt-backend/internal/faculty"
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

func newFacultyServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	gdb := newTestDB(t)
	require.NoError(t, faculty.Init(gdb))

	fetcher := roleFetcher{"admin-session": "admin", "user-session": "user"}
	server := httptest.NewServer(faculty.SetupRoutes(faculty.NewHandler(gdb), fetcher))
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

func seedFaculty(t *testing.T, gdb *gorm.DB, name, department string) faculty.Faculty {
	t.Helper()
	member := faculty.Faculty{
		ID:         "faculty-" + strings.ReplaceAll(name, " ", "-"),
		Name:       name,
		Contacts:   faculty.Contacts{"9848012345"},
		Department: department,
	}
	require.NoError(t, gdb.Create(&member).Error)
	return member
}

func TestGetFacultyFiltersByDepartment(t *testing.T) {
	server, gdb := newFacultyServer(t)
	seedFaculty(t, gdb, "Dr. K. Ramesh", "CSE")
	seedFaculty(t, gdb, "Dr. P. Lakshmi Prasanna", "CSE")
	seedFaculty(t, gdb, "Mr. V. Sai Krishna", "ECE")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/faculty?department=CSE", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success bool              `json:"success"`
		Data    []faculty.Faculty `json:"data"`
		Count   int               `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, 2, out.Count)

	// Without a filter everyone shows up.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/faculty", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 3, out.Count)
}

func TestAddFacultyReturnsDepartmentCount(t *testing.T) {
	server, gdb := newFacultyServer(t)
	seedFaculty(t, gdb, "Dr. K. Ramesh", "CSE")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/faculty", map[string]any{
		"name":       "Mrs. G. Sandhya Rani",
		"contact":    []string{"9848045678"},
		"department": "CSE",
	}, "admin-session")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		Success bool            `json:"success"`
		Data    faculty.Faculty `json:"data"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, 2, out.Count, "count reflects the department after insert")
	assert.Equal(t, faculty.Contacts{"9848045678"}, out.Data.Contacts)
}

func TestAddFacultyValidationAndDuplicate(t *testing.T) {
	server, gdb := newFacultyServer(t)
	seedFaculty(t, gdb, "Dr. K. Ramesh", "CSE")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/faculty", map[string]any{
		"name": "Ms. B. Divya",
	}, "admin-session")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "contact and department missing")

	resp = doJSON(t, http.MethodPost, server.URL+"/api/faculty", map[string]any{
		"name":       "Dr. K. Ramesh",
		"contact":    []string{"9848012345"},
		"department": "CSE",
	}, "admin-session")
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "names are unique")
}

func TestFacultyMutationsAreAdminGated(t *testing.T) {
	server, _ := newFacultyServer(t)

	payload := map[string]any{
		"name":       "Ms. B. Divya",
		"contact":    []string{"9848067890"},
		"department": "CSE",
	}

	resp := doJSON(t, http.MethodPost, server.URL+"/api/faculty", payload, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "no session")

	resp = doJSON(t, http.MethodPost, server.URL+"/api/faculty", payload, "user-session")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "non-admin session")
}

func TestUpdateFacultyMergesPartialBody(t *testing.T) {
	server, gdb := newFacultyServer(t)
	member := seedFaculty(t, gdb, "Dr. K. Ramesh", "CSE")

	resp := doJSON(t, http.MethodPut, server.URL+"/api/faculty/"+member.ID, map[string]any{
		"contact": []string{"9848099999", "0866-2428200"},
	}, "admin-session")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated faculty.Faculty
	require.NoError(t, gdb.First(&updated, "id = ?", member.ID).Error)
	assert.Equal(t, "Dr. K. Ramesh", updated.Name, "omitted fields keep their values")
	assert.Equal(t, faculty.Contacts{"9848099999", "0866-2428200"}, updated.Contacts)

	resp = doJSON(t, http.MethodPut, server.URL+"/api/faculty/missing-id", map[string]any{
		"name": "Nobody",
	}, "admin-session")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteFacultyReturnsDeletedRecord(t *testing.T) {
	server, gdb := newFacultyServer(t)
	member := seedFaculty(t, gdb, "Dr. K. Ramesh", "CSE")

	resp := doJSON(t, http.MethodDelete, server.URL+"/api/faculty/"+member.ID, nil, "admin-session")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success bool            `json:"success"`
		Data    faculty.Faculty `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, member.Name, out.Data.Name)

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/faculty/"+member.ID, nil, "admin-session")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
