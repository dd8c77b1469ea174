package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"facultydesk/internal/common"
	"facultydesk/internal/logging"
	"facultydesk/internal/server/models"
)

const testToken = "valid-token"

type fakeUserAPI struct {
	registerErr error
	loginToken  string
	loginErr    error
	verifyID    string
	verifyErr   error

	registeredEmail string
}

func (f *fakeUserAPI) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registeredEmail = email
	return &models.User{ID: "u-1", Name: name, Email: email}, nil
}

func (f *fakeUserAPI) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeUserAPI) VerifyToken(token string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	if token != testToken {
		return "", common.ErrInvalidToken
	}
	return f.verifyID, nil
}

type fakeRosterAPI struct {
	facultyList  []models.FacultyRecord
	vacancyList  []models.VacancyRecord
	snapshot     *models.UserSnapshot
	err          error
	lastUserID   string
	lastVacancy  string
	appliedRec   *models.FacultyRecord
	addedFaculty *models.FacultyRecord
	addedVacancy *models.VacancyRecord
}

func (f *fakeRosterAPI) ListFaculty(ctx context.Context, userID string) ([]models.FacultyRecord, error) {
	f.lastUserID = userID
	return f.facultyList, f.err
}

func (f *fakeRosterAPI) ListVacancies(ctx context.Context, userID string) ([]models.VacancyRecord, error) {
	f.lastUserID = userID
	return f.vacancyList, f.err
}

func (f *fakeRosterAPI) AddFaculty(ctx context.Context, userID string, rec *models.FacultyRecord) (*models.FacultyRecord, error) {
	f.lastUserID = userID
	f.addedFaculty = rec
	rec.ID = "f-new"
	return rec, f.err
}

func (f *fakeRosterAPI) AddVacancy(ctx context.Context, userID string, rec *models.VacancyRecord) (*models.VacancyRecord, error) {
	f.lastUserID = userID
	f.addedVacancy = rec
	rec.ID = "v-new"
	return rec, f.err
}

func (f *fakeRosterAPI) Apply(ctx context.Context, userID, vacancyID string, candidate *models.FacultyRecord) (*models.UserSnapshot, error) {
	f.lastUserID = userID
	f.lastVacancy = vacancyID
	f.appliedRec = candidate
	return f.snapshot, f.err
}

func newTestServer(t *testing.T, users *fakeUserAPI, roster *fakeRosterAPI) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	return NewServer(":0", logger, users, roster)
}

func doRequest(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	s := newTestServer(t, &fakeUserAPI{}, &fakeRosterAPI{})
	rec := doRequest(t, s, http.MethodGet, "/ping", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSignup_Created(t *testing.T) {
	users := &fakeUserAPI{}
	s := newTestServer(t, users, &fakeRosterAPI{})

	rec := doRequest(t, s, http.MethodPost, "/auth/signup", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "pa55word",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "alice@example.com", users.registeredEmail)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	users := &fakeUserAPI{registerErr: common.ErrEmailTaken}
	s := newTestServer(t, users, &fakeRosterAPI{})

	rec := doRequest(t, s, http.MethodPost, "/auth/signup", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "pa55word",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "already registered")
}

func TestSignup_MissingFields(t *testing.T) {
	s := newTestServer(t, &fakeUserAPI{}, &fakeRosterAPI{})

	rec := doRequest(t, s, http.MethodPost, "/auth/signup", "", gin.H{"email": "alice@example.com"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_InternalError(t *testing.T) {
	users := &fakeUserAPI{registerErr: errors.New("db down")}
	s := newTestServer(t, users, &fakeRosterAPI{})

	rec := doRequest(t, s, http.MethodPost, "/auth/signup", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "pa55word",
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "server error")
	require.NotContains(t, rec.Body.String(), "db down")
}

func TestLogin_ReturnsToken(t *testing.T) {
	users := &fakeUserAPI{loginToken: "signed-token"}
	s := newTestServer(t, users, &fakeRosterAPI{})

	rec := doRequest(t, s, http.MethodPost, "/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "pa55word",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "signed-token", body["token"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	users := &fakeUserAPI{loginErr: common.ErrInvalidCredentials}
	s := newTestServer(t, users, &fakeRosterAPI{})

	rec := doRequest(t, s, http.MethodPost, "/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "wrong",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_MissingTokenIsUnauthorized(t *testing.T) {
	s := newTestServer(t, &fakeUserAPI{verifyID: "u-1"}, &fakeRosterAPI{})

	rec := doRequest(t, s, http.MethodGet, "/faculty/faculties", "", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_TamperedTokenIsForbidden(t *testing.T) {
	s := newTestServer(t, &fakeUserAPI{verifyID: "u-1"}, &fakeRosterAPI{})

	rec := doRequest(t, s, http.MethodGet, "/faculty/faculties", "tampered", nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListFaculties_ReturnsRecords(t *testing.T) {
	roster := &fakeRosterAPI{facultyList: []models.FacultyRecord{{ID: "f-1", Name: "Prof. Lee"}}}
	s := newTestServer(t, &fakeUserAPI{verifyID: "u-1"}, roster)

	rec := doRequest(t, s, http.MethodGet, "/faculty/faculties", testToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "u-1", roster.lastUserID)

	var list []models.FacultyRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "f-1", list[0].ID)
}

func TestListFaculties_UserNotFound(t *testing.T) {
	roster := &fakeRosterAPI{err: common.ErrorNotFound}
	s := newTestServer(t, &fakeUserAPI{verifyID: "u-1"}, roster)

	rec := doRequest(t, s, http.MethodGet, "/faculty/faculties", testToken, nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListVacancies_ReturnsRecords(t *testing.T) {
	roster := &fakeRosterAPI{vacancyList: []models.VacancyRecord{{ID: "v-1", Position: "Professor"}}}
	s := newTestServer(t, &fakeUserAPI{verifyID: "u-1"}, roster)

	rec := doRequest(t, s, http.MethodGet, "/faculty/vacancy", testToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.VacancyRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
}

func applyBody() gin.H {
	return gin.H{
		"name":        "Nadia",
		"email":       "nadia@uni.edu",
		"phone":       "555-0100",
		"coverLetter": "I would like to apply.",
		"position":    "Professor",
		"department":  "Physics",
		"expertise":   "Optics",
		"jdate":       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		"rdate":       time.Date(2056, 9, 1, 0, 0, 0, 0, time.UTC),
		"v_id":        "v-1",
	}
}

func TestApply_Success(t *testing.T) {
	roster := &fakeRosterAPI{snapshot: &models.UserSnapshot{ID: "u-1", Name: "Alice"}}
	s := newTestServer(t, &fakeUserAPI{verifyID: "u-1"}, roster)

	rec := doRequest(t, s, http.MethodPost, "/faculty/myapply", testToken, applyBody())

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "v-1", roster.lastVacancy)
	require.Equal(t, "Nadia", roster.appliedRec.Name)

	var body struct {
		Message string              `json:"message"`
		User    models.UserSnapshot `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Message)
	require.Equal(t, "u-1", body.User.ID)
}

func TestApply_VacancyNotFound(t *testing.T) {
	roster := &fakeRosterAPI{err: common.ErrVacancyNotFound}
	s := newTestServer(t, &fakeUserAPI{verifyID: "u-1"}, roster)

	rec := doRequest(t, s, http.MethodPost, "/faculty/myapply", testToken, applyBody())

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "vacancy not found")
}

func TestApply_MissingVacancyID(t *testing.T) {
	s := newTestServer(t, &fakeUserAPI{verifyID: "u-1"}, &fakeRosterAPI{})

	body := applyBody()
	delete(body, "v_id")
	rec := doRequest(t, s, http.MethodPost, "/faculty/myapply", testToken, body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddFaculty_Created(t *testing.T) {
	roster := &fakeRosterAPI{}
	s := newTestServer(t, &fakeUserAPI{verifyID: "u-1"}, roster)

	rec := doRequest(t, s, http.MethodPost, "/faculty/faculties", testToken, gin.H{
		"name":           "Prof. Lee",
		"email":          "lee@uni.edu",
		"phone":          "555-0101",
		"position":       "Professor",
		"department":     "Physics",
		"expertise":      "Optics",
		"joinDate":       time.Date(2010, 9, 1, 0, 0, 0, 0, time.UTC),
		"retirementDate": time.Date(2040, 9, 1, 0, 0, 0, 0, time.UTC),
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Prof. Lee", roster.addedFaculty.Name)
}

func TestAddVacancy_Created(t *testing.T) {
	roster := &fakeRosterAPI{}
	s := newTestServer(t, &fakeUserAPI{verifyID: "u-1"}, roster)

	rec := doRequest(t, s, http.MethodPost, "/faculty/vacancy", testToken, gin.H{
		"position":   "Lecturer",
		"department": "History",
		"expertise":  "Medieval",
		"deadline":   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Lecturer", roster.addedVacancy.Position)
}
