package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AliciaPky/Astar/internal/registry"
	"github.com/AliciaPky/Astar/internal/repository"
	"github.com/AliciaPky/Astar/internal/service"
	"github.com/AliciaPky/Astar/pkg/storage"
)

type apiEnvelope struct {
	Data  json.RawMessage        `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type testAPI struct {
	router *gin.Engine
	token  string
}

func buildTestRouter(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	actions, err := repository.NewActionLog(filepath.Join(dir, "system_log.txt"))
	require.NoError(t, err)
	files, err := storage.NewLocalStorage(filepath.Join(dir, "exports"))
	require.NoError(t, err)
	metrics := service.NewMetricsService()
	reg := registry.New(
		repository.NewFileStore(filepath.Join(dir, "msms.json")),
		actions,
		files,
		registry.Config{BackupPath: filepath.Join(dir, "backup_data.json"), Bootstrap: registry.DefaultBootstrapPolicy()},
		zap.NewNop(),
		metrics,
	)

	validate := validator.New()
	school := service.NewSchoolService(reg, validate, zap.NewNop(), metrics)
	auth := service.NewAuthService(school, validate, zap.NewNop(), service.AuthConfig{Secret: "secret", Expiry: time.Hour})
	exports := service.NewExportService(school, files, storage.NewSignedURLSigner("secret", time.Hour), service.ExportConfig{APIPrefix: "/api/v1"}, zap.NewNop())

	router := gin.New()
	RegisterRoutes(router, "/api/v1", Handlers{
		Auth:        NewAuthHandler(auth),
		Students:    NewStudentHandler(school),
		Teachers:    NewTeacherHandler(school),
		Courses:     NewCourseHandler(school),
		Enrollments: NewEnrollmentHandler(school),
		Instruments: NewInstrumentHandler(school),
		Accounts:    NewAccountHandler(school),
		Payments:    NewPaymentHandler(school),
		Reports:     NewReportHandler(exports, school),
		Metrics:     NewMetricsHandler(metrics, nil),
	}, auth)

	api := &testAPI{router: router}
	api.token = api.signIn(t, "admin", "admin", "password")
	return api
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) signIn(t *testing.T, role, username, password string) string {
	t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/auth/"+role+"/sign-in", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var payload struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	return payload.AccessToken
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func TestRouterRequiresToken(t *testing.T) {
	api := buildTestRouter(t)

	rec := api.do(http.MethodGet, "/api/v1/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/auth/admin/sign-in", "", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestRouterStaffCannotManageAccounts(t *testing.T) {
	api := buildTestRouter(t)

	rec := api.do(http.MethodPost, "/api/v1/staff", api.token, map[string]string{"name": "Carol", "password": "pw"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	staffToken := api.signIn(t, "staff", "Carol", "pw")
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/v1/admins", staffToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/v1/backup", staffToken, nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/students", staffToken, nil).Code)

	me := api.do(http.MethodGet, "/api/v1/auth/me", staffToken, nil)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"role":"STAFF"`)
}

func TestRouterDailyRosterScenario(t *testing.T) {
	api := buildTestRouter(t)

	var student, teacher, course struct {
		ID int `json:"id"`
	}
	rec := api.do(http.MethodPost, "/api/v1/students", api.token, map[string]string{"name": "Alice"})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeData(t, rec, &student)
	assert.Equal(t, 4000, student.ID)

	rec = api.do(http.MethodPost, "/api/v1/teachers", api.token, map[string]string{"name": "Bob", "speciality": "Piano"})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeData(t, rec, &teacher)

	rec = api.do(http.MethodPost, "/api/v1/courses", api.token, map[string]interface{}{"name": "Piano 101", "instrument": "Piano", "teacherId": teacher.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decodeData(t, rec, &course)

	rec = api.do(http.MethodPost, fmt.Sprintf("/api/v1/courses/%d/lessons", course.ID), api.token,
		map[string]interface{}{"title": "Scales", "day": "Monday", "time": "10:00", "durationMinutes": 60})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/enrollments", api.token, map[string]int{"studentId": student.ID, "courseId": course.ID})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	rec = api.do(http.MethodPost, "/api/v1/enrollments", api.token, map[string]int{"studentId": student.ID, "courseId": course.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/rosters/Monday", api.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var roster []map[string]interface{}
	decodeData(t, rec, &roster)
	require.Len(t, roster, 1)
	assert.Equal(t, "Bob", roster[0]["teacher_name"])
	assert.Equal(t, "Scales", roster[0]["lesson_title"])
	assert.EqualValues(t, 1, roster[0]["students_enrolled"])

	rec = api.do(http.MethodGet, "/api/v1/rosters/Tuesday/front-desk", api.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)

	rec = api.do(http.MethodPost, "/api/v1/attendance", api.token, map[string]int{"studentId": student.ID, "courseId": course.ID})
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(http.MethodGet, "/api/v1/attendance", api.token, nil)
	assert.Contains(t, rec.Body.String(), `"course_name":"Piano 101"`)
}

func TestRouterPaymentsAndExportDownload(t *testing.T) {
	api := buildTestRouter(t)

	rec := api.do(http.MethodPost, "/api/v1/students", api.token, map[string]string{"name": "Alice"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/payments", api.token, map[string]interface{}{"studentId": 4000, "amount": "-5", "method": "Cash"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/payments", api.token, map[string]interface{}{"studentId": 4000, "amount": "200.50", "method": "Cash"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/reports/export", api.token, map[string]string{"kind": "payments", "format": "csv"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var download struct {
		URL string `json:"url"`
	}
	decodeData(t, rec, &download)
	require.True(t, strings.HasPrefix(download.URL, "/api/v1/export/"))

	rec = api.do(http.MethodGet, download.URL, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "student_id,student_name,amount,method,timestamp")
	assert.Contains(t, rec.Body.String(), "4000,Alice,200.5,Cash,")

	rec = api.do(http.MethodGet, "/api/v1/export/not-a-token", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterLastAdminProtected(t *testing.T) {
	api := buildTestRouter(t)

	rec := api.do(http.MethodDelete, "/api/v1/admins/1000", api.token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/admins", api.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRouterObservability(t *testing.T) {
	api := buildTestRouter(t)

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/ready", "", nil).Code)

	rec := api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "registry_operations_total")
	assert.Contains(t, rec.Body.String(), "registry_saves_total")

	rec = api.do(http.MethodGet, "/api/v1/metrics/summary", api.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"savesTotal"`)
}
