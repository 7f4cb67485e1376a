package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliciaPky/Astar/internal/dto"
	"github.com/AliciaPky/Astar/internal/service"
	appErrors "github.com/AliciaPky/Astar/pkg/errors"
)

type exportServiceMock struct {
	result      *service.ExportResult
	err         error
	cardFormat  string
	downloadErr error
	file        *os.File
}

func (m *exportServiceMock) GenerateReport(req dto.ExportRequest) (*service.ExportResult, error) {
	return m.result, m.err
}

func (m *exportServiceMock) GenerateStudentCard(studentID int, format string) (*service.ExportResult, error) {
	m.cardFormat = format
	return m.result, m.err
}

func (m *exportServiceMock) ResolveDownload(token string) (*os.File, string, error) {
	if m.downloadErr != nil {
		return nil, "", m.downloadErr
	}
	return m.file, filepath.Base(m.file.Name()), nil
}

type backupStub struct {
	message string
	err     error
}

func (b backupStub) Backup() (string, error) {
	return b.message, b.err
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func sampleResult() *service.ExportResult {
	return &service.ExportResult{
		ID:           "abc",
		RelativePath: "reports/payments_20240101_000000_abc.csv",
		Token:        "token",
		URL:          "/api/v1/export/token",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func TestReportHandlerGenerateReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&exportServiceMock{result: sampleResult()}, nil)

	payload, _ := json.Marshal(dto.ExportRequest{Kind: "payments", Format: "csv"})
	c, w := newGinContext(http.MethodPost, "/reports/export", payload)

	handler.GenerateReport(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"url":"/api/v1/export/token"`)
	assert.Contains(t, w.Body.String(), `"filename":"payments_20240101_000000_abc.csv"`)
}

func TestReportHandlerGenerateReportError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&exportServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "no payments data to export")}, nil)

	c, w := newGinContext(http.MethodPost, "/reports/export", []byte(`{"kind":"payments","format":"csv"}`))
	handler.GenerateReport(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestReportHandlerStudentCard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &exportServiceMock{result: sampleResult()}
	handler := NewReportHandler(mock, nil)

	c, w := newGinContext(http.MethodPost, "/students/4000/card", []byte(`{"format":"pdf"}`))
	c.Params = gin.Params{{Key: "id", Value: "4000"}}
	handler.StudentCard(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "pdf", mock.cardFormat)

	c, w = newGinContext(http.MethodPost, "/students/abc/card", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	handler.StudentCard(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandlerDownload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	file, err := os.CreateTemp(t.TempDir(), "report*.csv")
	require.NoError(t, err)
	_, _ = file.WriteString("student_id,amount\n4000,100\n")
	_, _ = file.Seek(0, 0)

	handler := NewReportHandler(&exportServiceMock{file: file}, nil)
	c, w := newGinContext(http.MethodGet, "/export/token", nil)
	c.Params = gin.Params{{Key: "token", Value: "token"}}

	handler.Download(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "student_id,amount\n4000,100\n", w.Body.String())
}

func TestReportHandlerDownloadExpired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&exportServiceMock{downloadErr: appErrors.Clone(appErrors.ErrExpired, "download link expired")}, nil)
	c, w := newGinContext(http.MethodGet, "/export/token", nil)
	c.Params = gin.Params{{Key: "token", Value: "token"}}

	handler.Download(c)
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestReportHandlerBackup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(nil, backupStub{message: "Backup created successfully at /tmp/backup_data.json"})
	c, w := newGinContext(http.MethodPost, "/backup", nil)

	handler.Backup(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Backup created successfully")

	failing := NewReportHandler(nil, backupStub{message: "Backup failed", err: appErrors.Clone(appErrors.ErrStorage, "backup failed")})
	c, w = newGinContext(http.MethodPost, "/backup", nil)
	failing.Backup(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
