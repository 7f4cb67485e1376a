package handler

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/AliciaPky/Astar/internal/dto"
	"github.com/AliciaPky/Astar/internal/service"
	"github.com/AliciaPky/Astar/pkg/response"
)

type exportService interface {
	GenerateReport(req dto.ExportRequest) (*service.ExportResult, error)
	GenerateStudentCard(studentID int, format string) (*service.ExportResult, error)
	ResolveDownload(token string) (*os.File, string, error)
}

type backupService interface {
	Backup() (string, error)
}

// ReportHandler exposes report exports, student cards, downloads and backups.
type ReportHandler struct {
	exports exportService
	backups backupService
}

// NewReportHandler constructs handler.
func NewReportHandler(exports exportService, backups backupService) *ReportHandler {
	return &ReportHandler{exports: exports, backups: backups}
}

// GenerateReport godoc
// @Summary Export payments or attendance
// @Description Writes the report and returns a signed download link.
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.ExportRequest true "Export payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/export [post]
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req dto.ExportRequest
	if err := bindJSON(c, &req, "invalid export payload"); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.GenerateReport(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result.Response())
}

// StudentCard godoc
// @Summary Print student ID badge
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.StudentCardRequest false "Card format"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/card [post]
func (h *ReportHandler) StudentCard(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.StudentCardRequest
	if c.Request.ContentLength > 0 {
		if err := bindJSON(c, &req, "invalid card payload"); err != nil {
			response.Error(c, err)
			return
		}
	}
	result, err := h.exports.GenerateStudentCard(id, req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result.Response())
}

// Download godoc
// @Summary Download an export
// @Tags Reports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200
// @Failure 404 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Router /export/{token} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	file, filename, err := h.exports.ResolveDownload(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, err)
		return
	}
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}

// Backup godoc
// @Summary Back up the data file
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /backup [post]
func (h *ReportHandler) Backup(c *gin.Context) {
	message, err := h.backups.Backup()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.BackupResponse{Message: message})
}
