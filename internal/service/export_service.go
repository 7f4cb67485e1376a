package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AliciaPky/Astar/internal/dto"
	"github.com/AliciaPky/Astar/internal/models"
	appErrors "github.com/AliciaPky/Astar/pkg/errors"
	"github.com/AliciaPky/Astar/pkg/storage"
)

type reportWriter interface {
	ExportReport(kind, path string) error
	PrintStudentCard(studentID int, path string) (string, error)
}

type exportStorage interface {
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	ID           string
	RelativePath string
	Token        string
	URL          string
	ExpiresAt    time.Time
}

// Response converts the result into the download payload returned to clients.
func (r *ExportResult) Response() dto.DownloadResponse {
	return dto.DownloadResponse{
		ID:        r.ID,
		URL:       r.URL,
		Filename:  filepath.Base(r.RelativePath),
		ExpiresAt: r.ExpiresAt,
	}
}

// ExportService writes reports and student cards into the exports directory and hands out
// signed, expiring download links for them.
type ExportService struct {
	writer  reportWriter
	storage exportStorage
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportConfig
	now     func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(writer reportWriter, files exportStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{
		writer:  writer,
		storage: files,
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
	}
}

// GenerateReport writes a payments or attendance report and returns its download link.
func (s *ExportService) GenerateReport(req dto.ExportRequest) (*ExportResult, error) {
	kind := models.ReportKind(req.Kind)
	if kind != models.ReportPayments && kind != models.ReportAttendance {
		return nil, appErrors.Clonef(appErrors.ErrValidation, "invalid report type %q", req.Kind)
	}
	format := strings.ToLower(req.Format)
	if format != "csv" && format != "json" {
		return nil, appErrors.Clonef(appErrors.ErrValidation, "unsupported report format %q", req.Format)
	}

	id := uuid.NewString()
	relPath := filepath.ToSlash(filepath.Join("reports", s.buildFilename(string(kind), id, format)))
	if err := s.writer.ExportReport(string(kind), relPath); err != nil {
		return nil, err
	}
	return s.sign(id, relPath)
}

// GenerateStudentCard writes a text or PDF badge for a student and returns its download link.
func (s *ExportService) GenerateStudentCard(studentID int, format string) (*ExportResult, error) {
	format = strings.ToLower(format)
	if format == "" {
		format = "txt"
	}
	if format != "txt" && format != "pdf" {
		return nil, appErrors.Clonef(appErrors.ErrValidation, "unsupported card format %q", format)
	}

	id := uuid.NewString()
	relPath := filepath.ToSlash(filepath.Join("cards", s.buildFilename(fmt.Sprintf("%d_card", studentID), id, format)))
	if _, err := s.writer.PrintStudentCard(studentID, relPath); err != nil {
		return nil, err
	}
	return s.sign(id, relPath)
}

// ResolveDownload validates a download token and opens the file it points at.
func (s *ExportService) ResolveDownload(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTokenExpired):
			return nil, "", appErrors.Wrap(err, appErrors.ErrExpired.Code, appErrors.ErrExpired.Status, "download link expired")
		default:
			return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "download link is invalid")
		}
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", appErrors.Wrap(err, appErrors.ErrExpired.Code, appErrors.ErrExpired.Status, "export file no longer available")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to open export file")
	}
	return file, filepath.Base(relPath), nil
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	removed, err := s.storage.CleanupOlderThan(ttl)
	if err != nil {
		return removed, err
	}
	if len(removed) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(removed)))
	}
	return removed, nil
}

func (s *ExportService) sign(id, relPath string) (*ExportResult, error) {
	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		if removeErr := s.storage.Delete(relPath); removeErr != nil {
			s.logger.Warn("failed to remove unsigned export", zap.String("path", relPath), zap.Error(removeErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &ExportResult{
		ID:           id,
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/export/%s", prefix, token),
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *ExportService) buildFilename(stem, id, format string) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s.%s", sanitizeFilename(stem), timestamp, id[:8], format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
