package dto

import "time"

// PaymentRequest records a payment. Amount is a decimal string such as "200.50".
type PaymentRequest struct {
	StudentID int    `json:"studentId" validate:"required,gt=0"`
	Amount    string `json:"amount" validate:"required"`
	Method    string `json:"method" validate:"required,max=40"`
}

// ExportRequest asks for a payments or attendance report.
type ExportRequest struct {
	Kind   string `json:"kind" validate:"required,oneof=payments attendance"`
	Format string `json:"format" validate:"required,oneof=csv json"`
}

// StudentCardRequest selects the badge format.
type StudentCardRequest struct {
	Format string `json:"format" validate:"omitempty,oneof=txt pdf"`
}

// DownloadResponse points at a signed, expiring download.
type DownloadResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// BackupResponse reports the outcome of a manual backup.
type BackupResponse struct {
	Message string `json:"message"`
}
