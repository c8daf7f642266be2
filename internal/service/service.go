package service

import (
	"context"
	"io"

	"rental-dashboard/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

type RentalService interface {
	// ListRecords returns every record, refreshing each record's state
	// from its lease end period first.
	ListRecords(ctx context.Context) ([]domain.RentalRecord, error)
	AddRow(ctx context.Context, rec *domain.RentalRecord) error
	EditCell(ctx context.Context, tid, lokasi, field, value string) error
	UploadPDF(ctx context.Context, tid, lokasi string, slot domain.FileSlot, filename string, file io.Reader) error
	DeleteRow(ctx context.Context, tid, lokasi string) error
	BatchDelete(ctx context.Context, ids []int32) (int, error)
	BulkCreate(ctx context.Context, records []domain.RentalRecord) (int, error)
	BulkUpdate(ctx context.Context, records []domain.RentalRecord) (int, error)
	// RefreshStates runs the warning scan alone and returns the records
	// that newly entered the warning state.
	RefreshStates(ctx context.Context) ([]domain.RentalRecord, error)
}

type EmailService interface {
	SendWarningSummary(ctx context.Context, recipients []string, records []domain.RentalRecord) error
}
