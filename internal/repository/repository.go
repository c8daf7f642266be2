package repository

import (
	"context"

	"rental-dashboard/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rec *domain.RentalRecord) error
	List(ctx context.Context) ([]domain.RentalRecord, error)
	GetByID(ctx context.Context, id int32) (*domain.RentalRecord, error)
	GetByNaturalKey(ctx context.Context, tid, lokasi string) (*domain.RentalRecord, error)
	Update(ctx context.Context, rec *domain.RentalRecord) error
	// UpdateField updates a single whitelisted column addressed by the
	// natural key. Callers must validate the column name first.
	UpdateField(ctx context.Context, tid, lokasi, column string, value any) (int64, error)
	UpdateState(ctx context.Context, id int32, state domain.RecordState, notification bool) error
	SetAttachment(ctx context.Context, tid, lokasi string, slot domain.FileSlot, att domain.Attachment) error
	Delete(ctx context.Context, id int32) error
}
