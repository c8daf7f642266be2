package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"rental-dashboard/internal/domain"
	"rental-dashboard/internal/security"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rec *domain.RentalRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRentalRepo) List(ctx context.Context) ([]domain.RentalRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalRecord), args.Error(1)
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.RentalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRecord), args.Error(1)
}

func (m *MockRentalRepo) GetByNaturalKey(ctx context.Context, tid, lokasi string) (*domain.RentalRecord, error) {
	args := m.Called(ctx, tid, lokasi)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRecord), args.Error(1)
}

func (m *MockRentalRepo) Update(ctx context.Context, rec *domain.RentalRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRentalRepo) UpdateField(ctx context.Context, tid, lokasi, column string, value any) (int64, error) {
	args := m.Called(ctx, tid, lokasi, column, value)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRentalRepo) UpdateState(ctx context.Context, id int32, state domain.RecordState, notification bool) error {
	args := m.Called(ctx, id, state, notification)
	return args.Error(0)
}

func (m *MockRentalRepo) SetAttachment(ctx context.Context, tid, lokasi string, slot domain.FileSlot, att domain.Attachment) error {
	args := m.Called(ctx, tid, lokasi, slot, att)
	return args.Error(0)
}

func (m *MockRentalRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveFile(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}

func (m *MockStorage) ReadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockStorage) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int32, username string) (string, error) {
	args := m.Called(userID, username)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}
