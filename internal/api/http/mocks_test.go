package http

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"rental-dashboard/internal/domain"
	"rental-dashboard/internal/security"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) ListRecords(ctx context.Context) ([]domain.RentalRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalRecord), args.Error(1)
}

func (m *MockRentalService) AddRow(ctx context.Context, rec *domain.RentalRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRentalService) EditCell(ctx context.Context, tid, lokasi, field, value string) error {
	args := m.Called(ctx, tid, lokasi, field, value)
	return args.Error(0)
}

func (m *MockRentalService) UploadPDF(ctx context.Context, tid, lokasi string, slot domain.FileSlot, filename string, file io.Reader) error {
	args := m.Called(ctx, tid, lokasi, slot, filename, file)
	return args.Error(0)
}

func (m *MockRentalService) DeleteRow(ctx context.Context, tid, lokasi string) error {
	args := m.Called(ctx, tid, lokasi)
	return args.Error(0)
}

func (m *MockRentalService) BatchDelete(ctx context.Context, ids []int32) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockRentalService) BulkCreate(ctx context.Context, records []domain.RentalRecord) (int, error) {
	args := m.Called(ctx, records)
	return args.Int(0), args.Error(1)
}

func (m *MockRentalService) BulkUpdate(ctx context.Context, records []domain.RentalRecord) (int, error) {
	args := m.Called(ctx, records)
	return args.Int(0), args.Error(1)
}

func (m *MockRentalService) RefreshStates(ctx context.Context) ([]domain.RentalRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalRecord), args.Error(1)
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
