package jobs

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"rental-dashboard/internal/config"
	"rental-dashboard/internal/domain"
)

type stubRentalService struct {
	newlyWarning []domain.RentalRecord
	refreshErr   error
	refreshed    bool
}

func (s *stubRentalService) ListRecords(ctx context.Context) ([]domain.RentalRecord, error) {
	return nil, nil
}
func (s *stubRentalService) AddRow(ctx context.Context, rec *domain.RentalRecord) error { return nil }
func (s *stubRentalService) EditCell(ctx context.Context, tid, lokasi, field, value string) error {
	return nil
}
func (s *stubRentalService) UploadPDF(ctx context.Context, tid, lokasi string, slot domain.FileSlot, filename string, file io.Reader) error {
	return nil
}
func (s *stubRentalService) DeleteRow(ctx context.Context, tid, lokasi string) error { return nil }
func (s *stubRentalService) BatchDelete(ctx context.Context, ids []int32) (int, error) {
	return 0, nil
}
func (s *stubRentalService) BulkCreate(ctx context.Context, records []domain.RentalRecord) (int, error) {
	return 0, nil
}
func (s *stubRentalService) BulkUpdate(ctx context.Context, records []domain.RentalRecord) (int, error) {
	return 0, nil
}
func (s *stubRentalService) RefreshStates(ctx context.Context) ([]domain.RentalRecord, error) {
	s.refreshed = true
	return s.newlyWarning, s.refreshErr
}

type stubEmailService struct {
	mu         sync.Mutex
	sent       bool
	recipients []string
	records    []domain.RentalRecord
}

func (s *stubEmailService) SendWarningSummary(ctx context.Context, recipients []string, records []domain.RentalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = true
	s.recipients = recipients
	s.records = records
	return nil
}

func newTestRunner(rental *stubRentalService, email *stubEmailService, recipients []string) *JobRunner {
	cfg := &config.Config{}
	cfg.SMTP.Recipients = recipients
	return NewJobRunner(nil, nil, &Services{Email: email, Rental: rental}, cfg)
}

func TestRefreshRentalStatesSendsSummaryForNewWarnings(t *testing.T) {
	rental := &stubRentalService{newlyWarning: []domain.RentalRecord{{ID: 1, TID: "T001"}}}
	email := &stubEmailService{}
	runner := newTestRunner(rental, email, []string{"admin@bank.co.id"})

	runner.RefreshRentalStates()

	assert.True(t, rental.refreshed)
	assert.True(t, email.sent)
	assert.Equal(t, []string{"admin@bank.co.id"}, email.recipients)
	assert.Len(t, email.records, 1)
}

func TestRefreshRentalStatesSkipsEmailWhenNothingChanged(t *testing.T) {
	rental := &stubRentalService{}
	email := &stubEmailService{}
	runner := newTestRunner(rental, email, []string{"admin@bank.co.id"})

	runner.RefreshRentalStates()

	assert.True(t, rental.refreshed)
	assert.False(t, email.sent)
}

func TestRefreshRentalStatesSkipsEmailWithoutRecipients(t *testing.T) {
	rental := &stubRentalService{newlyWarning: []domain.RentalRecord{{ID: 1}}}
	email := &stubEmailService{}
	runner := newTestRunner(rental, email, nil)

	runner.RefreshRentalStates()

	assert.False(t, email.sent)
}

func TestRefreshRentalStatesSurvivesServiceError(t *testing.T) {
	rental := &stubRentalService{refreshErr: errors.New("db down")}
	email := &stubEmailService{}
	runner := newTestRunner(rental, email, []string{"admin@bank.co.id"})

	runner.RefreshRentalStates()

	assert.False(t, email.sent)
}
