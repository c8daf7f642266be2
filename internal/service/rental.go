package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"rental-dashboard/internal/domain"
	"rental-dashboard/internal/logger"
	"rental-dashboard/internal/repository"
	"rental-dashboard/internal/storage"
	"rental-dashboard/internal/utils"

	"github.com/google/uuid"
)

var (
	ErrRecordExists    = errors.New("data already exists")
	ErrRecordNotFound  = errors.New("data not found")
	ErrInvalidField    = errors.New("invalid field name")
	ErrInvalidFileSlot = errors.New("invalid file type")
	ErrMissingRequired = errors.New("jenis_mesin, tid, kc_supervisi, and lokasi are required")
)

// editableColumns whitelists the columns single-cell edits may touch.
// Attachment columns are excluded: those change only through uploads.
var editableColumns = map[string]bool{
	"jenis_mesin":                   true,
	"kc_supervisi":                  true,
	"vendor_cro":                    true,
	"harga_sewa_tahun":              true,
	"total_harga_sewa_periode":      true,
	"lama_sewa_tahun":               true,
	"periode_awal":                  true,
	"periode_akhir":                 true,
	"nomor_polis_asuransi":          true,
	"perjanjian_sewa_pks":           true,
	"persetujuan_sewa_kode_remarks": true,
	"pic":                           true,
	"nomor_hp":                      true,
	"state":                         true,
	"notification":                  true,
}

type rentalService struct {
	rentalRepo        repository.RentalRepository
	store             storage.StorageInterface
	warningWindowDays int
}

func NewRentalService(rentalRepo repository.RentalRepository, store storage.StorageInterface, warningWindowDays int) RentalService {
	return &rentalService{
		rentalRepo:        rentalRepo,
		store:             store,
		warningWindowDays: warningWindowDays,
	}
}

func (s *rentalService) ListRecords(ctx context.Context) ([]domain.RentalRecord, error) {
	records, err := s.rentalRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	_, err = s.scanStates(ctx, records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *rentalService) RefreshStates(ctx context.Context) ([]domain.RentalRecord, error) {
	records, err := s.rentalRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.scanStates(ctx, records)
}

// scanStates derives each record's state from its lease end period: ends
// within the warning window means "warning" with the notification flag
// raised, everything else (including unreadable periods) means "safe".
// Changed rows are persisted in place; the records slice is updated to
// the derived values. Returns the records that newly entered warning.
func (s *rentalService) scanStates(ctx context.Context, records []domain.RentalRecord) ([]domain.RentalRecord, error) {
	now := time.Now()
	var newlyWarning []domain.RentalRecord
	for i := range records {
		rec := &records[i]

		state := domain.RecordStateSafe
		notification := false
		if rec.PeriodeAkhir != nil && *rec.PeriodeAkhir != "" {
			within, err := utils.PeriodeEndsWithin(*rec.PeriodeAkhir, now, s.warningWindowDays)
			if err == nil && within {
				state = domain.RecordStateWarning
				notification = true
			}
		}

		if rec.State == state && rec.Notification == notification {
			continue
		}
		if state == domain.RecordStateWarning && rec.State != domain.RecordStateWarning {
			newlyWarning = append(newlyWarning, *rec)
		}
		rec.State = state
		rec.Notification = notification
		if rec.ID != 0 {
			if err := s.rentalRepo.UpdateState(ctx, rec.ID, state, notification); err != nil {
				return nil, err
			}
		}
	}
	// the copies taken before mutation carry the old state; fix them up
	for i := range newlyWarning {
		newlyWarning[i].State = domain.RecordStateWarning
		newlyWarning[i].Notification = true
	}
	return newlyWarning, nil
}

func (s *rentalService) AddRow(ctx context.Context, rec *domain.RentalRecord) error {
	if rec.JenisMesin == "" || rec.TID == "" || rec.KCSupervisi == "" || rec.Lokasi == "" {
		return ErrMissingRequired
	}

	_, err := s.rentalRepo.GetByNaturalKey(ctx, rec.TID, rec.Lokasi)
	if err == nil {
		return ErrRecordExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if rec.State == "" {
		rec.State = domain.RecordStateSafe
	}
	return s.rentalRepo.Create(ctx, rec)
}

func (s *rentalService) EditCell(ctx context.Context, tid, lokasi, field, value string) error {
	if !editableColumns[field] {
		return ErrInvalidField
	}

	var colValue any = value
	if field == "notification" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: notification expects a boolean", ErrInvalidField)
		}
		colValue = b
	}

	affected, err := s.rentalRepo.UpdateField(ctx, tid, lokasi, field, colValue)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *rentalService) UploadPDF(ctx context.Context, tid, lokasi string, slot domain.FileSlot, filename string, file io.Reader) error {
	if !domain.ValidFileSlot(string(slot)) {
		return ErrInvalidFileSlot
	}

	rec, err := s.rentalRepo.GetByNaturalKey(ctx, tid, lokasi)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRecordNotFound
		}
		return err
	}

	// Replacing a slot orphans the previous file unless we remove it here.
	if old := rec.Attachment(slot); old.URL != nil && *old.URL != "" {
		if err := s.store.DeleteFile(ctx, storageKey(*old.URL)); err != nil {
			logger.Warn("Failed to delete replaced attachment", "key", *old.URL, "error", err)
		}
	}

	key := fmt.Sprintf("%s_%s_%s_%s_%s", tid, lokasi, slot, uuid.New().String()[:8], filepath.Base(filename))
	if err := s.store.SaveFile(ctx, key, file); err != nil {
		return err
	}

	url := "files/" + key
	uploadedAt := time.Now().Format("2006-01-02 15:04:05")
	att := domain.Attachment{URL: &url, Name: &filename, UploadedAt: &uploadedAt}
	return s.rentalRepo.SetAttachment(ctx, tid, lokasi, slot, att)
}

func (s *rentalService) DeleteRow(ctx context.Context, tid, lokasi string) error {
	rec, err := s.rentalRepo.GetByNaturalKey(ctx, tid, lokasi)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRecordNotFound
		}
		return err
	}
	s.deleteAttachments(ctx, rec)
	return s.rentalRepo.Delete(ctx, rec.ID)
}

func (s *rentalService) BatchDelete(ctx context.Context, ids []int32) (int, error) {
	deleted := 0
	for _, id := range ids {
		rec, err := s.rentalRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return deleted, err
		}
		s.deleteAttachments(ctx, rec)
		if err := s.rentalRepo.Delete(ctx, id); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func (s *rentalService) BulkCreate(ctx context.Context, records []domain.RentalRecord) (int, error) {
	created := 0
	for i := range records {
		rec := &records[i]
		_, err := s.rentalRepo.GetByNaturalKey(ctx, rec.TID, rec.Lokasi)
		if err == nil {
			continue // natural key already present
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return created, err
		}
		if err := s.rentalRepo.Create(ctx, rec); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *rentalService) BulkUpdate(ctx context.Context, records []domain.RentalRecord) (int, error) {
	updated := 0
	for i := range records {
		rec := &records[i]
		existing, err := s.rentalRepo.GetByNaturalKey(ctx, rec.TID, rec.Lokasi)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue // update never creates
			}
			return updated, err
		}

		// The sheet carries only the descriptive fields; state and
		// attachments stay as they are.
		existing.JenisMesin = rec.JenisMesin
		existing.KCSupervisi = rec.KCSupervisi
		existing.VendorCRO = rec.VendorCRO
		existing.HargaSewaTahun = rec.HargaSewaTahun
		existing.TotalHargaSewaPeriode = rec.TotalHargaSewaPeriode
		existing.LamaSewaTahun = rec.LamaSewaTahun
		existing.PeriodeAwal = rec.PeriodeAwal
		existing.PeriodeAkhir = rec.PeriodeAkhir
		existing.NomorPolisAsuransi = rec.NomorPolisAsuransi
		existing.PerjanjianSewaPKS = rec.PerjanjianSewaPKS
		existing.PersetujuanSewaKodeRemarks = rec.PersetujuanSewaKodeRemarks
		existing.PIC = rec.PIC
		existing.NomorHP = rec.NomorHP

		if err := s.rentalRepo.Update(ctx, existing); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func (s *rentalService) deleteAttachments(ctx context.Context, rec *domain.RentalRecord) {
	for _, url := range rec.AttachmentURLs() {
		if err := s.store.DeleteFile(ctx, storageKey(url)); err != nil {
			logger.Warn("Failed to delete attachment file", "key", url, "error", err)
		}
	}
}

// storageKey strips the public "files/" prefix off a stored URL.
func storageKey(url string) string {
	return strings.TrimPrefix(url, "files/")
}
