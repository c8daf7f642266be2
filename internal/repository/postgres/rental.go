package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rental-dashboard/internal/domain"
	"rental-dashboard/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, jenis_mesin, tid, kc_supervisi, lokasi, vendor_cro, harga_sewa_tahun,
	total_harga_sewa_periode, lama_sewa_tahun, periode_awal, periode_akhir, nomor_polis_asuransi,
	perjanjian_sewa_pks, persetujuan_sewa_kode_remarks, pic, nomor_hp, state, notification,
	file_polis_asuransi_url, file_polis_asuransi_name, file_polis_asuransi_uploaded_at,
	file_pks_sewa_url, file_pks_sewa_name, file_pks_sewa_uploaded_at,
	file_sewa_kode_url, file_sewa_kode_name, file_sewa_kode_uploaded_at`

func scanRental(row interface{ Scan(...any) error }, rec *domain.RentalRecord) error {
	return row.Scan(
		&rec.ID, &rec.JenisMesin, &rec.TID, &rec.KCSupervisi, &rec.Lokasi,
		&rec.VendorCRO, &rec.HargaSewaTahun, &rec.TotalHargaSewaPeriode, &rec.LamaSewaTahun,
		&rec.PeriodeAwal, &rec.PeriodeAkhir, &rec.NomorPolisAsuransi, &rec.PerjanjianSewaPKS,
		&rec.PersetujuanSewaKodeRemarks, &rec.PIC, &rec.NomorHP, &rec.State, &rec.Notification,
		&rec.FilePolisAsuransiURL, &rec.FilePolisAsuransiName, &rec.FilePolisAsuransiUploadedAt,
		&rec.FilePKSSewaURL, &rec.FilePKSSewaName, &rec.FilePKSSewaUploadedAt,
		&rec.FileSewaKodeURL, &rec.FileSewaKodeName, &rec.FileSewaKodeUploadedAt,
	)
}

func (r *rentalRepository) Create(ctx context.Context, rec *domain.RentalRecord) error {
	if rec.State == "" {
		rec.State = domain.RecordStateSafe
	}
	query := `INSERT INTO rental_data (jenis_mesin, tid, kc_supervisi, lokasi, vendor_cro, harga_sewa_tahun,
		total_harga_sewa_periode, lama_sewa_tahun, periode_awal, periode_akhir, nomor_polis_asuransi,
		perjanjian_sewa_pks, persetujuan_sewa_kode_remarks, pic, nomor_hp, state, notification,
		file_polis_asuransi_url, file_polis_asuransi_name, file_polis_asuransi_uploaded_at,
		file_pks_sewa_url, file_pks_sewa_name, file_pks_sewa_uploaded_at,
		file_sewa_kode_url, file_sewa_kode_name, file_sewa_kode_uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		$18, $19, $20, $21, $22, $23, $24, $25, $26) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		rec.JenisMesin, rec.TID, rec.KCSupervisi, rec.Lokasi, rec.VendorCRO, rec.HargaSewaTahun,
		rec.TotalHargaSewaPeriode, rec.LamaSewaTahun, rec.PeriodeAwal, rec.PeriodeAkhir,
		rec.NomorPolisAsuransi, rec.PerjanjianSewaPKS, rec.PersetujuanSewaKodeRemarks,
		rec.PIC, rec.NomorHP, rec.State, rec.Notification,
		rec.FilePolisAsuransiURL, rec.FilePolisAsuransiName, rec.FilePolisAsuransiUploadedAt,
		rec.FilePKSSewaURL, rec.FilePKSSewaName, rec.FilePKSSewaUploadedAt,
		rec.FileSewaKodeURL, rec.FileSewaKodeName, rec.FileSewaKodeUploadedAt,
	).Scan(&rec.ID)
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.RentalRecord, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_data ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.RentalRecord
	for rows.Next() {
		var rec domain.RentalRecord
		if err := scanRental(rows, &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.RentalRecord, error) {
	rec := &domain.RentalRecord{}
	query := `SELECT ` + rentalColumns + ` FROM rental_data WHERE id = $1`
	if err := scanRental(r.db.QueryRowContext(ctx, query, id), rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *rentalRepository) GetByNaturalKey(ctx context.Context, tid, lokasi string) (*domain.RentalRecord, error) {
	rec := &domain.RentalRecord{}
	query := `SELECT ` + rentalColumns + ` FROM rental_data WHERE tid = $1 AND lokasi = $2`
	if err := scanRental(r.db.QueryRowContext(ctx, query, tid, lokasi), rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *rentalRepository) Update(ctx context.Context, rec *domain.RentalRecord) error {
	query := `UPDATE rental_data SET jenis_mesin=$1, kc_supervisi=$2, vendor_cro=$3, harga_sewa_tahun=$4,
		total_harga_sewa_periode=$5, lama_sewa_tahun=$6, periode_awal=$7, periode_akhir=$8,
		nomor_polis_asuransi=$9, perjanjian_sewa_pks=$10, persetujuan_sewa_kode_remarks=$11,
		pic=$12, nomor_hp=$13, state=$14, notification=$15 WHERE tid=$16 AND lokasi=$17`
	_, err := r.db.ExecContext(ctx, query,
		rec.JenisMesin, rec.KCSupervisi, rec.VendorCRO, rec.HargaSewaTahun,
		rec.TotalHargaSewaPeriode, rec.LamaSewaTahun, rec.PeriodeAwal, rec.PeriodeAkhir,
		rec.NomorPolisAsuransi, rec.PerjanjianSewaPKS, rec.PersetujuanSewaKodeRemarks,
		rec.PIC, rec.NomorHP, rec.State, rec.Notification, rec.TID, rec.Lokasi)
	return err
}

func (r *rentalRepository) UpdateField(ctx context.Context, tid, lokasi, column string, value any) (int64, error) {
	// column is validated against the editable-field whitelist by the service.
	query := fmt.Sprintf(`UPDATE rental_data SET %s = $1 WHERE tid = $2 AND lokasi = $3`, column)
	res, err := r.db.ExecContext(ctx, query, value, tid, lokasi)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *rentalRepository) UpdateState(ctx context.Context, id int32, state domain.RecordState, notification bool) error {
	query := `UPDATE rental_data SET state=$1, notification=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, state, notification, id)
	return err
}

func (r *rentalRepository) SetAttachment(ctx context.Context, tid, lokasi string, slot domain.FileSlot, att domain.Attachment) error {
	var query string
	switch slot {
	case domain.FileSlotPolisAsuransi:
		query = `UPDATE rental_data SET file_polis_asuransi_url=$1, file_polis_asuransi_name=$2, file_polis_asuransi_uploaded_at=$3 WHERE tid=$4 AND lokasi=$5`
	case domain.FileSlotPKSSewa:
		query = `UPDATE rental_data SET file_pks_sewa_url=$1, file_pks_sewa_name=$2, file_pks_sewa_uploaded_at=$3 WHERE tid=$4 AND lokasi=$5`
	case domain.FileSlotSewaKode:
		query = `UPDATE rental_data SET file_sewa_kode_url=$1, file_sewa_kode_name=$2, file_sewa_kode_uploaded_at=$3 WHERE tid=$4 AND lokasi=$5`
	default:
		return fmt.Errorf("unknown file slot: %s", slot)
	}
	_, err := r.db.ExecContext(ctx, query, att.URL, att.Name, att.UploadedAt, tid, lokasi)
	return err
}

func (r *rentalRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rental_data WHERE id = $1`, id)
	return err
}
