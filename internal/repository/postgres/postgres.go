package postgres

import (
	"database/sql"

	"rental-dashboard/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.RentalRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		UserRepository:   NewUserRepository(db),
		RentalRepository: NewRentalRepository(db),
	}
}

// EnsureSchema creates the tables if they do not exist yet. The original
// deployment relied on create-on-boot rather than managed migrations.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            SERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rental_data (
	id                              SERIAL PRIMARY KEY,
	jenis_mesin                     TEXT NOT NULL,
	tid                             TEXT NOT NULL,
	kc_supervisi                    TEXT NOT NULL,
	lokasi                          TEXT NOT NULL,
	vendor_cro                      TEXT,
	harga_sewa_tahun                TEXT,
	total_harga_sewa_periode        TEXT,
	lama_sewa_tahun                 TEXT,
	periode_awal                    TEXT,
	periode_akhir                   TEXT,
	nomor_polis_asuransi            TEXT,
	perjanjian_sewa_pks             TEXT,
	persetujuan_sewa_kode_remarks   TEXT,
	pic                             TEXT,
	nomor_hp                        TEXT,
	state                           TEXT NOT NULL DEFAULT 'safe',
	notification                    BOOLEAN NOT NULL DEFAULT FALSE,
	file_polis_asuransi_url         TEXT,
	file_polis_asuransi_name        TEXT,
	file_polis_asuransi_uploaded_at TEXT,
	file_pks_sewa_url               TEXT,
	file_pks_sewa_name              TEXT,
	file_pks_sewa_uploaded_at       TEXT,
	file_sewa_kode_url              TEXT,
	file_sewa_kode_name             TEXT,
	file_sewa_kode_uploaded_at      TEXT,
	UNIQUE (tid, lokasi)
);
`
