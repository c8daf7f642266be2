package domain

type RecordState string

const (
	RecordStateSafe    RecordState = "safe"
	RecordStateWarning RecordState = "warning"
)

// FileSlot identifies one of the three independent document attachments
// a rental record carries.
type FileSlot string

const (
	FileSlotPolisAsuransi FileSlot = "polis_asuransi"
	FileSlotPKSSewa       FileSlot = "pks_sewa"
	FileSlotSewaKode      FileSlot = "sewa_kode"
)

// FileSlots lists the valid attachment slots in display order.
var FileSlots = []FileSlot{FileSlotPolisAsuransi, FileSlotPKSSewa, FileSlotSewaKode}

// Attachment is one document slot on a record. All three fields travel
// together: a slot is either empty or fully populated by an upload.
type Attachment struct {
	URL        *string
	Name       *string
	UploadedAt *string
}

// RentalRecord is the central entity: one leased machine placement.
// The natural key is (TID, Lokasi); ID is assigned by the database and
// zero means the row has not been persisted (or the backend returned an
// anomalous row — the client treats such rows as non-selectable).
type RentalRecord struct {
	ID          int32  `json:"id"`
	JenisMesin  string `json:"jenis_mesin"`
	TID         string `json:"tid"`
	KCSupervisi string `json:"kc_supervisi"`
	Lokasi      string `json:"lokasi"`

	VendorCRO                  *string `json:"vendor_cro"`
	HargaSewaTahun             *string `json:"harga_sewa_tahun"`
	TotalHargaSewaPeriode      *string `json:"total_harga_sewa_periode"`
	LamaSewaTahun              *string `json:"lama_sewa_tahun"`
	PeriodeAwal                *string `json:"periode_awal"`
	PeriodeAkhir               *string `json:"periode_akhir"`
	NomorPolisAsuransi         *string `json:"nomor_polis_asuransi"`
	PerjanjianSewaPKS          *string `json:"perjanjian_sewa_pks"`
	PersetujuanSewaKodeRemarks *string `json:"persetujuan_sewa_kode_remarks"`
	PIC                        *string `json:"pic"`
	NomorHP                    *string `json:"nomor_hp"`

	State        RecordState `json:"state"`
	Notification bool        `json:"notification"`

	FilePolisAsuransiURL        *string `json:"file_polis_asuransi_url"`
	FilePolisAsuransiName       *string `json:"file_polis_asuransi_name"`
	FilePolisAsuransiUploadedAt *string `json:"file_polis_asuransi_uploaded_at"`

	FilePKSSewaURL        *string `json:"file_pks_sewa_url"`
	FilePKSSewaName       *string `json:"file_pks_sewa_name"`
	FilePKSSewaUploadedAt *string `json:"file_pks_sewa_uploaded_at"`

	FileSewaKodeURL        *string `json:"file_sewa_kode_url"`
	FileSewaKodeName       *string `json:"file_sewa_kode_name"`
	FileSewaKodeUploadedAt *string `json:"file_sewa_kode_uploaded_at"`
}

// Attachment returns the document slot for the given type. Unknown slots
// return an empty attachment.
func (r *RentalRecord) Attachment(slot FileSlot) Attachment {
	switch slot {
	case FileSlotPolisAsuransi:
		return Attachment{URL: r.FilePolisAsuransiURL, Name: r.FilePolisAsuransiName, UploadedAt: r.FilePolisAsuransiUploadedAt}
	case FileSlotPKSSewa:
		return Attachment{URL: r.FilePKSSewaURL, Name: r.FilePKSSewaName, UploadedAt: r.FilePKSSewaUploadedAt}
	case FileSlotSewaKode:
		return Attachment{URL: r.FileSewaKodeURL, Name: r.FileSewaKodeName, UploadedAt: r.FileSewaKodeUploadedAt}
	}
	return Attachment{}
}

// SetAttachment replaces the document slot wholesale.
func (r *RentalRecord) SetAttachment(slot FileSlot, a Attachment) {
	switch slot {
	case FileSlotPolisAsuransi:
		r.FilePolisAsuransiURL, r.FilePolisAsuransiName, r.FilePolisAsuransiUploadedAt = a.URL, a.Name, a.UploadedAt
	case FileSlotPKSSewa:
		r.FilePKSSewaURL, r.FilePKSSewaName, r.FilePKSSewaUploadedAt = a.URL, a.Name, a.UploadedAt
	case FileSlotSewaKode:
		r.FileSewaKodeURL, r.FileSewaKodeName, r.FileSewaKodeUploadedAt = a.URL, a.Name, a.UploadedAt
	}
}

// AttachmentURLs returns the stored file paths across all slots, skipping
// empty ones. Used when deleting a record to clean up its files.
func (r *RentalRecord) AttachmentURLs() []string {
	var urls []string
	for _, slot := range FileSlots {
		if a := r.Attachment(slot); a.URL != nil && *a.URL != "" {
			urls = append(urls, *a.URL)
		}
	}
	return urls
}

// ValidFileSlot reports whether s names one of the three attachment slots.
func ValidFileSlot(s string) bool {
	switch FileSlot(s) {
	case FileSlotPolisAsuransi, FileSlotPKSSewa, FileSlotSewaKode:
		return true
	}
	return false
}
