package spreadsheet

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"rental-dashboard/internal/domain"
	"rental-dashboard/internal/utils"
)

const exportSheetName = "Rental Data"

// exportHeaders fixes the column order of the exported workbook.
var exportHeaders = []string{
	"ID", "Jenis Mesin", "TID", "KC Supervisi", "Lokasi", "Vendor CRO",
	"Harga Sewa/Tahun", "Total Harga Sewa Periode", "Lama Sewa (Tahun)",
	"Periode Awal", "Periode Akhir", "Nomor Polis Asuransi",
	"Perjanjian Sewa PKS", "Persetujuan Sewa Kode Remarks", "PIC", "Nomor HP",
	"State", "Notification", "File Polis Asuransi", "File PKS Sewa", "File Sewa Kode",
}

// columnWidths has one entry per exportHeaders column.
var columnWidths = []float64{
	5, 15, 10, 15, 20, 15, 18, 20, 15, 12, 12, 20, 20, 25, 15, 15, 10, 12, 20, 20, 20,
}

// Export writes the records as a single-sheet workbook at <stem>.xlsx.
// It is pure with respect to network and application state: it only
// consumes the slice it is given, so exporting all records and exporting
// a filtered view are the same call with different input.
func Export(records []domain.RentalRecord, stem string) error {
	f, err := os.Create(stem + ".xlsx")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()
	return Write(records, f)
}

// Write renders the workbook to w.
func Write(records []domain.RentalRecord, w io.Writer) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName("Sheet1", exportSheetName); err != nil {
		return err
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := file.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return err
	}

	for i := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := exportRow(&records[i])
		if err := file.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return err
		}
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := file.SetColWidth(exportSheetName, col, col, width); err != nil {
			return err
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// exportRow renders one record. Missing fields become empty strings,
// monetary fields locale-formatted Rupiah text, the notification flag
// "Yes"/"No".
func exportRow(rec *domain.RentalRecord) []interface{} {
	id := ""
	if rec.ID != 0 {
		id = fmt.Sprintf("%d", rec.ID)
	}
	notification := "No"
	if rec.Notification {
		notification = "Yes"
	}
	return []interface{}{
		id,
		rec.JenisMesin,
		rec.TID,
		rec.KCSupervisi,
		rec.Lokasi,
		deref(rec.VendorCRO),
		utils.FormatRupiah(rec.HargaSewaTahun),
		utils.FormatRupiah(rec.TotalHargaSewaPeriode),
		deref(rec.LamaSewaTahun),
		deref(rec.PeriodeAwal),
		deref(rec.PeriodeAkhir),
		deref(rec.NomorPolisAsuransi),
		deref(rec.PerjanjianSewaPKS),
		deref(rec.PersetujuanSewaKodeRemarks),
		deref(rec.PIC),
		deref(rec.NomorHP),
		string(rec.State),
		notification,
		deref(rec.FilePolisAsuransiName),
		deref(rec.FilePKSSewaName),
		deref(rec.FileSewaKodeName),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
