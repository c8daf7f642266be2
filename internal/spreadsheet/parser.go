package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"rental-dashboard/internal/domain"
	"rental-dashboard/internal/utils"
)

// The bulk upload sheet carries 5 title rows, then one record per row in
// a fixed 16-column layout: a row number followed by the 15 descriptive
// fields in database order.
const titleRows = 5

const (
	colNo = iota
	colJenisMesin
	colTID
	colKCSupervisi
	colLokasi
	colVendorCRO
	colHargaSewaTahun
	colTotalHargaSewaPeriode
	colLamaSewaTahun
	colPeriodeAwal
	colPeriodeAkhir
	colNomorPolisAsuransi
	colPerjanjianSewaPKS
	colPersetujuanSewaKodeRemarks
	colPIC
	colNomorHP
)

// Parse reads a bulk import workbook and returns the records it holds.
// Rows without a TID are skipped; currency and period cells are
// normalized the way the admin sheets format them.
func Parse(r io.Reader) ([]domain.RentalRecord, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) <= titleRows {
		return nil, fmt.Errorf("worksheet has no data rows")
	}

	var records []domain.RentalRecord
	for _, row := range rows[titleRows:] {
		tid := cellValue(row, colTID)
		if tid == "" {
			continue
		}
		rec := domain.RentalRecord{
			JenisMesin:  cellValue(row, colJenisMesin),
			TID:         tid,
			KCSupervisi: cellValue(row, colKCSupervisi),
			Lokasi:      cellValue(row, colLokasi),

			VendorCRO:                  optional(cellValue(row, colVendorCRO)),
			HargaSewaTahun:             utils.CleanCurrency(cellValue(row, colHargaSewaTahun)),
			TotalHargaSewaPeriode:      utils.CleanCurrency(cellValue(row, colTotalHargaSewaPeriode)),
			LamaSewaTahun:              optional(cellValue(row, colLamaSewaTahun)),
			PeriodeAwal:                parsePeriodeCell(cellValue(row, colPeriodeAwal)),
			PeriodeAkhir:               parsePeriodeCell(cellValue(row, colPeriodeAkhir)),
			NomorPolisAsuransi:         optional(cellValue(row, colNomorPolisAsuransi)),
			PerjanjianSewaPKS:          optional(cellValue(row, colPerjanjianSewaPKS)),
			PersetujuanSewaKodeRemarks: optional(cellValue(row, colPersetujuanSewaKodeRemarks)),
			PIC:                        optional(cellValue(row, colPIC)),
			NomorHP:                    optional(cellValue(row, colNomorHP)),

			State: domain.RecordStateSafe,
		}
		records = append(records, rec)
	}
	return records, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parsePeriodeCell(s string) *string {
	if s == "" {
		return nil
	}
	p, err := utils.ParsePeriode(s)
	if err != nil {
		return nil
	}
	return &p
}
