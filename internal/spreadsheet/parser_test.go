package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"rental-dashboard/internal/domain"
)

// buildImportWorkbook writes a workbook in the admin sheet layout: five
// title rows followed by data rows.
func buildImportWorkbook(t *testing.T, dataRows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "DATA SEWA MESIN"))

	for i, row := range dataRows {
		cell, err := excelize.CoordinatesToCellName(1, titleRows+1+i)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestParse(t *testing.T) {
	buf := buildImportWorkbook(t, [][]interface{}{
		{"1", "ATM", "T001", "KC Jakarta", "Jakarta Pusat", "PT Vendor",
			"Rp 120.000.000", "Rp 600.000.000", "5", "Maret 2021", "Maret 2026",
			"POL-123", "PKS-456", "disetujui", "Bu Sari", "0812345"},
		{"2", "CRM", "T002", "KC Bandung", "Bandung", "", "", "", "", "", "", "", "", "", "", ""},
	})

	records, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "ATM", first.JenisMesin)
	assert.Equal(t, "T001", first.TID)
	assert.Equal(t, "KC Jakarta", first.KCSupervisi)
	assert.Equal(t, "Jakarta Pusat", first.Lokasi)
	require.NotNil(t, first.VendorCRO)
	assert.Equal(t, "PT Vendor", *first.VendorCRO)
	require.NotNil(t, first.HargaSewaTahun)
	assert.Equal(t, "120000000", *first.HargaSewaTahun)
	require.NotNil(t, first.PeriodeAwal)
	assert.Equal(t, "2021-03", *first.PeriodeAwal)
	require.NotNil(t, first.PeriodeAkhir)
	assert.Equal(t, "2026-03", *first.PeriodeAkhir)
	assert.Equal(t, domain.RecordStateSafe, first.State)

	second := records[1]
	assert.Equal(t, "T002", second.TID)
	assert.Nil(t, second.VendorCRO)
	assert.Nil(t, second.HargaSewaTahun)
	assert.Nil(t, second.PeriodeAkhir)
}

func TestParseSkipsRowsWithoutTID(t *testing.T) {
	buf := buildImportWorkbook(t, [][]interface{}{
		{"1", "ATM", "T001", "KC A", "Jakarta"},
		{"2", "ATM", "", "KC B", "Bandung"},
		{"", "", "", "", ""},
	})

	records, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "T001", records[0].TID)
}

func TestParseRejectsEmptyWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := Parse(&buf)
	assert.Error(t, err)
}

func TestParseRejectsGarbageInput(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}
