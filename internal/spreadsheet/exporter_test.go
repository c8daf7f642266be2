package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"rental-dashboard/internal/domain"
)

func sPtr(s string) *string { return &s }

func TestWrite(t *testing.T) {
	records := []domain.RentalRecord{
		{
			ID: 1, JenisMesin: "ATM", TID: "T001", KCSupervisi: "KC Jakarta", Lokasi: "Jakarta",
			VendorCRO:       sPtr("PT Vendor"),
			HargaSewaTahun:  sPtr("1500000"),
			PeriodeAkhir:    sPtr("2026-03"),
			State:           domain.RecordStateWarning,
			Notification:    true,
			FilePKSSewaName: sPtr("pks.pdf"),
		},
		{
			JenisMesin: "CRM", TID: "T002", KCSupervisi: "KC Bandung", Lokasi: "Bandung",
			State: domain.RecordStateSafe,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(records, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, exportSheetName, f.GetSheetName(0))

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, exportHeaders, rows[0])

	first := rows[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "ATM", first[1])
	assert.Equal(t, "Rp. 1.500.000", first[6])
	assert.Equal(t, "2026-03", first[10])
	assert.Equal(t, "warning", first[16])
	assert.Equal(t, "Yes", first[17])
	assert.Equal(t, "pks.pdf", first[19])

	// Missing values render as empty cells, a zero id as an empty string.
	second := rows[2]
	assert.Equal(t, "", second[0])
	assert.Equal(t, "", second[5])
	assert.Equal(t, "No", second[17])
}

func TestWriteEmptyRecordSet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(nil, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, exportHeaders, rows[0])
}
