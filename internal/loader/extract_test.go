package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeExtract(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	path := filepath.Join(t.TempDir(), "extract.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

var extractHeader = []interface{}{
	"data_do_periodo", "pessoa_entregadora", "periodo", "sub_praca",
	"tempo_disponivel_absoluto", "tempo_disponivel_escalado",
	"numero_de_corridas_ofertadas", "numero_de_corridas_aceitas",
	"numero_de_corridas_rejeitadas", "numero_de_corridas_completadas",
}

func TestExtractLoaderLoad(t *testing.T) {
	path := writeExtract(t, "Base 2025", [][]interface{}{
		extractHeader,
		{"2025-08-01", "JOÃO SILVA", "Almoço", "Centro", "2:30:00", "8500", "10", "8", "2", "7"},
		{"2025-08-02", "Maria", "", "", "3600", "", "5", "5", "0", "5"},
	})

	records, err := NewExtractLoader().Load(path, "Base 2025")
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "JOÃO SILVA", first.CourierName)
	assert.Equal(t, "joao silva", first.CourierNameNorm)
	assert.Equal(t, 8, first.Month)
	assert.Equal(t, 2025, first.Year)
	assert.Equal(t, "Almoço", first.Period)
	assert.Equal(t, "Centro", first.SubArea)
	assert.Equal(t, 9000, first.AvailableTimeSec)
	require.NotNil(t, first.AvailableTimeScaledPct)
	assert.Equal(t, 8500.0, *first.AvailableTimeScaledPct)
	assert.Equal(t, 10, first.RidesOffered)
	assert.Equal(t, 7, first.RidesCompleted)

	second := records[1]
	assert.Equal(t, "(sem turno)", second.Period)
	assert.Equal(t, 3600, second.AvailableTimeSec)
	assert.Nil(t, second.AvailableTimeScaledPct)
}

func TestExtractLoaderSkipsBadRows(t *testing.T) {
	path := writeExtract(t, "Base 2025", [][]interface{}{
		extractHeader,
		{"2025-08-01", "", "Almoço", "", "1:00:00", "", "1", "1", "0", "1"},
		{"not a date", "Maria", "Almoço", "", "1:00:00", "", "1", "1", "0", "1"},
		{"2025-08-03", "Pedro", "Jantar", "", "1:00:00", "", "1", "1", "0", "1"},
	})

	records, err := NewExtractLoader().Load(path, "Base 2025")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Pedro", records[0].CourierName)
}

func TestExtractLoaderMissingColumn(t *testing.T) {
	path := writeExtract(t, "Base 2025", [][]interface{}{
		{"data_do_periodo", "periodo"},
		{"2025-08-01", "Almoço"},
	})

	_, err := NewExtractLoader().Load(path, "Base 2025")
	assert.Error(t, err)
}

func TestExtractLoaderMissingSheet(t *testing.T) {
	path := writeExtract(t, "Base 2025", [][]interface{}{extractHeader})

	_, err := NewExtractLoader().Load(path, "Base 2024")
	assert.Error(t, err)
}

func TestExtractLoaderMissingFile(t *testing.T) {
	_, err := NewExtractLoader().Load(filepath.Join(t.TempDir(), "nope.xlsx"), "Base 2025")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{input: "2025-08-01", ok: true},
		{input: "2025-08-01 14:30:00", ok: true},
		{input: "01/08/2025", ok: true},
		{input: "45870", ok: true}, // Excel serial
		{input: "", ok: false},
		{input: "tomorrow", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok := parseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 5, parseCount("5"))
	assert.Equal(t, 5, parseCount("5.0"))
	assert.Equal(t, 0, parseCount(""))
	assert.Equal(t, 0, parseCount("-3"))
	assert.Equal(t, 0, parseCount("abc"))
}
