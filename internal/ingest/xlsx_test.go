package ingest_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sofhub/internal/ingest"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetList()[0]
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestRowsFromWorkbook(t *testing.T) {
	r := workbook(t,
		[]interface{}{"Vessel", "Event", "Start Time", "End Time"},
		[]interface{}{"MV TEST", "Loading", "08:00", "10:00"},
		[]interface{}{"", "Discharge", "11:00", "12:00"},
	)

	rows, err := ingest.RowsFromWorkbook(r)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "MV TEST", rows[0]["Vessel"])
	assert.Equal(t, "Loading", rows[0]["Event"])
	assert.Equal(t, "08:00", rows[0]["Start Time"])
	assert.Equal(t, "Discharge", rows[1]["Event"])
}

func TestRowsFromWorkbook_TrimsCells(t *testing.T) {
	r := workbook(t,
		[]interface{}{" Vessel ", " Event "},
		[]interface{}{" MV TEST ", " Loading "},
	)

	rows, err := ingest.RowsFromWorkbook(r)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MV TEST", rows[0]["Vessel"])
	assert.Equal(t, "Loading", rows[0]["Event"])
}

func TestRowsFromWorkbook_ShortRowPadsEmpty(t *testing.T) {
	r := workbook(t,
		[]interface{}{"Vessel", "Event", "Start Time"},
		[]interface{}{"MV TEST", "Loading"},
	)

	rows, err := ingest.RowsFromWorkbook(r)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["Start Time"])
}

func TestRowsFromWorkbook_HeaderOnly(t *testing.T) {
	r := workbook(t, []interface{}{"Vessel", "Event"})

	rows, err := ingest.RowsFromWorkbook(r)

	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Nil(t, ingest.ExtractFromRows(rows, "sof.xlsx"))
}

func TestRowsFromWorkbook_NotAWorkbook(t *testing.T) {
	_, err := ingest.RowsFromWorkbook(strings.NewReader("not a zip archive"))

	assert.Error(t, err)
}

func TestRowsFromWorkbook_FeedsExtraction(t *testing.T) {
	r := workbook(t,
		[]interface{}{"Vessel", "Port", "Event", "Start Time", "End Time"},
		[]interface{}{"MV SHEET", "Santos", "Berthing", "07:00", "07:45"},
		[]interface{}{"", "", "Loading", "08:00", "16:00"},
	)

	rows, err := ingest.RowsFromWorkbook(r)
	require.NoError(t, err)

	res := ingest.ExtractFromRows(rows, "sof.xlsx")

	require.NotNil(t, res)
	assert.Equal(t, "MV SHEET", res.Vessel)
	assert.Equal(t, "Santos", res.Port)
	require.Len(t, res.Events, 2)
	assert.Equal(t, "Berthing", res.Events[0].Name)
	assert.Equal(t, "16:00", res.Events[1].End)
}
