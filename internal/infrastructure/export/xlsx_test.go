package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXRenderer_Render(t *testing.T) {
	data, err := NewXLSXRenderer().Render(sampleReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	value := func(c string) string {
		t.Helper()
		v, err := f.GetCellValue(SheetName, c, excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, reportTitle, value("A1"))
	assert.Equal(t, "Generated: 2026-03-14 09:30 UTC", value("A2"))
	assert.Equal(t, "USD Rate (BDT)", value("A5"))
	assert.Equal(t, "122", value("B5"))

	assert.Equal(t, "Species", value("A12"))
	assert.Equal(t, "Final CFR (USD)", value("N12"))

	assert.Equal(t, "Black Tiger", value("A13"))
	assert.Equal(t, "1617.67", value("J13"))
	assert.Equal(t, "12.81", value("N13"))
	assert.Empty(t, value("O13"))

	assert.Equal(t, "'=Vannamei", value("A14"))
	assert.Empty(t, value("N14"))
	assert.Equal(t, "No rates found for size range 40-50", value("O14"))

	assert.Equal(t, "Products", value("M16"))
	assert.Equal(t, "2", value("N16"))
	assert.Equal(t, "12.81", value("N19"))
}

func TestSanitizeExcelCell(t *testing.T) {
	assert.Equal(t, "", sanitizeExcelCell(""))
	assert.Equal(t, "Black Tiger", sanitizeExcelCell("Black Tiger"))
	assert.Equal(t, "'+cmd", sanitizeExcelCell("+cmd"))
	assert.Equal(t, "'@SUM(A1)", sanitizeExcelCell("@SUM(A1)"))
}
