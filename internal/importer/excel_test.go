package importer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonesrussell/product-curator/internal/importer"
)

var exportHeaders = []string{
	"ASIN", "商品标题", "价格($)", "大类目", "小类目", "月销量",
	"月销售额($)", "评分数", "评分", "上架时间", "配送方式",
	"卖家所属地", "商品主图", "商品详情页链接",
}

// buildWorkbook creates an in-memory .xlsx from raw rows, written
// starting at row 1 with no assumptions about headers.
func buildWorkbook(t *testing.T, rows [][]string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, val))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

// exportRows prepends the header row to the given data rows.
func exportRows(data ...[]string) [][]string {
	rows := [][]string{exportHeaders}
	return append(rows, data...)
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  error
	}{
		{"valid", "products.xlsx", 1024, nil},
		{"uppercase extension", "PRODUCTS.XLSX", 1024, nil},
		{"wrong extension", "products.csv", 1024, importer.ErrInvalidExtension},
		{"no extension", "products", 1024, importer.ErrInvalidExtension},
		{"at the limit", "products.xlsx", importer.MaxFileSize, nil},
		{"over the limit", "products.xlsx", importer.MaxFileSize + 1, importer.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := importer.ValidateFile(tt.filename, tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParse(t *testing.T) {
	reader := buildWorkbook(t, exportRows(
		[]string{"B001ABC", "Cotton tablecloth", "19.99", "Home & Kitchen", "Table cloths", "50", "999.50", "120", "4.5", "2024-03-01", "FBA", "CN", "https://img.example.com/1.jpg", "https://example.com/dp/B001ABC"},
		[]string{"B002DEF", "Linen napkins", "12.50", "Home & Kitchen", "Napkins", "200", "2500", "80", "4.1", "2023-11-15", "FBM", "US", "", ""},
	))

	products, err := importer.Parse(reader, nil)
	require.NoError(t, err)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, "B001ABC", first.ASIN)
	assert.Equal(t, "Cotton tablecloth", first.Title)
	assert.InDelta(t, 19.99, first.Price, 0.001)
	assert.Equal(t, "Home & Kitchen", first.MainCategory)
	assert.Equal(t, "Table cloths", first.SubCategory)
	assert.Equal(t, 50, first.MonthlySales)
	assert.InDelta(t, 999.50, first.MonthlyRevenue, 0.001)
	assert.Equal(t, 120, first.ReviewCount)
	assert.InDelta(t, 4.5, first.Rating, 0.001)
	assert.Equal(t, "2024-03-01", first.LaunchDate)
	assert.Equal(t, "FBA", first.ShippingMethod)
	assert.Equal(t, "CN", first.SellerLocation)
	assert.Equal(t, "https://img.example.com/1.jpg", first.MainImage)
	assert.Equal(t, "https://example.com/dp/B001ABC", first.ProductURL)
	assert.Equal(t, "Cotton tablecloth", first.Raw["商品标题"])

	assert.Equal(t, "B002DEF", products[1].ASIN)
}

func TestParseSkipsRowsWithoutASIN(t *testing.T) {
	reader := buildWorkbook(t, exportRows(
		[]string{"B001", "Kept"},
		[]string{"", "Dropped, no ASIN", "5"},
		[]string{"B003", "Also kept"},
	))

	products, err := importer.Parse(reader, nil)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "B001", products[0].ASIN)
	assert.Equal(t, "B003", products[1].ASIN)
}

func TestParseSentinelTitleRow(t *testing.T) {
	rows := [][]string{
		{"Product-Research-Export 2024-06-01"},
		exportHeaders,
		{"B001", "With title row"},
	}
	reader := buildWorkbook(t, rows)

	products, err := importer.Parse(reader, nil)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "B001", products[0].ASIN)
	assert.Equal(t, "With title row", products[0].Title)
}

func TestParseSentinelOnlyAppliesWithMoreRows(t *testing.T) {
	// A single sentinel-looking row is treated as the header row, and
	// there is no data below it.
	reader := buildWorkbook(t, [][]string{{"Product-Research-Export"}})

	products, err := importer.Parse(reader, nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestParseMalformedNumbersCoerceToZero(t *testing.T) {
	reader := buildWorkbook(t, exportRows(
		[]string{"B001", "Bad numbers", "not-a-price", "", "", "n/a", "--", "?", "five"},
	))

	products, err := importer.Parse(reader, nil)
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Zero(t, p.Price)
	assert.Zero(t, p.MonthlySales)
	assert.Zero(t, p.MonthlyRevenue)
	assert.Zero(t, p.ReviewCount)
	assert.Zero(t, p.Rating)
}

func TestParseNotASpreadsheet(t *testing.T) {
	products, err := importer.Parse(bytes.NewReader([]byte("plain text, not a workbook")), nil)
	assert.ErrorIs(t, err, importer.ErrNotSpreadsheet)
	assert.Nil(t, products)
}

func TestParseEmptySheet(t *testing.T) {
	reader := buildWorkbook(t, nil)

	_, err := importer.Parse(reader, nil)
	assert.ErrorIs(t, err, importer.ErrNoHeaderRow)
}

func TestParseProgressIsMonotoneAndEndsAt100(t *testing.T) {
	reader := buildWorkbook(t, exportRows([]string{"B001", "One"}))

	var seen []int
	_, err := importer.Parse(reader, func(p int) {
		seen = append(seen, p)
	})
	require.NoError(t, err)
	require.NotEmpty(t, seen)

	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i], seen[i-1], "progress must strictly increase")
	}
	assert.Equal(t, 100, seen[len(seen)-1])
}

func TestParsePreservesRowOrder(t *testing.T) {
	reader := buildWorkbook(t, exportRows(
		[]string{"B003"},
		[]string{"B001"},
		[]string{"B002"},
	))

	products, err := importer.Parse(reader, nil)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "B003", products[0].ASIN)
	assert.Equal(t, "B001", products[1].ASIN)
	assert.Equal(t, "B002", products[2].ASIN)
}

func TestParseUnknownColumnsRetainedInRaw(t *testing.T) {
	headerRow := append(append([]string{}, exportHeaders...), "BSR排名")
	dataRow := make([]string, len(headerRow))
	dataRow[0] = "B001"
	dataRow[1] = "With extra column"
	dataRow[len(dataRow)-1] = "1234"

	reader := buildWorkbook(t, [][]string{headerRow, dataRow})
	products, err := importer.Parse(reader, nil)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "1234", products[0].Raw["BSR排名"])
}
