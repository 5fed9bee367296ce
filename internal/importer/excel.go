// Package importer decodes seller export spreadsheets into product
// records.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonesrussell/product-curator/internal/models"
)

// MaxFileSize is the upload ceiling checked before any decoding starts.
const MaxFileSize = 10 * 1024 * 1024 // 10 MB

// Extension is the only accepted file extension.
const Extension = ".xlsx"

// sentinelPrefix marks a non-tabular title row the export tool prepends
// above the real header row.
const sentinelPrefix = "Product-"

// Header labels as emitted by the export tool. Preserved verbatim so
// existing export files keep parsing.
const (
	headerASIN           = "ASIN"
	headerTitle          = "商品标题"
	headerPrice          = "价格($)"
	headerMainCategory   = "大类目"
	headerSubCategory    = "小类目"
	headerMonthlySales   = "月销量"
	headerMonthlyRevenue = "月销售额($)"
	headerReviewCount    = "评分数"
	headerRating         = "评分"
	headerLaunchDate     = "上架时间"
	headerShippingMethod = "配送方式"
	headerSellerLocation = "卖家所属地"
	headerMainImage      = "商品主图"
	headerProductURL     = "商品详情页链接"
)

// Validation errors, surfaced before parsing starts.
var (
	ErrInvalidExtension = errors.New("file must have the .xlsx extension")
	ErrFileTooLarge     = errors.New("file exceeds the 10 MB size limit")
)

// Parse errors. A parse failure is all-or-nothing: no partial records.
var (
	ErrNotSpreadsheet = errors.New("file could not be decoded as a spreadsheet")
	ErrNoHeaderRow    = errors.New("no usable header row found")
)

// Progress checkpoints reported during a parse. The callback sees a
// never-decreasing percentage ending at 100 on success.
const (
	progressRead     = 20
	progressDecode   = 40
	progressSheet    = 60
	progressConvert  = 80
	progressComplete = 100
)

// ProgressFunc receives parse progress as a percentage. It carries no
// correctness obligation; callers may use it for UI feedback.
type ProgressFunc func(percent int)

// ValidateFile checks the pre-parse contract: extension and size.
func ValidateFile(name string, size int64) error {
	if !strings.HasSuffix(strings.ToLower(name), Extension) {
		return ErrInvalidExtension
	}
	if size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// Parse decodes the spreadsheet from r into product records. Only the
// first sheet is read. A row yields a record only if its ASIN cell is
// non-empty; malformed numeric cells coerce to zero rather than failing
// the batch.
func Parse(r io.Reader, onProgress ProgressFunc) ([]models.ProductRecord, error) {
	report := monotone(onProgress)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	report(progressRead)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotSpreadsheet, err)
	}
	defer f.Close()
	report(progressDecode)

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoHeaderRow
	}
	report(progressSheet)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet rows: %w", err)
	}
	report(progressConvert)

	headers, dataStart, err := locateHeader(rows)
	if err != nil {
		return nil, err
	}

	products := make([]models.ProductRecord, 0, len(rows)-dataStart)
	for i := dataStart; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}
		raw := zipRow(headers, row)
		if strings.TrimSpace(raw[headerASIN]) == "" {
			continue
		}
		products = append(products, toRecord(raw))
	}

	report(progressComplete)
	return products, nil
}

// locateHeader finds the header row and the index of the first data
// row. Exports sometimes prepend a single descriptive title row whose
// first cell starts with the sentinel prefix; the real header is then
// the second row.
func locateHeader(rows [][]string) (headers []string, dataStart int, err error) {
	if len(rows) == 0 {
		return nil, 0, ErrNoHeaderRow
	}

	if len(rows) > 1 && len(rows[0]) > 0 && strings.HasPrefix(rows[0][0], sentinelPrefix) {
		return rows[1], 2, nil
	}
	return rows[0], 1, nil
}

// zipRow pairs header cells with row cells positionally. Cells beyond
// the row's length are absent from the map; columns with empty header
// labels are skipped.
func zipRow(headers, row []string) map[string]string {
	raw := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" || i >= len(row) {
			continue
		}
		raw[h] = row[i]
	}
	return raw
}

func toRecord(raw map[string]string) models.ProductRecord {
	return models.ProductRecord{
		ASIN:           strings.TrimSpace(raw[headerASIN]),
		Title:          raw[headerTitle],
		Price:          coerceFloat(raw[headerPrice]),
		MainCategory:   raw[headerMainCategory],
		SubCategory:    raw[headerSubCategory],
		MonthlySales:   coerceInt(raw[headerMonthlySales]),
		MonthlyRevenue: coerceFloat(raw[headerMonthlyRevenue]),
		ReviewCount:    coerceInt(raw[headerReviewCount]),
		Rating:         coerceFloat(raw[headerRating]),
		LaunchDate:     raw[headerLaunchDate],
		ShippingMethod: raw[headerShippingMethod],
		SellerLocation: raw[headerSellerLocation],
		MainImage:      raw[headerMainImage],
		ProductURL:     raw[headerProductURL],
		Raw:            raw,
	}
}

// coerceFloat parses a cell value permissively: thousands separators
// are dropped and a trailing non-numeric suffix is ignored, matching
// how the export tool formats numbers. Unparsable input yields 0.
func coerceFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	if prefix := numericPrefix(s); prefix != "" {
		if v, err := strconv.ParseFloat(prefix, 64); err == nil {
			return v
		}
	}
	return 0
}

// coerceInt is coerceFloat truncated toward zero.
func coerceInt(s string) int {
	return int(coerceFloat(s))
}

// numericPrefix returns the longest prefix of s that looks like a
// decimal number, e.g. "19.99$" -> "19.99".
func numericPrefix(s string) string {
	end := 0
	seenDot := false
	for i, r := range s {
		if r == '-' && i == 0 {
			end = i + 1
			continue
		}
		if r == '.' && !seenDot {
			seenDot = true
			end = i + 1
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		end = i + 1
	}
	return strings.TrimRight(s[:end], ".")
}

// monotone wraps a progress callback so reported percentages never
// decrease. A nil callback yields a no-op.
func monotone(fn ProgressFunc) ProgressFunc {
	if fn == nil {
		return func(int) {}
	}
	last := -1
	return func(p int) {
		if p <= last {
			return
		}
		last = p
		fn(p)
	}
}
