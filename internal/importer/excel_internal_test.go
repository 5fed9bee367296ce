package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_coerceFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"empty", "", 0},
		{"whitespace", "  ", 0},
		{"plain integer", "50", 50},
		{"decimal", "19.99", 19.99},
		{"thousands separator", "1,234.56", 1234.56},
		{"currency suffix", "19.99$", 19.99},
		{"unit suffix", "365天", 365},
		{"leading garbage", "$19.99", 0},
		{"negative", "-3.5", -3.5},
		{"not a number", "n/a", 0},
		{"lone minus", "-", 0},
		{"bare dot prefix", ".5x", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, coerceFloat(tt.input), 1e-9)
		})
	}
}

func Test_coerceInt(t *testing.T) {
	assert.Equal(t, 50, coerceInt("50"))
	assert.Equal(t, 50, coerceInt("50.9"))
	assert.Equal(t, 0, coerceInt("garbage"))
	assert.Equal(t, -2, coerceInt("-2.7"))
}

func Test_locateHeader(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		_, _, err := locateHeader(nil)
		assert.ErrorIs(t, err, ErrNoHeaderRow)
	})

	t.Run("first row is the header", func(t *testing.T) {
		headers, start, err := locateHeader([][]string{
			{"ASIN", "商品标题"},
			{"B001", "x"},
		})
		assert.NoError(t, err)
		assert.Equal(t, []string{"ASIN", "商品标题"}, headers)
		assert.Equal(t, 1, start)
	})

	t.Run("sentinel title row shifts the header down", func(t *testing.T) {
		headers, start, err := locateHeader([][]string{
			{"Product-Research 2024"},
			{"ASIN", "商品标题"},
			{"B001", "x"},
		})
		assert.NoError(t, err)
		assert.Equal(t, []string{"ASIN", "商品标题"}, headers)
		assert.Equal(t, 2, start)
	})

	t.Run("sentinel needs a second row", func(t *testing.T) {
		headers, start, err := locateHeader([][]string{
			{"Product-Research 2024"},
		})
		assert.NoError(t, err)
		assert.Equal(t, []string{"Product-Research 2024"}, headers)
		assert.Equal(t, 1, start)
	})
}

func Test_monotone(t *testing.T) {
	var seen []int
	report := monotone(func(p int) { seen = append(seen, p) })

	report(20)
	report(20)
	report(10)
	report(40)
	report(100)

	assert.Equal(t, []int{20, 40, 100}, seen)
}

func Test_monotoneNilCallback(t *testing.T) {
	report := monotone(nil)
	assert.NotPanics(t, func() { report(50) })
}
