package web

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	got := formatMoney(decimal.RequireFromString("25.5"), "usd")
	assert.Contains(t, got, "$")
	assert.Contains(t, got, "25.50")

	assert.Equal(t, "10.00 XYZQ", formatMoney(decimal.NewFromInt(10), "xyzq"))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.March, 8, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "March 8, 2025", formatDate(d, ""))
	assert.Equal(t, "2025-03-08", formatDate(d, "2006-01-02"))
	assert.Empty(t, formatDate(time.Time{}, ""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Empowering girls…", truncate("Empowering girls across Sierra Leone", 20))
	assert.Equal(t, "abc", truncate("abc", 0))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"education", "health"}, splitTags(" education, ,health,"))
	assert.Nil(t, splitTags(""))
}
