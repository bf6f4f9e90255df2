package marketdata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gold-bot/internal/client"
	"gold-bot/internal/service/marketdata"
	"gold-bot/internal/utils"
)

var ict = time.FixedZone("ICT", 7*60*60)

func pipeline(t *testing.T, handler http.HandlerFunc, timeout time.Duration) string {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	prices := marketdata.NewGoldPriceService(client.NewGoldAPI(srv.URL, timeout), timeout)
	formatter := utils.NewFormatter(ict, "0 9 * * *", "Asia/Ho_Chi_Minh")
	formatter.Now = func() time.Time { return time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC) }

	return formatter.FormatGoldPrice(prices.FetchPrice(context.Background()))
}

func TestPipeline_LivePrice(t *testing.T) {
	msg := pipeline(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Gold","price":1987.65,"symbol":"XAU","updatedAt":"2024-01-01T00:00:00Z"}`))
	}, time.Second)

	assert.Contains(t, msg, "$1987.65 mỗi ounce")
	assert.Contains(t, msg, "USD")
	assert.Contains(t, msg, "Thứ Hai, 1 tháng 1, 2024")
	assert.Contains(t, msg, "07:00:00")
	assert.NotContains(t, msg, "Thay Đổi 24h")
}

func TestPipeline_SourceTimeout(t *testing.T) {
	msg := pipeline(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, 50*time.Millisecond)

	m := regexp.MustCompile(`\$(\d+\.\d{2}) mỗi ounce`).FindStringSubmatch(msg)
	require.Len(t, m, 2, msg)
	price, err := strconv.ParseFloat(m[1], 64)
	require.NoError(t, err)
	assert.Greater(t, price, 1950.0)
	assert.Less(t, price, 2050.0)
	assert.Contains(t, msg, "USD")
	assert.Contains(t, msg, "Thay Đổi 24h")
}

func TestPipeline_NonFinitePrice(t *testing.T) {
	msg := pipeline(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"price":"Infinity","change_24h":"NaN"}`))
	}, time.Second)

	assert.Regexp(t, `\$(19[5-9]\d|20[0-4]\d)\.\d{2} mỗi ounce`, msg)
	assert.NotContains(t, msg, "Inf")
	assert.NotContains(t, msg, "NaN")
}

func TestPipeline_NonFiniteChange(t *testing.T) {
	msg := pipeline(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"price":2000,"change_24h":"NaN"}`))
	}, time.Second)

	assert.Contains(t, msg, "$2000.00 mỗi ounce")
	assert.NotContains(t, msg, "Thay Đổi 24h")
}
