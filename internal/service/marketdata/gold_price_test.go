package marketdata

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/gocryptotrader/currency"

	"gold-bot/internal/model"
)

type MockPriceSource struct {
	mock.Mock
	quote currency.Code
}

func (m *MockPriceSource) Name() string {
	return "mock"
}

func (m *MockPriceSource) Quote() currency.Code {
	if m.quote.IsEmpty() {
		return currency.USD
	}
	return m.quote
}

func (m *MockPriceSource) FetchQuote(ctx context.Context) (*model.PriceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PriceRecord), args.Error(1)
}

var fixedNow = time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

func newService(src *MockPriceSource) *GoldPriceService {
	s := NewGoldPriceService(src, time.Second)
	s.Now = func() time.Time { return fixedNow }
	return s
}

func TestFetchPrice_Live(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src := new(MockPriceSource)
	src.On("FetchQuote", mock.Anything).Return(&model.PriceRecord{
		Price:            1987.65,
		Timestamp:        ts,
		Change24h:        model.Float(-3.5),
		ChangePercent24h: model.Float(-0.18),
	}, nil).Once()

	rec := newService(src).FetchPrice(context.Background())

	assert.Equal(t, 1987.65, rec.Price)
	assert.Equal(t, "USD", rec.Currency)
	assert.Equal(t, "oz", rec.Unit)
	assert.Equal(t, ts, rec.Timestamp)
	require.NotNil(t, rec.Change24h)
	assert.Equal(t, -3.5, *rec.Change24h)
	assert.Equal(t, -0.18, *rec.ChangePercent24h)
	assert.False(t, rec.Synthetic)
	src.AssertExpectations(t)
}

func TestFetchPrice_LiveWithoutTimestamp(t *testing.T) {
	src := new(MockPriceSource)
	src.On("FetchQuote", mock.Anything).Return(&model.PriceRecord{Price: 2001}, nil)

	rec := newService(src).FetchPrice(context.Background())

	assert.Equal(t, 2001.0, rec.Price)
	assert.Equal(t, fixedNow, rec.Timestamp)
	assert.Nil(t, rec.Change24h)
	assert.Nil(t, rec.ChangePercent24h)
}

func TestFetchPrice_CurrencyFromSource(t *testing.T) {
	src := &MockPriceSource{quote: currency.USDT}
	src.On("FetchQuote", mock.Anything).Return(&model.PriceRecord{Price: 2001}, nil).Once()
	src.On("FetchQuote", mock.Anything).Return(nil, errors.New("down")).Once()
	s := newService(src)

	live := s.FetchPrice(context.Background())
	assert.False(t, live.Synthetic)
	assert.Equal(t, "USDT", live.Currency)

	fallback := s.FetchPrice(context.Background())
	assert.True(t, fallback.Synthetic)
	assert.Equal(t, "USDT", fallback.Currency)
}

func TestFetchPrice_DropsNonFiniteChange(t *testing.T) {
	src := new(MockPriceSource)
	src.On("FetchQuote", mock.Anything).Return(&model.PriceRecord{
		Price:            2000,
		Change24h:        model.Float(math.NaN()),
		ChangePercent24h: model.Float(math.Inf(-1)),
	}, nil)

	rec := newService(src).FetchPrice(context.Background())

	assert.False(t, rec.Synthetic)
	assert.Equal(t, 2000.0, rec.Price)
	assert.Nil(t, rec.Change24h)
	assert.Nil(t, rec.ChangePercent24h)
}

func TestFetchPrice_Fallback(t *testing.T) {
	tests := []struct {
		name  string
		quote *model.PriceRecord
		err   error
	}{
		{"timeout", nil, context.DeadlineExceeded},
		{"network", nil, errors.New("dial tcp: connection refused")},
		{"missing price", nil, errors.New("price field is missing")},
		{"zero price", &model.PriceRecord{Price: 0}, nil},
		{"negative price", &model.PriceRecord{Price: -1}, nil},
		{"infinite price", &model.PriceRecord{Price: math.Inf(1)}, nil},
		{"nan price", &model.PriceRecord{Price: math.NaN()}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(MockPriceSource)
			src.On("FetchQuote", mock.Anything).Return(tt.quote, tt.err).Once()

			rec := newService(src).FetchPrice(context.Background())

			assert.True(t, rec.Synthetic)
			assert.Greater(t, rec.Price, 1950.0)
			assert.Less(t, rec.Price, 2050.0)
			assert.Equal(t, "USD", rec.Currency)
			assert.Equal(t, "oz", rec.Unit)
			assert.Equal(t, fixedNow, rec.Timestamp)
			require.NotNil(t, rec.Change24h)
			require.NotNil(t, rec.ChangePercent24h)
			src.AssertNumberOfCalls(t, "FetchQuote", 1)
		})
	}
}

func TestFetchPrice_FallbackRanges(t *testing.T) {
	src := new(MockPriceSource)
	src.On("FetchQuote", mock.Anything).Return(nil, errors.New("down"))

	s := newService(src)
	rnd := rand.New(rand.NewSource(42))
	s.Rand = rnd.Float64

	for i := 0; i < 500; i++ {
		rec := s.FetchPrice(context.Background())
		assert.True(t, rec.Price > 1950 && rec.Price < 2050, "price %v", rec.Price)
		assert.True(t, *rec.Change24h >= -25 && *rec.Change24h <= 25, "change %v", *rec.Change24h)
		assert.True(t, *rec.ChangePercent24h >= -1.25 && *rec.ChangePercent24h <= 1.25, "percent %v", *rec.ChangePercent24h)
	}
}

func TestFetchPrice_FallbackEdges(t *testing.T) {
	src := new(MockPriceSource)
	src.On("FetchQuote", mock.Anything).Return(nil, errors.New("down"))
	s := newService(src)

	s.Rand = func() float64 { return 0 }
	assert.Equal(t, 1950.01, s.FetchPrice(context.Background()).Price)

	s.Rand = func() float64 { return 0.9999999 }
	assert.Equal(t, 2049.99, s.FetchPrice(context.Background()).Price)

	s.Rand = func() float64 { return 0.75 }
	rec := s.FetchPrice(context.Background())
	assert.Equal(t, 2025.0, rec.Price)
	assert.Equal(t, 12.5, *rec.Change24h)
	assert.Equal(t, 0.63, *rec.ChangePercent24h)
}

func TestFetchPrice_AppliesTimeout(t *testing.T) {
	src := new(MockPriceSource)
	src.On("FetchQuote", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= time.Second
	})).Return(&model.PriceRecord{Price: 2000}, nil).Once()

	rec := newService(src).FetchPrice(context.Background())
	assert.False(t, rec.Synthetic)
	src.AssertExpectations(t)
}
