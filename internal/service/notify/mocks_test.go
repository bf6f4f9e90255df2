package notify

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gold-bot/internal/interfaces"
	"gold-bot/internal/model"
)

type MockPriceFetcher struct {
	mock.Mock
}

func (m *MockPriceFetcher) FetchPrice(ctx context.Context) model.PriceRecord {
	args := m.Called(ctx)
	return args.Get(0).(model.PriceRecord)
}

type MockChannelResolver struct {
	mock.Mock
}

func (m *MockChannelResolver) Channel(ctx context.Context, id string) (interfaces.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(interfaces.Channel), args.Error(1)
}

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) ID() string {
	return "100"
}

func (m *MockChannel) Send(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

type MockReplier struct {
	mock.Mock
}

func (m *MockReplier) Reply(ctx context.Context, channelID, messageID, text string) error {
	args := m.Called(ctx, channelID, messageID, text)
	return args.Error(0)
}
