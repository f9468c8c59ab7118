package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	tickmock "github.com/blankbits/reup/internal/domain/tick/v1/mock"
	storemock "github.com/blankbits/reup/internal/infrastructure/objectstore/mock"
	secondmock "github.com/blankbits/reup/internal/infrastructure/questdb/second/mock"
	"github.com/blankbits/reup/pkg/config"
	"github.com/blankbits/reup/pkg/logger"

	tickv1 "github.com/blankbits/reup/internal/domain/tick/v1"
)

func testConfig() *config.Config {
	return &config.Config{
		ObjectStore: config.ObjectStoreConfig{Prefix: "reup"},
		Market: config.MarketConfig{
			OpenTime:               "09:30:00",
			CloseTime:              "16:00:00",
			TimeZone:               "America/New_York",
			DiscardTradeConditions: []string{"37", "53"},
		},
		Features: config.FeaturesConfig{TimeWindows: []int{30}},
	}
}

func testTicks() ([]tickv1.QuoteTick, []tickv1.TradeTick) {
	quotes := []tickv1.QuoteTick{
		{
			Sequence:     1,
			SIPTimestamp: 1577977229_900000000,
			BidPrice:     323.77,
			BidSize:      5,
			AskPrice:     323.78,
			AskSize:      3,
		},
	}
	trades := []tickv1.TradeTick{
		{Sequence: 2, SIPTimestamp: 1577977229_950000000, Price: 323.78, Size: 2482},
		// Dropped by the condition filter before resampling.
		{Sequence: 3, SIPTimestamp: 1577977229_960000000, Price: 1.0, Size: 1, Conditions: "37"},
	}
	return quotes, trades
}

func TestRunner_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log, err := logger.NewLogger()
	require.NoError(t, err)

	loader := tickmock.NewMockLoader(ctrl)
	store := storemock.NewMockObjectStore(ctrl)
	seconds := secondmock.NewMockSecondRepository(ctrl)

	quotes, trades := testTicks()
	loader.EXPECT().Quotes(gomock.Any(), "2020-01-02", "SPY").Return(quotes, nil)
	loader.EXPECT().Trades(gomock.Any(), "2020-01-02", "SPY").Return(trades, nil)

	var seriesData []byte
	store.EXPECT().Put(gomock.Any(), "reup/2020-01-02/SPY/time-series.csv.gz", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte) error {
			seriesData = data
			return nil
		})
	seconds.EXPECT().StoreBatch(gomock.Any(), gomock.Any()).Return(nil)

	store.EXPECT().Get(gomock.Any(), "reup/2020-01-02/SPY/time-series.csv.gz").
		DoAndReturn(func(_ context.Context, _ string) ([]byte, error) {
			return seriesData, nil
		})
	store.EXPECT().Put(gomock.Any(), "reup/2020-01-02/SPY/features-second.csv.gz", gomock.Any()).Return(nil)
	store.EXPECT().Put(gomock.Any(), "reup/2020-01-02/SPY/features-day.csv.gz", gomock.Any()).Return(nil)
	store.EXPECT().Put(gomock.Any(), "reup/2020-01-02/SPY/features-boundary.csv.gz", gomock.Any()).Return(nil)

	runner := NewRunner(loader, store, seconds, testConfig(), log)
	err = runner.Run(context.Background(), Job{Date: "2020-01-02", Symbol: "SPY"})
	assert.NoError(t, err)
}

func TestRunner_TimeSeries_LoaderFailureWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log, err := logger.NewLogger()
	require.NoError(t, err)

	loader := tickmock.NewMockLoader(ctrl)
	store := storemock.NewMockObjectStore(ctrl)

	loader.EXPECT().Quotes(gomock.Any(), "2020-01-02", "SPY").Return(nil, errors.New("error"))

	runner := NewRunner(loader, store, nil, testConfig(), log)
	err = runner.TimeSeries(context.Background(), Job{Date: "2020-01-02", Symbol: "SPY"})
	assert.Error(t, err)
}

func TestRunner_Features_ComputesBeforeFirstWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log, err := logger.NewLogger()
	require.NoError(t, err)

	loader := tickmock.NewMockLoader(ctrl)
	store := storemock.NewMockObjectStore(ctrl)

	// A series artifact that cannot be parsed must fail before any feature
	// artifact is written.
	store.EXPECT().Get(gomock.Any(), "reup/2020-01-02/SPY/time-series.csv.gz").
		Return([]byte("not,a,series\n"), nil)

	runner := NewRunner(loader, store, nil, testConfig(), log)
	err = runner.Features(context.Background(), Job{Date: "2020-01-02", Symbol: "SPY"})
	assert.Error(t, err)
}
