package second

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock "github.com/blankbits/reup/pkg/questdb/mock"

	timeseriesv1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
)

func TestSecondRepository_StoreBatch(t *testing.T) {
	testCases := []struct {
		name     string
		seconds  []*Second
		mockFn   func(mock *mock.MockQuestDBClient)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			seconds: []*Second{
				{
					Symbol: "SPY",
					Date:   "2020-01-02",
					Row: timeseriesv1.SecondRow{
						Timestamp: 1577977230.0,
						BidPrice:  timeseriesv1.Float(323.77),
						AskPrice:  timeseriesv1.Float(323.78),
						VolumePrices: []timeseriesv1.PriceVolume{
							{Price: 323.78, Volume: 2482},
						},
						VolumeTotal: 2482,
					},
				},
			},
			mockFn: func(mock *mock.MockQuestDBClient) {
				mock.EXPECT().CopyFrom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:    "empty batch skips the round trip",
			seconds: nil,
			mockFn:  func(mock *mock.MockQuestDBClient) {},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error",
			seconds: []*Second{
				{Symbol: "SPY", Date: "2020-01-02"},
			},
			mockFn: func(mock *mock.MockQuestDBClient) {
				mock.EXPECT().CopyFrom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("error"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockQuestDBClient(ctrl)
			tc.mockFn(client)

			repo := NewRepository(client)
			err := repo.StoreBatch(context.Background(), tc.seconds)
			tc.assertFn(t, err)
		})
	}
}

func TestSecondRepository_GetBySymbolDate(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(client *mock.MockQuestDBClient, rows *mock.MockRowsInterface)
		assertFn func(t *testing.T, seconds []*Second, err error)
	}{
		{
			name: "success with null fields",
			mockFn: func(client *mock.MockQuestDBClient, rows *mock.MockRowsInterface) {
				client.EXPECT().Query(gomock.Any(), gomock.Any(), "SPY", "2020-01-02").Return(rows, nil)
				rows.EXPECT().Next().Return(true)
				rows.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
					gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
					gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(dest ...any) error {
						*dest[0].(*string) = "SPY"
						*dest[1].(*string) = "2020-01-02"
						*dest[2].(*float64) = 1577977230.0
						bid := 323.77
						*dest[3].(**float64) = &bid
						*dest[9].(*string) = `{"323.78":2482}`
						*dest[10].(*int64) = 2482
						return nil
					})
				rows.EXPECT().Next().Return(false)
				rows.EXPECT().Err().Return(nil)
				rows.EXPECT().Close()
			},
			assertFn: func(t *testing.T, seconds []*Second, err error) {
				assert.NoError(t, err)
				assert.Len(t, seconds, 1)
				row := seconds[0].Row
				assert.Equal(t, 1577977230.0, row.Timestamp)
				assert.Equal(t, timeseriesv1.Float(323.77), row.BidPrice)
				assert.False(t, row.AskPrice.Valid)
				assert.Equal(t, []timeseriesv1.PriceVolume{{Price: 323.78, Volume: 2482}}, row.VolumePrices)
				assert.Equal(t, int64(2482), row.VolumeTotal)
			},
		},
		{
			name: "query error",
			mockFn: func(client *mock.MockQuestDBClient, rows *mock.MockRowsInterface) {
				client.EXPECT().Query(gomock.Any(), gomock.Any(), "SPY", "2020-01-02").Return(nil, errors.New("error"))
			},
			assertFn: func(t *testing.T, seconds []*Second, err error) {
				assert.Error(t, err)
				assert.Nil(t, seconds)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockQuestDBClient(ctrl)
			rows := mock.NewMockRowsInterface(ctrl)
			tc.mockFn(client, rows)

			repo := NewRepository(client)
			seconds, err := repo.GetBySymbolDate(context.Background(), "SPY", "2020-01-02")
			tc.assertFn(t, seconds, err)
		})
	}
}
