package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "reup", cfg.App.Name)
	assert.Equal(t, "./data", cfg.ObjectStore.RootDir)
	assert.Equal(t, "reup", cfg.ObjectStore.Prefix)
	assert.Equal(t, "reup-jobs", cfg.JobKafka.Topic)
	assert.Equal(t, "reup-worker", cfg.JobKafka.ConsumerGroup)
	assert.Equal(t, "09:30:00", cfg.Market.OpenTime)
	assert.Equal(t, "16:00:00", cfg.Market.CloseTime)
	assert.Equal(t, "America/New_York", cfg.Market.TimeZone)
	assert.Equal(t, []string{"37", "53"}, cfg.Market.DiscardTradeConditions)
	assert.Equal(t, []int{30, 60, 120, 300, 600}, cfg.Features.TimeWindows)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("MARKET_DISCARD_TRADE_CONDITIONS", "37,53,12")
	t.Setenv("FEATURES_TIME_WINDOWS", "15,45")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"37", "53", "12"}, cfg.Market.DiscardTradeConditions)
	assert.Equal(t, []int{15, 45}, cfg.Features.TimeWindows)
}

func TestDiscardConditionSet(t *testing.T) {
	m := MarketConfig{DiscardTradeConditions: []string{"37", "53"}}
	set := m.DiscardConditionSet()
	assert.Len(t, set, 2)
	_, ok := set["37"]
	assert.True(t, ok)
	_, ok = set["53"]
	assert.True(t, ok)
	_, ok = set["14"]
	assert.False(t, ok)
}

func TestSessionTimestamps(t *testing.T) {
	m := MarketConfig{
		OpenTime:  "09:30:00",
		CloseTime: "16:00:00",
		TimeZone:  "America/New_York",
	}

	// 2020-01-02 is a Thursday; EST is UTC-5.
	open, close, weekday, err := m.SessionTimestamps("2020-01-02")
	require.NoError(t, err)
	assert.Equal(t, float64(1577975400), open)
	assert.Equal(t, float64(1577998800), close)
	assert.Equal(t, 3, weekday)
}

func TestSessionTimestamps_Errors(t *testing.T) {
	testCases := []struct {
		name string
		m    MarketConfig
		date string
	}{
		{
			name: "bad time zone",
			m:    MarketConfig{OpenTime: "09:30:00", CloseTime: "16:00:00", TimeZone: "Mars/Olympus"},
			date: "2020-01-02",
		},
		{
			name: "bad date",
			m:    MarketConfig{OpenTime: "09:30:00", CloseTime: "16:00:00", TimeZone: "America/New_York"},
			date: "01/02/2020",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := tc.m.SessionTimestamps(tc.date)
			assert.Error(t, err)
		})
	}
}
