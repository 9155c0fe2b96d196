package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/fundreport/internal/model"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarize_FileOrder(t *testing.T) {
	records := []model.QuotaholderRecord{
		{Row: 2, NetWorth: model.Some(8450785258), QuotaholderCount: model.Some(120)},
		{Row: 3, NetWorth: model.Some(8200000000), QuotaholderCount: model.Some(110)},
		{Row: 4, NetWorth: model.Some(8000000000), QuotaholderCount: model.Some(100)},
	}

	s := Summarize(records, model.ConventionFileOrder)
	assert.Equal(t, model.ConventionFileOrder, s.Convention)
	assert.Equal(t, model.Some(8000000000), s.InitialNetWorth)
	assert.Equal(t, model.Some(8450785258), s.FinalNetWorth)
	assert.Equal(t, model.Some(450785258), s.NetWorthDelta)
	assert.Equal(t, model.Some(120), s.FinalQuotaholderCount)
	assert.False(t, s.NetSubscriptions.Valid)
	assert.Nil(t, s.FinalDate)
}

func TestSummarize_DateOrder(t *testing.T) {
	records := []model.QuotaholderRecord{
		{Row: 2, Date: day(5), HasDate: true, NetWorth: model.Some(150), QuotaholderCount: model.Some(12)},
		{Row: 3, NetWorth: model.Some(999)},
		{Row: 4, Date: day(1), HasDate: true, NetWorth: model.Some(100), QuotaholderCount: model.Some(10)},
		{Row: 5, Date: day(3), HasDate: true, NetWorth: model.None(), QuotaholderCount: model.Some(11)},
	}

	s := Summarize(records, model.ConventionDate)
	assert.Equal(t, 3, s.Ordered)
	assert.Equal(t, model.Some(100), s.InitialNetWorth)
	assert.Equal(t, model.Some(150), s.FinalNetWorth)
	assert.Equal(t, model.Some(50), s.NetWorthDelta)
	assert.Equal(t, model.Some(12), s.FinalQuotaholderCount)
	require.NotNil(t, s.InitialDate)
	assert.Equal(t, day(1), *s.InitialDate)
	assert.Equal(t, day(5), *s.FinalDate)
}

func TestSummarize_SkipsMissingPointValues(t *testing.T) {
	records := []model.QuotaholderRecord{
		{NetWorth: model.None(), QuotaholderCount: model.None()},
		{NetWorth: model.Some(300), QuotaholderCount: model.Some(7)},
		{NetWorth: model.Some(200)},
		{NetWorth: model.None()},
	}
	s := Summarize(records, model.ConventionFileOrder)
	assert.Equal(t, model.Some(200), s.InitialNetWorth)
	assert.Equal(t, model.Some(300), s.FinalNetWorth)
	assert.Equal(t, model.Some(7), s.FinalQuotaholderCount)
}

func TestSummarize_NetSubscriptions(t *testing.T) {
	records := []model.QuotaholderRecord{
		{Subscriptions: model.Some(100), Redemptions: model.Some(30)},
		{Subscriptions: model.Some(50)},
		{Date: day(2), HasDate: true, Redemptions: model.Some(5)},
	}
	s := Summarize(records, model.ConventionDate)
	assert.Equal(t, model.Some(115), s.NetSubscriptions, "undated rows still count toward sums")
}

func TestSummarize_Empty(t *testing.T) {
	for _, conv := range []model.Convention{model.ConventionDate, model.ConventionFileOrder} {
		s := Summarize(nil, conv)
		assert.Zero(t, s.Ordered)
		assert.False(t, s.InitialNetWorth.Valid)
		assert.False(t, s.FinalNetWorth.Valid)
		assert.False(t, s.NetWorthDelta.Valid)
		assert.False(t, s.FinalQuotaholderCount.Valid)
		assert.False(t, s.NetSubscriptions.Valid)
	}
}

func TestChronological_StableAndPure(t *testing.T) {
	records := []model.QuotaholderRecord{
		{Row: 2, Date: day(2), HasDate: true},
		{Row: 3, Date: day(1), HasDate: true},
		{Row: 4, Date: day(2), HasDate: true},
	}
	got := Chronological(records, model.ConventionDate)
	var rows []int
	for _, r := range got {
		rows = append(rows, r.Row)
	}
	assert.Equal(t, []int{3, 2, 4}, rows)
	assert.Equal(t, 2, records[0].Row)

	got = Chronological(records, model.ConventionFileOrder)
	assert.Equal(t, 4, got[0].Row)
	assert.Equal(t, 2, got[2].Row)
}
