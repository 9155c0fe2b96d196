package aggregate

import (
	"sort"
	"time"

	"github.com/cleared-dev/fundreport/internal/model"
)

// Summary holds the net-worth metrics of the quotaholders sheet.
type Summary struct {
	Convention model.Convention `json:"convention"`
	// Ordered counts the records that took part in ordering.
	Ordered               int          `json:"ordered_records"`
	InitialDate           *time.Time   `json:"initial_date,omitempty"`
	FinalDate             *time.Time   `json:"final_date,omitempty"`
	InitialNetWorth       model.Metric `json:"initial_net_worth"`
	FinalNetWorth         model.Metric `json:"final_net_worth"`
	NetWorthDelta         model.Metric `json:"net_worth_delta"`
	NetSubscriptions      model.Metric `json:"net_subscriptions"`
	FinalQuotaholderCount model.Metric `json:"final_quotaholder_count"`
}

// Summarize computes net-worth metrics.
//
// With ConventionDate, records without a date are dropped and the rest are
// sorted by ascending date, keeping file order among equal dates. With
// ConventionFileOrder, the first record is the latest observation and the
// last record the earliest. Point metrics take the first and last available
// value in chronological order.
//
// Net subscriptions sum over every record, dated or not, and are available
// when any record carries a subscriptions or redemptions value.
func Summarize(records []model.QuotaholderRecord, convention model.Convention) Summary {
	s := Summary{Convention: convention}

	var (
		subs, reds int64
		anyFlow    bool
	)
	for _, r := range records {
		if r.Subscriptions.Valid {
			subs += r.Subscriptions.Value
			anyFlow = true
		}
		if r.Redemptions.Valid {
			reds += r.Redemptions.Value
			anyFlow = true
		}
	}
	if anyFlow {
		s.NetSubscriptions = model.Some(subs - reds)
	}

	ordered := Chronological(records, convention)
	s.Ordered = len(ordered)
	if len(ordered) == 0 {
		return s
	}
	if convention == model.ConventionDate {
		first, last := ordered[0].Date, ordered[len(ordered)-1].Date
		s.InitialDate, s.FinalDate = &first, &last
	}

	for _, r := range ordered {
		if r.NetWorth.Valid {
			s.InitialNetWorth = r.NetWorth
			break
		}
	}
	for i := len(ordered) - 1; i >= 0; i-- {
		if ordered[i].NetWorth.Valid {
			s.FinalNetWorth = ordered[i].NetWorth
			break
		}
	}
	for i := len(ordered) - 1; i >= 0; i-- {
		if ordered[i].QuotaholderCount.Valid {
			s.FinalQuotaholderCount = ordered[i].QuotaholderCount
			break
		}
	}
	if s.InitialNetWorth.Valid && s.FinalNetWorth.Valid {
		s.NetWorthDelta = model.Some(s.FinalNetWorth.Value - s.InitialNetWorth.Value)
	}
	return s
}

// Chronological returns records in ascending time order under convention.
// The input slice is not modified.
func Chronological(records []model.QuotaholderRecord, convention model.Convention) []model.QuotaholderRecord {
	var out []model.QuotaholderRecord
	switch convention {
	case model.ConventionDate:
		for _, r := range records {
			if r.HasDate {
				out = append(out, r)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Date.Before(out[j].Date)
		})
	default:
		out = make([]model.QuotaholderRecord, len(records))
		for i, r := range records {
			out[len(records)-1-i] = r
		}
	}
	return out
}
