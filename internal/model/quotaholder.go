package model

import (
	"encoding/json"
	"time"
)

// Metric is an integer figure that may be unavailable.
type Metric struct {
	Value int64
	Valid bool
}

// Some returns an available Metric.
func Some(v int64) Metric { return Metric{Value: v, Valid: true} }

// None returns an unavailable Metric.
func None() Metric { return Metric{} }

// MarshalJSON encodes unavailable metrics as null.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// QuotaholderRecord is one row of the quotaholders and net asset value sheet.
type QuotaholderRecord struct {
	Row              int
	Date             time.Time
	HasDate          bool
	NetWorth         Metric
	Subscriptions    Metric
	Redemptions      Metric
	QuotaholderCount Metric
}

// Convention names how initial and final observations were chosen.
type Convention string

const (
	// ConventionDate orders records by ascending date.
	ConventionDate Convention = "date"
	// ConventionFileOrder treats the first row as the latest observation
	// and the last row as the earliest.
	ConventionFileOrder Convention = "file_order"
)
