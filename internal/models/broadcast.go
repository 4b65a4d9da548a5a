// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "time"

// PeriodType is the scheduling bucket of a broadcast group. At most one
// group may exist per bucket at any time.
type PeriodType string

const (
	PeriodThreeDays   PeriodType = "3d"
	PeriodSevenDays   PeriodType = "7d"
	PeriodFifteenDays PeriodType = "15d"
	PeriodMonthly     PeriodType = "mensal"
)

// Periods lists all valid period types in display order.
var Periods = []PeriodType{
	PeriodThreeDays,
	PeriodSevenDays,
	PeriodFifteenDays,
	PeriodMonthly,
}

// Valid reports whether p is one of the known period types.
func (p PeriodType) Valid() bool {
	switch p {
	case PeriodThreeDays, PeriodSevenDays, PeriodFifteenDays, PeriodMonthly:
		return true
	}
	return false
}

// periodFilters maps the filter ids used by the console front end to
// period types.
var periodFilters = map[string]PeriodType{
	"broadcast3":      PeriodThreeDays,
	"broadcast7":      PeriodSevenDays,
	"broadcast15":     PeriodFifteenDays,
	"broadcastMensal": PeriodMonthly,
}

// PeriodFromFilter resolves a console filter id (e.g. "broadcast3") to its
// period type. Also accepts a raw period value so API clients can pass
// either form.
func PeriodFromFilter(filter string) (PeriodType, bool) {
	if p, ok := periodFilters[filter]; ok {
		return p, true
	}
	p := PeriodType(filter)
	return p, p.Valid()
}

// BroadcastGroup is a scheduled broadcast template. ID 0 denotes a group
// that has not been persisted yet.
type BroadcastGroup struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Template    string     `json:"template"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
	PeriodType  PeriodType `json:"period_type,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
