// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Moment types
const (
	MomentScuba      = "scuba"
	MomentMotorcycle = "motorcycle"
	MomentTravel     = "travel"
	MomentReflection = "reflection"
)

// LifeMoment is a gallery entry: a dive, a ride, a trip or a written
// reflection.
type LifeMoment struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location,omitempty"`
	Image       string    `json:"image,omitempty"`
	Video       string    `json:"video,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsValidMomentType checks a moment type against the known set.
func IsValidMomentType(t string) bool {
	switch t {
	case MomentScuba, MomentMotorcycle, MomentTravel, MomentReflection:
		return true
	default:
		return false
	}
}
