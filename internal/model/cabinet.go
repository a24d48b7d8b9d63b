package model

import "time"

// Cabinet is the dental practice profile shown on the dashboard.
type Cabinet struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	Phone     string    `db:"phone" json:"phone"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type UpdateCabinetRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// CabinetInfo decorates the profile with the practice-wide occupancy
// figure (share of the roster capacity currently booked).
type CabinetInfo struct {
	Cabinet
	OccupancyRate int `json:"occupancy_rate"`
}
