package model

import "time"

// Resource is an employee or machine that can be allocated to worksites.
type Resource struct {
	ID               string  `gorm:"primaryKey;size:64"`
	Name             string  `gorm:"size:256;not null"`
	Type             string  `gorm:"size:16;not null"` // employee | machine
	Role             string  `gorm:"size:128"`
	CostPerDay       float64 `gorm:"not null"`
	IgnoreCost       bool
	IsAdministrative bool
	// DismissedAt is a date key; from that date on the resource is out of
	// planning. Empty means active.
	DismissedAt string `gorm:"size:10"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Worksite is a construction site.
type Worksite struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:256;not null"`
	Color     string `gorm:"size:32"`
	Visible   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
