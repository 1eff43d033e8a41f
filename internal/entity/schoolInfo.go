package entity

import (
	"github.com/uptrace/bun"
)

// SchoolInfo holds the single row of school wide settings: the default
// schedule window and the labels printed on reports and badges.
type SchoolInfo struct {
	bun.BaseModel `bun:"table:school_info"`

	BasicEntity
	SchoolName   string  `json:"school_name" bun:"school_name"`
	Address      *string `json:"address" bun:"address"`
	LogoUrl      *string `json:"logo_url" bun:"logo_url"`
	DefaultStart string  `json:"default_start" bun:"default_start"`
	DefaultEnd   string  `json:"default_end" bun:"default_end"`
}
