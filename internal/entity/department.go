package entity

import (
	"github.com/uptrace/bun"
)

type Department struct {
	bun.BaseModel `bun:"table:department"`

	BasicEntity
	Name *string `json:"name" bun:"name"`
}

type Position struct {
	bun.BaseModel `bun:"table:position"`

	BasicEntity
	Name         *string `json:"name" bun:"name"`
	DepartmentID *int    `json:"department_id" bun:"department_id"`
}
