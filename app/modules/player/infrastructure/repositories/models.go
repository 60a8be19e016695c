package playerdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Division is a tier label with its display colour.
type Division struct {
	bun.BaseModel `bun:"table:divisions,alias:d"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull,unique" json:"name"`
	Color     string    `bun:"color,notnull" json:"color"`
	SortOrder int       `bun:"sort_order,notnull,default:0" json:"sortOrder"`
}

// Player is a registered person. FullName is the reconciliation key of the MVP flow.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Username      string     `bun:"username,notnull" json:"username"`
	FullName      string     `bun:"full_name,notnull" json:"fullName"`
	Initials      string     `bun:"initials,notnull" json:"initials"`
	AlternateName *string    `bun:"alternate_name" json:"alternateName,omitempty"`
	DivisionID    *uuid.UUID `bun:"division_id,type:uuid" json:"divisionId,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	Division *Division `bun:"rel:belongs-to,join:division_id=id" json:"division,omitempty"`
}

// ProfileUpdate holds the fields the MVP flow overwrites on an existing player. Nil pointers
// are written as NULL.
type ProfileUpdate struct {
	AlternateName *string
	DivisionID    *uuid.UUID
}
