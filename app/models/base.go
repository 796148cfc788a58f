// Package models defines the records persisted by both store backends.
// Field tags serve three audiences: bson for MongoDB, gorm for the SQL
// drivers and json for the admin API.
package models

import "time"

// Base carries the identity and timestamps every record shares. The ID is
// a 24-character hex string assigned by the repository on insert.
type Base struct {
	ID        string    `bson:"_id"       gorm:"primaryKey;size:24" json:"_id"`
	CreatedAt time.Time `bson:"createdAt" gorm:"index"              json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"                           json:"updatedAt"`
}

// Meta exposes the embedded Base to generic store code.
func (b *Base) Meta() *Base { return b }
