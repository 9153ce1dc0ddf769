package model

import "time"

// Match pairs two profile ids. Referenced profiles should exist, but a
// dangling id must never break a listing; display fields stay empty.
type Match struct {
	ID        string
	User1ID   string
	User2ID   string
	CreatedAt time.Time

	User1 ProfileDisplay
	User2 ProfileDisplay
}
