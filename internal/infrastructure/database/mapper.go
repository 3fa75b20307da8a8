package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// tsToTime returns t.Time when Valid, else zero time.
func tsToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

// timeToTs maps a zero time to NULL.
func timeToTs(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}
