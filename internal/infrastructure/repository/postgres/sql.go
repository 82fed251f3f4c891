package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/sports-dw/internal/platform/calendar"
)

const pqUndefinedTable = "42P01"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUndefinedTable(err error) bool {
	return pqCode(err) == pqUndefinedTable
}

func dateArg(day *calendar.Date) *time.Time {
	if day == nil {
		return nil
	}
	t := day.Time()
	return &t
}
