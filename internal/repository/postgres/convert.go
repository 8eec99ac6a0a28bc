package postgres

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Amounts travel as float64 through the engine; the database keeps NUMERIC.
// Conversion goes through decimal so no binary float digits leak into storage.
func floatToPgNumeric(f float64) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(decimal.NewFromFloat(f).String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToFloat(n pgtype.Numeric) float64 {
	if !n.Valid || n.Int == nil {
		return 0
	}
	return decimal.NewFromBigInt(n.Int, n.Exp).InexactFloat64()
}

// timeToPgDate keeps only the calendar day t falls on in its own location
func timeToPgDate(t time.Time) pgtype.Date {
	y, m, d := t.Date()
	return pgtype.Date{
		Time:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Valid: true,
	}
}

func pgDateToTime(d pgtype.Date) time.Time {
	if !d.Valid {
		return time.Time{}
	}
	return d.Time
}

// isPgUniqueViolation reports a unique constraint violation (SQLSTATE 23505)
func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isUUID guards id lookups; a malformed id cannot match any row
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
