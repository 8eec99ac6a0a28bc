package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 12.5, 0.1, 1999.99, 1234567.891} {
		num, err := floatToPgNumeric(f)
		require.NoError(t, err)
		assert.Equal(t, f, pgNumericToFloat(num), "%v", f)
	}
}

func TestPgNumericToFloat_Null(t *testing.T) {
	assert.Equal(t, 0.0, pgNumericToFloat(pgtype.Numeric{}))
}

func TestTimeToPgDate_KeepsLocalCalendarDay(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	late := time.Date(2024, time.March, 1, 23, 30, 0, 0, jakarta)

	d := timeToPgDate(late)

	assert.True(t, d.Valid)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), d.Time)
	assert.Equal(t, d.Time, pgDateToTime(d))
	assert.True(t, pgDateToTime(pgtype.Date{}).IsZero())
}

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})

	assert.True(t, isPgUniqueViolation(unique))
	assert.False(t, isPgUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isPgUniqueViolation(errors.New("boom")))
	assert.False(t, isPgUniqueViolation(nil))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("6f1c2a52-3c55-4d0b-9d43-2f6c3c7a1e10"))
	assert.False(t, isUUID("42"))
	assert.False(t, isUUID(""))
}

func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	up, name, err := src.ReadUp(next)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "create_monthly_budgets", name)
}
