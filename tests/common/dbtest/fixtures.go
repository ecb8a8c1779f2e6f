//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Well-known reference rows seeded into every test database.
var (
	DefaultLocationID = uuid.MustParse("7b0e7a46-0c4e-4d3a-9a37-111111111111")
	BasicWashID       = uuid.MustParse("7b0e7a46-0c4e-4d3a-9a37-222222222222")
	FullValetID       = uuid.MustParse("7b0e7a46-0c4e-4d3a-9a37-333333333333")
)

func CreateTestLocation(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	locationID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO locations (id, name, address, timezone, open_min, close_min, slot_interval_min, default_bays)
		VALUES ($1, $2, '12 Test Road', 'Africa/Johannesburg', 480, 1020, 30, 2)`,
		locationID, name)
	require.NoError(t, err)

	return locationID
}

func CreateTestService(t *testing.T, db DBLike, locationID uuid.UUID, name string, priceCents int64, durationMin int) uuid.UUID {
	t.Helper()

	serviceID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO services (id, location_id, name, price_cents, duration_min, active)
		VALUES ($1, $2, $3, $4, $5, true)`,
		serviceID, locationID, name, priceCents, durationMin)
	require.NoError(t, err)

	return serviceID
}

// CreateTestBooking inserts a committed booking directly, bypassing the
// checkout flow, for tests that only need occupancy on the schedule.
func CreateTestBooking(t *testing.T, db DBLike, userID, locationID, serviceID uuid.UUID, date string, startMin, durationMin, bay int) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO bookings (id, user_id, location_id, service_id, date, start_min, duration_min, bay, status, payment_reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'committed', $9)`,
		bookingID, userID, locationID, serviceID, date, startMin, durationMin, bay, "fixture_"+bookingID.String()[:8])
	require.NoError(t, err)

	return bookingID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO locations (id, name, address, timezone, open_min, close_min, slot_interval_min, default_bays)
		VALUES ($1, 'Spark Sandton', '45 Rivonia Road, Sandton', 'Africa/Johannesburg', 480, 1020, 30, 2)
		ON CONFLICT (id) DO NOTHING`,
		DefaultLocationID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO services (id, location_id, name, price_cents, duration_min, active) VALUES
		    ($1, $3, 'Basic Wash', 15000, 30, true),
		    ($2, $3, 'Full Valet', 45000, 90, true)
		ON CONFLICT (id) DO NOTHING`,
		BasicWashID, FullValetID, DefaultLocationID)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
