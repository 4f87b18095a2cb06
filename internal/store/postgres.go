package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/inglebright-earth/my-dash-a/internal/lucas"
)

// Pool is the pgxpool surface the Postgres store uses; pgxmock satisfies it
// for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// PostgresStore implements Store using a pgx connection pool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS ingest_runs (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS points (
	run_id    TEXT NOT NULL REFERENCES ingest_runs(id),
	seq       BIGSERIAL,
	lat       DOUBLE PRECISION NOT NULL,
	long      DOUBLE PRECISION NOT NULL,
	lc1       TEXT NOT NULL,
	lc2       TEXT NOT NULL,
	land_mngt DOUBLE PRECISION NOT NULL,
	class     TEXT NOT NULL,
	year      INTEGER NOT NULL,
	country   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS summaries (
	run_id        TEXT NOT NULL REFERENCES ingest_runs(id),
	country       TEXT NOT NULL,
	year          INTEGER NOT NULL,
	livestock     INTEGER NOT NULL,
	arable        INTEGER NOT NULL,
	forest        INTEGER NOT NULL,
	shrubland     INTEGER NOT NULL,
	grassland     INTEGER NOT NULL,
	livestock_pct DOUBLE PRECISION NOT NULL,
	arable_pct    DOUBLE PRECISION NOT NULL,
	forest_pct    DOUBLE PRECISION NOT NULL,
	shrubland_pct DOUBLE PRECISION NOT NULL,
	grassland_pct DOUBLE PRECISION NOT NULL,
	total         INTEGER NOT NULL,
	PRIMARY KEY (country, year)
);

CREATE INDEX IF NOT EXISTS idx_points_country_year ON points(country, year);
CREATE INDEX IF NOT EXISTS idx_points_run_id ON points(run_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) AppendRun(ctx context.Context, source string, points []lucas.ClassifiedPoint, summaries []lucas.CountrySummary) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", eris.Wrap(err, "postgres: begin append")
	}
	defer tx.Rollback(ctx)

	for _, sum := range summaries {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM summaries WHERE country = $1 AND year = $2)`,
			sum.Country, sum.Year,
		).Scan(&exists)
		if err != nil {
			return "", eris.Wrap(err, "postgres: check country-year")
		}
		if exists {
			return "", eris.Wrapf(ErrDuplicateCountryYear, "%s %d", sum.Country, sum.Year)
		}
	}

	runID := uuid.New().String()
	if _, err := tx.Exec(ctx,
		`INSERT INTO ingest_runs (id, source) VALUES ($1, $2)`,
		runID, source,
	); err != nil {
		return "", eris.Wrap(err, "postgres: insert run")
	}

	for _, p := range points {
		if _, err := tx.Exec(ctx,
			`INSERT INTO points (run_id, lat, long, lc1, lc2, land_mngt, class, year, country)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			runID, p.Lat, p.Long, p.LC1, p.LC2, p.LandMngt, string(p.Class), p.Year, p.Country,
		); err != nil {
			return "", eris.Wrap(err, "postgres: insert point")
		}
	}

	for _, sum := range summaries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO summaries (run_id, country, year,
				livestock, arable, forest, shrubland, grassland,
				livestock_pct, arable_pct, forest_pct, shrubland_pct, grassland_pct,
				total)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			runID, sum.Country, sum.Year,
			sum.Counts[lucas.ClassLivestock], sum.Counts[lucas.ClassArable],
			sum.Counts[lucas.ClassForest], sum.Counts[lucas.ClassShrubland],
			sum.Counts[lucas.ClassGrassland],
			sum.Percentages[lucas.ClassLivestock], sum.Percentages[lucas.ClassArable],
			sum.Percentages[lucas.ClassForest], sum.Percentages[lucas.ClassShrubland],
			sum.Percentages[lucas.ClassGrassland],
			sum.Total,
		); err != nil {
			return "", eris.Wrap(err, "postgres: insert summary")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", eris.Wrap(err, "postgres: commit append")
	}
	return runID, nil
}

func (s *PostgresStore) Points(ctx context.Context) ([]lucas.ClassifiedPoint, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT lat, long, lc1, lc2, land_mngt, class, year, country
		 FROM points ORDER BY seq`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query points")
	}
	defer rows.Close()
	return scanPoints(rows)
}

func (s *PostgresStore) Summaries(ctx context.Context) ([]lucas.CountrySummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT country, year,
			livestock, arable, forest, shrubland, grassland,
			livestock_pct, arable_pct, forest_pct, shrubland_pct, grassland_pct,
			total
		 FROM summaries ORDER BY country, year`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query summaries")
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func (s *PostgresStore) CountryYears(ctx context.Context) ([]CountryYear, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT country, year FROM summaries ORDER BY country, year`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query country-years")
	}
	defer rows.Close()

	var out []CountryYear
	for rows.Next() {
		var cy CountryYear
		if err := rows.Scan(&cy.Country, &cy.Year); err != nil {
			return nil, eris.Wrap(err, "postgres: scan country-year")
		}
		out = append(out, cy)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate country-years")
}
