package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/inglebright-earth/my-dash-a/internal/lucas"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS ingest_runs (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS points (
	run_id    TEXT NOT NULL REFERENCES ingest_runs(id),
	lat       REAL NOT NULL,
	long      REAL NOT NULL,
	lc1       TEXT NOT NULL,
	lc2       TEXT NOT NULL,
	land_mngt REAL NOT NULL,
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
	livestock_pct REAL NOT NULL,
	arable_pct    REAL NOT NULL,
	forest_pct    REAL NOT NULL,
	shrubland_pct REAL NOT NULL,
	grassland_pct REAL NOT NULL,
	total         INTEGER NOT NULL,
	PRIMARY KEY (country, year)
);

CREATE INDEX IF NOT EXISTS idx_points_country_year ON points(country, year);
CREATE INDEX IF NOT EXISTS idx_points_run_id ON points(run_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) AppendRun(ctx context.Context, source string, points []lucas.ClassifiedPoint, summaries []lucas.CountrySummary) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: begin append")
	}
	defer tx.Rollback()

	// Duplicate check comes first so a rejected wave writes nothing.
	for _, sum := range summaries {
		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM summaries WHERE country = ? AND year = ?)`,
			sum.Country, sum.Year,
		).Scan(&exists)
		if err != nil {
			return "", eris.Wrap(err, "sqlite: check country-year")
		}
		if exists {
			return "", eris.Wrapf(ErrDuplicateCountryYear, "%s %d", sum.Country, sum.Year)
		}
	}

	runID := uuid.New().String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ingest_runs (id, source) VALUES (?, ?)`,
		runID, source,
	); err != nil {
		return "", eris.Wrap(err, "sqlite: insert run")
	}

	for _, p := range points {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO points (run_id, lat, long, lc1, lc2, land_mngt, class, year, country)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, p.Lat, p.Long, p.LC1, p.LC2, p.LandMngt, string(p.Class), p.Year, p.Country,
		); err != nil {
			return "", eris.Wrap(err, "sqlite: insert point")
		}
	}

	for _, sum := range summaries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO summaries (run_id, country, year,
				livestock, arable, forest, shrubland, grassland,
				livestock_pct, arable_pct, forest_pct, shrubland_pct, grassland_pct,
				total)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, sum.Country, sum.Year,
			sum.Counts[lucas.ClassLivestock], sum.Counts[lucas.ClassArable],
			sum.Counts[lucas.ClassForest], sum.Counts[lucas.ClassShrubland],
			sum.Counts[lucas.ClassGrassland],
			sum.Percentages[lucas.ClassLivestock], sum.Percentages[lucas.ClassArable],
			sum.Percentages[lucas.ClassForest], sum.Percentages[lucas.ClassShrubland],
			sum.Percentages[lucas.ClassGrassland],
			sum.Total,
		); err != nil {
			return "", eris.Wrap(err, "sqlite: insert summary")
		}
	}

	if err := tx.Commit(); err != nil {
		return "", eris.Wrap(err, "sqlite: commit append")
	}
	return runID, nil
}

func (s *SQLiteStore) Points(ctx context.Context) ([]lucas.ClassifiedPoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT lat, long, lc1, lc2, land_mngt, class, year, country
		 FROM points ORDER BY rowid`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query points")
	}
	defer rows.Close()
	return scanPoints(rows)
}

func (s *SQLiteStore) Summaries(ctx context.Context) ([]lucas.CountrySummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT country, year,
			livestock, arable, forest, shrubland, grassland,
			livestock_pct, arable_pct, forest_pct, shrubland_pct, grassland_pct,
			total
		 FROM summaries ORDER BY country, year`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query summaries")
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func (s *SQLiteStore) CountryYears(ctx context.Context) ([]CountryYear, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT country, year FROM summaries ORDER BY country, year`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query country-years")
	}
	defer rows.Close()

	var out []CountryYear
	for rows.Next() {
		var cy CountryYear
		if err := rows.Scan(&cy.Country, &cy.Year); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan country-year")
		}
		out = append(out, cy)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate country-years")
}
