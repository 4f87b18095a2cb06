package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inglebright-earth/my-dash-a/internal/lucas"
)

func TestPostgresStore_Migrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ingest_runs").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	st := &PostgresStore{pool: mock}
	require.NoError(t, st.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendRun(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	points, summaries := testRun("Spain", 2012)
	sum := summaries[0]

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("Spain", 2012).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO ingest_runs`).
		WithArgs(pgxmock.AnyArg(), "ES_2012.csv").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for _, p := range points {
		mock.ExpectExec(`INSERT INTO points`).
			WithArgs(pgxmock.AnyArg(), p.Lat, p.Long, p.LC1, p.LC2, p.LandMngt, string(p.Class), p.Year, p.Country).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectExec(`INSERT INTO summaries`).
		WithArgs(pgxmock.AnyArg(), "Spain", 2012,
			sum.Counts[lucas.ClassLivestock], sum.Counts[lucas.ClassArable],
			sum.Counts[lucas.ClassForest], sum.Counts[lucas.ClassShrubland],
			sum.Counts[lucas.ClassGrassland],
			sum.Percentages[lucas.ClassLivestock], sum.Percentages[lucas.ClassArable],
			sum.Percentages[lucas.ClassForest], sum.Percentages[lucas.ClassShrubland],
			sum.Percentages[lucas.ClassGrassland],
			sum.Total,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	st := &PostgresStore{pool: mock}
	runID, err := st.AppendRun(context.Background(), "ES_2012.csv", points, summaries)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendRun_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	points, summaries := testRun("Spain", 2012)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("Spain", 2012).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	st := &PostgresStore{pool: mock}
	_, err = st.AppendRun(context.Background(), "ES_2012.csv", points, summaries)
	require.ErrorIs(t, err, ErrDuplicateCountryYear)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendRun_InsertError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	points, summaries := testRun("Spain", 2012)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("Spain", 2012).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO ingest_runs`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(fmt.Errorf("connection refused"))
	mock.ExpectRollback()

	st := &PostgresStore{pool: mock}
	_, err = st.AppendRun(context.Background(), "ES_2012.csv", points, summaries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert run")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Summaries(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cols := []string{
		"country", "year",
		"livestock", "arable", "forest", "shrubland", "grassland",
		"livestock_pct", "arable_pct", "forest_pct", "shrubland_pct", "grassland_pct",
		"total",
	}
	mock.ExpectQuery(`SELECT country, year`).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("Spain", 2012, 1, 0, 1, 0, 0, 50.0, 0.0, 50.0, 0.0, 0.0, 2))

	st := &PostgresStore{pool: mock}
	summaries, err := st.Summaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Spain", summaries[0].Country)
	assert.Equal(t, 1, summaries[0].Counts[lucas.ClassLivestock])
	assert.InDelta(t, 50.0, summaries[0].Percentages[lucas.ClassForest], 1e-9)
	assert.Equal(t, 2, summaries[0].Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CountryYears(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT country, year FROM summaries`).
		WillReturnRows(pgxmock.NewRows([]string{"country", "year"}).
			AddRow("France", 2012).
			AddRow("Spain", 2012))

	st := &PostgresStore{pool: mock}
	cys, err := st.CountryYears(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []CountryYear{
		{Country: "France", Year: 2012},
		{Country: "Spain", Year: 2012},
	}, cys)
	require.NoError(t, mock.ExpectationsWereMet())
}
