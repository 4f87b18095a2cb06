package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inglebright-earth/my-dash-a/internal/lucas"
	"github.com/inglebright-earth/my-dash-a/internal/schema"
)

func testCountries() *schema.CountryRef {
	return schema.NewCountryRef(map[string]string{"ES": "Spain"})
}

func TestProcess(t *testing.T) {
	raw := schema.RawTable{
		Header: []string{"LAT", "LONG", "LC1", "LC2", "GRAZING", "NUTS0"},
		Records: [][]string{
			{"40.1", "-3.5", "B75", "-", "1.0", "ES"},
			{"40.2", "-3.6", "C10", "B20", "2.0", "ES"},
			{"40.3", "-3.7", "A10", "", "2.0", "ES"}, // built-up, dropped
		},
	}

	points, summaries, err := Process(raw, testCountries(), 2012)
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, lucas.ClassLivestock, points[0].Class)
	assert.Equal(t, lucas.ClassArable, points[1].Class)
	for _, p := range points {
		assert.Equal(t, 2012, p.Year)
		assert.Equal(t, "Spain", p.Country)
	}

	require.Len(t, summaries, 1)
	s := summaries[0]
	assert.Equal(t, "Spain", s.Country)
	assert.Equal(t, 2012, s.Year)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Counts[lucas.ClassLivestock])
	assert.Equal(t, 1, s.Counts[lucas.ClassArable])
	assert.InDelta(t, 50.0, s.Percentages[lucas.ClassLivestock], 1e-9)
	assert.InDelta(t, 50.0, s.Percentages[lucas.ClassArable], 1e-9)
	assert.InDelta(t, 0.0, s.Percentages[lucas.ClassForest], 1e-9)
}

func TestProcess_SingleLivestockPoint(t *testing.T) {
	raw := schema.RawTable{
		Header:  []string{"LAT", "LONG", "LC1", "LC2", "GRAZING", "NUTS0"},
		Records: [][]string{{"40.1", "-3.5", "B75", "-", "1.0", "ES"}},
	}

	_, summaries, err := Process(raw, testCountries(), 2012)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Total)
	assert.InDelta(t, 100.0, summaries[0].Percentages[lucas.ClassLivestock], 1e-9)
}

func TestProcess_MissingColumn(t *testing.T) {
	raw := schema.RawTable{
		Header:  []string{"LAT", "LONG", "LC1", "LC2", "GRAZING"},
		Records: [][]string{{"40.1", "-3.5", "B75", "-", "1.0"}},
	}

	points, summaries, err := Process(raw, testCountries(), 2012)
	require.ErrorIs(t, err, schema.ErrMissingColumn)
	assert.Nil(t, points)
	assert.Nil(t, summaries)
}

func TestProcess_Idempotent(t *testing.T) {
	raw := schema.RawTable{
		Header: []string{"LAT", "LONG", "LC1", "LC2", "GRAZING", "NUTS0"},
		Records: [][]string{
			{"40.1", "-3.5", "B75", "-", "1.0", "ES"},
			{"40.2", "-3.6", "E20", "", "2.0", "ES"},
		},
	}

	points1, summaries1, err := Process(raw, testCountries(), 2012)
	require.NoError(t, err)
	points2, summaries2, err := Process(raw, testCountries(), 2012)
	require.NoError(t, err)

	assert.Equal(t, points1, points2)
	assert.Equal(t, summaries1, summaries2)
}

func TestProcess_NoClassifiablePoints(t *testing.T) {
	raw := schema.RawTable{
		Header:  []string{"LAT", "LONG", "LC1", "LC2", "GRAZING", "NUTS0"},
		Records: [][]string{{"40.1", "-3.5", "A10", "", "2.0", "ES"}},
	}

	points, summaries, err := Process(raw, testCountries(), 2012)
	require.NoError(t, err)
	assert.Empty(t, points)
	assert.Empty(t, summaries)
}
