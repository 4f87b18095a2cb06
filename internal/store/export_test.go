package store

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inglebright-earth/my-dash-a/internal/lucas"
)

func TestWritePointsCSV(t *testing.T) {
	points := []lucas.ClassifiedPoint{
		{Lat: 40.123456, Long: -3.5, LC1: "B75", LC2: "-", LandMngt: 1.0, Class: lucas.ClassLivestock, Year: 2012, Country: "Spain"},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePointsCSV(&buf, points))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, pointsHeader, records[0])
	assert.Equal(t, []string{"40.123456", "-3.5", "B75", "-", "1.0", "Livestock", "2012", "Spain"}, records[1])
}

func TestWriteSummariesCSV(t *testing.T) {
	points := []lucas.ClassifiedPoint{
		{Country: "Spain", Class: lucas.ClassLivestock},
		{Country: "Spain", Class: lucas.ClassForest},
	}
	summaries := lucas.Summarize(points, 2012)

	var buf bytes.Buffer
	require.NoError(t, WriteSummariesCSV(&buf, summaries))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, summariesHeader, records[0])
	assert.Equal(t, []string{
		"Spain", "2012",
		"1", "0", "1", "0", "0",
		"50.0", "0.0", "50.0", "0.0", "0.0",
		"2",
	}, records[1])
}

func TestWritePointsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePointsCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
