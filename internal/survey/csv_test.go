package survey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := "LAT,LONG,LC1,LC2,GRAZING,NUTS0\n40.1,-3.5,B75,-,1.0,ES\n48.2,2.3,C10,B20,2.0,FR\n"

	table, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"LAT", "LONG", "LC1", "LC2", "GRAZING", "NUTS0"}, table.Header)
	require.Len(t, table.Records, 2)
	assert.Equal(t, []string{"40.1", "-3.5", "B75", "-", "1.0", "ES"}, table.Records[0])
}

func TestReadCSV_RaggedRows(t *testing.T) {
	// Hand-edited extracts often have trailing columns missing.
	input := "LAT,LONG,LC1\n40.1,-3.5,B75\n40.2,-3.6\n"

	table, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	assert.Len(t, table.Records[1], 2)
}

func TestReadCSV_HeaderWhitespace(t *testing.T) {
	input := " LAT , LONG ,LC1\n40.1,-3.5,B75\n"

	table, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"LAT", "LONG", "LC1"}, table.Header)
}

func TestReadCSV_SemicolonDelimiter(t *testing.T) {
	input := "LAT;LONG;LC1\n40.1;-3.5;B75\n"

	table, err := ReadCSV(strings.NewReader(input), CSVOptions{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, []string{"LAT", "LONG", "LC1"}, table.Header)
	assert.Equal(t, []string{"40.1", "-3.5", "B75"}, table.Records[0])
}

func TestReadCSV_Latin1(t *testing.T) {
	// "Málaga" with the Latin-1 byte 0xE1 for á.
	input := "LC1,SITE\nB75,M\xe1laga\n"

	table, err := ReadCSV(strings.NewReader(input), CSVOptions{Latin1: true})
	require.NoError(t, err)
	assert.Equal(t, "Málaga", table.Records[0][1])
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty csv")
}

func TestReadBytes_UnsupportedFormat(t *testing.T) {
	_, err := ReadBytes("points.shp", []byte{}, CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported upload format")
}

func TestReadBytes_CSV(t *testing.T) {
	table, err := ReadBytes("ES_2012.csv", []byte("LC1,NUTS0\nB75,ES\n"), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"LC1", "NUTS0"}, table.Header)
}
