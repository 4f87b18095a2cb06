package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCountryRef_Overrides(t *testing.T) {
	ref := NewCountryRef(map[string]string{
		"gb": "United Kingdom of Great Britain and Northern Ireland",
		"ES": "Spain",
	})

	// Extracts code the UK as "UK", not ISO's "GB".
	name, ok := ref.Name("UK")
	require.True(t, ok)
	assert.Equal(t, "Great Britain", name)

	_, ok = ref.Name("GB")
	assert.False(t, ok)

	name, ok = ref.Name("es")
	require.True(t, ok)
	assert.Equal(t, "Spain", name)
}

func TestReadCountryRef(t *testing.T) {
	input := strings.Join([]string{
		`name,alpha-2,alpha-3,numeric`,
		`Spain,ES,ESP,724`,
		`France,FR,FRA,250`,
		`"United Kingdom of Great Britain and Northern Ireland",GB,GBR,826`,
	}, "\n")

	ref, err := ReadCountryRef(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, ref.Len())

	name, ok := ref.Name("FR")
	require.True(t, ok)
	assert.Equal(t, "France", name)

	name, ok = ref.Name("UK")
	require.True(t, ok)
	assert.Equal(t, "Great Britain", name)
}

func TestReadCountryRef_MissingColumns(t *testing.T) {
	_, err := ReadCountryRef(strings.NewReader("code,label\nES,Spain\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alpha-2")
}

func TestCountryRef_UnknownCode(t *testing.T) {
	ref := NewCountryRef(map[string]string{"ES": "Spain"})
	_, ok := ref.Name("ZZ")
	assert.False(t, ok)
}
