package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDOB(t *testing.T) {
	parsed, err := ParseDOB("1995-04-23")
	require.NoError(t, err)
	assert.Equal(t, 1995, parsed.Year())
	assert.Equal(t, "April", parsed.Month().String())
	assert.Equal(t, 23, parsed.Day())
}

func TestValidDOB(t *testing.T) {
	valid := []string{"1995-04-23", "2000-02-29", "1900-01-01"}
	for _, dob := range valid {
		assert.True(t, ValidDOB(dob), dob)
	}

	invalid := []string{"", "23-04-1995", "1995/04/23", "1995-April-23", "1995-13-01", "1995-02-30", "2001-02-29"}
	for _, dob := range invalid {
		assert.False(t, ValidDOB(dob), dob)
	}
}
