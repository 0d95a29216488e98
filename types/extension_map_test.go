package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionLookup(t *testing.T) {
	empty := NewExtensionLookup(nil)
	assert.True(t, empty.IsValid("anything.csv"))

	csvOnly := NewExtensionLookup([]string{".csv"})
	assert.True(t, csvOnly.IsValid("acs/population.csv"))
	assert.False(t, csvOnly.IsValid("acs/readme.txt"))
	assert.False(t, csvOnly.IsValid("no-extension"))
}

func TestRemoteFileBase(t *testing.T) {
	f := NewRemoteFile("acs/2021/population.csv", WithSize(42), WithSourceLocation("gs://county-inputs/acs/2021/population.csv"))
	assert.Equal(t, "population.csv", f.Base())
	assert.Equal(t, int64(42), f.Size)
}
