package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menye94/park-pricing/internal/pricing"
)

func TestCommandsRegistered(t *testing.T) {
	for _, path := range [][]string{
		{"migrate"},
		{"ping"},
		{"reference"},
		{"classify"},
		{"quote", "list"},
		{"quote", "sync"},
		{"quote", "export"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestRunMigrateRejectsDirection(t *testing.T) {
	err := runMigrate(migrateCmd, []string{"sideways"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid direction")
}

func TestClassifyDimensions(t *testing.T) {
	t.Cleanup(func() {
		classifyCategory, classifyTax = 0, ""
	})

	classifyEntryType, classifyAgeGroup, classifyPricingType = 1, 2, 3
	classifyCategory = 4
	classifyTax = "2"

	fixed, err := classifyDimensions()
	require.NoError(t, err)
	require.NotNil(t, fixed.CategoryID)
	assert.Equal(t, int64(4), *fixed.CategoryID)
	assert.Equal(t, pricing.TaxExclusive, fixed.TaxBehavior)

	classifyCategory = 0
	classifyTax = "bogus"
	_, err = classifyDimensions()
	assert.True(t, pricing.IsValidation(err))
}

func TestPrintClassifications(t *testing.T) {
	var buf bytes.Buffer
	err := printClassifications(&buf, []int64{3, 1, 2}, map[int64]pricing.Classification{
		1: {HasProduct: true, ProductID: 10},
		2: {HasProduct: true, HasExactPrice: true, ProductID: 11},
		3: {},
	})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Contains(t, string(lines[0]), "PARK")
	assert.Contains(t, string(lines[1]), "new")
	assert.Contains(t, string(lines[2]), "existing_product")
	assert.Contains(t, string(lines[2]), "10")
	assert.Contains(t, string(lines[3]), "exact_duplicate")
}

func TestPrintReference(t *testing.T) {
	ref := &pricing.ReferenceData{
		Parks:      []pricing.Park{{ID: 1, Name: "Serengeti"}},
		AgeGroups:  []pricing.AgeGroup{{ID: 2, Name: "Adult", MinAge: 16, MaxAge: 120}},
		Seasons:    []pricing.Season{{ID: 5, Name: "High", StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)}},
		Currencies: []pricing.Currency{{ID: 1, Name: "usd"}},
		Failures:   map[string]string{pricing.DimCategories: "timeout"},
	}

	var buf bytes.Buffer
	require.NoError(t, printReference(&buf, ref))

	out := buf.String()
	assert.Contains(t, out, "PARKS (1)")
	assert.Contains(t, out, "Serengeti")
	assert.Contains(t, out, "Adult (16-120)")
	assert.Contains(t, out, "High (2026-07-01 to 2026-10-31)")
	assert.Contains(t, out, "USD")
	assert.Contains(t, out, "FAILED TO LOAD")
	assert.Contains(t, out, "timeout")
}
