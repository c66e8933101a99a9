package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDoc(t *testing.T) map[string]interface{} {
	t.Helper()
	doc := SwaggerInfo.ReadDoc()
	require.NotEmpty(t, doc)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed), "ReadDoc should return valid JSON")
	return parsed
}

func TestSwaggerInfoMetadata(t *testing.T) {
	assert.Equal(t, "Park Pricing API", SwaggerInfo.Title)
	assert.Equal(t, "1.0", SwaggerInfo.Version)
	assert.Equal(t, "/api/v1", SwaggerInfo.BasePath)
	assert.Equal(t, "swagger", SwaggerInfo.InfoInstanceName)
}

func TestSwaggerInfoReadDoc(t *testing.T) {
	parsed := readDoc(t)

	info, ok := parsed["info"].(map[string]interface{})
	require.True(t, ok, "JSON should have info section")
	assert.Equal(t, "Park Pricing API", info["title"])
	assert.Equal(t, "/api/v1", parsed["basePath"])
	assert.Equal(t, "2.0", parsed["swagger"])
}

func TestSwaggerInfoHasEndpoints(t *testing.T) {
	paths, ok := readDoc(t)["paths"].(map[string]interface{})
	require.True(t, ok, "JSON should have paths section")

	for _, path := range []string{
		"/reference",
		"/products/resolve",
		"/prices",
		"/prices/batch",
		"/prices/classify",
		"/prices/display",
		"/prices/lookup",
		"/quotes/{quoteId}/items",
		"/quotes/{quoteId}/export",
	} {
		assert.Contains(t, paths, path)
	}
}

func TestSwaggerInfoHasDefinitions(t *testing.T) {
	defs, ok := readDoc(t)["definitions"].(map[string]interface{})
	require.True(t, ok, "JSON should have definitions section")

	for _, name := range []string{
		"handlers.BatchPriceRequest",
		"handlers.ClassifyResponse",
		"handlers.QuoteResponse",
		"pricing.PriceResult",
	} {
		assert.Contains(t, defs, name)
	}
}
