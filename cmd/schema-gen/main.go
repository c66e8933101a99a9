// Schema Generator
//
// Generates JSON Schema files from the HTTP request and response types so
// API clients can validate payloads against the Go source of truth.
//
// Usage:
//
//	go run ./cmd/schema-gen [-out ./schemas]
//
// Output:
//
//	schemas/products.json
//	schemas/prices.json
//	schemas/quotes.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"

	"github.com/menye94/park-pricing/internal/handlers"
	"github.com/menye94/park-pricing/internal/pricing"
)

// SchemaGroup represents a group of related schemas
type SchemaGroup struct {
	Name   string
	Types  []any
	Output string
}

var groups = []SchemaGroup{
	{
		Name: "products",
		Types: []any{
			handlers.ProductKeyRequest{},
			handlers.ListProductsRequest{},
			handlers.ResolveProductResponse{},
			handlers.ListProductsResponse{},
			handlers.ListPricesResponse{},
			pricing.ReferenceData{},
		},
		Output: "products.json",
	},
	{
		Name: "prices",
		Types: []any{
			handlers.CreatePriceRequest{},
			handlers.UpdatePriceRequest{},
			handlers.BatchPriceRequest{},
			handlers.ClassifyRequest{},
			handlers.DisplayRequest{},
			handlers.LookupRequest{},
			pricing.PriceResult{},
			handlers.BatchPriceResponse{},
			handlers.ClassifyResponse{},
			handlers.DisplayResponse{},
			handlers.LookupResponse{},
			handlers.ErrorResponse{},
		},
		Output: "prices.json",
	},
	{
		Name: "quotes",
		Types: []any{
			handlers.LineItemRequest{},
			handlers.LineItemResponse{},
			handlers.QuoteResponse{},
		},
		Output: "quotes.json",
	},
}

func main() {
	outputDir := flag.String("out", "schemas", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, group := range groups {
		schema := generateGroupSchema(group)
		outputPath := filepath.Join(*outputDir, group.Output)

		if err := writeSchema(schema, outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", group.Output, err)
			os.Exit(1)
		}

		fmt.Printf("Generated %s\n", outputPath)
	}

	fmt.Println("Schema generation complete!")
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// mapDecimal renders amounts as decimal strings, matching their JSON encoding.
func mapDecimal(t reflect.Type) *jsonschema.Schema {
	if t != decimalType {
		return nil
	}
	return &jsonschema.Schema{
		Type:    "string",
		Pattern: `^-?[0-9]+(\.[0-9]+)?$`,
	}
}

// generateGroupSchema creates a combined schema with all types in a group
func generateGroupSchema(group SchemaGroup) map[string]any {
	reflector := &jsonschema.Reflector{
		Mapper: mapDecimal,
	}

	definitions := make(map[string]any)
	for _, t := range group.Types {
		schema := reflector.Reflect(t)
		for name, def := range schema.Definitions {
			definitions[name] = def
		}
	}

	return map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         fmt.Sprintf("https://park-pricing.local/schemas/%s.json", group.Name),
		"title":       fmt.Sprintf("%s API Types", capitalize(group.Name)),
		"description": fmt.Sprintf("JSON Schema for %s API types generated from Go structs", group.Name),
		"$defs":       definitions,
	}
}

// writeSchema writes a schema to a JSON file
func writeSchema(schema map[string]any, path string) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
