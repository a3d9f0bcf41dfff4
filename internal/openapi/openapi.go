// Package openapi describes the exported snapshot as an OpenAPI 3.0.3
// document, the contract a receiver validates against.
package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"mooring/internal/domain"

	"gopkg.in/yaml.v3"
)

// Version is the OpenAPI version emitted
const Version = "3.0.3"

// Document is the subset of an OpenAPI document the contract needs
type Document struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`
}

type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

type PathItem struct {
	Post *Operation `json:"post,omitempty" yaml:"post,omitempty"`
}

type Operation struct {
	Summary     string              `json:"summary" yaml:"summary"`
	OperationID string              `json:"operationId" yaml:"operationId"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

type RequestBody struct {
	Required bool                 `json:"required" yaml:"required"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

type Response struct {
	Description string `json:"description" yaml:"description"`
}

type MediaType struct {
	Schema *Schema `json:"schema" yaml:"schema"`
}

type Components struct {
	Schemas map[string]*Schema `json:"schemas" yaml:"schemas"`
}

// Schema is an OpenAPI 3.0 schema object. Exclusive bounds are booleans in 3.0.
type Schema struct {
	Ref                  string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type                 string             `json:"type,omitempty" yaml:"type,omitempty"`
	Description          string             `json:"description,omitempty" yaml:"description,omitempty"`
	Nullable             bool               `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Pattern              string             `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength            *int               `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	Minimum              *float64           `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum              *float64           `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum     bool               `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum     bool               `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	MinItems             *int               `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems             *int               `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	Enum                 []any              `json:"enum,omitempty" yaml:"enum,omitempty"`
	Items                *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
}

func ref(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

func ptr[T any](v T) *T {
	return &v
}

// Generate builds the contract for POST / carrying a Port snapshot
func Generate() *Document {
	return &Document{
		OpenAPI: Version,
		Info: Info{
			Title:       "Mooring telemetry",
			Description: "Snapshot of hook tensions and radar distances across a port's berths",
			Version:     "1.0.0",
		},
		Paths: map[string]PathItem{
			"/": {Post: &Operation{
				Summary:     "Publish a port snapshot",
				OperationID: "publishPort",
				RequestBody: &RequestBody{
					Required: true,
					Content: map[string]MediaType{
						"application/json": {Schema: ref("Port")},
					},
				},
				Responses: map[string]Response{
					"200": {Description: "Snapshot accepted"},
					"400": {Description: "Body is not a valid snapshot"},
				},
			}},
		},
		Components: Components{Schemas: schemas()},
	}
}

func schemas() map[string]*Schema {
	closed := ptr(false)
	lines := []any{nil}
	for _, l := range []domain.AttachedLine{domain.LineBreast, domain.LineHead, domain.LineSpring, domain.LineStern} {
		lines = append(lines, string(l))
	}

	return map[string]*Schema{
		"Port": {
			Type:     "object",
			Required: []string{"name", "berths"},
			Properties: map[string]*Schema{
				"name": {Type: "string", MinLength: ptr(1)},
				"berths": {
					Type:     "array",
					MinItems: ptr(1),
					MaxItems: ptr(domain.MaxBerths),
					Items:    ref("Berth"),
				},
			},
			AdditionalProperties: closed,
		},
		"Berth": {
			Type:     "object",
			Required: []string{"name", "bollardCount", "hookCount", "ship", "radars", "bollards"},
			Properties: map[string]*Schema{
				"name": {Type: "string", Pattern: "^Berth [A-Z]$"},
				"bollardCount": {
					Type:             "integer",
					Minimum:          ptr(0.0),
					ExclusiveMinimum: true,
					Maximum:          ptr(float64(domain.MaxBollardCount)),
					ExclusiveMaximum: true,
				},
				"hookCount": {
					Type:             "integer",
					Description:      fmt.Sprintf("Always bollardCount * %d", domain.HooksPerBollard),
					Minimum:          ptr(0.0),
					ExclusiveMinimum: true,
					Maximum:          ptr(float64(domain.MaxHookCount)),
					ExclusiveMaximum: true,
				},
				"ship":     ref("Ship"),
				"radars":   {Type: "array", Items: ref("Radar")},
				"bollards": {Type: "array", MinItems: ptr(1), Items: ref("Bollard")},
			},
			AdditionalProperties: closed,
		},
		"Ship": {
			Type:     "object",
			Required: []string{"name", "vesselId"},
			Properties: map[string]*Schema{
				"name":     {Type: "string", MinLength: ptr(1)},
				"vesselId": {Type: "string", Pattern: "^[0-9]{4}$"},
			},
			AdditionalProperties: closed,
		},
		"Radar": {
			Type:     "object",
			Required: []string{"name", "shipDistance", "distanceChange", "distanceStatus"},
			Properties: map[string]*Schema{
				"name": {Type: "string", Pattern: "^B[A-Z]RD[0-9]$"},
				"shipDistance": {
					Type:             "number",
					Description:      "Null when the radar is INACTIVE",
					Nullable:         true,
					Minimum:          ptr(0.0),
					Maximum:          ptr(domain.MaxShipDistance),
					ExclusiveMaximum: true,
				},
				"distanceChange": {
					Type:             "number",
					Description:      "Null when the radar is INACTIVE",
					Nullable:         true,
					Minimum:          ptr(-domain.MaxDistanceDelta),
					ExclusiveMinimum: true,
					Maximum:          ptr(domain.MaxDistanceDelta),
					ExclusiveMaximum: true,
				},
				"distanceStatus": {
					Type: "string",
					Enum: []any{string(domain.DistanceActive), string(domain.DistanceInactive)},
				},
			},
			AdditionalProperties: closed,
		},
		"Bollard": {
			Type:     "object",
			Required: []string{"name", "hooks"},
			Properties: map[string]*Schema{
				"name": {Type: "string", Pattern: "^BOL[0-9]{3}$"},
				"hooks": {
					Type:     "array",
					MinItems: ptr(domain.HooksPerBollard),
					MaxItems: ptr(domain.HooksPerBollard),
					Items:    ref("Hook"),
				},
			},
			AdditionalProperties: closed,
		},
		"Hook": {
			Type:     "object",
			Required: []string{"name", "tension", "faulted", "attachedLine"},
			Properties: map[string]*Schema{
				"name": {Type: "string", Pattern: "^Hook [1-9][0-9]?$"},
				"tension": {
					Type:             "integer",
					Description:      "Null unless a line is attached and the hook is not faulted",
					Nullable:         true,
					Minimum:          ptr(0.0),
					Maximum:          ptr(float64(domain.MaxTension)),
					ExclusiveMaximum: true,
				},
				"faulted":      {Type: "boolean"},
				"attachedLine": {Type: "string", Nullable: true, Enum: lines},
			},
			AdditionalProperties: closed,
		},
	}
}

// Marshal renders doc as "json" (the default) or "yaml"
func Marshal(doc *Document, format string) ([]byte, error) {
	switch format {
	case "", "json":
		return json.MarshalIndent(doc, "", "  ")
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
