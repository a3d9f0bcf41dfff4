package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"mooring/internal/domain"
)

// JSONCodec handles the camelCase JSON payload
type JSONCodec struct {
	indent string
}

// NewJSONCodec creates a JSON codec that indents exports by two spaces
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{indent: "  "}
}

// NewCompactJSONCodec creates a JSON codec that exports without indentation
func NewCompactJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse decodes a port snapshot. It does not validate; receivers accept
// partial payloads and fill in what is missing.
func (c *JSONCodec) Parse(r io.Reader) (*domain.PortRecord, error) {
	var port domain.PortRecord
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&port); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &port, nil
}

// Export encodes a port snapshot
func (c *JSONCodec) Export(port *domain.PortRecord, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", c.indent)

	if err := encoder.Encode(port); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
