package codec

import (
	"fmt"
	"io"

	"mooring/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles snake_case YAML snapshots
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse decodes a YAML snapshot
func (c *YAMLCodec) Parse(r io.Reader) (*domain.PortRecord, error) {
	var port domain.PortRecord
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&port); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &port, nil
}

// Export encodes a port snapshot as YAML
func (c *YAMLCodec) Export(port *domain.PortRecord, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(port); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
