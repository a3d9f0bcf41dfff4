package codec

import (
	"bytes"
	"fmt"
	"io"

	"mooring/internal/domain"
)

// Importer reads a port snapshot from a wire format
type Importer interface {
	Parse(r io.Reader) (*domain.PortRecord, error)
	Format() string
}

// Exporter writes a port snapshot in a wire format
type Exporter interface {
	Export(port *domain.PortRecord, w io.Writer) error
	Format() string
}

// Codec is both directions of one format
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec registered under name ("json" or "yaml")
func ForFormat(name string) (Codec, error) {
	switch name {
	case "json", "":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

// MediaType returns the Content-Type of a format name
func MediaType(format string) string {
	switch format {
	case "yaml", "yml":
		return "application/yaml"
	}
	return "application/json"
}

// Encode exports port into a byte slice
func Encode(e Exporter, port *domain.PortRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Export(port, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
