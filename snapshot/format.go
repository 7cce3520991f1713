package snapshot

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of the element list inside a snapshot.
type Format uint8

const (
	// FormatJSON encodes elements as a JSON array. It is the default.
	FormatJSON Format = iota + 1
	// FormatYAML encodes elements as a YAML sequence.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// ParseFormat maps "json" or "yaml" (any case) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func encodeValues[T any](f Format, values []T) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.Marshal(values)
	case FormatYAML:
		return yaml.Marshal(values)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

func decodeValues[T any](f Format, data []byte) ([]T, error) {
	var (
		values []T
		err    error
	)

	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, &values)
	case FormatYAML:
		err = yaml.Unmarshal(data, &values)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}

	if err != nil {
		return nil, fmt.Errorf("decoding %s payload: %w", f, err)
	}

	return values, nil
}
