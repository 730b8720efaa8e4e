package crm

import (
	"encoding/json"
	"fmt"
	"time"
)

// dateTimeLayouts are tried in order. The server emits offset-less
// timestamps for unspecified-kind values, so RFC 3339 alone is not enough.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// DateTime is a timestamp that accepts the server's offset-less formats.
type DateTime struct {
	time.Time
}

// NewDateTime wraps t.
func NewDateTime(t time.Time) *DateTime {
	return &DateTime{Time: t}
}

// ParseDateTime parses any of the accepted timestamp layouts.
func ParseDateTime(value string) (DateTime, error) {
	for _, layout := range dateTimeLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return DateTime{Time: parsed}, nil
		}
	}

	return DateTime{}, fmt.Errorf("%w: unrecognised timestamp %q", ErrMalformed, value)
}

// MarshalJSON implements json.Marshaler.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.RFC3339Nano))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	var value string

	err := json.Unmarshal(data, &value)
	if err != nil {
		return fmt.Errorf("parsing timestamp: %w", err)
	}

	parsed, err := ParseDateTime(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d DateTime) MarshalYAML() (interface{}, error) {
	return d.Format(time.RFC3339Nano), nil
}

// UnmarshalYAML decodes the same layouts from YAML scalars.
func (d *DateTime) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var value string

	err := unmarshal(&value)
	if err != nil {
		return fmt.Errorf("parsing timestamp: %w", err)
	}

	parsed, err := ParseDateTime(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
