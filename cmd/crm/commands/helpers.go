package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/crm-client/internal/constants"
)

// outputFormat returns the configured output format, defaulting to table.
func outputFormat() (string, error) {
	format := strings.ToLower(strings.TrimSpace(viper.GetString("output")))

	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, format)
	}
}

// writeStructured encodes value as JSON or YAML. It reports false for the
// table format so callers can render their own table.
func writeStructured(out io.Writer, format string, value interface{}) (bool, error) {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return true, encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(constants.JSONIndentSize)

		defer func() { _ = encoder.Close() }()

		return true, encoder.Encode(value)
	default:
		return false, nil
	}
}

// renderTable writes rows under header.
func renderTable(out io.Writer, header []string, rows [][]string) error {
	cells := make([]any, 0, len(header))
	for _, name := range header {
		cells = append(cells, name)
	}

	table := tablewriter.NewWriter(out)
	table.Header(cells...)

	for _, row := range rows {
		_ = table.Append(row)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderProperties writes a two column Property/Value table.
func renderProperties(out io.Writer, properties [][]string) error {
	return renderTable(out, []string{"Property", "Value"}, properties)
}

// recordFields flattens a record into its JSON field map.
func recordFields(record interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}

	fields := map[string]interface{}{}

	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decoding record fields: %w", err)
	}

	return fields, nil
}

// formatField renders one JSON field value for a table cell.
func formatField(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return constants.NotAvailable
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, formatField(item))
		}

		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// recordRow picks columns out of a record.
func recordRow(record interface{}, columns []string) ([]string, error) {
	fields, err := recordFields(record)
	if err != nil {
		return nil, err
	}

	row := make([]string, 0, len(columns))
	for _, column := range columns {
		row = append(row, formatField(fields[column]))
	}

	return row, nil
}

// validateFilePath validates that a file path is safe to read.
func validateFilePath(filePath string) (string, error) {
	cleanPath := filepath.Clean(filePath)

	if !filepath.IsAbs(filePath) {
		if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("%w: %s", constants.ErrDirectoryTraversalDetected, filePath)
		}
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return "", fmt.Errorf("file not accessible: %w", err)
	}

	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", constants.ErrNotRegularFile, filePath)
	}

	return cleanPath, nil
}

// readRecordFile decodes a JSON or YAML record file, chosen by extension.
func readRecordFile[T any](filePath string) (*T, error) {
	if filePath == "" {
		return nil, constants.ErrInputFileRequired
	}

	cleanPath, err := validateFilePath(filePath)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- path validated above
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var record T

	switch strings.ToLower(filepath.Ext(cleanPath)) {
	case ".json":
		err = json.Unmarshal(data, &record)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &record)
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnsupportedInputFormat, filePath)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	return &record, nil
}

// parseInt64Key parses a numeric record key.
func parseInt64Key(raw string) (int64, error) {
	key, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", constants.ErrInvalidKey, raw, err)
	}

	return key, nil
}

// parseStringKey accepts any non-blank key.
func parseStringKey(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: key must not be empty", constants.ErrInvalidKey)
	}

	return raw, nil
}
