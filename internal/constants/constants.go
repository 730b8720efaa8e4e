package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// HTTP header values.
const (
	// ContentTypeJSON is sent with every JSON body and accepted on every response.
	ContentTypeJSON = "application/json"

	// DefaultUserAgent identifies the client when Config.UserAgent is empty.
	DefaultUserAgent = "crm-client/1.0"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "
)

// Pagination and display limits.
const (
	// DefaultPageSize is the default $top used by the CLI.
	DefaultPageSize = 50

	// ErrorDetailLimit truncates response bodies in log fields.
	ErrorDetailLimit = 512
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndentSize is the indentation width for JSON and YAML output.
	JSONIndentSize = 2
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// CRUD operation constants.
const (
	// OperationList for list operations.
	OperationList = "list"

	// OperationGet for get operations.
	OperationGet = "get"

	// OperationCreate for create operations.
	OperationCreate = "create"

	// OperationUpdate for update operations.
	OperationUpdate = "update"

	// OperationDelete for delete operations.
	OperationDelete = "delete"
)

// Environment and config.
const (
	// EnvPrefix is the viper environment variable prefix (CRM_API, CRM_TOKEN, ...).
	EnvPrefix = "CRM"

	// ConfigDirName is created under the user's home directory.
	ConfigDirName = ".crm"

	// ConfigFileName is the config file base name.
	ConfigFileName = "config"

	// ConfigFileType is the config file format.
	ConfigFileType = "yml"
)
