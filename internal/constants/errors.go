package constants

import "errors"

// API and configuration errors.
var (
	ErrNoAPIConfigured     = errors.New("no API endpoint configured, use 'crm config set api <url>' or --api")
	ErrNoDomainForAPI      = errors.New("could not determine API domain")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrTokenKeyNotSettable = errors.New("tokens cannot be set via config command, use 'crm login'")
	ErrEmptyToken          = errors.New("token must not be empty")
	ErrAPIConfigNotFound   = errors.New("API configuration not found")
)

// Input errors.
var (
	ErrInputFileRequired          = errors.New("--file flag is required")
	ErrUnsupportedInputFormat     = errors.New("unsupported input file format, expected .json, .yaml or .yml")
	ErrInvalidKey                 = errors.New("invalid resource key")
	ErrInvalidOutputFormat        = errors.New("invalid output format, expected table, json or yaml")
	ErrDirectoryTraversalDetected = errors.New("directory traversal detected in file path")
	ErrNotRegularFile             = errors.New("path is not a regular file")
	ErrRolesRequired              = errors.New("at least one role is required")
)

// Operation errors.
var (
	ErrResourceNotFound = errors.New("resource not found")
)
