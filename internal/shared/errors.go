package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Catalog provider errors
	ErrSongNotFound        = fmt.Errorf("song not found")
	ErrProviderRateLimited = fmt.Errorf("catalog provider rate limited")
	ErrProviderUnavailable = fmt.Errorf("catalog provider unavailable")
	ErrQuotaExhausted      = fmt.Errorf("catalog quota exhausted")

	// Persistence and cache errors
	ErrRepositoryFailure = fmt.Errorf("repository operation failed")
	ErrUserNotFound      = fmt.Errorf("user not found")
	ErrCacheUnavailable  = fmt.Errorf("cache unavailable")

	// Engine errors surfaced to callers
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrInternal           = fmt.Errorf("internal error")

	// Input validation errors
	ErrParseFailure    = fmt.Errorf("unparseable song title")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
