package config

import "errors"

// Validation errors returned by Config.Validate and AnimationConfig.Validate.
var (
	// ErrNoSource is returned when the catalogue URL is empty.
	ErrNoSource = errors.New("no catalogue source specified")

	// ErrInvalidSource is returned when the catalogue URL is not an absolute
	// http or https URL.
	ErrInvalidSource = errors.New("invalid catalogue source: must be an http or https URL")

	// ErrNoOutputPath is returned when the table path is empty.
	ErrNoOutputPath = errors.New("no output path specified")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidCacheTTL is returned when the cache TTL is negative.
	ErrInvalidCacheTTL = errors.New("invalid cache ttl: must be non-negative")

	// ErrUnknownSource is returned when a named source is not in the
	// configuration file.
	ErrUnknownSource = errors.New("unknown source name")

	// ErrNoInput is returned when the planet table path is empty.
	ErrNoInput = errors.New("no input table specified")

	// ErrNoOutputDir is returned when the frame directory is empty.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrUnsupportedFormat is returned for frame formats other than png and svg.
	ErrUnsupportedFormat = errors.New("unsupported frame format: must be png or svg")

	// ErrInvalidFrameRate is returned when frames per year is not positive.
	ErrInvalidFrameRate = errors.New("invalid frames per year: must be positive")

	// ErrInvalidFrameCount is returned when a hold or fade frame count is negative.
	ErrInvalidFrameCount = errors.New("invalid frame count: must be non-negative")

	// ErrInvalidExtend is returned when the timeline extension is negative.
	ErrInvalidExtend = errors.New("invalid timeline extension: must be non-negative")

	// ErrInvalidJobs is returned when the encoder concurrency is not positive.
	ErrInvalidJobs = errors.New("invalid jobs: must be positive")

	// ErrInvalidSize is returned when the frame width or height is not positive.
	ErrInvalidSize = errors.New("invalid frame size: must be positive")

	// ErrInvalidLimits is returned when an axis range is not a positive,
	// increasing interval. Both panel axes are logarithmic.
	ErrInvalidLimits = errors.New("invalid axis limits: need 0 < min < max")
)
