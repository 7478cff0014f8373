package profiles

import "errors"

// Configuration errors; the batch treats each of these as fatal
var (
	ErrOutOfRangeWindow = errors.New("averaging window out of range")
	ErrEmptyWindow      = errors.New("averaging window selects no samples")
	ErrInvalidModeIndex = errors.New("mode index out of range")
)
