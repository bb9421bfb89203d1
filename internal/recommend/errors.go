package recommend

import "errors"

// Recoverable per-request failures. Construction failures are plain
// wrapped errors and abort startup; these three are the only error
// kinds a request can surface.
var (
	// ErrNoReference means query interpretation could not resolve a
	// reference title.
	ErrNoReference = errors.New("no reference title resolved from query")

	// ErrNoMatch means no candidate cleared the quality threshold.
	ErrNoMatch = errors.New("no candidate cleared the quality threshold")

	// ErrEncoder wraps a failure of the embedding encoder.
	ErrEncoder = errors.New("encoder failure")
)

// UserMessage maps an engine error to the message shown to the user.
// Unknown errors get a generic internal message so no detail leaks
// across the service boundary.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoReference):
		return "Couldn't find the webtoon you mentioned. Try a clearer query or a known title."
	case errors.Is(err, ErrNoMatch):
		return "No good matches found. Try a different query!"
	default:
		return "Something went wrong while finding a recommendation. Please try again."
	}
}
