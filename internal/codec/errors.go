package codec

import "fmt"

// ShortOutputError reports a converted file whose duration fell below the
// configured floor. The file is unusable as a music track.
type ShortOutputError struct {
	Path     string
	Duration float64
	Floor    float64
}

func (e *ShortOutputError) Error() string {
	return fmt.Sprintf("output %s is %.2fs, below the %.2fs floor", e.Path, e.Duration, e.Floor)
}

// InputTooLargeError reports a source file above the configured size cap.
type InputTooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("input %s is %d bytes, above the %d byte limit", e.Path, e.Size, e.Limit)
}
