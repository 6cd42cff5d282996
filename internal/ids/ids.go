package ids

import "github.com/segmentio/ksuid"

// New returns a time-ordered, globally unique identifier.
func New() string {
	return ksuid.New().String()
}
