package builder

import (
	"fmt"

	"crawl/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrUnreachableLocation is returned when connectivity repair cannot bridge a vertex
// to the rest of the graph
var ErrUnreachableLocation = errors.New("location is unreachable")

// UnreachableError names the stranded vertex and the bridge lookup failure.
// It matches ErrUnreachableLocation with errors.Is.
type UnreachableError struct {
	Location entity.Location
	Err      error
}

func (e *UnreachableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %q", ErrUnreachableLocation, e.Location.Name)
	}

	return fmt.Sprintf("%s: %q: %v", ErrUnreachableLocation, e.Location.Name, e.Err)
}

// Is reports whether target is ErrUnreachableLocation
func (e *UnreachableError) Is(target error) bool {
	return target == ErrUnreachableLocation
}

// Unwrap returns the bridge lookup failure
func (e *UnreachableError) Unwrap() error {
	return e.Err
}
