package sim

import "errors"

var (
	// ErrInvalidConfiguration is returned before any simulation work when the
	// frame count, a block size, a request size or a policy name is unusable.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrEmptyWorkload marks an empty reference or request sequence. The engines
	// accept empty workloads and return an empty trace; scenario validation and
	// the CLI reject them as user input errors.
	ErrEmptyWorkload = errors.New("empty workload")
)
