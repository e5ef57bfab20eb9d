package neptune

import (
	"errors"
	"fmt"
)

// Contract violations. A batch call never returns these: they are the panic
// values raised when the caller breaks the boundary contract, wrapped with
// the offending values. Test for them with errors.Is after recover.
var (
	// ErrNilBuffer reports a nil buffer pointer.
	ErrNilBuffer = errors.New("neptune: nil buffer")

	// ErrLengthMismatch reports input and output buffers of different lengths.
	ErrLengthMismatch = errors.New("neptune: transform and matrix counts differ")

	// ErrAliasedBuffers reports input and output buffers that share memory.
	ErrAliasedBuffers = errors.New("neptune: transform and matrix buffers overlap")

	// ErrMisalignedBuffer reports a byte buffer whose size or address does
	// not fit the record layout.
	ErrMisalignedBuffer = errors.New("neptune: misaligned buffer")
)

// violation panics with err wrapped in a formatted message.
func violation(err error, format string, args ...any) {
	panic(fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)))
}
