package board

import (
	"errors"
	"fmt"
)

// Sentinel errors describing FEN failure classes. ParseError wraps one
// of these so callers can test with errors.Is.
var (
	// ErrWrongFieldCount reports a FEN record without exactly six
	// whitespace-separated fields.
	ErrWrongFieldCount = errors.New("wrong number of fen fields")

	// ErrMalformedPlacement reports a piece placement field that does
	// not describe eight ranks of eight squares.
	ErrMalformedPlacement = errors.New("malformed piece placement")
)

// ParseError reports a FEN record that could not be parsed.
type ParseError struct {
	FEN string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse fen %q: %v", e.FEN, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidPositionError reports a position that parses but violates
// structural invariants, such as a missing or duplicated king.
type InvalidPositionError struct {
	Reason string
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position: %s", e.Reason)
}
