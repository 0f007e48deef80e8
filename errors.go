package aec

// Error is an AEC decoder status code.
type Error int

// Status codes.
const (
	ErrNone           Error = 0
	ErrConfiguration  Error = 1
	ErrStream         Error = 2
	ErrData           Error = 3
	ErrOutputTooSmall Error = 4
	ErrAllocation     Error = 5
)

var errMessages = [6]string{
	"No error",
	"Invalid configuration",
	"Invalid use of stream",
	"Corrupt data",
	"Output buffer too small for one sample",
	"Sample buffer too large to allocate",
}

// Error implements the error interface.
func (e Error) Error() string {
	if e >= 0 && int(e) < len(errMessages) {
		return errMessages[e]
	}
	return "unknown error"
}

// GetErrorMessage returns the message for an error code.
func GetErrorMessage(code Error) string {
	return code.Error()
}
