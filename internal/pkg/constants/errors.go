package constants

// CodedError carries a process exit code alongside the message, so the CLI
// entry points can map failures to distinct exit statuses.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

const (
	CodeConfig   = 2
	CodeNotFound = 3
	CodeFormat   = 4
)

var (
	ErrMissingInputPath  = NewCodedError(CodeConfig, "missing input file path")
	ErrMissingOutputPath = NewCodedError(CodeConfig, "missing output file path")
	ErrNoBasePlan        = NewCodedError(CodeNotFound, "no base plan found")
	ErrBadPriceFormat    = NewCodedError(CodeFormat, "price is not representable with two fractional digits")
)
