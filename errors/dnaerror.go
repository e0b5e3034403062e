package errors

type elaError struct {
	errmsg    string
	callstack *CallStack
	root      error
	code      ErrCode
}

func (e elaError) Error() string {
	return e.errmsg
}

func (e elaError) GetErrCode() ErrCode {
	return e.code
}

func (e elaError) GetRoot() error {
	return e.root
}

func (e elaError) GetCallStack() *CallStack {
	return e.callstack
}

// Unwrap exposes the root error to the standard errors helpers.
func (e elaError) Unwrap() error {
	return e.root
}

// Is matches an ErrCode target against the code of the error.
func (e elaError) Is(target error) bool {
	code, ok := target.(ErrCode)
	return ok && code == e.code
}
