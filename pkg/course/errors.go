package course

import "errors"

// Every failure aborts the run; the kind tells the user where it happened.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrNetwork       = errors.New("network error")
	ErrParse         = errors.New("parse error")
	ErrRender        = errors.New("render error")
)
