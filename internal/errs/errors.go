package errs

import "errors"

var (
	ErrBadArgument = errors.New("arena: bad argument")
	ErrClosed      = errors.New("arena: closed")
	ErrScopeOpen   = errors.New("arena: scope already open")
	ErrNoScope     = errors.New("arena: no open scope")
	ErrNotFixed    = errors.New("arena: type contains pointer-like data")
	ErrNoSpace     = errors.New("arena: no space")
)
