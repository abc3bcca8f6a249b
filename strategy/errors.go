package strategy

import "errors"

// ErrNoNurses indicates that selection was attempted with an empty nurse list.
var ErrNoNurses = errors.New("no nurses available for selection")
