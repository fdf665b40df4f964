package event

import "errors"

var ErrEventNotFound = errors.New("Employee event not found")
