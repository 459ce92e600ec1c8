package repos

import "errors"

var errCorruptEntry = errors.New("cached value is not valid JSON")
