package conflict

import "errors"

// ErrInvalidCandidate возвращается при некорректном окне-кандидате
var ErrInvalidCandidate = errors.New("conflict: invalid candidate window")
