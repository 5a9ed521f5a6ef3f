package houses

import "errors"

var (
	ErrHouseNotFound = errors.New("house not found")
	ErrFlatNotFound  = errors.New("flat not found")
	ErrNewsNotFound  = errors.New("house news not found")
	ErrImageNotFound = errors.New("house image not found")
	ErrForbidden     = errors.New("only developers and administrators can perform this action")
)
