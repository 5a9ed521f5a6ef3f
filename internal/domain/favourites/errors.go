package favourites

import "errors"

var (
	ErrAlreadyFavourite  = errors.New("already in favourites")
	ErrFavouriteNotFound = errors.New("not in favourites")
	ErrTargetNotFound    = errors.New("favourite target not found")
	ErrNoClientProfile   = errors.New("user has no client profile")
)
