package identity

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrClientNotFound     = errors.New("client not found")
	ErrDeveloperNotFound  = errors.New("developer not found")
	ErrNotaryNotFound     = errors.New("notary not found")
	ErrForeignProfile     = errors.New("You cannot edit another user's data")
	ErrForbidden          = errors.New("forbidden")
	ErrNoClientProfile    = errors.New("user has no client profile")
)
