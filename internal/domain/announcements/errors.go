package announcements

import "errors"

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrPromotionNotFound    = errors.New("promotion not found")
	ErrImageNotFound        = errors.New("announcement image not found")
	ErrForbidden            = errors.New("only administrators can moderate announcements")
	ErrNoClientProfile      = errors.New("user has no client profile")
	// ErrNotAdvertiser is returned by to-the-top for non-owners. It is the
	// one ownership failure surfaced as forbidden instead of not found.
	ErrNotAdvertiser = errors.New("not the advertiser of this announcement")
)
