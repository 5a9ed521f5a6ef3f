package handler

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	announcementsdomain "swipe-go/internal/domain/announcements"
	favouritesdomain "swipe-go/internal/domain/favourites"
	housesdomain "swipe-go/internal/domain/houses"
	identitydomain "swipe-go/internal/domain/identity"
	"swipe-go/internal/domain/media"
	"swipe-go/internal/domain/validation"
)

const msgOnlyAdvertiser = "Only the advertiser can perform this action"

var notFoundErrors = []error{
	identitydomain.ErrUserNotFound,
	identitydomain.ErrClientNotFound,
	identitydomain.ErrDeveloperNotFound,
	identitydomain.ErrNotaryNotFound,
	housesdomain.ErrHouseNotFound,
	housesdomain.ErrFlatNotFound,
	housesdomain.ErrNewsNotFound,
	housesdomain.ErrImageNotFound,
	announcementsdomain.ErrAnnouncementNotFound,
	announcementsdomain.ErrPromotionNotFound,
	announcementsdomain.ErrImageNotFound,
	favouritesdomain.ErrFavouriteNotFound,
	favouritesdomain.ErrTargetNotFound,
}

var forbiddenErrors = []error{
	identitydomain.ErrForbidden,
	identitydomain.ErrNoClientProfile,
	housesdomain.ErrForbidden,
	announcementsdomain.ErrForbidden,
	announcementsdomain.ErrNoClientProfile,
	favouritesdomain.ErrNoClientProfile,
}

// fail maps a service error onto the response. Business failures are logged
// at warn, anything unrecognised is a 500.
func (h *Handlers) fail(w http.ResponseWriter, op string, err error, args ...any) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		h.log.BusinessError(op+": validation failed", err, args...)
		writeFieldError(w, http.StatusBadRequest, "validation_failed", "validation failed", verr.Fields)
	case errors.Is(err, announcementsdomain.ErrNotAdvertiser):
		h.log.BusinessError(op+": not the advertiser", err, args...)
		writeFieldError(w, http.StatusForbidden, "forbidden", msgOnlyAdvertiser, map[string]string{validation.NonField: msgOnlyAdvertiser})
	case errors.Is(err, identitydomain.ErrForeignProfile):
		h.log.BusinessError(op+": foreign profile", err, args...)
		writeFieldError(w, http.StatusBadRequest, "validation_failed", err.Error(), map[string]string{validation.NonField: err.Error()})
	case errors.Is(err, media.ErrUnsupportedImage), errors.Is(err, media.ErrEmptyUpload):
		h.log.BusinessError(op+": bad upload", err, args...)
		writeFieldError(w, http.StatusBadRequest, "validation_failed", "invalid image", map[string]string{"image": err.Error()})
	case isAny(err, notFoundErrors):
		h.log.BusinessError(op+": not found", err, args...)
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case isAny(err, forbiddenErrors):
		h.log.BusinessError(op+": forbidden", err, args...)
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, favouritesdomain.ErrAlreadyFavourite), errors.Is(err, gorm.ErrDuplicatedKey):
		h.log.BusinessError(op+": conflict", err, args...)
		writeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		h.log.InternalError(op+": failed", err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
