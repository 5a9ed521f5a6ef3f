package handler

import (
	"net/http"

	announcementsdomain "swipe-go/internal/domain/announcements"
)

type promotionRequest struct {
	Phrase  *string `json:"phrase"`
	Color   *string `json:"color"`
	IsTurbo *bool   `json:"is_turbo"`
	IsBig   *bool   `json:"is_big"`
}

func (h *Handlers) GetPromotion(w http.ResponseWriter, r *http.Request) {
	announcementID, err := pathID(r, "announcementID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	promotion, err := h.Announcements.GetPromotion(r.Context(), user, announcementID)
	if err != nil {
		h.fail(w, "promotions.get", err, "user_id", user.UserID, "announcement_id", announcementID)
		return
	}
	writeJSON(w, http.StatusOK, promotion)
}

func (h *Handlers) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	announcementID, err := pathID(r, "announcementID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req promotionRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	promotion, err := h.Announcements.UpdatePromotion(r.Context(), user, announcementID, announcementsdomain.PromotionInput(req), isPartial(r))
	if err != nil {
		h.fail(w, "promotions.update", err, "user_id", user.UserID, "announcement_id", announcementID)
		return
	}
	writeJSON(w, http.StatusOK, promotion)
}
