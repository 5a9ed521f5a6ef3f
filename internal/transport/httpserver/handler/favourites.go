package handler

import (
	"net/http"
)

func (h *Handlers) ListFavouriteAnnouncements(w http.ResponseWriter, r *http.Request) {
	user := actor(r)
	items, err := h.AnnouncementFavourites.List(r.Context(), user)
	if err != nil {
		h.fail(w, "favourites.announcements.list", err, "user_id", user.UserID)
		return
	}
	writeList(w, items, int64(len(items)))
}

func (h *Handlers) AddAnnouncementToFavourites(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	if err := h.AnnouncementFavourites.Add(r.Context(), user, id); err != nil {
		h.fail(w, "favourites.announcements.add", err, "user_id", user.UserID, "announcement_id", id)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) RemoveAnnouncementFromFavourites(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	if err := h.AnnouncementFavourites.Remove(r.Context(), user, id); err != nil {
		h.fail(w, "favourites.announcements.remove", err, "user_id", user.UserID, "announcement_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListFavouriteHouses(w http.ResponseWriter, r *http.Request) {
	user := actor(r)
	items, err := h.HouseFavourites.List(r.Context(), user)
	if err != nil {
		h.fail(w, "favourites.houses.list", err, "user_id", user.UserID)
		return
	}
	writeList(w, items, int64(len(items)))
}

func (h *Handlers) AddHouseToFavourites(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	if err := h.HouseFavourites.Add(r.Context(), user, id); err != nil {
		h.fail(w, "favourites.houses.add", err, "user_id", user.UserID, "house_id", id)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) RemoveHouseFromFavourites(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	if err := h.HouseFavourites.Remove(r.Context(), user, id); err != nil {
		h.fail(w, "favourites.houses.remove", err, "user_id", user.UserID, "house_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
