package handler

import (
	"net/http"

	housesdomain "swipe-go/internal/domain/houses"
)

type newsRequest struct {
	HouseID *int64  `json:"house"`
	Header  *string `json:"header"`
	Body    *string `json:"body"`
}

func (h *Handlers) ListNews(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	houseID, err := parseInt64Param(r.URL.Query().Get("house"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid house")
		return
	}

	user := actor(r)
	news, total, err := h.Houses.ListNews(r.Context(), user, housesdomain.NewsFilter{
		HouseID: houseID,
		Page:    housesdomain.Page{Limit: p.Limit, Offset: p.Offset},
	})
	if err != nil {
		h.fail(w, "news.list", err, "user_id", user.UserID)
		return
	}
	writeList(w, news, total)
}

func (h *Handlers) GetNews(w http.ResponseWriter, r *http.Request) {
	newsID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	news, err := h.Houses.GetNews(r.Context(), user, newsID)
	if err != nil {
		h.fail(w, "news.get", err, "user_id", user.UserID, "news_id", newsID)
		return
	}
	writeJSON(w, http.StatusOK, news)
}

func (h *Handlers) CreateNews(w http.ResponseWriter, r *http.Request) {
	var req newsRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	news, err := h.Houses.CreateNews(r.Context(), user, housesdomain.NewsInput(req))
	if err != nil {
		h.fail(w, "news.create", err, "user_id", user.UserID)
		return
	}
	writeJSON(w, http.StatusCreated, news)
}

func (h *Handlers) UpdateNews(w http.ResponseWriter, r *http.Request) {
	newsID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req newsRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	news, err := h.Houses.UpdateNews(r.Context(), user, newsID, housesdomain.NewsInput(req), isPartial(r))
	if err != nil {
		h.fail(w, "news.update", err, "user_id", user.UserID, "news_id", newsID)
		return
	}
	writeJSON(w, http.StatusOK, news)
}

func (h *Handlers) DeleteNews(w http.ResponseWriter, r *http.Request) {
	newsID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	if err := h.Houses.DeleteNews(r.Context(), user, newsID); err != nil {
		h.fail(w, "news.delete", err, "user_id", user.UserID, "news_id", newsID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
