package handler

import (
	"net/http"

	housesdomain "swipe-go/internal/domain/houses"
)

type flatRequest struct {
	HouseID          *int64   `json:"house"`
	Housing          *int     `json:"housing"`
	Section          *int     `json:"section"`
	Floor            *int     `json:"floor"`
	Number           *int     `json:"number"`
	Status           *bool    `json:"status"`
	SquareMeterPrice *float64 `json:"square_meter_price"`
}

func (req flatRequest) toInput() housesdomain.FlatInput {
	return housesdomain.FlatInput{
		HouseID:          req.HouseID,
		Housing:          req.Housing,
		Section:          req.Section,
		Floor:            req.Floor,
		Number:           req.Number,
		Status:           req.Status,
		SquareMeterPrice: req.SquareMeterPrice,
	}
}

func (h *Handlers) ListFlats(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	query := r.URL.Query()
	houseID, err := parseInt64Param(query.Get("house"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid house")
		return
	}
	status, err := parseBoolParam(query.Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid status")
		return
	}

	user := actor(r)
	flats, total, err := h.Houses.ListFlats(r.Context(), user, housesdomain.FlatFilter{
		HouseID: houseID,
		Status:  status,
		Page:    housesdomain.Page{Limit: p.Limit, Offset: p.Offset},
	})
	if err != nil {
		h.fail(w, "flats.list", err, "user_id", user.UserID)
		return
	}
	writeList(w, flats, total)
}

func (h *Handlers) GetFlat(w http.ResponseWriter, r *http.Request) {
	flatID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	flat, err := h.Houses.GetFlat(r.Context(), user, flatID)
	if err != nil {
		h.fail(w, "flats.get", err, "user_id", user.UserID, "flat_id", flatID)
		return
	}
	writeJSON(w, http.StatusOK, flat)
}

func (h *Handlers) CreateFlat(w http.ResponseWriter, r *http.Request) {
	var req flatRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	flat, err := h.Houses.CreateFlat(r.Context(), user, req.toInput())
	if err != nil {
		h.fail(w, "flats.create", err, "user_id", user.UserID)
		return
	}
	writeJSON(w, http.StatusCreated, flat)
}

func (h *Handlers) UpdateFlat(w http.ResponseWriter, r *http.Request) {
	flatID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req flatRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	flat, err := h.Houses.UpdateFlat(r.Context(), user, flatID, req.toInput(), isPartial(r))
	if err != nil {
		h.fail(w, "flats.update", err, "user_id", user.UserID, "flat_id", flatID)
		return
	}
	writeJSON(w, http.StatusOK, flat)
}

func (h *Handlers) DeleteFlat(w http.ResponseWriter, r *http.Request) {
	flatID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	if err := h.Houses.DeleteFlat(r.Context(), user, flatID); err != nil {
		h.fail(w, "flats.delete", err, "user_id", user.UserID, "flat_id", flatID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
