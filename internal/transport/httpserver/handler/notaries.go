package handler

import (
	"net/http"

	identitydomain "swipe-go/internal/domain/identity"
)

func (h *Handlers) ListNotaries(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	notaries, total, err := h.Identity.ListNotaries(r.Context(), identitydomain.Page{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		h.fail(w, "notaries.list", err)
		return
	}

	response := make([]profileResponse, 0, len(notaries))
	for _, notary := range notaries {
		response = append(response, toNotaryResponse(notary))
	}
	writeList(w, response, total)
}

func (h *Handlers) CreateNotary(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	notary, err := h.Identity.CreateNotary(r.Context(), user, req.toInput())
	if err != nil {
		h.fail(w, "notaries.create", err, "user_id", user.UserID)
		return
	}
	writeJSON(w, http.StatusCreated, toNotaryResponse(*notary))
}

func (h *Handlers) GetNotary(w http.ResponseWriter, r *http.Request) {
	notaryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	notary, err := h.Identity.GetNotary(r.Context(), user, notaryID)
	if err != nil {
		h.fail(w, "notaries.get", err, "user_id", user.UserID, "notary_id", notaryID)
		return
	}
	writeJSON(w, http.StatusOK, toNotaryResponse(*notary))
}

func (h *Handlers) UpdateNotary(w http.ResponseWriter, r *http.Request) {
	notaryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req userUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	notary, err := h.Identity.UpdateNotary(r.Context(), user, notaryID, req.toInput())
	if err != nil {
		h.fail(w, "notaries.update", err, "user_id", user.UserID, "notary_id", notaryID)
		return
	}
	writeJSON(w, http.StatusOK, toNotaryResponse(*notary))
}

func (h *Handlers) DeleteNotary(w http.ResponseWriter, r *http.Request) {
	notaryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	if err := h.Identity.DeleteNotary(r.Context(), user, notaryID); err != nil {
		h.fail(w, "notaries.delete", err, "user_id", user.UserID, "notary_id", notaryID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
