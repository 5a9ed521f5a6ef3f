package handler

import (
	"net/http"

	identitydomain "swipe-go/internal/domain/identity"
)

func (h *Handlers) ListDevelopers(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	developers, total, err := h.Identity.ListDevelopers(r.Context(), identitydomain.Page{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		h.fail(w, "developers.list", err)
		return
	}

	response := make([]profileResponse, 0, len(developers))
	for _, developer := range developers {
		response = append(response, toDeveloperResponse(developer))
	}
	writeList(w, response, total)
}

func (h *Handlers) GetDeveloper(w http.ResponseWriter, r *http.Request) {
	developerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	developer, err := h.Identity.GetDeveloper(r.Context(), developerID)
	if err != nil {
		h.fail(w, "developers.get", err, "developer_id", developerID)
		return
	}
	writeJSON(w, http.StatusOK, toDeveloperResponse(*developer))
}

func (h *Handlers) RegisterDeveloper(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	developer, err := h.Identity.RegisterDeveloper(r.Context(), req.toInput())
	if err != nil {
		h.fail(w, "developers.register", err, "email", req.Email)
		return
	}

	h.log.Info("developers.register: developer registered", "developer_id", developer.ID, "user_id", developer.UserID)
	writeJSON(w, http.StatusCreated, toDeveloperResponse(*developer))
}

func (h *Handlers) UpdateDeveloper(w http.ResponseWriter, r *http.Request) {
	developerID, err := pathID(r, "id")
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
	developer, err := h.Identity.UpdateDeveloper(r.Context(), user, developerID, req.toInput())
	if err != nil {
		h.fail(w, "developers.update", err, "user_id", user.UserID, "developer_id", developerID)
		return
	}
	writeJSON(w, http.StatusOK, toDeveloperResponse(*developer))
}

func (h *Handlers) DeleteDeveloper(w http.ResponseWriter, r *http.Request) {
	developerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	if err := h.Identity.DeleteDeveloper(r.Context(), user, developerID); err != nil {
		h.fail(w, "developers.delete", err, "user_id", user.UserID, "developer_id", developerID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
