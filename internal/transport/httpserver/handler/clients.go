package handler

import (
	"net/http"

	identitydomain "swipe-go/internal/domain/identity"
)

type clientUpdateRequest struct {
	userUpdateRequest
	NotificationStatus *string `json:"notification_status"`
}

func (req clientUpdateRequest) toInput() identitydomain.ClientUpdate {
	return identitydomain.ClientUpdate{
		UserInput:          req.userUpdateRequest.toInput(),
		NotificationStatus: req.NotificationStatus,
	}
}

func (h *Handlers) ListClients(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	clients, total, err := h.Identity.ListClients(r.Context(), user, identitydomain.Page{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		h.fail(w, "clients.list", err, "user_id", user.UserID)
		return
	}

	response := make([]clientResponse, 0, len(clients))
	for _, client := range clients {
		response = append(response, toClientResponse(client))
	}
	writeList(w, response, total)
}

func (h *Handlers) GetClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	client, err := h.Identity.GetClient(r.Context(), clientID)
	if err != nil {
		h.fail(w, "clients.get", err, "client_id", clientID)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(*client))
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user := actor(r)
	client, err := h.Identity.Me(r.Context(), user)
	if err != nil {
		h.fail(w, "clients.me", err, "user_id", user.UserID)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(*client))
}

func (h *Handlers) UpdateClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req clientUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	client, err := h.Identity.UpdateClient(r.Context(), user, clientID, req.toInput())
	if err != nil {
		h.fail(w, "clients.update", err, "user_id", user.UserID, "client_id", clientID)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(*client))
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req clientUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	client, err := h.Identity.UpdateProfile(r.Context(), user, req.toInput())
	if err != nil {
		h.fail(w, "clients.update_profile", err, "user_id", user.UserID)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(*client))
}

func (h *Handlers) ToggleBlacklist(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	client, err := h.Identity.ToggleBlacklist(r.Context(), user, clientID)
	if err != nil {
		h.fail(w, "clients.blacklist", err, "user_id", user.UserID, "client_id", clientID)
		return
	}

	h.log.Info("clients.blacklist: toggled", "client_id", client.ID, "is_active", client.User.IsActive, "admin_id", user.UserID)
	writeJSON(w, http.StatusOK, toClientResponse(*client))
}
