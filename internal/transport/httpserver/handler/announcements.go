package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	announcementsdomain "swipe-go/internal/domain/announcements"
	"swipe-go/internal/domain/validation"
	"swipe-go/internal/observability/metrics"
)

type announcementRequest struct {
	Address            *string         `json:"address"`
	Flat               json.RawMessage `json:"flat"`
	FoundationDocument *string         `json:"foundation_document"`
	Appointment        *string         `json:"appointment"`
	Rooms              *string         `json:"rooms"`
	Layout             *string         `json:"layout"`
	State              *string         `json:"state"`
	TotalArea          *float64        `json:"total_area"`
	HasBalcony         *string         `json:"has_balcony"`
	CalculationOptions *string         `json:"calculation_options"`
	Commission         *float64        `json:"commission"`
	Communication      *string         `json:"communication"`
	Description        *string         `json:"description"`
	Price              *float64        `json:"price"`
	ModerStatus        *string         `json:"moder_status"`
	AvailableStatus    *string         `json:"available_status"`
}

// toInput distinguishes an omitted flat from an explicit null, which
// detaches the announcement from its flat.
func (req announcementRequest) toInput() (announcementsdomain.Input, error) {
	input := announcementsdomain.Input{
		Address:            req.Address,
		FoundationDocument: req.FoundationDocument,
		Appointment:        req.Appointment,
		Rooms:              req.Rooms,
		Layout:             req.Layout,
		State:              req.State,
		TotalArea:          req.TotalArea,
		HasBalcony:         req.HasBalcony,
		CalculationOptions: req.CalculationOptions,
		Commission:         req.Commission,
		Communication:      req.Communication,
		Description:        req.Description,
		Price:              req.Price,
		ModerStatus:        req.ModerStatus,
		AvailableStatus:    req.AvailableStatus,
	}

	switch raw := bytes.TrimSpace(req.Flat); {
	case len(raw) == 0:
	case bytes.Equal(raw, []byte("null")):
		input.ClearFlat = true
	default:
		var flatID int64
		if err := json.Unmarshal(raw, &flatID); err != nil || flatID <= 0 {
			return input, validation.New("flat", "Incorrect type. Expected pk value.")
		}
		input.FlatID = &flatID
	}
	return input, nil
}

type moderationRequest struct {
	ModerStatus     *string `json:"moder_status"`
	AvailableStatus *string `json:"available_status"`
}

func (h *Handlers) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	query := r.URL.Query()
	flatID, err := parseInt64Param(query.Get("flat"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid flat")
		return
	}
	flatIsEmpty, err := parseBoolParam(query.Get("flat__isempty"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid flat__isempty")
		return
	}

	user := actor(r)
	items, total, err := h.Announcements.List(r.Context(), user, announcementsdomain.ListFilter{
		FlatID:          flatID,
		FlatHouseStatus: stringParam(query.Get("flat__house__status")),
		FlatIsEmpty:     flatIsEmpty,
		Page:            announcementsdomain.Page{Limit: p.Limit, Offset: p.Offset},
	})
	if err != nil {
		h.fail(w, "announcements.list", err, "user_id", user.UserID)
		return
	}
	writeList(w, items, total)
}

func (h *Handlers) ListUnmoderatedAnnouncements(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	items, total, err := h.Announcements.ListUnmoderated(r.Context(), user, announcementsdomain.Page{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		h.fail(w, "announcements.unmoderated", err, "user_id", user.UserID)
		return
	}
	writeList(w, items, total)
}

func (h *Handlers) ListClientAnnouncements(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	items, total, err := h.Announcements.ListMine(r.Context(), user, announcementsdomain.Page{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		h.fail(w, "announcements.mine", err, "user_id", user.UserID)
		return
	}
	writeList(w, items, total)
}

func (h *Handlers) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	item, err := h.Announcements.Get(r.Context(), user, id)
	if err != nil {
		h.fail(w, "announcements.get", err, "user_id", user.UserID, "announcement_id", id)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handlers) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req announcementRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	input, err := req.toInput()
	if err != nil {
		h.fail(w, "announcements.create", err, "user_id", user.UserID)
		return
	}

	item, err := h.Announcements.Create(r.Context(), user, input)
	if err != nil {
		h.fail(w, "announcements.create", err, "user_id", user.UserID)
		return
	}

	h.log.Info("announcements.create: announcement created", "announcement_id", item.ID, "user_id", user.UserID)
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handlers) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req announcementRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	input, err := req.toInput()
	if err != nil {
		h.fail(w, "announcements.update", err, "user_id", user.UserID, "announcement_id", id)
		return
	}

	item, err := h.Announcements.Update(r.Context(), user, id, input, isPartial(r))
	if err != nil {
		h.fail(w, "announcements.update", err, "user_id", user.UserID, "announcement_id", id)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handlers) ModerateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req moderationRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	item, moved, err := h.Announcements.Moderate(r.Context(), user, id, announcementsdomain.Transition(req))
	if err != nil {
		h.fail(w, "announcements.moderate", err, "user_id", user.UserID, "announcement_id", id)
		return
	}

	if moved {
		metrics.ObserveModeration(item.ModerStatus)
		h.log.Info("announcements.moderate: status applied",
			"announcement_id", item.ID,
			"moder_status", item.ModerStatus,
			"available_status", item.AvailableStatus,
			"admin_id", user.UserID,
		)
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handlers) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	if err := h.Announcements.Delete(r.Context(), user, id); err != nil {
		h.fail(w, "announcements.delete", err, "user_id", user.UserID, "announcement_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AnnouncementToTheTop(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	item, err := h.Announcements.ToTheTop(r.Context(), user, id)
	if err != nil {
		h.fail(w, "announcements.to_the_top", err, "user_id", user.UserID, "announcement_id", id)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handlers) ListAnnouncementPhotos(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	images, err := h.Announcements.ListPhotos(r.Context(), user, id)
	if err != nil {
		h.fail(w, "announcements.photos", err, "user_id", user.UserID, "announcement_id", id)
		return
	}

	response := make([]imageResponse, 0, len(images))
	for _, image := range images {
		response = append(response, h.announcementImageResponse(image))
	}
	writeList(w, response, int64(len(response)))
}

func (h *Handlers) AddAnnouncementPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	file, err := readImage(w, r)
	if err != nil {
		metrics.ObserveMediaUpload("announcements", "rejected")
		h.fail(w, "announcements.add_photo", err, "user_id", user.UserID, "announcement_id", id)
		return
	}
	defer file.Close()

	image, err := h.Announcements.AddPhoto(r.Context(), user, id, file)
	if err != nil {
		metrics.ObserveMediaUpload("announcements", "rejected")
		h.fail(w, "announcements.add_photo", err, "user_id", user.UserID, "announcement_id", id)
		return
	}

	metrics.ObserveMediaUpload("announcements", "stored")
	writeJSON(w, http.StatusCreated, h.announcementImageResponse(*image))
}

func (h *Handlers) RemoveAnnouncementPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	imageID, err := pathID(r, "imageID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	if err := h.Announcements.RemovePhoto(r.Context(), user, id, imageID); err != nil {
		h.fail(w, "announcements.remove_photo", err, "user_id", user.UserID, "announcement_id", id, "image_id", imageID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) announcementImageResponse(image announcementsdomain.AnnouncementImage) imageResponse {
	return imageResponse{ID: image.ID, Owner: image.AnnouncementID, Image: h.Media.URL(image.Image)}
}
