package handler

import (
	"net/http"

	housesdomain "swipe-go/internal/domain/houses"
	"swipe-go/internal/observability/metrics"
)

type houseRequest struct {
	Name               *string  `json:"name"`
	Description        *string  `json:"description"`
	Status             *string  `json:"status"`
	Type               *string  `json:"type"`
	Class              *string  `json:"class"`
	BuildingTechnology *string  `json:"building_technology"`
	Territory          *string  `json:"territory"`
	SeaDistance        *float64 `json:"sea_distance"`
	CommunalPayments   *string  `json:"communal_payments"`
	CeilingHeight      *float64 `json:"ceiling_height"`
	HasGas             *string  `json:"has_gas"`
	HeatingType        *string  `json:"heating_type"`
	Sewerage           *string  `json:"sewerage"`
	WaterSupply        *string  `json:"water_supply"`
	Registration       *string  `json:"registration"`
	CalculationType    *string  `json:"calculation_type"`
	Purpose            *string  `json:"purpose"`
	ContractSum        *string  `json:"contract_sum"`
	Housings           *int     `json:"housings"`
	Sections           *int     `json:"sections"`
	Floors             *int     `json:"floors"`
	Coords             *string  `json:"coords"`
}

func (req houseRequest) toInput() housesdomain.HouseInput {
	return housesdomain.HouseInput{
		Name:               req.Name,
		Description:        req.Description,
		Status:             req.Status,
		Type:               req.Type,
		Class:              req.Class,
		BuildingTechnology: req.BuildingTechnology,
		Territory:          req.Territory,
		SeaDistance:        req.SeaDistance,
		CommunalPayments:   req.CommunalPayments,
		CeilingHeight:      req.CeilingHeight,
		HasGas:             req.HasGas,
		HeatingType:        req.HeatingType,
		Sewerage:           req.Sewerage,
		WaterSupply:        req.WaterSupply,
		Registration:       req.Registration,
		CalculationType:    req.CalculationType,
		Purpose:            req.Purpose,
		ContractSum:        req.ContractSum,
		Housings:           req.Housings,
		Sections:           req.Sections,
		Floors:             req.Floors,
		Coords:             req.Coords,
	}
}

func (h *Handlers) ListHouses(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	filter := housesdomain.HouseFilter{
		Page: housesdomain.Page{Limit: p.Limit, Offset: p.Offset},
	}
	if prefix := stringParam(r.URL.Query().Get("geohash")); prefix != nil {
		filter.GeohashPrefix = *prefix
	}

	houses, total, err := h.Houses.ListHouses(r.Context(), user, filter)
	if err != nil {
		h.fail(w, "houses.list", err, "user_id", user.UserID)
		return
	}
	writeList(w, houses, total)
}

func (h *Handlers) GetHouse(w http.ResponseWriter, r *http.Request) {
	houseID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	house, err := h.Houses.GetHouse(r.Context(), user, houseID)
	if err != nil {
		h.fail(w, "houses.get", err, "user_id", user.UserID, "house_id", houseID)
		return
	}
	writeJSON(w, http.StatusOK, house)
}

func (h *Handlers) CreateHouse(w http.ResponseWriter, r *http.Request) {
	var req houseRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	house, err := h.Houses.CreateHouse(r.Context(), user, req.toInput())
	if err != nil {
		h.fail(w, "houses.create", err, "user_id", user.UserID)
		return
	}

	h.log.Info("houses.create: house created", "house_id", house.ID, "user_id", user.UserID)
	writeJSON(w, http.StatusCreated, house)
}

func (h *Handlers) UpdateHouse(w http.ResponseWriter, r *http.Request) {
	houseID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req houseRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user := actor(r)
	house, err := h.Houses.UpdateHouse(r.Context(), user, houseID, req.toInput(), isPartial(r))
	if err != nil {
		h.fail(w, "houses.update", err, "user_id", user.UserID, "house_id", houseID)
		return
	}
	writeJSON(w, http.StatusOK, house)
}

func (h *Handlers) DeleteHouse(w http.ResponseWriter, r *http.Request) {
	houseID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	if err := h.Houses.DeleteHouse(r.Context(), user, houseID); err != nil {
		h.fail(w, "houses.delete", err, "user_id", user.UserID, "house_id", houseID)
		return
	}

	h.log.Info("houses.delete: house deleted", "house_id", houseID, "user_id", user.UserID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListHousePhotos(w http.ResponseWriter, r *http.Request) {
	houseID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	images, err := h.Houses.ListHousePhotos(r.Context(), user, houseID)
	if err != nil {
		h.fail(w, "houses.photos", err, "user_id", user.UserID, "house_id", houseID)
		return
	}

	response := make([]imageResponse, 0, len(images))
	for _, image := range images {
		response = append(response, h.houseImageResponse(image))
	}
	writeList(w, response, int64(len(response)))
}

func (h *Handlers) AddHousePhoto(w http.ResponseWriter, r *http.Request) {
	houseID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user := actor(r)
	file, err := readImage(w, r)
	if err != nil {
		metrics.ObserveMediaUpload("houses", "rejected")
		h.fail(w, "houses.add_photo", err, "user_id", user.UserID, "house_id", houseID)
		return
	}
	defer file.Close()

	image, err := h.Houses.AddHousePhoto(r.Context(), user, houseID, file)
	if err != nil {
		metrics.ObserveMediaUpload("houses", "rejected")
		h.fail(w, "houses.add_photo", err, "user_id", user.UserID, "house_id", houseID)
		return
	}

	metrics.ObserveMediaUpload("houses", "stored")
	writeJSON(w, http.StatusCreated, h.houseImageResponse(*image))
}

func (h *Handlers) RemoveHousePhoto(w http.ResponseWriter, r *http.Request) {
	houseID, err := pathID(r, "id")
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
	if err := h.Houses.RemoveHousePhoto(r.Context(), user, houseID, imageID); err != nil {
		h.fail(w, "houses.remove_photo", err, "user_id", user.UserID, "house_id", houseID, "image_id", imageID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) houseImageResponse(image housesdomain.HouseImage) imageResponse {
	return imageResponse{ID: image.ID, Owner: image.HouseID, Image: h.Media.URL(image.Image)}
}
