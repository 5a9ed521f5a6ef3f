package announcements

import (
	"swipe-go/internal/domain/validation"
)

func requireFields(in Input) error {
	var v validation.Error
	required := map[string]bool{
		"address":             in.Address != nil,
		"foundation_document": in.FoundationDocument != nil,
		"appointment":         in.Appointment != nil,
		"rooms":               in.Rooms != nil,
		"layout":              in.Layout != nil,
		"state":               in.State != nil,
		"total_area":          in.TotalArea != nil,
		"has_balcony":         in.HasBalcony != nil,
		"calculation_options": in.CalculationOptions != nil,
		"commission":          in.Commission != nil,
		"communication":       in.Communication != nil,
		"description":         in.Description != nil,
		"price":               in.Price != nil,
	}
	for field, present := range required {
		if !present {
			v.Add(field, "This field is required.")
		}
	}
	return v.Err()
}

func merge(a *Announcement, in Input) {
	setString(&a.Address, in.Address)
	switch {
	case in.ClearFlat:
		a.FlatID = nil
	case in.FlatID != nil:
		id := *in.FlatID
		a.FlatID = &id
	}
	setString(&a.FoundationDocument, in.FoundationDocument)
	setString(&a.Appointment, in.Appointment)
	setString(&a.Rooms, in.Rooms)
	setString(&a.Layout, in.Layout)
	setString(&a.State, in.State)
	setFloat(&a.TotalArea, in.TotalArea)
	setString(&a.HasBalcony, in.HasBalcony)
	setString(&a.CalculationOptions, in.CalculationOptions)
	setFloat(&a.Commission, in.Commission)
	setString(&a.Communication, in.Communication)
	setString(&a.Description, in.Description)
	setFloat(&a.Price, in.Price)
}

func validate(a Announcement) error {
	var v validation.Error
	v.Required("address", a.Address)
	v.MaxLength("address", a.Address, 50)
	v.Choice("foundation_document", a.FoundationDocument, validation.Range(1, 4)...)
	v.Choice("appointment", a.Appointment, validation.Range(1, 3)...)
	v.Choice("rooms", a.Rooms, validation.Range(1, 5)...)
	v.Choice("layout", a.Layout, validation.Range(1, 6)...)
	v.Choice("state", a.State, validation.Range(1, 2)...)
	v.MinFloat("total_area", a.TotalArea, 0)
	v.Choice("has_balcony", a.HasBalcony, validation.Range(1, 2)...)
	v.Choice("calculation_options", a.CalculationOptions, validation.Range(1, 3)...)
	v.MinFloat("commission", a.Commission, 0)
	v.MaxLength("communication", a.Communication, 50)
	v.MinFloat("price", a.Price, 0)
	return v.Err()
}

func validatePromotion(p Promotion) error {
	var v validation.Error
	v.Choice("phrase", p.Phrase, validation.Range(0, 8)...)
	v.Choice("color", p.Color, validation.Range(0, 2)...)
	return v.Err()
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
