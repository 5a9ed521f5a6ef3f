package houses

import (
	"fmt"

	"swipe-go/internal/domain/identity"
	"swipe-go/internal/domain/validation"
)

const (
	msgOnlyDevelopers    = "Only developers can add apartment buildings"
	msgTypeForStatus     = "Invalid house type for the selected status"
	msgFewerHousings     = "The house has fewer housings"
	msgFewerSections     = "The house has fewer sections"
	msgFewerFloors       = "The house has fewer floors"
	msgHouseDoesNotExist = "Invalid pk - object does not exist."
)

func requireHouseFields(in HouseInput) error {
	var v validation.Error
	required := map[string]bool{
		"name":                in.Name != nil,
		"description":         in.Description != nil,
		"status":              in.Status != nil,
		"type":                in.Type != nil,
		"class":               in.Class != nil,
		"building_technology": in.BuildingTechnology != nil,
		"territory":           in.Territory != nil,
		"sea_distance":        in.SeaDistance != nil,
		"communal_payments":   in.CommunalPayments != nil,
		"ceiling_height":      in.CeilingHeight != nil,
		"has_gas":             in.HasGas != nil,
		"heating_type":        in.HeatingType != nil,
		"sewerage":            in.Sewerage != nil,
		"water_supply":        in.WaterSupply != nil,
		"registration":        in.Registration != nil,
		"calculation_type":    in.CalculationType != nil,
		"purpose":             in.Purpose != nil,
		"contract_sum":        in.ContractSum != nil,
		"housings":            in.Housings != nil,
		"sections":            in.Sections != nil,
		"floors":              in.Floors != nil,
		"coords":              in.Coords != nil,
	}
	for field, present := range required {
		if !present {
			v.Add(field, "This field is required.")
		}
	}
	return v.Err()
}

func mergeHouse(house *House, in HouseInput) {
	setString(&house.Name, in.Name)
	setString(&house.Description, in.Description)
	setString(&house.Status, in.Status)
	setString(&house.Type, in.Type)
	setString(&house.Class, in.Class)
	setString(&house.BuildingTechnology, in.BuildingTechnology)
	setString(&house.Territory, in.Territory)
	setFloat(&house.SeaDistance, in.SeaDistance)
	setString(&house.CommunalPayments, in.CommunalPayments)
	setFloat(&house.CeilingHeight, in.CeilingHeight)
	setString(&house.HasGas, in.HasGas)
	setString(&house.HeatingType, in.HeatingType)
	setString(&house.Sewerage, in.Sewerage)
	setString(&house.WaterSupply, in.WaterSupply)
	setString(&house.Registration, in.Registration)
	setString(&house.CalculationType, in.CalculationType)
	setString(&house.Purpose, in.Purpose)
	setString(&house.ContractSum, in.ContractSum)
	setInt(&house.Housings, in.Housings)
	setInt(&house.Sections, in.Sections)
	setInt(&house.Floors, in.Floors)
	if in.Coords != nil {
		house.Coords = *in.Coords
		house.Geohash = GeohashFromCoords(house.Coords)
	}
}

// validateHouse checks field constraints. On full writes it also applies
// the status rules: only developers may add buildings other than new
// builds, and the type must fit the status.
func validateHouse(house House, actor identity.Principal, full bool) error {
	var v validation.Error
	v.Required("name", house.Name)
	v.MaxLength("name", house.Name, 50)
	v.Choice("status", house.Status, validation.Range(1, 2)...)
	v.Choice("type", house.Type, validation.Range(1, 4)...)
	v.Choice("class", house.Class, validation.Range(1, 2)...)
	v.Choice("building_technology", house.BuildingTechnology, validation.Range(1, 4)...)
	v.Choice("territory", house.Territory, validation.Range(1, 3)...)
	v.MinFloat("sea_distance", house.SeaDistance, 0)
	v.Choice("communal_payments", house.CommunalPayments, validation.Range(1, 3)...)
	v.MinFloat("ceiling_height", house.CeilingHeight, 0)
	v.Choice("has_gas", house.HasGas, validation.Range(1, 2)...)
	v.Choice("heating_type", house.HeatingType, validation.Range(1, 4)...)
	v.Choice("sewerage", house.Sewerage, validation.Range(1, 3)...)
	v.Choice("water_supply", house.WaterSupply, validation.Range(1, 2)...)
	v.MaxLength("registration", house.Registration, 50)
	v.MaxLength("calculation_type", house.CalculationType, 50)
	v.MaxLength("purpose", house.Purpose, 50)
	v.MaxLength("contract_sum", house.ContractSum, 50)
	v.MinInt("housings", house.Housings, 1)
	v.MinInt("sections", house.Sections, 1)
	v.MinInt("floors", house.Floors, 1)
	v.MaxLength("coords", house.Coords, 150)
	if err := v.Err(); err != nil {
		return err
	}

	if !full {
		return nil
	}
	if house.Status != StatusNewBuild && !actor.IsDeveloper() {
		return validation.New(validation.NonField, msgOnlyDevelopers)
	}
	if (house.Status == StatusFlats && house.Type != "1" && house.Type != "2") ||
		(house.Status == StatusNewBuild && house.Type != "3" && house.Type != "4") {
		return validation.New(validation.NonField, msgTypeForStatus)
	}
	return nil
}

func mergeFlat(flat *Flat, in FlatInput) {
	if in.HouseID != nil {
		flat.HouseID = *in.HouseID
	}
	setInt(&flat.Housing, in.Housing)
	setInt(&flat.Section, in.Section)
	setInt(&flat.Floor, in.Floor)
	setInt(&flat.Number, in.Number)
	setFloat(&flat.SquareMeterPrice, in.SquareMeterPrice)
}

func requireFlatFields(in FlatInput) error {
	var v validation.Error
	if in.HouseID == nil {
		v.Add("house", "This field is required.")
	}
	if in.Housing == nil {
		v.Add("housing", "This field is required.")
	}
	if in.Section == nil {
		v.Add("section", "This field is required.")
	}
	if in.Floor == nil {
		v.Add("floor", "This field is required.")
	}
	if in.Number == nil {
		v.Add("number", "This field is required.")
	}
	return v.Err()
}

// validateFlat enforces the minimums and the bounds of the parent house.
func validateFlat(flat Flat, house House) error {
	var v validation.Error
	v.MinInt("housing", flat.Housing, 1)
	v.MinInt("section", flat.Section, 1)
	v.MinInt("floor", flat.Floor, 1)
	v.MinInt("number", flat.Number, 1)
	v.MinFloat("square_meter_price", flat.SquareMeterPrice, 0)
	if err := v.Err(); err != nil {
		return err
	}

	if flat.Housing > house.Housings {
		v.Add("housing", msgFewerHousings)
	}
	if flat.Section > house.Sections {
		v.Add("section", msgFewerSections)
	}
	if flat.Floor > house.Floors {
		v.Add("floor", msgFewerFloors)
	}
	return v.Err()
}

func validateNews(news HouseNews) error {
	var v validation.Error
	v.Required("header", news.Header)
	v.MaxLength("header", news.Header, 50)
	v.Required("body", news.Body)
	return v.Err()
}

func houseRequired() error {
	return validation.New("house", "This field is required.")
}

func newsFieldsRequired(in NewsInput) error {
	var v validation.Error
	if in.HouseID == nil {
		v.Add("house", "This field is required.")
	}
	if in.Header == nil {
		v.Add("header", "This field is required.")
	}
	if in.Body == nil {
		v.Add("body", "This field is required.")
	}
	return v.Err()
}

func houseDoesNotExist(houseID int64) error {
	return validation.New("house", fmt.Sprintf("%s (%d)", msgHouseDoesNotExist, houseID))
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
