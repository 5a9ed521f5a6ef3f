package houses

import "time"

const (
	StatusFlats    = "1"
	StatusNewBuild = "2"
)

type House struct {
	ID                 int64     `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:50;not null" json:"name"`
	Description        string    `gorm:"type:text;not null" json:"description"`
	Status             string    `gorm:"size:2;not null" json:"status"`
	Type               string    `gorm:"size:2;not null" json:"type"`
	Class              string    `gorm:"column:house_class;size:2;not null" json:"class"`
	BuildingTechnology string    `gorm:"size:2;not null" json:"building_technology"`
	Territory          string    `gorm:"size:2;not null" json:"territory"`
	SeaDistance        float64   `gorm:"not null" json:"sea_distance"`
	CommunalPayments   string    `gorm:"size:2;not null" json:"communal_payments"`
	CeilingHeight      float64   `gorm:"not null" json:"ceiling_height"`
	HasGas             string    `gorm:"size:1;not null" json:"has_gas"`
	HeatingType        string    `gorm:"size:2;not null" json:"heating_type"`
	Sewerage           string    `gorm:"size:2;not null" json:"sewerage"`
	WaterSupply        string    `gorm:"size:2;not null" json:"water_supply"`
	Registration       string    `gorm:"size:50;not null" json:"registration"`
	CalculationType    string    `gorm:"size:50;not null" json:"calculation_type"`
	Purpose            string    `gorm:"size:50;not null" json:"purpose"`
	ContractSum        string    `gorm:"size:50;not null" json:"contract_sum"`
	Housings           int       `gorm:"not null" json:"housings"`
	Sections           int       `gorm:"not null" json:"sections"`
	Floors             int       `gorm:"not null" json:"floors"`
	Coords             string    `gorm:"size:150;not null" json:"coords"`
	Geohash            string    `gorm:"size:12;not null;default:'';index" json:"geohash"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (House) TableName() string { return "houses" }

type DeveloperHouse struct {
	ID          int64 `gorm:"primaryKey"`
	DeveloperID int64 `gorm:"not null;uniqueIndex:idx_developer_houses_pair"`
	HouseID     int64 `gorm:"not null;uniqueIndex:idx_developer_houses_pair;index"`
}

func (DeveloperHouse) TableName() string { return "developer_houses" }

type HouseNews struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	HouseID         int64     `gorm:"not null;index" json:"house"`
	Header          string    `gorm:"size:50;not null" json:"header"`
	Body            string    `gorm:"type:text;not null" json:"body"`
	PublicationDate time.Time `gorm:"not null" json:"publication_date"`
}

func (HouseNews) TableName() string { return "house_news" }

type HouseImage struct {
	ID      int64  `gorm:"primaryKey" json:"id"`
	HouseID int64  `gorm:"not null;index" json:"house"`
	Image   string `gorm:"size:255;not null" json:"image"`
}

func (HouseImage) TableName() string { return "house_images" }

type Flat struct {
	ID               int64   `gorm:"primaryKey" json:"id"`
	HouseID          int64   `gorm:"not null;index" json:"house"`
	Housing          int     `gorm:"not null" json:"housing"`
	Section          int     `gorm:"not null" json:"section"`
	Floor            int     `gorm:"not null" json:"floor"`
	Number           int     `gorm:"not null" json:"number"`
	Status           bool    `gorm:"not null" json:"status"`
	SquareMeterPrice float64 `gorm:"not null" json:"square_meter_price"`
}

func (Flat) TableName() string { return "flats" }

type Page struct {
	Limit  int
	Offset int
}

type HouseFilter struct {
	IDs           []int64
	GeohashPrefix string
	Page          Page
}

type FlatFilter struct {
	HouseID *int64
	Status  *bool
	Page    Page
}

type NewsFilter struct {
	HouseID *int64
	Page    Page
}

// HouseInput carries a create or update payload. Nil fields are left
// untouched on partial updates.
type HouseInput struct {
	Name               *string
	Description        *string
	Status             *string
	Type               *string
	Class              *string
	BuildingTechnology *string
	Territory          *string
	SeaDistance        *float64
	CommunalPayments   *string
	CeilingHeight      *float64
	HasGas             *string
	HeatingType        *string
	Sewerage           *string
	WaterSupply        *string
	Registration       *string
	CalculationType    *string
	Purpose            *string
	ContractSum        *string
	Housings           *int
	Sections           *int
	Floors             *int
	Coords             *string
}

type FlatInput struct {
	HouseID          *int64
	Housing          *int
	Section          *int
	Floor            *int
	Number           *int
	Status           *bool
	SquareMeterPrice *float64
}

type NewsInput struct {
	HouseID *int64
	Header  *string
	Body    *string
}
