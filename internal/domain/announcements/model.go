package announcements

import "time"

const (
	ModerationPending  = "1"
	ModerationApproved = "2"
	ModerationRejected = "3"

	Available   = "1"
	Unavailable = "2"
)

type Announcement struct {
	ID                 int64     `gorm:"primaryKey" json:"id"`
	Address            string    `gorm:"size:50;not null" json:"address"`
	FlatID             *int64    `gorm:"index" json:"flat"`
	PublicationDate    time.Time `gorm:"not null;index" json:"publication_date"`
	FoundationDocument string    `gorm:"size:2;not null" json:"foundation_document"`
	Appointment        string    `gorm:"size:2;not null" json:"appointment"`
	Rooms              string    `gorm:"size:2;not null" json:"rooms"`
	Layout             string    `gorm:"size:2;not null" json:"layout"`
	State              string    `gorm:"size:2;not null" json:"state"`
	TotalArea          float64   `gorm:"not null" json:"total_area"`
	HasBalcony         string    `gorm:"size:2;not null" json:"has_balcony"`
	CalculationOptions string    `gorm:"size:2;not null" json:"calculation_options"`
	Commission         float64   `gorm:"not null" json:"commission"`
	Communication      string    `gorm:"size:50;not null" json:"communication"`
	Description        string    `gorm:"type:text;not null" json:"description"`
	Price              float64   `gorm:"not null" json:"price"`
	ModerStatus        string    `gorm:"size:2;not null;index" json:"moder_status"`
	AvailableStatus    string    `gorm:"size:2;not null;index" json:"available_status"`
	AdvertiserID       int64     `gorm:"not null;index" json:"advertiser"`
}

func (Announcement) TableName() string { return "announcements" }

// IsPublic reports whether the announcement is approved and available.
func (a Announcement) IsPublic() bool {
	return a.ModerStatus == ModerationApproved && a.AvailableStatus == Available
}

type AnnouncementImage struct {
	ID             int64  `gorm:"primaryKey" json:"id"`
	AnnouncementID int64  `gorm:"not null;index" json:"announcement"`
	Image          string `gorm:"size:255;not null" json:"image"`
}

func (AnnouncementImage) TableName() string { return "announcement_images" }

type Promotion struct {
	ID             int64  `gorm:"primaryKey" json:"id"`
	AnnouncementID int64  `gorm:"not null;uniqueIndex" json:"announcement"`
	Phrase         string `gorm:"size:2;not null" json:"phrase"`
	Color          string `gorm:"size:2;not null" json:"color"`
	IsTurbo        bool   `gorm:"not null" json:"is_turbo"`
	IsBig          bool   `gorm:"not null" json:"is_big"`
}

func (Promotion) TableName() string { return "promotions" }

type Page struct {
	Limit  int
	Offset int
}

type SortOrder int

const (
	NewestFirst SortOrder = iota
	OldestFirst
)

type ListFilter struct {
	IDs             []int64
	AdvertiserID    *int64
	FlatID          *int64
	FlatHouseStatus *string
	// FlatIsEmpty selects announcements without (true) or with (false) a flat.
	FlatIsEmpty *bool
	ModerStatus *string
	Order       SortOrder
	Page        Page
}

type Input struct {
	Address            *string
	FlatID             *int64
	ClearFlat          bool
	FoundationDocument *string
	Appointment        *string
	Rooms              *string
	Layout             *string
	State              *string
	TotalArea          *float64
	HasBalcony         *string
	CalculationOptions *string
	Commission         *float64
	Communication      *string
	Description        *string
	Price              *float64
	ModerStatus        *string
	AvailableStatus    *string
}

type PromotionInput struct {
	Phrase  *string
	Color   *string
	IsTurbo *bool
	IsBig   *bool
}
