package identity

import "time"

const (
	NotificationMe          = "1"
	NotificationMeAndAgent  = "2"
	NotificationAgent       = "3"
	NotificationDisabled    = "4"
	DefaultNotificationMode = NotificationDisabled
)

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"size:254;not null;uniqueIndex"`
	PhoneNumber  string    `gorm:"size:20;not null;uniqueIndex"`
	FirstName    string    `gorm:"size:150;not null;default:''"`
	LastName     string    `gorm:"size:150;not null;default:''"`
	PasswordHash string    `gorm:"not null"`
	IsActive     bool      `gorm:"not null"`
	IsStaff      bool      `gorm:"not null"`
	IsSuperuser  bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string { return "users" }

type Client struct {
	ID                 int64  `gorm:"primaryKey"`
	UserID             int64  `gorm:"not null;uniqueIndex"`
	NotificationStatus string `gorm:"size:2;not null"`

	User  User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Agent *Agent `gorm:"foreignKey:ClientID"`
}

func (Client) TableName() string { return "clients" }

type Agent struct {
	ID          int64  `gorm:"primaryKey"`
	ClientID    int64  `gorm:"not null;uniqueIndex"`
	FirstName   string `gorm:"size:50;not null"`
	LastName    string `gorm:"size:50;not null"`
	Email       string `gorm:"size:254;not null;uniqueIndex"`
	PhoneNumber string `gorm:"size:20;not null;uniqueIndex"`
}

func (Agent) TableName() string { return "agents" }

type Developer struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;uniqueIndex"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Developer) TableName() string { return "developers" }

type Notary struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;uniqueIndex"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Notary) TableName() string { return "notaries" }

// ProfileIDs holds the profile rows attached to one user. A nil id means the
// profile does not exist.
type ProfileIDs struct {
	ClientID    *int64
	DeveloperID *int64
	NotaryID    *int64
}

type Page struct {
	Limit  int
	Offset int
}

type UserInput struct {
	Email       *string
	PhoneNumber *string
	FirstName   *string
	LastName    *string
	Password    *string
	Password2   *string
}

type ClientUpdate struct {
	UserInput
	NotificationStatus *string
}

type RegisterInput struct {
	Email       string
	PhoneNumber string
	FirstName   string
	LastName    string
	Password    string
	Password2   string
}
