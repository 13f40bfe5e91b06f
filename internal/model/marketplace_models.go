// Package model declares the GORM schema for the marketplace tables the
// assistant reads and the conversation table it writes. The retrieval layer
// queries these tables by name through the store package; the structs here
// exist for migration and seeding.
package model

import "time"

// Property is one apartment complex listing.
type Property struct {
	Id        int64   `gorm:"primaryKey"`
	Name      string  `gorm:"size:255;index"`
	Address   string  `gorm:"size:255"`
	City      string  `gorm:"size:100;index"`
	State     string  `gorm:"size:50"`
	ZipCode   string  `gorm:"size:20"`
	Latitude  float64 `gorm:"type:decimal(9,6)"`
	Longitude float64 `gorm:"type:decimal(9,6)"`
	Rating    float64
	MinPrice  float64
	MaxPrice  float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Property) TableName() string { return "apartment_properties_listings" }

// Unit is one rentable unit inside a property.
type Unit struct {
	Id            int64  `gorm:"primaryKey"`
	PropertyId    int64  `gorm:"index"`
	UnitNumber    string `gorm:"size:20"`
	Bedrooms      int
	Bathrooms     int
	Sqft          int
	Rent          float64
	IsAvailable   bool `gorm:"index"`
	AvailableFrom string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Unit) TableName() string { return "apartment_units" }

type Review struct {
	Id         int64 `gorm:"primaryKey"`
	PropertyId int64 `gorm:"index"`
	UserId     int64
	Rating     float64
	Comment    string `gorm:"type:text"`
	CreatedAt  time.Time
}

func (Review) TableName() string { return "property_reviews" }

type Photo struct {
	Id         int64 `gorm:"primaryKey"`
	PropertyId int64 `gorm:"index"`
	Caption    string
	URL        string `gorm:"size:512"`
	CreatedAt  time.Time
}

func (Photo) TableName() string { return "property_photos" }

type Attraction struct {
	Id        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:255"`
	Category  string `gorm:"size:50;index"`
	Latitude  float64
	Longitude float64
}

func (Attraction) TableName() string { return "local_attractions" }

type TransitStop struct {
	Id        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:255"`
	StopType  string `gorm:"size:50"`
	Latitude  float64
	Longitude float64
}

func (TransitStop) TableName() string { return "transit_stops" }

type TransitRoute struct {
	Id          int64  `gorm:"primaryKey"`
	RouteName   string `gorm:"size:100"`
	RouteType   string `gorm:"size:50"`
	Description string `gorm:"type:text"`
}

func (TransitRoute) TableName() string { return "transit_routes" }

type SafetyIncident struct {
	Id           int64  `gorm:"primaryKey"`
	IncidentType string `gorm:"size:100"`
	Severity     string `gorm:"size:20"`
	Description  string `gorm:"type:text"`
	Latitude     float64
	Longitude    float64
	OccurredAt   time.Time `gorm:"index"`
}

func (SafetyIncident) TableName() string { return "safety_incidents" }

type CommunityPost struct {
	Id        int64  `gorm:"primaryKey"`
	UserId    int64  `gorm:"index"`
	Title     string `gorm:"size:255"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

func (CommunityPost) TableName() string { return "community_posts" }

type RoomListing struct {
	Id            int64  `gorm:"primaryKey"`
	Title         string `gorm:"size:255"`
	Rent          float64
	City          string `gorm:"size:100"`
	AvailableFrom string
	CreatedAt     time.Time `gorm:"index"`
}

func (RoomListing) TableName() string { return "room_listings" }

type UserFavorite struct {
	Id         int64 `gorm:"primaryKey"`
	UserId     int64 `gorm:"index"`
	PropertyId int64
	CreatedAt  time.Time
}

func (UserFavorite) TableName() string { return "user_favorites" }

type UserNotification struct {
	Id        int64  `gorm:"primaryKey"`
	UserId    int64  `gorm:"index"`
	Message   string `gorm:"type:text"`
	IsRead    bool   `gorm:"index"`
	CreatedAt time.Time
}

func (UserNotification) TableName() string { return "user_notifications" }

type UserReport struct {
	Id        int64  `gorm:"primaryKey"`
	UserId    int64  `gorm:"index"`
	Subject   string `gorm:"size:255"`
	Status    string `gorm:"size:50"`
	CreatedAt time.Time
}

func (UserReport) TableName() string { return "user_reports" }

type UserPreference struct {
	Id                 int64 `gorm:"primaryKey"`
	UserId             int64 `gorm:"uniqueIndex"`
	PreferredCity      string
	BudgetMin          float64
	BudgetMax          float64
	Bedrooms           int
	CommuteDestination string
	MoveInDate         string
	Pets               string
	Lifestyle          string
	UpdatedAt          time.Time
}

func (UserPreference) TableName() string { return "user_preferences" }

// Conversation is the durable chat history row written by the consumer
// service.
type Conversation struct {
	Id        int64  `gorm:"primaryKey"`
	SessionId string `gorm:"size:100;index"`
	Identity  string `gorm:"size:100;index"`
	UserId    int64
	UserEmail string `gorm:"size:255"`
	Page      string `gorm:"size:255"`
	Message   string `gorm:"type:text"`
	Response  string `gorm:"type:text"`
	Tokens    int
	Cost      float64
	Fallback  bool
	LatencyMs int64
	CreatedAt time.Time `gorm:"index"`
}

func (Conversation) TableName() string { return "assistant_conversations" }

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Property{},
		&Unit{},
		&Review{},
		&Photo{},
		&Attraction{},
		&TransitStop{},
		&TransitRoute{},
		&SafetyIncident{},
		&CommunityPost{},
		&RoomListing{},
		&UserFavorite{},
		&UserNotification{},
		&UserReport{},
		&UserPreference{},
		&Conversation{},
	}
}
