package model

// UserType is the visitor category used to select pricing rules.
type UserType string

const (
	UserResident    UserType = "resident"
	UserNonresident UserType = "nonresident"
	UserStaff       UserType = "staff"
	UserVolunteer   UserType = "volunteer"
	UserADA         UserType = "ada"
)

// UserTypeLabels is a read-only display table.
var UserTypeLabels = map[UserType]string{
	UserResident:    "San Diego Resident",
	UserNonresident: "Visitor",
	UserStaff:       "Staff",
	UserVolunteer:   "Volunteer",
	UserADA:         "ADA/Disabled",
}

// Valid reports whether the user type is one of the defined categories.
func (u UserType) Valid() bool {
	_, ok := UserTypeLabels[u]
	return ok
}

// DurationType determines how a pricing rule's rate is applied.
type DurationType string

const (
	DurationHourly DurationType = "hourly"
	DurationDaily  DurationType = "daily"
	DurationEvent  DurationType = "event"
)

// PricingRule is a time-ranged rate for a (tier, user type) pair.
// Rates are integer cents; money is never represented as a float.
type PricingRule struct {
	ID            int64        `gorm:"primaryKey;autoIncrement"`
	Tier          LotTier      `gorm:"index:idx_rule_tier_user;not null"`
	UserType      UserType     `gorm:"index:idx_rule_tier_user;size:16;not null"`
	DurationType  DurationType `gorm:"size:16;not null"`
	RateCents     int          `gorm:"not null"`
	MaxDailyCents *int
	EffectiveDate string  `gorm:"size:10;not null"`
	EndDate       *string `gorm:"size:10"`
}

// EnforcementPeriod is a recurring weekly window during which paid parking
// rules are active. Times are "HH:MM" clock strings; DaysOfWeek uses
// Sunday = 0.
type EnforcementPeriod struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	StartTime     string  `gorm:"size:5;not null"`
	EndTime       string  `gorm:"size:5;not null"`
	DaysOfWeek    []int   `gorm:"serializer:json"`
	EffectiveDate string  `gorm:"size:10;not null"`
	EndDate       *string `gorm:"size:10"`
}

// Holiday suspends enforcement for a whole day. Recurring holidays match
// every year on the same month/day.
type Holiday struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:128;not null"`
	Date        string `gorm:"size:10;not null"`
	IsRecurring bool   `gorm:"not null"`
}
