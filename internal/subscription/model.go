package subscription

import "time"

// PackageID is the storage identifier of a package row.
type PackageID string

// PackageKey is the business identifier clients use, e.g. "basic_monthly".
type PackageKey string

type Package struct {
	ID           PackageID  `db:"id" json:"id"`
	Key          PackageKey `db:"key" json:"key"`
	Name         string     `db:"name" json:"name"`
	Description  string     `db:"description" json:"description"`
	PriceCents   int64      `db:"price_cents" json:"priceCents"`
	DurationDays int        `db:"duration_days" json:"durationDays"`
	SessionLimit *int       `db:"session_limit" json:"sessionLimit,omitempty"`
	GymLimit     *int       `db:"gym_limit" json:"gymLimit,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
}

type Subscription struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	PackageID PackageID `db:"package_id" json:"packageId"`
	StartDate time.Time `db:"start_date" json:"startDate"`
	EndDate   time.Time `db:"end_date" json:"endDate"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateRequest struct {
	SubscriptionPackageID string `json:"subscriptionPackageId" binding:"required"`
	// StartDate is RFC 3339 or YYYY-MM-DD. Empty means now.
	StartDate string `json:"startDate"`
}

type UpdateRequest struct {
	IsActive *bool      `json:"isActive"`
	EndDate  *time.Time `json:"endDate"`
}

// EndDateFor adds the package duration in calendar days.
func EndDateFor(start time.Time, durationDays int) time.Time {
	return start.AddDate(0, 0, durationDays)
}

// ParseStartDate accepts RFC 3339 timestamps and plain dates.
func ParseStartDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidStartDate
}
