package models

// AdminStats is the admin dashboard balance summary.
type AdminStats struct {
	TotalRevenue    float64   `json:"totalRevenue"`
	LastSixPayments []Booking `json:"lastSixPayments"`
}

// ChartStats compares newsletter subscribers against paid members.
type ChartStats struct {
	SubscribersCount int64 `json:"subscribersCount"`
	PaidMembersCount int64 `json:"paidMembersCount"`
}

// MonthlyRevenue is one month of settled booking revenue.
type MonthlyRevenue struct {
	Month  string  `json:"month"` // "Jan" .. "Dec"
	Amount float64 `json:"amount"`
}
