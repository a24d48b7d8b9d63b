package model

// MonthlyVisits is one bar of the dashboard visits chart.
type MonthlyVisits struct {
	Month  string `json:"month"`
	Visits int    `json:"visits"`
}

// DashboardStats aggregates the roster into the landing-page KPIs.
type DashboardStats struct {
	TotalPatients     int             `json:"total_patients"`
	Revenue           int             `json:"revenue"`
	AppointmentsToday int             `json:"appointments_today"`
	Monthly           []MonthlyVisits `json:"monthly"`
}
