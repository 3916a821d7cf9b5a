package models

// Appointment is the narrow view of a booked appointment needed to build a
// calendar export. Empty string means the field was not supplied; a zero
// DurationMinutes means the service did not specify one.
type Appointment struct {
	ID              int64  // Unique identifier of the appointment.
	Date            string // Appointment date, "2006-01-02".
	StartTime       string // Appointment start time, "15:04".
	DurationMinutes int    // Service duration in minutes, 0 if unspecified.
	ServiceName     string // Name of the booked service, optional.
	BusinessName    string // Name of the business.
	BusinessAddress string // Street address of the business, optional.
	BusinessCity    string // City of the business, optional.
	BusinessState   string // State of the business, optional.
	BusinessZip     string // ZIP code of the business, optional.
	CustomerName    string // Name of the customer, optional.
	CustomerEmail   string // Email of the customer, optional.
	Notes           string // Free-text notes attached to the appointment, optional.
}
