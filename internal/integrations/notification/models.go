package notification

// ConfirmationRequest тело запроса на отправку письма о записи
type ConfirmationRequest struct {
	To          string             `json:"to"`
	Appointment AppointmentSummary `json:"appointment"`
}

type AppointmentSummary struct {
	StartTime   string `json:"start_time"` // RFC3339
	ServiceName string `json:"service_name"`
	StaffName   string `json:"staff_name"`
	Price       int64  `json:"price"`
}

type errorResponse struct {
	Error string `json:"error"`
}
