package pto

// SubmitRequestDTO is the request payload for POST /pto/request.
type SubmitRequestDTO struct {
	RequestDate string `json:"requestDate"`
	Hours       int    `json:"hours"`
	Reason      string `json:"reason"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate checks all three fields are present and hours is positive.
func (dto SubmitRequestDTO) Validate() error {
	if dto.RequestDate == "" || dto.Hours == 0 || dto.Reason == "" {
		return ValidationError{Msg: "requestDate, hours, and reason are required"}
	}
	if dto.Hours < 0 {
		return ValidationError{Msg: "hours must be a positive number"}
	}
	return nil
}

// MessageResponse is the success body of POST /pto/request.
type MessageResponse struct {
	Message string `json:"message"`
}
