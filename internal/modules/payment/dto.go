package payment

type ProcessRefundsResponse struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}
