package models

// PaymentStatusSuccess is the only status the mock gateway ever records.
const PaymentStatusSuccess = "Success"

// Payment is a recorded rent payment.
type Payment struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	Amount    int    `json:"amount"`
	Method    string `json:"method"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// PaymentOrder is the mock gateway order handed to the frontend.
type PaymentOrder struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
	Amount   int    `json:"amount"`
	Message  string `json:"message"`
}
