package customer

import (
	"time"
)

// Customer is immutable once created. Behavior and transaction records
// reference it but never own it.
type Customer struct {
	CustomerID   string    `db:"customer_id"`
	CustomerName string    `db:"customer_name"`
	Gender       string    `db:"gender"`
	Birth        time.Time `db:"birth"`
	Email        string    `db:"email"`
	PhoneNumber  string    `db:"phone_number"`
	City         string    `db:"city"`
	RegisteredAt time.Time `db:"registered_at"`
}

func NewCustomer(id, name, gender string, birth time.Time, email, phone, city string, registeredAt time.Time) (*Customer, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if gender != "M" && gender != "F" {
		return nil, ErrInvalidGender
	}

	return &Customer{
		CustomerID:   id,
		CustomerName: name,
		Gender:       gender,
		Birth:        birth,
		Email:        email,
		PhoneNumber:  phone,
		City:         city,
		RegisteredAt: registeredAt,
	}, nil
}
