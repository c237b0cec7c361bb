package entities

import "time"

// Client is a pet owner. Reference data only.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Pet is a patient of the clinic, owned by a Client.
type Pet struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed,omitempty"`
	AgeYears  int       `json:"age_years"`
	Sex       string    `json:"sex,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
