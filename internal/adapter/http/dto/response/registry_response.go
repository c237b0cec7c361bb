package response

import (
	"time"

	"vetclinic/internal/domain/entities"
)

type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromClient(c entities.Client) ClientResponse {
	return ClientResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, CreatedAt: c.CreatedAt}
}

type PetResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed,omitempty"`
	AgeYears  int       `json:"age_years"`
	Sex       string    `json:"sex,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromPet(p entities.Pet) PetResponse {
	return PetResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		AgeYears:  p.AgeYears,
		Sex:       p.Sex,
		CreatedAt: p.CreatedAt,
	}
}
