package request

import "vetclinic/internal/usecase"

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r CreateClientRequest) ToCommand() usecase.CreateClientCommand {
	return usecase.CreateClientCommand{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

type CreatePetRequest struct {
	OwnerID  string `json:"owner_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Species  string `json:"species" binding:"required"`
	Breed    string `json:"breed"`
	AgeYears int    `json:"age_years"`
	Sex      string `json:"sex"`
}

func (r CreatePetRequest) ToCommand() usecase.CreatePetCommand {
	return usecase.CreatePetCommand{
		OwnerID:  r.OwnerID,
		Name:     r.Name,
		Species:  r.Species,
		Breed:    r.Breed,
		AgeYears: r.AgeYears,
		Sex:      r.Sex,
	}
}
