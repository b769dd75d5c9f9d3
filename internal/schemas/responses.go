package schemas

import "github.com/petween/backend/internal/models"

type UserOut struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	ProfileImage *string `json:"profile_image"`
}

type PetOut struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Chunky  int    `json:"chunky"`
	Size    int    `json:"size"`
}

// PetDetailOut is a pet together with its owners.
type PetDetailOut struct {
	PetOut
	Owners []UserOut `json:"owners"`
}

type MessageOut struct {
	Message string `json:"message"`
}

func NewUserOut(u models.User) UserOut {
	return UserOut{
		ID:           u.ID,
		Name:         u.Name,
		ProfileImage: u.ProfileImage,
	}
}

func NewUserList(users []models.User) []UserOut {
	out := make([]UserOut, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserOut(u))
	}
	return out
}

func NewPetOut(p models.Pet) PetOut {
	return PetOut{
		ID:      p.ID,
		Name:    p.Name,
		Species: p.Species,
		Chunky:  p.Chunky,
		Size:    p.Size,
	}
}

func NewPetList(pets []models.Pet) []PetOut {
	out := make([]PetOut, 0, len(pets))
	for _, p := range pets {
		out = append(out, NewPetOut(p))
	}
	return out
}

func NewPetDetailOut(p models.Pet, owners []models.User) PetDetailOut {
	return PetDetailOut{
		PetOut: NewPetOut(p),
		Owners: NewUserList(owners),
	}
}
