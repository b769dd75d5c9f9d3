package schemas

import "github.com/petween/backend/internal/security"

type CreateUserRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = security.SanitizeName(r.Name)
}

func (r *CreateUserRequest) Validate() error {
	r.Normalize()
	return validateStruct(r)
}

type CreatePetRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Species  string `json:"species" validate:"required,max=100"`
	Chunky   int    `json:"chunky" validate:"gte=0"`
	Size     int    `json:"size" validate:"gte=0"`
	OwnerIDs []uint `json:"owner_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

func (r *CreatePetRequest) Normalize() {
	r.Name = security.SanitizeName(r.Name)
	r.Species = security.SanitizeName(r.Species)
}

func (r *CreatePetRequest) Validate() error {
	r.Normalize()
	return validateStruct(r)
}

type AddFriendRequest struct {
	FriendID uint `json:"friend_id" validate:"required,gt=0"`
}

func (r *AddFriendRequest) Validate() error {
	return validateStruct(r)
}
