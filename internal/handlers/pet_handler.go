package handlers

import (
	"net/http"

	"github.com/petween/backend/internal/models"
	"github.com/petween/backend/internal/schemas"
	"github.com/petween/backend/pkg/logger"
)

// HandleCreatePet creates a pet. When owner_ids are given the pet is
// assigned to them in the same transaction and returned with its owners.
func (h *HandlerManager) HandleCreatePet(w http.ResponseWriter, r *http.Request) {
	var req schemas.CreatePetRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	pet := newPet(req)
	if len(req.OwnerIDs) == 0 {
		if err := h.PetRepo.CreatePet(r.Context(), pet); err != nil {
			writeError(w, r, err)
			return
		}
		logger.Info("Pet created", "pet_id", pet.ID)
		writeJSON(w, http.StatusOK, schemas.NewPetOut(*pet))
		return
	}

	h.createOwnedPet(w, r, pet, req.OwnerIDs)
}

// HandleCreatePetForUser creates a pet owned by the user in the path.
func (h *HandlerManager) HandleCreatePetForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req schemas.CreatePetRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	owners := append([]uint{userID}, req.OwnerIDs...)
	h.createOwnedPet(w, r, newPet(req), owners)
}

func (h *HandlerManager) createOwnedPet(w http.ResponseWriter, r *http.Request, pet *models.Pet, ownerIDs []uint) {
	if err := h.PetRepo.CreatePetForOwners(r.Context(), pet, ownerIDs); err != nil {
		writeError(w, r, err)
		return
	}

	owners, err := h.PetRepo.ListOwners(r.Context(), pet.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Info("Pet created", "pet_id", pet.ID, "owners", len(owners))
	writeJSON(w, http.StatusOK, schemas.NewPetDetailOut(*pet, owners))
}

// HandleGetPet returns a pet with its owners.
func (h *HandlerManager) HandleGetPet(w http.ResponseWriter, r *http.Request) {
	petID, err := pathID(r, "pet_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	pet, err := h.PetRepo.GetPetByID(r.Context(), petID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	owners, err := h.PetRepo.ListOwners(r.Context(), petID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewPetDetailOut(*pet, owners))
}

func newPet(req schemas.CreatePetRequest) *models.Pet {
	return &models.Pet{
		Name:    req.Name,
		Species: req.Species,
		Chunky:  req.Chunky,
		Size:    req.Size,
	}
}
