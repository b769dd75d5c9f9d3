package handlers

import (
	"net/http"
	"os"

	"github.com/petween/backend/internal/models"
	"github.com/petween/backend/internal/schemas"
	"github.com/petween/backend/pkg/errors"
	"github.com/petween/backend/pkg/logger"
)

// multipartOverhead is allowed on top of the image size for the other
// form fields and part headers.
const multipartOverhead = 1 << 20

// HandleCreateUser creates a user from {"name": ...} or ?name=.
func (h *HandlerManager) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req schemas.CreateUserRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Name == "" {
		req.Name = r.URL.Query().Get("name")
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	user := &models.User{Name: req.Name}
	if err := h.UserRepo.CreateUser(r.Context(), user); err != nil {
		writeError(w, r, err)
		return
	}

	logger.Info("User created", "user_id", user.ID)
	writeJSON(w, http.StatusOK, schemas.NewUserOut(*user))
}

// HandleCreateUserWithImage creates a user from a multipart form with a
// "name" field and an "image" file.
func (h *HandlerManager) HandleCreateUserWithImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.UploadMaxSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		writeError(w, r, errors.Wrap(err, errors.ErrCodeValidation, "invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := schemas.CreateUserRequest{Name: r.FormValue("name")}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, r, errors.Wrap(err, errors.ErrCodeValidation, "image file is required"))
		return
	}
	defer file.Close()

	path, err := h.Images.Save(header.Filename, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user := &models.User{Name: req.Name, ProfileImage: &path}
	if err := h.UserRepo.CreateUser(r.Context(), user); err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			logger.Warn("Failed to remove orphaned image", "path", path, "error", rmErr)
		}
		writeError(w, r, err)
		return
	}

	logger.Info("User created with image", "user_id", user.ID, "image", path)
	writeJSON(w, http.StatusOK, schemas.NewUserOut(*user))
}

// HandleListUsers returns every user.
func (h *HandlerManager) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserRepo.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewUserList(users))
}

// HandleGetUser returns one user or 404.
func (h *HandlerManager) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.UserRepo.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewUserOut(*user))
}

// HandleAssignPet gives an existing pet to an existing user.
func (h *HandlerManager) HandleAssignPet(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	petID, err := pathID(r, "pet_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.UserRepo.AssignPet(r.Context(), userID, petID); err != nil {
		writeError(w, r, err)
		return
	}

	pet, err := h.PetRepo.GetPetByID(r.Context(), petID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Info("Pet assigned", "user_id", userID, "pet_id", petID)
	writeJSON(w, http.StatusOK, schemas.NewPetOut(*pet))
}

// HandleListUserPets returns the pets a user owns.
func (h *HandlerManager) HandleListUserPets(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	pets, err := h.UserRepo.ListPets(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewPetList(pets))
}
