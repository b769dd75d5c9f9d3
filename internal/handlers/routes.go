package handlers

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

const (
	userVar = "{user_id:[0-9]+}"
	petVar  = "{pet_id:[0-9]+}"
)

// RegisterRoutes mounts every endpoint on r. Collection routes answer
// with and without a trailing slash. The /users prefix is registered
// first since /user is a prefix of it.
func (h *HandlerManager) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/hello", h.HandleHello).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HandleHealthz).Methods(http.MethodGet)

	users := r.PathPrefix("/users").Subrouter()
	users.HandleFunc("", h.HandleCreateUser).Methods(http.MethodPost)
	users.HandleFunc("/", h.HandleCreateUser).Methods(http.MethodPost)
	users.HandleFunc("", h.HandleListUsers).Methods(http.MethodGet)
	users.HandleFunc("/", h.HandleListUsers).Methods(http.MethodGet)
	users.HandleFunc("/"+userVar, h.HandleGetUser).Methods(http.MethodGet)
	users.HandleFunc("/"+userVar+"/pets", h.HandleListUserPets).Methods(http.MethodGet)
	users.HandleFunc("/"+userVar+"/pets", h.HandleCreatePetForUser).Methods(http.MethodPost)
	users.HandleFunc("/"+userVar+"/friends", h.HandleListFriends).Methods(http.MethodGet)
	users.HandleFunc("/"+userVar+"/friends/{friend_id:[0-9]+}", h.HandleAddFriend).Methods(http.MethodPost)

	user := r.PathPrefix("/user").Subrouter()
	user.HandleFunc("", h.HandleCreateUser).Methods(http.MethodPost)
	user.HandleFunc("/", h.HandleCreateUser).Methods(http.MethodPost)
	user.HandleFunc("", h.HandleListUsers).Methods(http.MethodGet)
	user.HandleFunc("/", h.HandleListUsers).Methods(http.MethodGet)
	user.HandleFunc("/with-image", h.HandleCreateUserWithImage).Methods(http.MethodPost)
	user.HandleFunc("/"+userVar, h.HandleGetUser).Methods(http.MethodGet)
	user.HandleFunc("/"+userVar+"/pets/"+petVar, h.HandleAssignPet).Methods(http.MethodPost)
	user.HandleFunc("/users/"+userVar+"/friend", h.HandleAddFriend).Methods(http.MethodPost)
	user.HandleFunc("/users/"+userVar+"/pets", h.HandleListUserPets).Methods(http.MethodGet)
	user.HandleFunc("/users/"+userVar+"/friends", h.HandleListFriends).Methods(http.MethodGet)

	pets := r.PathPrefix("/pets").Subrouter()
	pets.HandleFunc("", h.HandleCreatePet).Methods(http.MethodPost)
	pets.HandleFunc("/", h.HandleCreatePet).Methods(http.MethodPost)
	pets.HandleFunc("/"+petVar, h.HandleGetPet).Methods(http.MethodGet)

	uploads := http.StripPrefix("/uploads/", http.FileServer(noListingFS{http.Dir(h.Images.Dir())}))
	r.PathPrefix("/uploads/").Handler(uploads).Methods(http.MethodGet)
}

// noListingFS hides directory indexes of the upload directory.
type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
