package handlers

import (
	"github.com/petween/backend/internal/config"
	"github.com/petween/backend/internal/repositories"
	"github.com/petween/backend/internal/storage"
	"gorm.io/gorm"
)

type HandlerManager struct {
	Config     *config.Config
	DB         *gorm.DB
	UserRepo   *repositories.UserRepository
	PetRepo    *repositories.PetRepository
	FriendRepo *repositories.FriendRepository
	Images     *storage.ImageStore
}

func NewHandlerManager(
	cfg *config.Config,
	db *gorm.DB,
	userRepo *repositories.UserRepository,
	petRepo *repositories.PetRepository,
	friendRepo *repositories.FriendRepository,
	images *storage.ImageStore,
) *HandlerManager {
	return &HandlerManager{
		Config:     cfg,
		DB:         db,
		UserRepo:   userRepo,
		PetRepo:    petRepo,
		FriendRepo: friendRepo,
		Images:     images,
	}
}

// NewFromDB wires the repositories and image store for db.
func NewFromDB(cfg *config.Config, db *gorm.DB) *HandlerManager {
	return NewHandlerManager(
		cfg,
		db,
		repositories.NewUserRepository(db),
		repositories.NewPetRepository(db),
		repositories.NewFriendRepository(db),
		storage.NewImageStore(cfg.UploadDir, cfg.UploadMaxSize, storage.DefaultImageTypes),
	)
}
