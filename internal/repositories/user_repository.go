package repositories

import (
	"context"
	stderrors "errors"

	"github.com/petween/backend/internal/models"
	"github.com/petween/backend/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return wrapWriteError(err, "failed to create user")
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, id)

	if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// ListUsers returns every user ordered by ID
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list users")
	}
	return users, nil
}

func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count users")
	}
	return count, nil
}

// AssignPet records that the user owns the pet.
// Returns NOT_FOUND if either side is missing and ALREADY_EXISTS if the
// pairing is already stored.
func (r *UserRepository) AssignPet(ctx context.Context, userID, petID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.User{}, userID, "user"); err != nil {
			return err
		}
		if err := requireExists(tx, &models.Pet{}, petID, "pet"); err != nil {
			return err
		}

		owned, err := hasPet(tx, userID, petID)
		if err != nil {
			return err
		}
		if owned {
			return errors.New(errors.ErrCodeAlreadyExists, "pet already assigned to user")
		}

		return tx.Create(&models.UserPet{UserID: userID, PetID: petID}).Error
	})
	if err != nil {
		return wrapWriteError(err, "failed to assign pet")
	}
	return nil
}

// HasPet checks whether the user owns the pet
func (r *UserRepository) HasPet(ctx context.Context, userID, petID uint) (bool, error) {
	return hasPet(r.db.WithContext(ctx), userID, petID)
}

func hasPet(tx *gorm.DB, userID, petID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.UserPet{}).
		Where("user_id = ? AND pet_id = ?", userID, petID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check pet ownership")
	}
	return count > 0, nil
}

// ListPets returns the pets owned by a user ordered by pet ID. A user
// without pets yields an empty slice.
func (r *UserRepository) ListPets(ctx context.Context, userID uint) ([]models.Pet, error) {
	db := r.db.WithContext(ctx)
	if err := requireExists(db, &models.User{}, userID, "user"); err != nil {
		return nil, err
	}

	pets := make([]models.Pet, 0)
	err := db.Model(&models.Pet{}).
		Select("pets.*").
		Joins("JOIN user_pets ON user_pets.pet_id = pets.id").
		Where("user_pets.user_id = ?", userID).
		Order("pets.id").
		Find(&pets).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list pets")
	}

	return pets, nil
}
