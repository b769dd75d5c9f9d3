package repositories

import (
	"context"
	stderrors "errors"

	"github.com/petween/backend/internal/models"
	"github.com/petween/backend/pkg/errors"
	"gorm.io/gorm"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

// CreatePet creates a new pet without owners
func (r *PetRepository) CreatePet(ctx context.Context, pet *models.Pet) error {
	if err := r.db.WithContext(ctx).Create(pet).Error; err != nil {
		return wrapWriteError(err, "failed to create pet")
	}
	return nil
}

// CreatePetForOwners creates a pet and assigns it to every owner in one
// transaction. Duplicate owner IDs are ignored; any missing owner aborts
// the whole operation with NOT_FOUND.
func (r *PetRepository) CreatePetForOwners(ctx context.Context, pet *models.Pet, ownerIDs []uint) error {
	owners := uniqueIDs(ownerIDs)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ownerID := range owners {
			if err := requireExists(tx, &models.User{}, ownerID, "user"); err != nil {
				return err
			}
		}

		if err := tx.Create(pet).Error; err != nil {
			return err
		}

		if len(owners) == 0 {
			return nil
		}
		links := make([]models.UserPet, 0, len(owners))
		for _, ownerID := range owners {
			links = append(links, models.UserPet{UserID: ownerID, PetID: pet.ID})
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return wrapWriteError(err, "failed to create pet")
	}
	return nil
}

// GetPetByID retrieves a pet by ID
func (r *PetRepository) GetPetByID(ctx context.Context, id uint) (*models.Pet, error) {
	var pet models.Pet
	result := r.db.WithContext(ctx).First(&pet, id)

	if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, errors.New(errors.ErrCodeNotFound, "pet not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get pet")
	}

	return &pet, nil
}

// ListOwners returns the users owning a pet ordered by user ID
func (r *PetRepository) ListOwners(ctx context.Context, petID uint) ([]models.User, error) {
	db := r.db.WithContext(ctx)
	if err := requireExists(db, &models.Pet{}, petID, "pet"); err != nil {
		return nil, err
	}

	owners := make([]models.User, 0)
	err := db.Model(&models.User{}).
		Select("users.*").
		Joins("JOIN user_pets ON user_pets.user_id = users.id").
		Where("user_pets.pet_id = ?", petID).
		Order("users.id").
		Find(&owners).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list owners")
	}

	return owners, nil
}

func (r *PetRepository) CountPets(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Pet{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count pets")
	}
	return count, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
