package repositories

import (
	"context"

	"github.com/petween/backend/internal/models"
	"github.com/petween/backend/pkg/errors"
	"gorm.io/gorm"
)

type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// AddFriendship stores a mutual friendship between two existing users
func (r *FriendRepository) AddFriendship(ctx context.Context, userID, friendID uint) error {
	if userID == friendID {
		return errors.New(errors.ErrCodeValidation, "a user cannot befriend themselves")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.User{}, userID, "user"); err != nil {
			return err
		}
		if err := requireExists(tx, &models.User{}, friendID, "friend"); err != nil {
			return err
		}

		friends, err := areFriends(tx, userID, friendID)
		if err != nil {
			return err
		}
		if friends {
			return errors.New(errors.ErrCodeAlreadyExists, "already friends")
		}

		friendship := models.NewFriendship(userID, friendID)
		return tx.Create(&friendship).Error
	})
	if err != nil {
		return wrapWriteError(err, "failed to add friend")
	}
	return nil
}

// GetFriends retrieves list of user's friends ordered by ID
func (r *FriendRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	db := r.db.WithContext(ctx)
	if err := requireExists(db, &models.User{}, userID, "user"); err != nil {
		return nil, err
	}

	friends := make([]models.User, 0)
	err := db.Model(&models.User{}).
		Select("users.*").
		Joins("JOIN friendships ON (friendships.user_id = ? AND friendships.friend_id = users.id) OR (friendships.friend_id = ? AND friendships.user_id = users.id)",
			userID, userID).
		Order("users.id").
		Find(&friends).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get friends")
	}

	return friends, nil
}

// AreFriends checks if two users are friends
func (r *FriendRepository) AreFriends(ctx context.Context, user1ID, user2ID uint) (bool, error) {
	return areFriends(r.db.WithContext(ctx), user1ID, user2ID)
}

func areFriends(tx *gorm.DB, user1ID, user2ID uint) (bool, error) {
	pair := models.NewFriendship(user1ID, user2ID)

	var count int64
	err := tx.Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", pair.UserID, pair.FriendID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check friendship")
	}

	return count > 0, nil
}
