package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/petween/backend/internal/database"
	"github.com/petween/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "repositories.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.AutoMigrate(db))

	return db
}

func createUser(t *testing.T, repo *UserRepository, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func createPet(t *testing.T, repo *PetRepository, name, species string) *models.Pet {
	t.Helper()
	pet := &models.Pet{Name: name, Species: species}
	require.NoError(t, repo.CreatePet(context.Background(), pet))
	return pet
}
