package seed

import (
	"context"
	"math/rand"

	"github.com/petween/backend/internal/models"
	"github.com/petween/backend/internal/repositories"
	"github.com/petween/backend/pkg/errors"
	"github.com/petween/backend/pkg/logger"
	"gorm.io/gorm"
)

const maxRandomPets = 3

// Data is the input of a seed run.
type Data struct {
	Users []string
	Pets  []models.Pet
}

// DefaultData returns the built-in sample users and pets.
func DefaultData() Data {
	users := []string{
		"Alice", "Grace", "Eva", "Talia",
		"Kate", "Zephin", "Darin", "Fionn",
		"Esben", "Haruno", "Allan", "Jules",
		"Izana", "Inui", "Mickey", "Daisy",
		"Pluto", "Moritz",
	}

	pets := []models.Pet{
		{Name: "Bulki", Species: models.SpeciesCat, Chunky: 80, Size: 10},
		{Name: "Vivi", Species: models.SpeciesDino},
		{Name: "Nala", Species: models.SpeciesFrog},
		{Name: "Cali", Species: models.SpeciesCat},
		{Name: "Yelena", Species: models.SpeciesDino},
		{Name: "Charlyn", Species: models.SpeciesFrog},
		{Name: "Bonni", Species: models.SpeciesDino},
		{Name: "Millie", Species: models.SpeciesFrog},
		{Name: "Hela", Species: models.SpeciesCat},
		{Name: "Nami", Species: models.SpeciesDino},
		{Name: "Artemis", Species: models.SpeciesFrog},
		{Name: "Calipso", Species: models.SpeciesDino},
		{Name: "Zoe", Species: models.SpeciesFrog},
		{Name: "Oreo", Species: models.SpeciesCat},
		{Name: "Tiffi", Species: models.SpeciesDino},
		{Name: "Willow", Species: models.SpeciesFrog},
		{Name: "Molly", Species: models.SpeciesDino},
		{Name: "Rue", Species: models.SpeciesFrog},
		{Name: "Zelda", Species: models.SpeciesCat},
		{Name: "Robin", Species: models.SpeciesDino},
		{Name: "Tessa", Species: models.SpeciesFrog},
	}

	return Data{Users: users, Pets: pets}
}

// Result counts what a run created.
type Result struct {
	Skipped     bool
	Users       int
	Pets        int
	Friendships int
	Assignments int
}

type Seeder struct {
	users   *repositories.UserRepository
	pets    *repositories.PetRepository
	friends *repositories.FriendRepository
	rng     *rand.Rand
}

// New creates a seeder. All random choices come from rng, so a fixed
// source gives the same relations for the same data.
func New(db *gorm.DB, rng *rand.Rand) *Seeder {
	return &Seeder{
		users:   repositories.NewUserRepository(db),
		pets:    repositories.NewPetRepository(db),
		friends: repositories.NewFriendRepository(db),
		rng:     rng,
	}
}

// Run inserts data and links it with fixed and random relations. It does
// nothing when users already exist unless force is set.
func (s *Seeder) Run(ctx context.Context, data Data, force bool) (*Result, error) {
	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 && !force {
		pets, err := s.pets.CountPets(ctx)
		if err != nil {
			return nil, err
		}
		logger.Info("Database already seeded, skipping", "users", count, "pets", pets)
		return &Result{Skipped: true}, nil
	}

	res := &Result{}

	users := make([]models.User, 0, len(data.Users))
	for _, name := range data.Users {
		user := models.User{Name: name}
		if err := s.users.CreateUser(ctx, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	res.Users = len(users)

	pets := make([]models.Pet, 0, len(data.Pets))
	for _, p := range data.Pets {
		pet := models.Pet{Name: p.Name, Species: p.Species, Chunky: p.Chunky, Size: p.Size}
		if err := s.pets.CreatePet(ctx, &pet); err != nil {
			return nil, err
		}
		pets = append(pets, pet)
	}
	res.Pets = len(pets)

	if err := s.assignFixed(ctx, users, pets, res); err != nil {
		return nil, err
	}
	if err := s.befriendRandomly(ctx, users, res); err != nil {
		return nil, err
	}
	if err := s.assignRandomly(ctx, users, pets, res); err != nil {
		return nil, err
	}

	logger.Info("Seeded database",
		"users", res.Users,
		"pets", res.Pets,
		"friendships", res.Friendships,
		"assignments", res.Assignments,
	)
	return res, nil
}

// assignFixed gives the first pet to the first two users and the second
// pet to the third user.
func (s *Seeder) assignFixed(ctx context.Context, users []models.User, pets []models.Pet, res *Result) error {
	fixed := [][2]int{{0, 0}, {1, 0}, {2, 1}}
	for _, f := range fixed {
		u, p := f[0], f[1]
		if u >= len(users) || p >= len(pets) {
			continue
		}
		if err := s.assign(ctx, users[u].ID, pets[p].ID, res); err != nil {
			return err
		}
	}
	return nil
}

// befriendRandomly picks for every user a random subset of the other
// users, between none and all but one of them.
func (s *Seeder) befriendRandomly(ctx context.Context, users []models.User, res *Result) error {
	if len(users) < 2 {
		return nil
	}

	for _, user := range users {
		k := s.rng.Intn(len(users))
		for _, idx := range s.rng.Perm(len(users))[:k] {
			other := users[idx]
			if other.ID == user.ID {
				continue
			}

			known, err := s.friends.AreFriends(ctx, user.ID, other.ID)
			if err != nil {
				return err
			}
			if known {
				continue
			}
			if err := s.friends.AddFriendship(ctx, user.ID, other.ID); err != nil {
				return err
			}
			res.Friendships++
		}
	}
	return nil
}

// assignRandomly gives every user up to three random pets.
func (s *Seeder) assignRandomly(ctx context.Context, users []models.User, pets []models.Pet, res *Result) error {
	if len(pets) == 0 {
		return nil
	}

	for _, user := range users {
		k := s.rng.Intn(maxRandomPets + 1)
		if k > len(pets) {
			k = len(pets)
		}
		for _, idx := range s.rng.Perm(len(pets))[:k] {
			if err := s.assign(ctx, user.ID, pets[idx].ID, res); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) assign(ctx context.Context, userID, petID uint, res *Result) error {
	err := s.users.AssignPet(ctx, userID, petID)
	if errors.HasCode(err, errors.ErrCodeAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}
	res.Assignments++
	return nil
}
