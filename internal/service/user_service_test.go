package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn           func(context.Context, *models.User) error
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByIDsFn         func(context.Context, []uint) ([]models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	existsFn           func(context.Context, uint) (bool, error)
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
	listFn             func(context.Context, models.ListParams) ([]models.User, int64, error)
	createLocationFn   func(context.Context, *models.Location) error
	updateLocationFn   func(context.Context, *models.Location) error
	getLocationByIDsFn func(context.Context, []uint) ([]models.Location, error)
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }
func (s *userRepoStub) List(ctx context.Context, p models.ListParams) ([]models.User, int64, error) {
	return s.listFn(ctx, p)
}
func (s *userRepoStub) CreateLocation(ctx context.Context, l *models.Location) error {
	return s.createLocationFn(ctx, l)
}
func (s *userRepoStub) UpdateLocation(ctx context.Context, l *models.Location) error {
	return s.updateLocationFn(ctx, l)
}
func (s *userRepoStub) GetLocationByIDs(ctx context.Context, ids []uint) ([]models.Location, error) {
	return s.getLocationByIDsFn(ctx, ids)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error { u.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Email: "existing@example.com"}, nil
		},
		getByIDsFn:   func(_ context.Context, _ []uint) ([]models.User, error) { return nil, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		existsFn:     func(_ context.Context, _ uint) (bool, error) { return true, nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		listFn: func(_ context.Context, _ models.ListParams) ([]models.User, int64, error) {
			return nil, 0, nil
		},
		createLocationFn:   func(_ context.Context, l *models.Location) error { l.ID = 10; return nil },
		updateLocationFn:   func(_ context.Context, _ *models.Location) error { return nil },
		getLocationByIDsFn: func(_ context.Context, _ []uint) ([]models.Location, error) { return nil, nil },
	}
}

func validCreateUserInput() CreateUserInput {
	return CreateUserInput{
		Title:       "mr",
		FirstName:   "Jon",
		LastName:    "Snow",
		Gender:      "male",
		Email:       "jon@example.com",
		DateOfBirth: "1990-01-15",
		Phone:       "555-0100",
		Picture:     "https://example.com/p.jpg",
		Location:    &LocationInput{Street: "1 Wall", City: "Castle Black", State: "North", Country: "Westeros", Timezone: "+0:00"},
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, models.ErrorCode(err))
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo())
	ctx := context.Background()

	t.Run("missing required field", func(t *testing.T) {
		t.Parallel()
		in := validCreateUserInput()
		in.FirstName = ""
		_, err := svc.CreateUser(ctx, in)
		assertCode(t, err, models.CodeValidation)
		assert.EqualError(t, err, "All fields are required")
	})

	t.Run("missing location", func(t *testing.T) {
		t.Parallel()
		in := validCreateUserInput()
		in.Location = nil
		_, err := svc.CreateUser(ctx, in)
		assertCode(t, err, models.CodeValidation)
	})

	t.Run("gender is optional", func(t *testing.T) {
		t.Parallel()
		in := validCreateUserInput()
		in.Gender = ""
		_, err := svc.CreateUser(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()
		in := validCreateUserInput()
		in.Email = "not-an-email"
		_, err := svc.CreateUser(ctx, in)
		assertCode(t, err, models.CodeValidation)
		assert.EqualError(t, err, "Invalid email format")
	})

	t.Run("invalid date", func(t *testing.T) {
		t.Parallel()
		in := validCreateUserInput()
		in.DateOfBirth = "15/01/1990"
		_, err := svc.CreateUser(ctx, in)
		assertCode(t, err, models.CodeValidation)
		assert.EqualError(t, err, "Invalid date format")
	})
}

func TestUserService_CreateUser_DuplicateEmailPrecheck(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		return &models.User{ID: 7, Email: email}, nil
	}
	svc := NewUserService(repo)

	_, err := svc.CreateUser(context.Background(), validCreateUserInput())
	assertCode(t, err, models.CodeDuplicate)
}

func TestUserService_CreateUser_Success(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	var createdLoc *models.Location
	repo.createLocationFn = func(_ context.Context, l *models.Location) error {
		l.ID = 33
		createdLoc = l
		return nil
	}
	svc := NewUserService(repo)

	user, err := svc.CreateUser(context.Background(), validCreateUserInput())
	require.NoError(t, err)
	assert.EqualValues(t, 1, user.ID)
	assert.Equal(t, "jon@example.com", user.Email)
	require.NotNil(t, createdLoc)
	assert.EqualValues(t, 33, user.LocationID)
	assert.Equal(t, 1990, user.DateOfBirth.Year())
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewUserService(repo)
		_, err := svc.UpdateUser(ctx, 99, UpdateUserInput{})
		assertCode(t, err, models.CodeNotFound)
	})

	t.Run("invalid supplied email", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		bad := "nope"
		_, err := svc.UpdateUser(ctx, 1, UpdateUserInput{Email: &bad})
		assertCode(t, err, models.CodeValidation)
	})

	t.Run("applies supplied fields only", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, FirstName: "Old", LastName: "Name", Email: "old@example.com"}, nil
		}
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error { saved = u; return nil }
		svc := NewUserService(repo)

		first := "New"
		user, err := svc.UpdateUser(ctx, 1, UpdateUserInput{FirstName: &first})
		require.NoError(t, err)
		assert.Equal(t, "New", user.FirstName)
		assert.Equal(t, "Name", user.LastName)
		assert.Equal(t, "old@example.com", user.Email)
		require.NotNil(t, saved)
	})

	t.Run("existing location updated in place", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, LocationID: 5, Location: &models.Location{ID: 5, City: "Before"}}, nil
		}
		var updated *models.Location
		locationCreated := false
		repo.updateLocationFn = func(_ context.Context, l *models.Location) error { updated = l; return nil }
		repo.createLocationFn = func(_ context.Context, _ *models.Location) error {
			locationCreated = true
			return nil
		}
		svc := NewUserService(repo)

		user, err := svc.UpdateUser(ctx, 1, UpdateUserInput{Location: &LocationInput{City: "After"}})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.EqualValues(t, 5, updated.ID)
		assert.Equal(t, "After", updated.City)
		assert.False(t, locationCreated, "no orphan location row")
		assert.EqualValues(t, 5, user.LocationID)
	})

	t.Run("location created when user has none", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		}
		svc := NewUserService(repo)

		user, err := svc.UpdateUser(ctx, 1, UpdateUserInput{Location: &LocationInput{City: "Fresh"}})
		require.NoError(t, err)
		assert.EqualValues(t, 10, user.LocationID)
		require.NotNil(t, user.Location)
		assert.Equal(t, "Fresh", user.Location.City)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Parallel()

	t.Run("returns deleted id", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		id, err := svc.DeleteUser(context.Background(), 42)
		require.NoError(t, err)
		assert.EqualValues(t, 42, id)
	})

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewUserService(repo)
		_, err := svc.DeleteUser(context.Background(), 42)
		assertCode(t, err, models.CodeNotFound)
	})
}

func TestUserService_ListUsers_Envelope(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.listFn = func(_ context.Context, p models.ListParams) ([]models.User, int64, error) {
		assert.Equal(t, 20, p.Offset())
		return []models.User{{ID: 1}}, 21, nil
	}
	svc := NewUserService(repo)

	page, err := svc.ListUsers(context.Background(), models.ListParams{Page: 3, Limit: 10, Order: "desc"})
	require.NoError(t, err)
	assert.EqualValues(t, 21, page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Len(t, page.Data, 1)
}
