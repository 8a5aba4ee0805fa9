// Package service implements the application's use cases: input validation,
// referential checks and orchestration over the repositories.
package service

import (
	"context"
	"regexp"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// emailRegex mirrors the client-side check: something@something.tld, no spaces.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// dateLayouts accepted for dateOfBirth input, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// UserService validates and executes user mutations and queries.
type UserService struct {
	userRepo repository.UserRepository
}

// LocationInput is the location payload embedded in user mutations.
type LocationInput struct {
	Street   string
	City     string
	State    string
	Country  string
	Timezone string
}

// CreateUserInput carries the createUser mutation fields. Everything except
// Gender is required.
type CreateUserInput struct {
	Title       string
	FirstName   string
	LastName    string
	Gender      string
	Email       string
	DateOfBirth string
	Phone       string
	Picture     string
	Location    *LocationInput
}

// UpdateUserInput carries the updateUser mutation fields. Nil pointers mean
// the caller did not supply the field.
type UpdateUserInput struct {
	Title       *string
	FirstName   *string
	LastName    *string
	Gender      *string
	Email       *string
	DateOfBirth *string
	Phone       *string
	Picture     *string
	Location    *LocationInput
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers runs the paginated list convention over all users.
func (s *UserService) ListUsers(ctx context.Context, params models.ListParams) (*models.Page[models.User], error) {
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return models.NewPage(users, total, params), nil
}

// GetUser fetches one user with its location.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// CreateUser validates the input in one pass, checks email uniqueness and
// persists the location and user. The store's unique constraint backs up the
// pre-check; both paths surface as DUPLICATE_ERROR.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if in.Title == "" || in.FirstName == "" || in.LastName == "" || in.Email == "" ||
		in.DateOfBirth == "" || in.Phone == "" || in.Picture == "" || in.Location == nil {
		return nil, models.NewValidationError("All fields are required")
	}
	if !emailRegex.MatchString(in.Email) {
		return nil, models.NewValidationError("Invalid email format")
	}
	dob, err := parseDate(in.DateOfBirth)
	if err != nil {
		return nil, models.NewValidationError("Invalid date format")
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateError("Email already exists")
	}

	loc := &models.Location{
		Street:   in.Location.Street,
		City:     in.Location.City,
		State:    in.Location.State,
		Country:  in.Location.Country,
		Timezone: in.Location.Timezone,
	}
	if err := s.userRepo.CreateLocation(ctx, loc); err != nil {
		return nil, err
	}

	user := &models.User{
		Title:       in.Title,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Gender:      in.Gender,
		Email:       in.Email,
		DateOfBirth: dob,
		Phone:       in.Phone,
		Picture:     in.Picture,
		LocationID:  loc.ID,
		Location:    loc,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies the supplied fields to an existing user. Email and date
// are only validated when present. A supplied location updates the user's
// existing location row in place rather than orphaning it.
func (s *UserService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && !emailRegex.MatchString(*in.Email) {
		return nil, models.NewValidationError("Invalid email format")
	}
	if in.DateOfBirth != nil {
		dob, err := parseDate(*in.DateOfBirth)
		if err != nil {
			return nil, models.NewValidationError("Invalid date format")
		}
		user.DateOfBirth = dob
	}

	if in.Title != nil {
		user.Title = *in.Title
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Gender != nil {
		user.Gender = *in.Gender
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Picture != nil {
		user.Picture = *in.Picture
	}

	if in.Location != nil {
		if user.Location != nil {
			user.Location.Street = in.Location.Street
			user.Location.City = in.Location.City
			user.Location.State = in.Location.State
			user.Location.Country = in.Location.Country
			user.Location.Timezone = in.Location.Timezone
			if err := s.userRepo.UpdateLocation(ctx, user.Location); err != nil {
				return nil, err
			}
		} else {
			loc := &models.Location{
				Street:   in.Location.Street,
				City:     in.Location.City,
				State:    in.Location.State,
				Country:  in.Location.Country,
				Timezone: in.Location.Timezone,
			}
			if err := s.userRepo.CreateLocation(ctx, loc); err != nil {
				return nil, err
			}
			user.LocationID = loc.ID
			user.Location = loc
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user by id and returns the id. Dependent posts and
// comments go with it through the cascade constraints.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (uint, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return 0, err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}
