package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, email, hashedPassword string, role Role) (*User, error) {
	args := m.Called(ctx, name, email, hashedPassword, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	ctx := context.Background()
	email := "test@example.com"
	password := "password123"

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		expectedUser := &User{
			ID:    1,
			Name:  "Test User",
			Email: email,
			Role:  RoleUser,
		}

		mockRepo.On("Create", ctx, "Test User", email, mock.AnythingOfType("string"), RoleUser).
			Return(expectedUser, nil)

		token, u, err := svc.Register(ctx, "Test User", email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, expectedUser, u)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmailExists", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, "Test User", email, mock.Anything, RoleUser).
			Return(nil, ErrEmailExists)

		_, _, err := svc.Register(ctx, "Test User", email, password)

		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("ShortName", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, _, err := svc.Register(ctx, "x", email, password)

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("BadEmail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, _, err := svc.Register(ctx, "Test User", "not-an-email", password)

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, _, err := svc.Register(ctx, "Test User", email, "short")

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	ctx := context.Background()
	email := "test@example.com"
	password := "password123"

	hash, _ := HashPassword(password)
	stored := &User{
		ID:       1,
		Name:     "Test User",
		Email:    email,
		Password: hash,
		Role:     RoleUser,
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, email).Return(stored, nil)

		token, u, err := svc.Login(ctx, email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, stored, u)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, email).Return(nil, ErrUserNotFound)

		_, _, err := svc.Login(ctx, email, password)

		// Same generic error as a wrong password.
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, email).Return(stored, nil)

		_, _, err := svc.Login(ctx, email, "wrong-password")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
