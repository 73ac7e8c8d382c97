package service

import (
	"context"
	"testing"

	"chirp/internal/models"
	"chirp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn            func(context.Context, uint) (*models.User, error)
	getByIDWithDetailsFn func(context.Context, uint, uint) (*models.User, error)
	getByEmailFn         func(context.Context, string) (*models.User, error)
	getByUsernameFn      func(context.Context, string) (*models.User, error)
	createFn             func(context.Context, *models.User) error
	updateFn             func(context.Context, *models.User) error
	listFn               func(context.Context, repository.UserListOptions) ([]*models.User, int64, error)
	usernameTakenFn      func(context.Context, string, uint) (bool, error)
	emailTakenFn         func(context.Context, string, uint) (bool, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithDetails(ctx context.Context, id, viewerID uint) (*models.User, error) {
	return s.getByIDWithDetailsFn(ctx, id, viewerID)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, opts repository.UserListOptions) ([]*models.User, int64, error) {
	return s.listFn(ctx, opts)
}
func (s *userRepoStub) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	return s.usernameTakenFn(ctx, username, excludeID)
}
func (s *userRepoStub) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return s.emailTakenFn(ctx, email, excludeID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "user", Email: "user@example.com"}, nil
		},
		getByIDWithDetailsFn: func(_ context.Context, id, _ uint) (*models.User, error) {
			return &models.User{ID: id, Username: "user", Email: "user@example.com"}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		listFn: func(_ context.Context, _ repository.UserListOptions) ([]*models.User, int64, error) {
			return nil, 0, nil
		},
		usernameTakenFn: func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
		emailTakenFn:    func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	followFn    func(context.Context, uint, uint) (bool, error)
	unfollowFn  func(context.Context, uint, uint) (bool, error)
	followersFn func(context.Context, uint, uint, int, int) ([]*models.User, int64, error)
	followingFn func(context.Context, uint, uint, int, int) ([]*models.User, int64, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.followFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.unfollowFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID, viewerID uint, limit, offset int) ([]*models.User, int64, error) {
	return s.followersFn(ctx, userID, viewerID, limit, offset)
}
func (s *followRepoStub) Following(ctx context.Context, userID, viewerID uint, limit, offset int) ([]*models.User, int64, error) {
	return s.followingFn(ctx, userID, viewerID, limit, offset)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:   func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unfollowFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		followersFn: func(_ context.Context, _, _ uint, _, _ int) ([]*models.User, int64, error) {
			return nil, 0, nil
		},
		followingFn: func(_ context.Context, _, _ uint, _, _ int) ([]*models.User, int64, error) {
			return nil, 0, nil
		},
	}
}

func TestUserService_FollowUser(t *testing.T) {
	t.Parallel()

	t.Run("self follow rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), noopFollowRepo())
		_, err := svc.FollowUser(context.Background(), 1, 1)
		assertValidationError(t, err)
	})

	t.Run("missing target propagates not found", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewUserService(userRepo, noopFollowRepo())
		_, err := svc.FollowUser(context.Background(), 1, 99)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("new edge reports created", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), noopFollowRepo())
		created, err := svc.FollowUser(context.Background(), 1, 2)
		assert.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("existing edge reports not created", func(t *testing.T) {
		t.Parallel()
		followRepo := noopFollowRepo()
		followRepo.followFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }
		svc := NewUserService(noopUserRepo(), followRepo)
		created, err := svc.FollowUser(context.Background(), 1, 2)
		assert.NoError(t, err)
		assert.False(t, created)
	})
}

func TestUserService_UnfollowUser(t *testing.T) {
	t.Parallel()

	t.Run("missing edge reports not deleted", func(t *testing.T) {
		t.Parallel()
		followRepo := noopFollowRepo()
		followRepo.unfollowFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }
		svc := NewUserService(noopUserRepo(), followRepo)
		deleted, err := svc.UnfollowUser(context.Background(), 1, 2)
		assert.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	strPtr := func(s string) *string { return &s }

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		t.Parallel()
		var saved *models.User
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "orig", FirstName: "First", Bio: "old bio"}, nil
		}
		userRepo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}

		svc := NewUserService(userRepo, noopFollowRepo())
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID: 1,
			Bio:    strPtr("new bio"),
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "new bio", saved.Bio)
		assert.Equal(t, "orig", saved.Username)
		assert.Equal(t, "First", saved.FirstName)
	})

	t.Run("username conflict rejected with field error", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "orig"}, nil
		}
		userRepo.usernameTakenFn = func(_ context.Context, username string, excludeID uint) (bool, error) {
			return username == "taken", nil
		}

		svc := NewUserService(userRepo, noopFollowRepo())
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:   1,
			Username: strPtr("taken"),
		})

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.Contains(t, appErr.Fields, "username")
	})

	t.Run("keeping own username is not a conflict", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "mine"}, nil
		}
		userRepo.usernameTakenFn = func(_ context.Context, _ string, _ uint) (bool, error) {
			t.Fatal("conflict check should be skipped for an unchanged username")
			return false, nil
		}

		svc := NewUserService(userRepo, noopFollowRepo())
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:   1,
			Username: strPtr("mine"),
		})
		assert.NoError(t, err)
	})

	t.Run("invalid username rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), noopFollowRepo())
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:   1,
			Username: strPtr("x"),
		})
		assertValidationError(t, err)
	})
}

func TestUserService_ListUsers_ExcludesViewer(t *testing.T) {
	t.Parallel()

	var gotOpts repository.UserListOptions
	userRepo := noopUserRepo()
	userRepo.listFn = func(_ context.Context, opts repository.UserListOptions) ([]*models.User, int64, error) {
		gotOpts = opts
		return []*models.User{{ID: 2}}, 1, nil
	}

	svc := NewUserService(userRepo, noopFollowRepo())
	users, total, err := svc.ListUsers(context.Background(), ListUsersInput{
		Search:   "ja",
		ViewerID: 7,
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)
	assert.Equal(t, uint(7), gotOpts.ExcludeID)
	assert.Equal(t, uint(7), gotOpts.ViewerID)
	assert.Equal(t, "ja", gotOpts.Search)
}
