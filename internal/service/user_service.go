package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/validation"
)

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

type UpdateProfileInput struct {
	UserID         uint
	Username       *string
	FirstName      *string
	LastName       *string
	Bio            *string
	ProfilePicture *string
}

type ListUsersInput struct {
	Search   string
	Ordering string
	ViewerID uint
	Limit    int
	Offset   int
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

// ListUsers returns users excluding the viewer, newest accounts first
// unless an explicit ordering asks for oldest-first.
func (s *UserService) ListUsers(ctx context.Context, in ListUsersInput) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, repository.UserListOptions{
		Search:    in.Search,
		Ordering:  in.Ordering,
		ExcludeID: in.ViewerID,
		ViewerID:  in.ViewerID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
}

func (s *UserService) GetUser(ctx context.Context, id uint, viewerID uint) (*models.User, error) {
	return s.userRepo.GetByIDWithDetails(ctx, id, viewerID)
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByIDWithDetails(ctx, userID, userID)
}

// UpdateProfile applies a partial update. Nil fields are left untouched,
// so clients can clear a field by sending an empty string.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxNameLen = 30

	fields := map[string][]string{}

	if in.Username != nil && *in.Username != user.Username {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			fields["username"] = append(fields["username"], err.Error())
		} else {
			taken, err := s.userRepo.UsernameTaken(ctx, *in.Username, in.UserID)
			if err != nil {
				return nil, err
			}
			if taken {
				fields["username"] = append(fields["username"], "A user with that username already exists.")
			} else {
				user.Username = *in.Username
			}
		}
	}
	if in.FirstName != nil {
		if len(*in.FirstName) > maxNameLen {
			fields["first_name"] = append(fields["first_name"], "First name too long (max 30 characters).")
		} else {
			user.FirstName = *in.FirstName
		}
	}
	if in.LastName != nil {
		if len(*in.LastName) > maxNameLen {
			fields["last_name"] = append(fields["last_name"], "Last name too long (max 30 characters).")
		} else {
			user.LastName = *in.LastName
		}
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			fields["bio"] = append(fields["bio"], "Bio too long (max 500 characters).")
		} else {
			user.Bio = *in.Bio
		}
	}
	if in.ProfilePicture != nil {
		user.ProfilePicture = *in.ProfilePicture
	}

	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetByIDWithDetails(ctx, user.ID, user.ID)
}

// FollowUser creates a follow edge. The returned bool is true when the
// edge did not exist before.
func (s *UserService) FollowUser(ctx context.Context, followerID, targetID uint) (bool, error) {
	if followerID == targetID {
		return false, models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}
	return s.followRepo.Follow(ctx, followerID, targetID)
}

// UnfollowUser removes a follow edge. The returned bool is true when an
// edge actually existed.
func (s *UserService) UnfollowUser(ctx context.Context, followerID, targetID uint) (bool, error) {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}
	return s.followRepo.Unfollow(ctx, followerID, targetID)
}

func (s *UserService) Followers(ctx context.Context, userID uint, viewerID uint, limit, offset int) ([]*models.User, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.followRepo.Followers(ctx, userID, viewerID, limit, offset)
}

func (s *UserService) Following(ctx context.Context, userID uint, viewerID uint, limit, offset int) ([]*models.User, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.followRepo.Following(ctx, userID, viewerID, limit, offset)
}
