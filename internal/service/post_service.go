package service

import (
	"context"
	"strings"

	"chirp/internal/models"
	"chirp/internal/repository"
)

type PostService struct {
	postRepo       repository.PostRepository
	engagementRepo repository.EngagementRepository
	isStaff        func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID  uint
	Content string
	Image   string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Content string
	Image   *string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	engagementRepo repository.EngagementRepository,
	isStaff func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
		isStaff:        isStaff,
	}
}

func validatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewFieldValidationError(map[string][]string{
			"content": {"This field may not be blank."},
		})
	}
	if len([]rune(content)) > models.MaxPostContentLen {
		return models.NewFieldValidationError(map[string][]string{
			"content": {"Ensure this field has no more than 280 characters."},
		})
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostContent(in.Content); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:  in.UserID,
		Content: in.Content,
		Image:   in.Image,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, postID uint, viewerID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID, viewerID)
}

// Feed returns all posts newest first, annotated for the viewer.
func (s *PostService) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, int64, error) {
	return s.postRepo.List(ctx, viewerID, limit, offset)
}

func (s *PostService) SearchPosts(ctx context.Context, query string, viewerID uint, limit, offset int) ([]*models.Post, int64, error) {
	if strings.TrimSpace(query) == "" {
		return nil, 0, models.NewValidationError("Search query is required")
	}
	return s.postRepo.Search(ctx, query, viewerID, limit, offset)
}

func (s *PostService) UserPosts(ctx context.Context, userID uint, viewerID uint, limit, offset int) ([]*models.Post, int64, error) {
	return s.postRepo.GetByUserID(ctx, userID, viewerID, limit, offset)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}
	if err := validatePostContent(in.Content); err != nil {
		return nil, err
	}

	post.Content = in.Content
	if in.Image != nil {
		post.Image = *in.Image
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		if s.isStaff == nil {
			return models.NewForbiddenError("You can only delete your own posts")
		}
		staff, err := s.isStaff(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !staff {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

// LikePost records a like. The returned bool is true when the like is new.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return false, err
	}
	return s.engagementRepo.Like(ctx, userID, postID)
}

// UnlikePost removes a like. The returned bool is true when a like existed.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return false, err
	}
	return s.engagementRepo.Unlike(ctx, userID, postID)
}

// RetweetPost records a retweet. The returned bool is true when it is new.
func (s *PostService) RetweetPost(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return false, err
	}
	return s.engagementRepo.Retweet(ctx, userID, postID)
}

// UnretweetPost removes a retweet. The returned bool is true when one existed.
func (s *PostService) UnretweetPost(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return false, err
	}
	return s.engagementRepo.Unretweet(ctx, userID, postID)
}
