package server

import (
	"context"

	"chirp/internal/config"
	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDWithDetails(ctx context.Context, id uint, viewerID uint) (*models.User, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, opts repository.UserListOptions) ([]*models.User, int64, error) {
	args := m.Called(ctx, opts)
	var users []*models.User
	if args.Get(0) != nil {
		users = args.Get(0).([]*models.User)
	}
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockFollowRepository is a mock of the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Follow(ctx context.Context, followerID, followingID uint) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Unfollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Followers(ctx context.Context, userID, viewerID uint, limit, offset int) ([]*models.User, int64, error) {
	args := m.Called(ctx, userID, viewerID, limit, offset)
	var users []*models.User
	if args.Get(0) != nil {
		users = args.Get(0).([]*models.User)
	}
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockFollowRepository) Following(ctx context.Context, userID, viewerID uint, limit, offset int) ([]*models.User, int64, error) {
	args := m.Called(ctx, userID, viewerID, limit, offset)
	var users []*models.User
	if args.Get(0) != nil {
		users = args.Get(0).([]*models.User)
	}
	return users, args.Get(1).(int64), args.Error(2)
}

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByUserID(ctx context.Context, userID, viewerID uint, limit, offset int) ([]*models.Post, int64, error) {
	args := m.Called(ctx, userID, viewerID, limit, offset)
	var posts []*models.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]*models.Post)
	}
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) List(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, int64, error) {
	args := m.Called(ctx, viewerID, limit, offset)
	var posts []*models.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]*models.Post)
	}
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Search(ctx context.Context, query string, viewerID uint, limit, offset int) ([]*models.Post, int64, error) {
	args := m.Called(ctx, query, viewerID, limit, offset)
	var posts []*models.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]*models.Post)
	}
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEngagementRepository is a mock of the EngagementRepository interface
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) Like(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) Retweet(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) Unretweet(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, int64, error) {
	args := m.Called(ctx, postID, limit, offset)
	var comments []*models.Comment
	if args.Get(0) != nil {
		comments = args.Get(0).([]*models.Comment)
	}
	return comments, args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// testMocks bundles the repository mocks wired into a test server.
type testMocks struct {
	userRepo       *MockUserRepository
	followRepo     *MockFollowRepository
	postRepo       *MockPostRepository
	engagementRepo *MockEngagementRepository
	commentRepo    *MockCommentRepository
}

// newTestServer builds a Server on top of repository mocks with real services.
func newTestServer() (*Server, *testMocks) {
	mocks := &testMocks{
		userRepo:       new(MockUserRepository),
		followRepo:     new(MockFollowRepository),
		postRepo:       new(MockPostRepository),
		engagementRepo: new(MockEngagementRepository),
		commentRepo:    new(MockCommentRepository),
	}

	s := &Server{
		config:         &config.Config{JWTSecret: "test_secret", PageSize: 10},
		userRepo:       mocks.userRepo,
		followRepo:     mocks.followRepo,
		postRepo:       mocks.postRepo,
		engagementRepo: mocks.engagementRepo,
		commentRepo:    mocks.commentRepo,
	}
	s.userService = service.NewUserService(mocks.userRepo, mocks.followRepo)
	s.postService = service.NewPostService(mocks.postRepo, mocks.engagementRepo, nil)
	s.commentService = service.NewCommentService(mocks.commentRepo, mocks.postRepo, nil)

	return s, mocks
}

// asUser injects the authenticated user ID the way AuthRequired does.
func asUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}
