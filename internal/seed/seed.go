package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"chirp/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder populates the database with realistic development data.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
	rand    *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Seeder{
		db:      db,
		opts:    opts,
		factory: NewFactory(db, opts),
		rand:    r,
	}
}

// ClearAll truncates every seeded table and resets identity sequences.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, retweets, follows, posts, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedUsers creates `count` users. The first few are well-known accounts so
// local logins stay stable across reseeds. All users share the password
// "password123".
func (s *Seeder) SeedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	wellKnown := []struct {
		username string
		staff    bool
	}{
		{"admin", true},
		{"alice", false},
		{"bob", false},
	}
	for _, wk := range wellKnown {
		if len(users) >= count {
			break
		}
		user, err := s.factory.CreateUser(func(u *models.User) {
			u.Username = wk.username
			u.Email = fmt.Sprintf("%s@example.com", wk.username)
			u.Password = string(hashedPassword)
			u.IsStaff = wk.staff
			u.Bio = "One of the OGs."
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", wk.username, err)
		}
		users = append(users, user)
	}

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser(func(u *models.User) {
			// suffix keeps generated usernames unique across the run
			u.Username = fmt.Sprintf("%s%d", u.Username, i)
			u.Email = fmt.Sprintf("%s@example.com", u.Username)
		})
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// SeedSocialMesh creates users and a follow graph between them. Each user
// follows a random subset of the others, weighted so a handful of accounts
// end up with large follower counts.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	users, err := s.SeedUsers(numUsers)
	if err != nil {
		return nil, err
	}
	if len(users) < 2 {
		return users, nil
	}

	// the first ~10% of accounts act as popular users everyone may follow
	popular := len(users) / 10
	if popular < 1 {
		popular = 1
	}

	edges := 0
	for _, follower := range users {
		targets := s.rand.Intn(8) + 1
		for j := 0; j < targets; j++ {
			var following *models.User
			if s.rand.Float32() < 0.4 {
				following = users[s.rand.Intn(popular)]
			} else {
				following = users[s.rand.Intn(len(users))]
			}
			if following.ID == follower.ID {
				continue
			}
			if err := s.factory.CreateFollow(follower, following); err != nil {
				// duplicate edges are expected with random selection
				continue
			}
			edges++
		}
	}
	log.Printf("Created %d follow edges across %d users", edges, len(users))

	return users, nil
}

// SeedEngagement creates posts for the given users along with likes,
// retweets, and comments on those posts.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to create posts for")
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		user := users[s.rand.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(user))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))

	likes, retweets, comments := 0, 0, 0
	for _, post := range posts {
		for _, user := range s.sampleUsers(users, s.rand.Intn(10)) {
			if err := s.factory.CreateLike(user, post); err == nil {
				likes++
			}
		}
		for _, user := range s.sampleUsers(users, s.rand.Intn(3)) {
			if err := s.factory.CreateRetweet(user, post); err == nil {
				retweets++
			}
		}
		for i := 0; i < s.rand.Intn(4); i++ {
			user := users[s.rand.Intn(len(users))]
			if _, err := s.factory.CreateComment(user, post); err == nil {
				comments++
			}
		}
	}
	log.Printf("Created %d likes, %d retweets, %d comments", likes, retweets, comments)

	return posts, nil
}

// sampleUsers picks up to n distinct users at random.
func (s *Seeder) sampleUsers(users []*models.User, n int) []*models.User {
	if n >= len(users) {
		n = len(users)
	}
	if n <= 0 {
		return nil
	}
	picked := make(map[int]struct{}, n)
	out := make([]*models.User, 0, n)
	for len(out) < n {
		i := s.rand.Intn(len(users))
		if _, ok := picked[i]; ok {
			continue
		}
		picked[i] = struct{}{}
		out = append(out, users[i])
	}
	return out
}
