// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/quocnhat02092003/thread-app/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the plaintext password shared by all seeded accounts.
const SeedPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db           *gorm.DB
	rng          *rand.Rand
	passwordHash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	// One shared hash keeps seeding fast; bcrypt per user is the slow part.
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	return &Factory{
		db:           db,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		passwordHash: string(hash),
	}, nil
}

// BuildUser constructs an unsaved user with fake profile data.
func (f *Factory) BuildUser(n int) *models.User {
	username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), n)
	return &models.User{
		Username:         username,
		Password:         f.passwordHash,
		DisplayName:      gofakeit.Name(),
		AvatarURL:        fmt.Sprintf("https://picsum.photos/seed/%s/200/200", username),
		Introduction:     gofakeit.Sentence(8),
		AnotherPath:      gofakeit.URL(),
		Verified:         f.rng.Intn(10) == 0,
		NeedMoreInfoUser: false,
	}
}

// BuildPost constructs an unsaved post for the user with a realistic
// created_at spread over the last 90 days.
func (f *Factory) BuildPost(user *models.User) *models.Post {
	post := &models.Post{
		UserID:     user.ID,
		Content:    gofakeit.Paragraph(1, 3, 8, "\n"),
		Visibility: models.VisibilityPublic,
	}

	if f.rng.Intn(3) == 0 {
		count := 1 + f.rng.Intn(3)
		images := make([]string, count)
		for i := range images {
			images[i] = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}
		post.Images = images
	}
	if f.rng.Intn(10) == 0 {
		post.Visibility = models.VisibilityFriends
	}

	daysBack := f.rng.Intn(90)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour).
		Add(-time.Duration(f.rng.Intn(24)) * time.Hour).
		Add(-time.Duration(f.rng.Intn(60)) * time.Minute)
	post.UpdatedAt = post.CreatedAt

	return post
}

// BuildComment constructs an unsaved comment on the post. A non-nil parent
// makes it a threaded reply.
func (f *Factory) BuildComment(post *models.Post, user *models.User, parent *models.Comment) *models.Comment {
	comment := &models.Comment{
		PostID:  post.ID,
		UserID:  user.ID,
		Content: gofakeit.Sentence(6 + f.rng.Intn(10)),
	}
	if parent != nil {
		comment.ParentCommentID = &parent.ID
	}
	return comment
}

// CreateUsersBatch persists users in one insert.
func (f *Factory) CreateUsersBatch(users []*models.User) error {
	if len(users) == 0 {
		return nil
	}
	return f.db.CreateInBatches(users, 100).Error
}

// CreatePostsBatch persists posts in one insert.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.CreateInBatches(posts, 100).Error
}
