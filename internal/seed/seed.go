package seed

import (
	"fmt"
	"log"

	"github.com/quocnhat02092003/thread-app/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with a connected social mesh: users who
// follow each other, post, like and comment, with every denormalized counter
// and notification row consistent with the join tables.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) (*Seeder, error) {
	factory, err := NewFactory(db)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, factory: factory}, nil
}

// ClearAll removes all seedable rows. Deletion order respects foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.Notification{},
		&models.PostLike{},
		&models.Comment{},
		&models.Follow{},
		&models.Post{},
		&models.RefreshToken{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	return nil
}

// SeedUsers creates numUsers accounts with completed profiles.
func (s *Seeder) SeedUsers(numUsers int) ([]*models.User, error) {
	users := make([]*models.User, numUsers)
	for i := range users {
		users[i] = s.factory.BuildUser(i + 1)
	}
	if err := s.factory.CreateUsersBatch(users); err != nil {
		return nil, fmt.Errorf("create users: %w", err)
	}
	log.Printf("seeded %d users", len(users))
	return users, nil
}

// SeedFollows wires a follow mesh: each user follows a handful of others.
// Edges, follower counters and Follow notifications stay consistent.
func (s *Seeder) SeedFollows(users []*models.User) (int, error) {
	created := 0
	for _, follower := range users {
		targets := s.factory.rng.Intn(6)
		for t := 0; t < targets; t++ {
			target := users[s.factory.rng.Intn(len(users))]
			if target.ID == follower.ID {
				continue
			}

			err := s.db.Transaction(func(tx *gorm.DB) error {
				edge := models.Follow{FollowerID: follower.ID, FollowingID: target.ID}
				if err := tx.Create(&edge).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.User{}).Where("id = ?", target.ID).
					Update("follower", gorm.Expr("follower + 1")).Error; err != nil {
					return err
				}
				return tx.Create(&models.Notification{
					SenderID:   follower.ID,
					ReceiverID: target.ID,
					Type:       models.NotificationFollow,
					Content:    " đã theo dõi bạn.",
				}).Error
			})
			if err != nil {
				// Duplicate edges from the random picks are expected; skip them.
				continue
			}
			created++
		}
	}
	log.Printf("seeded %d follow edges", created)
	return created, nil
}

// SeedPosts creates numPosts posts spread over the users.
func (s *Seeder) SeedPosts(users []*models.User, numPosts int) ([]*models.Post, error) {
	posts := make([]*models.Post, numPosts)
	for i := range posts {
		author := users[s.factory.rng.Intn(len(users))]
		posts[i] = s.factory.BuildPost(author)
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}
	log.Printf("seeded %d posts", len(posts))
	return posts, nil
}

// SeedEngagement sprinkles likes and comments over the posts, keeping the
// denormalized counters and notification rows consistent.
func (s *Seeder) SeedEngagement(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		likers := s.factory.rng.Intn(5)
		for l := 0; l < likers; l++ {
			user := users[s.factory.rng.Intn(len(users))]
			err := s.db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&models.PostLike{PostID: post.ID, UserID: user.ID}).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Post{}).Where("id = ?", post.ID).
					Update("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
					return err
				}
				return tx.Create(&models.Notification{
					SenderID:    user.ID,
					ReceiverID:  post.UserID,
					PostID:      &post.ID,
					Type:        models.NotificationLike,
					Content:     " đã thích bài viết của bạn.",
					PostPreview: post.PostPreview(),
				}).Error
			})
			if err != nil {
				// Duplicate (post, user) likes are expected with random picks.
				continue
			}
		}

		commenters := s.factory.rng.Intn(4)
		var parent *models.Comment
		for cIdx := 0; cIdx < commenters; cIdx++ {
			user := users[s.factory.rng.Intn(len(users))]

			// Occasionally thread a reply under the previous comment.
			var replyTo *models.Comment
			if parent != nil && s.factory.rng.Intn(3) == 0 {
				replyTo = parent
			}
			comment := s.factory.BuildComment(post, user, replyTo)

			err := s.db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(comment).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Post{}).Where("id = ?", post.ID).
					Update("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
					return err
				}
				return tx.Create(&models.Notification{
					SenderID:    user.ID,
					ReceiverID:  post.UserID,
					PostID:      &post.ID,
					Type:        models.NotificationComment,
					Content:     fmt.Sprintf(" đã bình luận: %q", comment.Content),
					PostPreview: post.PostPreview(),
				}).Error
			})
			if err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			parent = comment
		}
	}
	log.Println("seeded engagement")
	return nil
}

// Run executes the full pipeline: users, follows, posts, engagement.
func (s *Seeder) Run(numUsers, numPosts int) error {
	users, err := s.SeedUsers(numUsers)
	if err != nil {
		return err
	}
	if _, err := s.SeedFollows(users); err != nil {
		return err
	}
	posts, err := s.SeedPosts(users, numPosts)
	if err != nil {
		return err
	}
	return s.SeedEngagement(users, posts)
}
