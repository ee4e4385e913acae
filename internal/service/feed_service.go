package service

import (
	"context"
	"fmt"

	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/repository"
)

const (
	likeNotificationContent   = " đã thích bài viết của bạn."
	followNotificationContent = " đã theo dõi bạn."
)

// commentContent renders the notification line for a new comment.
func commentContent(content string) string {
	return fmt.Sprintf(" đã bình luận: \"%s\"", content)
}

// FeedService assembles viewer-relative projections of posts, comments and
// profiles, and runs the like/comment mutations.
type FeedService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	userRepo    repository.UserRepository
}

// ProfileView is the profile endpoint response: the public projection plus
// the user's posts.
type ProfileView struct {
	models.Profile
	Posts []models.PostView `json:"post"`
}

// CreatePostInput is the post upload payload.
type CreatePostInput struct {
	UserID     uint
	Content    string
	Images     []string
	Visibility models.Visibility
}

// LikeOutcome carries everything the handler needs after a like or unlike:
// the counter state, the affected post and, for likes that actually landed,
// the stored notification.
type LikeOutcome struct {
	Result *repository.LikeResult
	Post   *models.Post
	Notif  *models.Notification
}

// CommentOutcome carries the stored comment, the author, the new counter and
// the notification created for the post owner.
type CommentOutcome struct {
	Comment      *models.Comment
	Author       *models.User
	Post         *models.Post
	CommentCount int
	Notif        *models.Notification
}

// NewFeedService creates a new FeedService.
func NewFeedService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		userRepo:    userRepo,
	}
}

// buildPostViews annotates posts with the viewer's like and follow state.
// An anonymous viewer (id 0) gets all flags false.
func (s *FeedService) buildPostViews(ctx context.Context, viewerID uint, posts []models.Post) ([]models.PostView, error) {
	if len(posts) == 0 {
		return []models.PostView{}, nil
	}

	postIDs := make([]uint, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	seenAuthors := make(map[uint]struct{}, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		if _, ok := seenAuthors[p.UserID]; !ok {
			seenAuthors[p.UserID] = struct{}{}
			authorIDs = append(authorIDs, p.UserID)
		}
	}

	liked, err := s.postRepo.LikedSet(ctx, viewerID, postIDs)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.FollowingSet(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		author := p.User.AsProfile()
		author.IsFollowing = following[p.UserID]
		views[i] = models.PostView{
			ID:           p.ID,
			Content:      p.Content,
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
			Images:       p.Images,
			LikeCount:    p.LikeCount,
			CommentCount: p.CommentCount,
			ShareCount:   p.ShareCount,
			ReupCount:    p.ReupCount,
			IsLiked:      liked[p.ID],
			Visibility:   p.Visibility,
			User:         author,
		}
	}
	return views, nil
}

// Feed returns one newest-first page of the global feed. An empty page is a
// not-found, matching the API contract.
func (s *FeedService) Feed(ctx context.Context, viewerID uint, page, limit int) ([]models.PostView, error) {
	if page < 1 || limit < 1 {
		return nil, models.NewValidationError("Invalid page or limit parameters.")
	}

	posts, err := s.postRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, models.NewNotFoundError("No posts found")
	}
	return s.buildPostViews(ctx, viewerID, posts)
}

// Profile returns a user's public projection with their posts.
func (s *FeedService) Profile(ctx context.Context, viewerID uint, username string) (*ProfileView, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}

	posts, err := s.postRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	views, err := s.buildPostViews(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}

	profile := user.AsProfile()
	if viewerID != 0 {
		isFollowing, err := s.followRepo.IsFollowing(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		profile.IsFollowing = isFollowing
	}

	return &ProfileView{Profile: profile, Posts: views}, nil
}

// PostDetail returns a post with its flat comment list.
func (s *FeedService) PostDetail(ctx context.Context, viewerID uint, postID uint) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	views, err := s.buildPostViews(ctx, viewerID, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	view := views[0]

	comments, err := s.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	commenterIDs := make([]uint, 0, len(comments))
	seen := make(map[uint]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.UserID]; !ok {
			seen[c.UserID] = struct{}{}
			commenterIDs = append(commenterIDs, c.UserID)
		}
	}
	following, err := s.followRepo.FollowingSet(ctx, viewerID, commenterIDs)
	if err != nil {
		return nil, err
	}

	view.Comments = make([]models.CommentView, len(comments))
	for i, c := range comments {
		author := c.User.AsProfile()
		author.IsFollowing = following[c.UserID]
		view.Comments[i] = models.CommentView{
			ID:              c.ID,
			Content:         c.Content,
			ParentCommentID: c.ParentCommentID,
			CreatedAt:       c.CreatedAt,
			UpdatedAt:       c.UpdatedAt,
			User:            author,
		}
	}

	return &view, nil
}

// CreatePost persists a post and returns the same enriched projection the
// feed serves.
func (s *FeedService) CreatePost(ctx context.Context, in CreatePostInput) (*models.PostView, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Invalid post data.")
	}

	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	visibility := in.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if !models.ValidVisibility(visibility) {
		return nil, models.NewValidationError("Invalid visibility value.")
	}

	post := &models.Post{
		UserID:     in.UserID,
		Content:    in.Content,
		Images:     in.Images,
		Visibility: visibility,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.PostDetail(ctx, in.UserID, post.ID)
}

// LikePost records a like idempotently. The Like notification row joins the
// same transaction as the counter update; a repeated like changes nothing.
func (s *FeedService) LikePost(ctx context.Context, userID, postID uint) (*LikeOutcome, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	notif := &models.Notification{
		SenderID:    userID,
		ReceiverID:  post.UserID,
		PostID:      &post.ID,
		Type:        models.NotificationLike,
		Content:     likeNotificationContent,
		PostPreview: post.PostPreview(),
	}

	result, err := s.postRepo.Like(ctx, userID, postID, notif)
	if err != nil {
		return nil, err
	}

	outcome := &LikeOutcome{Result: result, Post: post}
	if result.Changed {
		outcome.Notif = notif
	}
	return outcome, nil
}

// UnlikePost removes a like. Unliking a post that was never liked is
// tolerated and leaves the counter untouched.
func (s *FeedService) UnlikePost(ctx context.Context, userID, postID uint) (*LikeOutcome, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	result, err := s.postRepo.Unlike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	return &LikeOutcome{Result: result, Post: post}, nil
}

// AddComment stores a comment (optionally threaded under a parent on the same
// post) together with the counter bump and the Comment notification.
func (s *FeedService) AddComment(ctx context.Context, userID, postID uint, content string, parentCommentID *uint) (*CommentOutcome, error) {
	if content == "" {
		return nil, models.NewValidationError("Comment content cannot be empty.")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:          postID,
		UserID:          userID,
		Content:         content,
		ParentCommentID: parentCommentID,
	}
	notif := &models.Notification{
		SenderID:    userID,
		ReceiverID:  post.UserID,
		PostID:      &post.ID,
		Type:        models.NotificationComment,
		Content:     commentContent(content),
		PostPreview: post.PostPreview(),
	}

	count, err := s.commentRepo.Create(ctx, comment, notif)
	if err != nil {
		return nil, err
	}

	return &CommentOutcome{
		Comment:      comment,
		Author:       author,
		Post:         post,
		CommentCount: count,
		Notif:        notif,
	}, nil
}

// SearchUsers matches usernames on a case-insensitive substring.
func (s *FeedService) SearchUsers(ctx context.Context, query string) ([]models.Profile, error) {
	if query == "" {
		return nil, models.NewValidationError("Username is required")
	}

	users, err := s.userRepo.Search(ctx, query, 20)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, models.NewNotFoundError("User not found")
	}

	profiles := make([]models.Profile, len(users))
	for i := range users {
		profiles[i] = users[i].AsProfile()
	}
	return profiles, nil
}
