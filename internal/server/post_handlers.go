package server

import (
	"github.com/quocnhat02092003/thread-app/internal/models"
	"github.com/quocnhat02092003/thread-app/internal/notifications"
	"github.com/quocnhat02092003/thread-app/internal/service"

	"github.com/gofiber/fiber/v2"
)

type uploadPostRequest struct {
	Content    string   `json:"content"`
	Images     []string `json:"images"`
	Visibility string   `json:"visibility"`
}

type commentRequest struct {
	Content         string `json:"content"`
	ParentCommentID *uint  `json:"parentCommentId"`
}

// UploadPost stores a new post and returns it in the feed projection.
func (s *Server) UploadPost(c *fiber.Ctx) error {
	var req uploadPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post data."))
	}

	post, err := s.feedService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:     currentUserID(c),
		Content:    req.Content,
		Images:     req.Images,
		Visibility: models.Visibility(req.Visibility),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// LikePost records a like. Repeating a like is a no-op that still reports the
// current count. A like that lands notifies the post owner and updates every
// watcher's counter.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	userID := currentUserID(c)

	outcome, err := s.feedService.LikePost(ctx, userID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if outcome.Result.Changed {
		if sender, serr := s.userRepo.GetByID(ctx, userID); serr == nil {
			s.pushNotification(ctx, outcome.Notif, sender)
		}
		s.pushPostEvent(ctx, postID,
			notifications.NewLikeChangedEvent(postID, outcome.Result.LikeCount))
	}

	return c.JSON(fiber.Map{
		"likeCount": outcome.Result.LikeCount,
		"isLiked":   true,
	})
}

// UnlikePost removes a like. Unliking a post that was never liked is
// tolerated and leaves the counter untouched.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	outcome, err := s.feedService.UnlikePost(ctx, currentUserID(c), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if outcome.Result.Changed {
		s.pushPostEvent(ctx, postID,
			notifications.NewLikeChangedEvent(postID, outcome.Result.LikeCount))
	}

	return c.JSON(fiber.Map{
		"likeCount": outcome.Result.LikeCount,
		"isLiked":   false,
	})
}

// CommentPost adds a comment, optionally threaded under a parent comment on
// the same post. The owner gets a notification and the post's watchers get
// the full comment payload.
func (s *Server) CommentPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment content cannot be empty."))
	}

	ctx := c.UserContext()
	outcome, err := s.feedService.AddComment(ctx, currentUserID(c), postID, req.Content, req.ParentCommentID)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.pushNotification(ctx, outcome.Notif, outcome.Author)
	s.pushPostEvent(ctx, postID, notifications.NewPostCommentedEvent(fiber.Map{
		"postId":          postID,
		"commentId":       outcome.Comment.ID,
		"commentContent":  outcome.Comment.Content,
		"commentCount":    outcome.CommentCount,
		"parentCommentId": outcome.Comment.ParentCommentID,
		"createdAt":       outcome.Comment.CreatedAt,
		"user": fiber.Map{
			"id":          outcome.Author.ID,
			"displayName": outcome.Author.DisplayName,
			"username":    outcome.Author.Username,
			"avatarURL":   outcome.Author.AvatarURL,
		},
	}))

	return c.JSON(fiber.Map{
		"commentId":      outcome.Comment.ID,
		"commentContent": outcome.Comment.Content,
		"commentCount":   outcome.CommentCount,
	})
}
