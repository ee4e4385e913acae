package server

import (
	"github.com/quocnhat02092003/thread-app/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns a user's public profile with their posts. Liked and
// following flags are relative to the caller and false for anonymous viewers.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	profile, err := s.feedService.Profile(c.UserContext(), currentUserID(c), username)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetAllPosts serves one newest-first page of the global feed.
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	page, limit, err := parsePagination(c)
	if err != nil {
		return nil
	}

	posts, err := s.feedService.Feed(c.UserContext(), currentUserID(c), page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPostDetail returns a single post with its comment thread.
func (s *Server) GetPostDetail(c *fiber.Ctx) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.feedService.PostDetail(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetLikedPostIDs returns the IDs of every post the caller has liked.
func (s *Server) GetLikedPostIDs(c *fiber.Ctx) error {
	ids, err := s.postRepo.LikedPostIDs(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(ids)
}

// GetFollowingIDs returns the IDs of every user the caller follows.
func (s *Server) GetFollowingIDs(c *fiber.Ctx) error {
	ids, err := s.followService.FollowingIDs(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(ids)
}

// FollowUser creates a follow edge and notifies the target in realtime.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	followerID := currentUserID(c)

	notif, err := s.followService.Follow(ctx, followerID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	sender, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		// The edge is stored; only the push payload is missing its sender.
		middleware.Logger.WarnContext(ctx, "follow sender lookup failed",
			"follower_id", followerID, "error", err)
	}
	s.pushNotification(ctx, notif, sender)

	return c.JSON(fiber.Map{
		"message":     "Followed successfully.",
		"isFollowing": true,
	})
}

// UnfollowUser removes a follow edge.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.UserContext(), currentUserID(c), targetID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":     "Unfollowed successfully.",
		"isFollowing": false,
	})
}
