package votes

import (
	"context"

	"socialapp/pkg/posts"
)

type PostsRepo interface {
	GetByID(ctx context.Context, id int64) (*posts.Post, error)
}

type VotesRepo interface {
	Get(ctx context.Context, postID, userID int64) (*Vote, error)
	Add(ctx context.Context, v *Vote) error
	Delete(ctx context.Context, postID, userID int64) error
}

// VoteService applies like/unlike toggles. The pre-check on an existing vote
// gives the common case a precise answer; the votes table's primary key
// remains the final arbiter when two adds for the same pair race.
type VoteService struct {
	PostsRepo PostsRepo
	VotesRepo VotesRepo
}

func NewVoteService(postsRepo PostsRepo, votesRepo VotesRepo) *VoteService {
	return &VoteService{PostsRepo: postsRepo, VotesRepo: votesRepo}
}

func (s *VoteService) Toggle(ctx context.Context, postID, userID int64, dir Direction) error {
	post, err := s.PostsRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return posts.ErrPostNotFound
	}

	existing, err := s.VotesRepo.Get(ctx, postID, userID)
	if err != nil {
		return err
	}

	if dir == Add {
		if existing != nil {
			return ErrAlreadyVoted
		}
		return s.VotesRepo.Add(ctx, &Vote{PostID: postID, UserID: userID})
	}

	if existing == nil {
		return ErrNotVoted
	}

	return s.VotesRepo.Delete(ctx, postID, userID)
}
