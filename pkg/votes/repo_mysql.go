package votes

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

const mysqlErrDuplicateEntry = 1062

type VotesRepoSQL struct {
	db *sql.DB
}

func NewVotesRepoSQL(db *sql.DB) *VotesRepoSQL {
	return &VotesRepoSQL{db: db}
}

func (repo *VotesRepoSQL) Get(ctx context.Context, postID, userID int64) (*Vote, error) {
	query := "SELECT `post_id`, `user_id` FROM votes WHERE post_id = ? AND user_id = ?"
	r := repo.db.QueryRowContext(ctx, query, postID, userID)

	v := Vote{}
	err := r.Scan(&v.PostID, &v.UserID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// Add inserts the pair and leaves uniqueness to the composite primary key:
// when two adds for the same pair race, the loser's duplicate-entry error
// comes back as ErrAlreadyVoted.
func (repo *VotesRepoSQL) Add(ctx context.Context, v *Vote) error {
	query := "INSERT INTO votes (`post_id`, `user_id`) VALUES (?, ?)"
	_, err := repo.db.ExecContext(ctx, query, v.PostID, v.UserID)

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
		return ErrAlreadyVoted
	}

	return err
}

func (repo *VotesRepoSQL) Delete(ctx context.Context, postID, userID int64) error {
	query := "DELETE FROM votes WHERE post_id = ? AND user_id = ?"
	r, err := repo.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return err
	}

	affected, err := r.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotVoted
	}

	return nil
}
