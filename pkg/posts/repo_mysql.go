package posts

import (
	"context"
	"database/sql"
)

type PostsRepoSQL struct {
	db *sql.DB
}

func NewPostsRepoSQL(db *sql.DB) *PostsRepoSQL {
	return &PostsRepoSQL{db: db}
}

// Vote counts are computed on read via the join, never stored on the post row.
const selectWithVotes = "SELECT p.`id`, p.`title`, p.`content`, p.`published`, p.`owner_id`, p.`created`, COUNT(v.`post_id`) " +
	"FROM posts p LEFT JOIN votes v ON v.`post_id` = p.`id`"

func (repo *PostsRepoSQL) GetAll(ctx context.Context, f Filter) ([]*Post, error) {
	query := selectWithVotes + " WHERE p.`title` LIKE ? GROUP BY p.`id` ORDER BY p.`id` LIMIT ? OFFSET ?"
	rows, err := repo.db.QueryContext(ctx, query, "%"+f.Search+"%", f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*Post, 0, f.Limit)
	for rows.Next() {
		p := &Post{}
		err = rows.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.OwnerID, &p.Created, &p.Votes)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}

	return result, rows.Err()
}

func (repo *PostsRepoSQL) GetLatest(ctx context.Context, count int) ([]*Post, error) {
	query := selectWithVotes + " GROUP BY p.`id` ORDER BY p.`created` DESC LIMIT ?"
	rows, err := repo.db.QueryContext(ctx, query, count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*Post, 0, count)
	for rows.Next() {
		p := &Post{}
		err = rows.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.OwnerID, &p.Created, &p.Votes)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}

	return result, rows.Err()
}

func (repo *PostsRepoSQL) GetByID(ctx context.Context, id int64) (*Post, error) {
	query := selectWithVotes + " WHERE p.`id` = ? GROUP BY p.`id`"
	r := repo.db.QueryRowContext(ctx, query, id)

	p := Post{}
	err := r.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.OwnerID, &p.Created, &p.Votes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (repo *PostsRepoSQL) Add(ctx context.Context, p *Post) (int64, error) {
	query := "INSERT INTO posts (`title`, `content`, `published`, `owner_id`, `created`) VALUES (?, ?, ?, ?, ?)"
	r, err := repo.db.ExecContext(ctx, query, p.Title, p.Content, p.Published, p.OwnerID, p.Created)
	if err != nil {
		return 0, err
	}

	lastID, err := r.LastInsertId()
	if err != nil {
		return 0, err
	}

	return lastID, nil
}

// UpdateAsOwner mutates the post in a single statement keyed on both id and
// owner, so the ownership check cannot race a concurrent write. Zero affected
// rows is ambiguous (missing post, foreign owner, or a no-op update with
// identical values) and is disambiguated with a follow-up read.
func (repo *PostsRepoSQL) UpdateAsOwner(ctx context.Context, p *Post, ownerID int64) error {
	query := "UPDATE posts SET `title` = ?, `content` = ?, `published` = ? WHERE `id` = ? AND `owner_id` = ?"
	r, err := repo.db.ExecContext(ctx, query, p.Title, p.Content, p.Published, p.ID, ownerID)
	if err != nil {
		return err
	}

	affected, err := r.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	actualOwner, err := repo.ownerOf(ctx, p.ID)
	if err != nil {
		return err
	}
	if actualOwner != ownerID {
		return ErrNotOwner
	}

	return nil
}

// DeleteAsOwner removes the post in a single statement keyed on both id and
// owner; dependent votes are removed by the cascade on votes.post_id.
func (repo *PostsRepoSQL) DeleteAsOwner(ctx context.Context, id, ownerID int64) error {
	query := "DELETE FROM posts WHERE `id` = ? AND `owner_id` = ?"
	r, err := repo.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}

	affected, err := r.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	_, err = repo.ownerOf(ctx, id)
	if err != nil {
		return err
	}

	return ErrNotOwner
}

func (repo *PostsRepoSQL) ownerOf(ctx context.Context, id int64) (int64, error) {
	query := "SELECT `owner_id` FROM posts WHERE id = ?"
	r := repo.db.QueryRowContext(ctx, query, id)

	var ownerID int64
	err := r.Scan(&ownerID)
	if err == sql.ErrNoRows {
		return 0, ErrPostNotFound
	}
	if err != nil {
		return 0, err
	}

	return ownerID, nil
}
