package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

const mysqlErrDuplicateEntry = 1062

type UserRepoSQL struct {
	db *sql.DB
}

func NewUserRepoSQL(db *sql.DB) *UserRepoSQL {
	return &UserRepoSQL{db: db}
}

func (repo *UserRepoSQL) GetByID(ctx context.Context, id int64) (*User, error) {
	query := "SELECT `id`, `email`, `password`, `created` FROM users WHERE id = ?"
	r := repo.db.QueryRowContext(ctx, query, id)

	u := User{}
	err := r.Scan(&u.ID, &u.Email, &u.Password, &u.Created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (repo *UserRepoSQL) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := "SELECT `id`, `email`, `password`, `created` FROM users WHERE email = ?"
	r := repo.db.QueryRowContext(ctx, query, email)

	u := User{}
	err := r.Scan(&u.ID, &u.Email, &u.Password, &u.Created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// Add relies on the unique index on email rather than a lookup beforehand,
// so two concurrent registrations with the same address cannot both pass.
func (repo *UserRepoSQL) Add(ctx context.Context, u *User) (int64, error) {
	query := "INSERT INTO users (`email`, `password`, `created`) VALUES (?, ?, ?)"
	r, err := repo.db.ExecContext(ctx, query, u.Email, u.Password, u.Created)

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
		return 0, ErrEmailTaken
	}
	if err != nil {
		return 0, err
	}

	lastID, err := r.LastInsertId()
	if err != nil {
		return 0, err
	}

	return lastID, nil
}

// Delete removes the user row; the posts and votes referencing it go with
// it through the ON DELETE CASCADE clauses on their foreign keys.
func (repo *UserRepoSQL) Delete(ctx context.Context, id int64) (bool, error) {
	query := "DELETE FROM users WHERE id = ?"
	r, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := r.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
