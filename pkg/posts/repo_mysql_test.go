package posts

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var postColumns = []string{"id", "title", "content", "published", "owner_id", "created", "votes"}

var created = time.Date(2024, 3, 14, 10, 30, 0, 0, time.UTC)
var testPost = &Post{
	ID:        int64(10),
	Title:     "first post",
	Content:   "some content",
	Published: true,
	OwnerID:   int64(24),
	Created:   created,
	Votes:     int64(3),
}

func newMock(t *testing.T) (*PostsRepoSQL, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}

	return NewPostsRepoSQL(db), mock, func() { db.Close() }
}

func postRow(p *Post) *sqlmock.Rows {
	return sqlmock.NewRows(postColumns).
		AddRow(p.ID, p.Title, p.Content, p.Published, p.OwnerID, p.Created, p.Votes)
}

func TestGetByID(t *testing.T) {
	repo, mock, closer := newMock(t)
	defer closer()

	ctx := context.Background()

	mock.
		ExpectQuery("SELECT p.`id`, p.`title`, p.`content`, p.`published`, p.`owner_id`, p.`created`").
		WithArgs(testPost.ID).
		WillReturnRows(postRow(testPost))

	res, err := repo.GetByID(ctx, testPost.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Error())
	}
	if !reflect.DeepEqual(testPost, res) {
		t.Fatalf("expected %v, but was %v", testPost, res)
	}

	// absent post maps to nil, not an error
	mock.
		ExpectQuery("SELECT p.`id`, p.`title`, p.`content`, p.`published`, p.`owner_id`, p.`created`").
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(postColumns))

	res, err = repo.GetByID(ctx, int64(999))
	if res != nil || err != nil {
		t.Fatalf("wrong result, expected both nil but was %v, %v", res, err)
	}

	// error
	mock.
		ExpectQuery("SELECT p.`id`, p.`title`, p.`content`, p.`published`, p.`owner_id`, p.`created`").
		WithArgs(testPost.ID).
		WillReturnError(errors.New("db_error"))

	res, err = repo.GetByID(ctx, testPost.ID)
	if res != nil || err == nil {
		t.Fatalf("expected error but was %v, %v", res, err)
	}
}

func TestGetAll(t *testing.T) {
	repo, mock, closer := newMock(t)
	defer closer()

	ctx := context.Background()
	second := &Post{ID: 11, Title: "second post", Content: "more content", Published: true, OwnerID: 31, Created: created}

	rows := sqlmock.NewRows(postColumns).
		AddRow(testPost.ID, testPost.Title, testPost.Content, testPost.Published, testPost.OwnerID, testPost.Created, testPost.Votes).
		AddRow(second.ID, second.Title, second.Content, second.Published, second.OwnerID, second.Created, second.Votes)

	mock.
		ExpectQuery("SELECT p.`id`, p.`title`, p.`content`, p.`published`, p.`owner_id`, p.`created`").
		WithArgs("%post%", 10, 0).
		WillReturnRows(rows)

	res, err := repo.GetAll(ctx, Filter{Limit: 10, Offset: 0, Search: "post"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Error())
	}
	if !reflect.DeepEqual([]*Post{testPost, second}, res) {
		t.Fatalf("expected %v, but was %v", []*Post{testPost, second}, res)
	}

	mock.
		ExpectQuery("SELECT p.`id`, p.`title`, p.`content`, p.`published`, p.`owner_id`, p.`created`").
		WithArgs("%%", 10, 0).
		WillReturnError(errors.New("db_error"))

	_, err = repo.GetAll(ctx, Filter{Limit: 10})
	if err == nil {
		t.Fatalf("expected error but was nil")
	}
}

func TestGetLatest(t *testing.T) {
	repo, mock, closer := newMock(t)
	defer closer()

	ctx := context.Background()

	mock.
		ExpectQuery("SELECT p.`id`, p.`title`, p.`content`, p.`published`, p.`owner_id`, p.`created`").
		WithArgs(1).
		WillReturnRows(postRow(testPost))

	res, err := repo.GetLatest(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Error())
	}
	if !reflect.DeepEqual([]*Post{testPost}, res) {
		t.Fatalf("expected %v, but was %v", []*Post{testPost}, res)
	}
}

func TestAddPost(t *testing.T) {
	repo, mock, closer := newMock(t)
	defer closer()

	ctx := context.Background()

	mock.
		ExpectExec("INSERT INTO posts").
		WithArgs(testPost.Title, testPost.Content, testPost.Published, testPost.OwnerID, testPost.Created).
		WillReturnResult(sqlmock.NewResult(testPost.ID, 1))

	id, err := repo.Add(ctx, testPost)
	if err != nil {
		t.Fatalf("unexpected error while adding post: %v", err.Error())
	}
	if id != testPost.ID {
		t.Fatalf("expected %v but was %v", testPost.ID, id)
	}

	// error
	mock.
		ExpectExec("INSERT INTO posts").
		WithArgs(testPost.Title, testPost.Content, testPost.Published, testPost.OwnerID, testPost.Created).
		WillReturnError(errors.New("db_error"))

	_, err = repo.Add(ctx, testPost)
	if err == nil {
		t.Fatalf("expected error but was nil")
	}
}

func TestUpdateAsOwner(t *testing.T) {
	repo, mock, closer := newMock(t)
	defer closer()

	ctx := context.Background()

	// owner updates their post
	mock.
		ExpectExec("UPDATE posts SET").
		WithArgs(testPost.Title, testPost.Content, testPost.Published, testPost.ID, testPost.OwnerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateAsOwner(ctx, testPost, testPost.OwnerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Error())
	}

	// someone else's post: zero affected rows, owner read disagrees
	mock.
		ExpectExec("UPDATE posts SET").
		WithArgs(testPost.Title, testPost.Content, testPost.Published, testPost.ID, int64(31)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.
		ExpectQuery("SELECT `owner_id` FROM posts WHERE").
		WithArgs(testPost.ID).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(testPost.OwnerID))

	err = repo.UpdateAsOwner(ctx, testPost, int64(31))
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner but was %v", err)
	}

	// missing post: zero affected rows, owner read finds nothing
	mock.
		ExpectExec("UPDATE posts SET").
		WithArgs(testPost.Title, testPost.Content, testPost.Published, testPost.ID, testPost.OwnerID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.
		ExpectQuery("SELECT `owner_id` FROM posts WHERE").
		WithArgs(testPost.ID).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}))

	err = repo.UpdateAsOwner(ctx, testPost, testPost.OwnerID)
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound but was %v", err)
	}

	// no-op update with identical values still succeeds for the owner
	mock.
		ExpectExec("UPDATE posts SET").
		WithArgs(testPost.Title, testPost.Content, testPost.Published, testPost.ID, testPost.OwnerID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.
		ExpectQuery("SELECT `owner_id` FROM posts WHERE").
		WithArgs(testPost.ID).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(testPost.OwnerID))

	err = repo.UpdateAsOwner(ctx, testPost, testPost.OwnerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// error
	mock.
		ExpectExec("UPDATE posts SET").
		WithArgs(testPost.Title, testPost.Content, testPost.Published, testPost.ID, testPost.OwnerID).
		WillReturnError(errors.New("db_error"))

	err = repo.UpdateAsOwner(ctx, testPost, testPost.OwnerID)
	if err == nil {
		t.Fatalf("expected error but was nil")
	}
}

func TestDeleteAsOwner(t *testing.T) {
	repo, mock, closer := newMock(t)
	defer closer()

	ctx := context.Background()

	mock.
		ExpectExec("DELETE FROM posts WHERE").
		WithArgs(testPost.ID, testPost.OwnerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteAsOwner(ctx, testPost.ID, testPost.OwnerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Error())
	}

	// someone else's post
	mock.
		ExpectExec("DELETE FROM posts WHERE").
		WithArgs(testPost.ID, int64(31)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.
		ExpectQuery("SELECT `owner_id` FROM posts WHERE").
		WithArgs(testPost.ID).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(testPost.OwnerID))

	err = repo.DeleteAsOwner(ctx, testPost.ID, int64(31))
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner but was %v", err)
	}

	// missing post
	mock.
		ExpectExec("DELETE FROM posts WHERE").
		WithArgs(testPost.ID, testPost.OwnerID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.
		ExpectQuery("SELECT `owner_id` FROM posts WHERE").
		WithArgs(testPost.ID).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}))

	err = repo.DeleteAsOwner(ctx, testPost.ID, testPost.OwnerID)
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound but was %v", err)
	}

	// error
	mock.
		ExpectExec("DELETE FROM posts WHERE").
		WithArgs(testPost.ID, testPost.OwnerID).
		WillReturnError(errors.New("db_error"))

	err = repo.DeleteAsOwner(ctx, testPost.ID, testPost.OwnerID)
	if err == nil {
		t.Fatalf("expected error but was nil")
	}
}
