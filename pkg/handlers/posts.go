package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"socialapp/pkg/posts"
	"socialapp/pkg/session"

	"go.uber.org/zap"
)

const defaultPageSize = 10

type PostHandler struct {
	PostsRepo PostsRepo
	Logger    *zap.SugaredLogger
}

type PostsRepo interface {
	GetAll(ctx context.Context, f posts.Filter) ([]*posts.Post, error)
	GetLatest(ctx context.Context, count int) ([]*posts.Post, error)
	GetByID(ctx context.Context, id int64) (*posts.Post, error)
	Add(ctx context.Context, p *posts.Post) (int64, error)
	UpdateAsOwner(ctx context.Context, p *posts.Post, ownerID int64) error
	DeleteAsOwner(ctx context.Context, id, ownerID int64) error
}

type PostReq struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

func (p *PostReq) validate() []*CustomError {
	title := &Validator{value: p.Title, location: "body", field: "title"}
	titleErr := func() *CustomError {
		err := title.Required()
		if err != nil {
			return err
		}
		return title.Empty()
	}()

	content := &Validator{value: p.Content, location: "body", field: "content"}
	contentErr := func() *CustomError {
		err := content.Required()
		if err != nil {
			return err
		}
		return content.Empty()
	}()

	return mergeErrors(titleErr, contentErr)
}

func (p *PostReq) published() bool {
	if p.Published == nil {
		return true
	}

	return *p.Published
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parsePostReq(w, r)
	if !ok {
		return
	}

	sess, err := session.SessionFromContext(r.Context())
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	post := &posts.Post{
		Title:     *req.Title,
		Content:   *req.Content,
		Published: req.published(),
		OwnerID:   sess.UserID,
		Created:   time.Now(),
	}

	id, err := h.PostsRepo.Add(r.Context(), post)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	post.ID = id

	err = writeJSON(w, MapToPostResponse(post), http.StatusCreated)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (h *PostHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := posts.Filter{
		Limit:  parseQueryInt(r, "limit", defaultPageSize),
		Offset: parseQueryInt(r, "skip", 0),
		Search: r.URL.Query().Get("search"),
	}

	postsDb, err := h.PostsRepo.GetAll(r.Context(), filter)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = writeJSON(w, mapToPostsResponse(postsDb), http.StatusOK)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (h *PostHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	count, err := ParseIntParam(r, "count")
	if err != nil {
		WriteResponse(w, "invalid count value", http.StatusBadRequest)
		return
	}

	postsDb, err := h.PostsRepo.GetLatest(r.Context(), int(count))
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = writeJSON(w, mapToPostsResponse(postsDb), http.StatusOK)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIntParam(r, "post_id")
	if err != nil {
		WriteResponse(w, "invalid post id", http.StatusBadRequest)
		return
	}

	post, err := h.PostsRepo.GetByID(r.Context(), id)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if post == nil {
		WriteResponse(w, fmt.Sprintf("post %d not found", id), http.StatusNotFound)
		return
	}

	err = writeJSON(w, MapToPostResponse(post), http.StatusOK)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIntParam(r, "post_id")
	if err != nil {
		WriteResponse(w, "invalid post id", http.StatusBadRequest)
		return
	}

	req, ok := h.parsePostReq(w, r)
	if !ok {
		return
	}

	sess, err := session.SessionFromContext(r.Context())
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	post := &posts.Post{
		ID:        id,
		Title:     *req.Title,
		Content:   *req.Content,
		Published: req.published(),
	}

	err = h.PostsRepo.UpdateAsOwner(r.Context(), post, sess.UserID)
	if h.writeOwnershipError(w, id, err) {
		return
	}

	updated, err := h.PostsRepo.GetByID(r.Context(), id)
	if err != nil || updated == nil {
		if err != nil {
			h.Logger.Error(err.Error())
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = writeJSON(w, MapToPostResponse(updated), http.StatusOK)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIntParam(r, "post_id")
	if err != nil {
		WriteResponse(w, "invalid post id", http.StatusBadRequest)
		return
	}

	sess, err := session.SessionFromContext(r.Context())
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = h.PostsRepo.DeleteAsOwner(r.Context(), id, sess.UserID)
	if h.writeOwnershipError(w, id, err) {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PostHandler) parsePostReq(w http.ResponseWriter, r *http.Request) (*PostReq, bool) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return nil, false
	}

	var req PostReq
	err = json.Unmarshal(body, &req)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return nil, false
	}

	validationErrors := req.validate()
	if len(validationErrors) > 0 {
		writeErrorsResponse(w, validationErrors, http.StatusUnprocessableEntity)
		return nil, false
	}

	return &req, true
}

// writeOwnershipError maps the gate's outcome: a missing post answers before
// ownership is even considered. Reports whether a response was written.
func (h *PostHandler) writeOwnershipError(w http.ResponseWriter, id int64, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, posts.ErrPostNotFound):
		WriteResponse(w, fmt.Sprintf("post %d not found", id), http.StatusNotFound)
	case errors.Is(err, posts.ErrNotOwner):
		WriteResponse(w, "you are not allowed to modify this post", http.StatusForbidden)
	default:
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}

	return true
}
