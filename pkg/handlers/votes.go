package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"

	"socialapp/pkg/posts"
	"socialapp/pkg/session"
	"socialapp/pkg/votes"

	"go.uber.org/zap"
)

type VoteHandler struct {
	Service VoteToggler
	Logger  *zap.SugaredLogger
}

type VoteToggler interface {
	Toggle(ctx context.Context, postID, userID int64, dir votes.Direction) error
}

type VoteReq struct {
	PostID *int64 `json:"post_id"`
	Dir    *int   `json:"dir"`
}

func (v *VoteReq) validate() []*CustomError {
	var postIDErr, dirErr *CustomError
	if v.PostID == nil {
		postIDErr = &CustomError{Location: "body", Param: "post_id", Msg: "is required"}
	}

	switch {
	case v.Dir == nil:
		dirErr = &CustomError{Location: "body", Param: "dir", Msg: "is required"}
	case *v.Dir != int(votes.Add) && *v.Dir != int(votes.Remove):
		dirErr = &CustomError{Location: "body", Param: "dir", Value: fmt.Sprint(*v.Dir), Msg: "must be 0 or 1"}
	}

	return mergeErrors(postIDErr, dirErr)
}

func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	var req VoteReq
	err = json.Unmarshal(body, &req)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	validationErrors := req.validate()
	if len(validationErrors) > 0 {
		writeErrorsResponse(w, validationErrors, http.StatusUnprocessableEntity)
		return
	}

	sess, err := session.SessionFromContext(r.Context())
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	dir := votes.Direction(*req.Dir)
	err = h.Service.Toggle(r.Context(), *req.PostID, sess.UserID, dir)

	switch {
	case err == nil:
	case errors.Is(err, posts.ErrPostNotFound):
		WriteResponse(w, fmt.Sprintf("post %d not found", *req.PostID), http.StatusNotFound)
		return
	case errors.Is(err, votes.ErrAlreadyVoted):
		WriteResponse(w, fmt.Sprintf("user %d has already voted on post %d", sess.UserID, *req.PostID), http.StatusConflict)
		return
	case errors.Is(err, votes.ErrNotVoted):
		WriteResponse(w, fmt.Sprintf("user %d has not voted on post %d", sess.UserID, *req.PostID), http.StatusNotFound)
		return
	default:
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if dir == votes.Add {
		WriteResponse(w, "successfully added vote", http.StatusCreated)
		return
	}

	WriteResponse(w, "successfully removed vote", http.StatusOK)
}
