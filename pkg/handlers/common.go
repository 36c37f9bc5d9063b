package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"socialapp/pkg/posts"

	"github.com/gorilla/mux"
)

type Response struct {
	Message string `json:"message"`
}

type CustomError struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
}

type ErrorsResponse struct {
	Errors []*CustomError `json:"errors"`
}

type PostResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	OwnerID   int64     `json:"owner_id"`
	Created   time.Time `json:"created"`
	Votes     int64     `json:"votes"`
}

func WriteResponse(w http.ResponseWriter, msg string, status int) {
	resp := &Response{Message: msg}
	res, err := json.Marshal(resp)
	if err != nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(res)
}

func writeErrorsResponse(w http.ResponseWriter, errors []*CustomError, status int) {
	errorsJSON, err := json.Marshal(&ErrorsResponse{Errors: errors})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(errorsJSON)
}

func writeJSON(w http.ResponseWriter, payload interface{}, status int) error {
	respBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(respBytes)
	return nil
}

func MapToPostResponse(p *posts.Post) *PostResponse {
	return &PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		OwnerID:   p.OwnerID,
		Created:   p.Created,
		Votes:     p.Votes,
	}
}

func mapToPostsResponse(postsDb []*posts.Post) []*PostResponse {
	result := make([]*PostResponse, 0, len(postsDb))
	for _, p := range postsDb {
		result = append(result, MapToPostResponse(p))
	}

	return result
}

func ParseIntParam(r *http.Request, name string) (int64, error) {
	vars := mux.Vars(r)
	varStr := vars[name]
	val, err := strconv.ParseInt(varStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("wrong %s value: %v", name, varStr)
	}

	return val, nil
}

func parseQueryInt(r *http.Request, name string, def int) int {
	valStr := r.URL.Query().Get(name)
	if valStr == "" {
		return def
	}

	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return def
	}

	return val
}
