package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"socialapp/pkg/session"
	"socialapp/pkg/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// One generic message for every failed login, so the response never tells
// whether the email or the password was wrong.
const invalidCredentialsMsg = "invalid email or password"

type UserHandler struct {
	Sm     session.SessionManager
	Repo   UsersRepo
	Logger *zap.SugaredLogger
}

type UsersRepo interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Add(ctx context.Context, u *user.User) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type AuthReq struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID      int64     `json:"id"`
	Email   string    `json:"email"`
	Created time.Time `json:"created"`
}

func (r *AuthReq) validate() []*CustomError {
	email := &Validator{value: r.Email, location: "body", field: "email"}
	emailErr := func() *CustomError {
		err := email.Required()
		if err != nil {
			return err
		}
		err = email.Empty()
		if err != nil {
			return err
		}
		err = email.MaxLength(255)
		if err != nil {
			return err
		}
		return email.Email()
	}()

	pwd := &Validator{value: r.Password, location: "body", field: "password"}
	pwdErr := func() *CustomError {
		err := pwd.Required()
		if err != nil {
			return err
		}
		err = pwd.Empty()
		if err != nil {
			return err
		}
		err = pwd.MinLength(8)
		if err != nil {
			return err
		}
		return pwd.MaxLength(72)
	}()

	return mergeErrors(emailErr, pwdErr)
}

func (u *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		u.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	var authReq AuthReq
	err = json.Unmarshal(body, &authReq)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	validationErrors := authReq.validate()
	if len(validationErrors) > 0 {
		writeErrorsResponse(w, validationErrors, http.StatusUnprocessableEntity)
		return
	}

	usr, err := u.Repo.GetByEmail(r.Context(), *authReq.Email)
	if err != nil {
		u.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if usr == nil {
		WriteResponse(w, invalidCredentialsMsg, http.StatusUnauthorized)
		return
	}

	err = bcrypt.CompareHashAndPassword(usr.Password, []byte(*authReq.Password))
	if err != nil {
		WriteResponse(w, invalidCredentialsMsg, http.StatusUnauthorized)
		return
	}

	u.writeAuthResponse(w, r, usr, http.StatusOK)
}

func (u *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		u.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	var authReq AuthReq
	err = json.Unmarshal(body, &authReq)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	validationErrors := authReq.validate()
	if len(validationErrors) > 0 {
		writeErrorsResponse(w, validationErrors, http.StatusUnprocessableEntity)
		return
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(*authReq.Password), bcrypt.DefaultCost)
	if err != nil {
		u.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	usr := &user.User{
		Email:    *authReq.Email,
		Password: passHash,
		Created:  time.Now(),
	}

	id, err := u.Repo.Add(r.Context(), usr)
	if errors.Is(err, user.ErrEmailTaken) {
		validationError := &CustomError{Location: "body", Param: "email", Value: *authReq.Email, Msg: "already exists"}
		writeErrorsResponse(w, []*CustomError{validationError}, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		u.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	usr.ID = id

	u.writeAuthResponse(w, r, usr, http.StatusCreated)
}

func (u *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIntParam(r, "user_id")
	if err != nil {
		WriteResponse(w, "invalid user id", http.StatusBadRequest)
		return
	}

	usr, err := u.Repo.GetByID(r.Context(), id)
	if err != nil {
		u.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if usr == nil {
		WriteResponse(w, fmt.Sprintf("user %d not found", id), http.StatusNotFound)
		return
	}

	resp := &UserResponse{ID: usr.ID, Email: usr.Email, Created: usr.Created}
	err = writeJSON(w, resp, http.StatusOK)
	if err != nil {
		u.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// Delete removes the caller's own account; the store cascades the removal
// to the account's posts and votes.
func (u *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIntParam(r, "user_id")
	if err != nil {
		WriteResponse(w, "invalid user id", http.StatusBadRequest)
		return
	}

	sess, err := session.SessionFromContext(r.Context())
	if err != nil {
		u.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if sess.UserID != id {
		WriteResponse(w, "you can only delete your own account", http.StatusForbidden)
		return
	}

	ok, err := u.Repo.Delete(r.Context(), id)
	if err != nil {
		u.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if !ok {
		WriteResponse(w, fmt.Sprintf("user %d not found", id), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (u *UserHandler) writeAuthResponse(w http.ResponseWriter, r *http.Request, usr *user.User, status int) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	token, err := u.Sm.Create(ctx, usr.ID)
	if err != nil {
		u.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = writeJSON(w, &AuthResponse{Token: token}, status)
	if err != nil {
		u.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}
