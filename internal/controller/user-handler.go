package controller

import (
	"net/http"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/service/user"
	"github.com/Sivakumarraj/Music-Mesh-Studio/pkg/rest"
)

type registerUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=6"`
}

func (c controller) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if !c.readAndValidate(w, r, &req) {
		return
	}

	created, err := c.userService.Register(r.Context(), &user.RegisterParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, created)
}

type loginUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c controller) LoginUser(w http.ResponseWriter, r *http.Request) {
	var req loginUserRequest
	if !c.readAndValidate(w, r, &req) {
		return
	}

	loggedIn, err := c.userService.Login(r.Context(), &user.LoginParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, loggedIn)
}

func (c controller) ListUserRooms(w http.ResponseWriter, r *http.Request) {
	userId, ok := c.idParam(r, "user-id")
	if !ok {
		c.writeInvalidParam(w, "user id")
		return
	}

	rooms, err := c.roomService.ListUserRooms(r.Context(), userId)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rooms)
}
