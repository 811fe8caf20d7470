package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (c controller) Mux() http.Handler {
	r := chi.NewRouter()

	r.Use(c.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", c.RegisterUser)
		r.Post("/users/login", c.LoginUser)
		r.Get("/users/{user-id}/rooms", c.ListUserRooms)

		r.Get("/rooms", c.ListPublicRooms)
		r.Post("/rooms", c.CreateRoom)
		r.Route("/rooms/{room-id}", func(r chi.Router) {
			r.Get("/", c.GetRoomSnapshot)
			r.Post("/join", c.JoinRoom)
			r.Post("/leave", c.LeaveRoom)
			r.Post("/activity", c.Heartbeat)
			r.Get("/loops", c.ListLoops)
			r.Post("/loops", c.CreateLoop)
			r.Delete("/loops", c.DeleteAllLoops)
			r.Post("/export", c.ExportMixdown)
		})

		r.Patch("/loops/{loop-id}", c.UpdateLoop)
		r.Delete("/loops/{loop-id}", c.DeleteLoop)
	})

	return r
}
