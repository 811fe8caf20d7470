package controller

import (
	"net/http"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/service/room"
	"github.com/Sivakumarraj/Music-Mesh-Studio/pkg/rest"
)

type createRoomRequest struct {
	Name         string `json:"name" validate:"required,max=64"`
	Bpm          int    `json:"bpm" validate:"required,min=60,max=200"`
	KeySignature string `json:"keySignature" validate:"required"`
	IsPublic     bool   `json:"isPublic"`
	CreatorId    int64  `json:"creatorId" validate:"required"`
}

func (c controller) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if !c.readAndValidate(w, r, &req) {
		return
	}

	resp, err := c.roomService.CreateRoom(r.Context(), &room.CreateRoomParams{
		Name:         req.Name,
		Bpm:          req.Bpm,
		KeySignature: req.KeySignature,
		IsPublic:     req.IsPublic,
		CreatorId:    req.CreatorId,
	})
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, resp.Room)
}

func (c controller) ListPublicRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.roomService.ListPublicRooms(r.Context())
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rooms)
}

func (c controller) GetRoomSnapshot(w http.ResponseWriter, r *http.Request) {
	roomId, ok := c.idParam(r, "room-id")
	if !ok {
		c.writeInvalidParam(w, "room id")
		return
	}

	snapshot, err := c.roomService.GetRoomSnapshot(r.Context(), roomId)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, snapshot)
}

type participantRequest struct {
	UserId int64 `json:"userId" validate:"required"`
}

func (c controller) JoinRoom(w http.ResponseWriter, r *http.Request) {
	roomId, ok := c.idParam(r, "room-id")
	if !ok {
		c.writeInvalidParam(w, "room id")
		return
	}

	var req participantRequest
	if !c.readAndValidate(w, r, &req) {
		return
	}

	participant, err := c.roomService.JoinRoom(r.Context(), roomId, req.UserId)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, participant)
}

func (c controller) LeaveRoom(w http.ResponseWriter, r *http.Request) {
	roomId, ok := c.idParam(r, "room-id")
	if !ok {
		c.writeInvalidParam(w, "room id")
		return
	}

	var req participantRequest
	if !c.readAndValidate(w, r, &req) {
		return
	}

	removed, err := c.roomService.LeaveRoom(r.Context(), roomId, req.UserId)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"success": removed})
}

func (c controller) Heartbeat(w http.ResponseWriter, r *http.Request) {
	roomId, ok := c.idParam(r, "room-id")
	if !ok {
		c.writeInvalidParam(w, "room id")
		return
	}

	var req participantRequest
	if !c.readAndValidate(w, r, &req) {
		return
	}

	if err := c.roomService.Heartbeat(r.Context(), roomId, req.UserId); err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"success": true})
}

func (c controller) ExportMixdown(w http.ResponseWriter, r *http.Request) {
	roomId, ok := c.idParam(r, "room-id")
	if !ok {
		c.writeInvalidParam(w, "room id")
		return
	}

	resp, err := c.roomService.ExportMixdown(r.Context(), roomId)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, resp)
}
