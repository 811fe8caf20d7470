package controller

import (
	"net/http"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/service/room"
	"github.com/Sivakumarraj/Music-Mesh-Studio/pkg/rest"
)

type createLoopRequest struct {
	Name      string  `json:"name" validate:"required,max=64"`
	AudioData string  `json:"audioData" validate:"required"`
	Duration  float64 `json:"duration" validate:"required,gt=0"`
	UserId    int64   `json:"userId" validate:"required"`
}

func (c controller) CreateLoop(w http.ResponseWriter, r *http.Request) {
	roomId, ok := c.idParam(r, "room-id")
	if !ok {
		c.writeInvalidParam(w, "room id")
		return
	}

	var req createLoopRequest
	if !c.readAndValidate(w, r, &req) {
		return
	}

	loop, err := c.roomService.CreateLoop(r.Context(), &room.CreateLoopParams{
		RoomId:    roomId,
		UserId:    req.UserId,
		Name:      req.Name,
		AudioData: req.AudioData,
		Duration:  req.Duration,
	})
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, loop)
}

func (c controller) ListLoops(w http.ResponseWriter, r *http.Request) {
	roomId, ok := c.idParam(r, "room-id")
	if !ok {
		c.writeInvalidParam(w, "room id")
		return
	}

	loops, err := c.roomService.ListLoops(r.Context(), roomId)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, loops)
}

type updateLoopRequest struct {
	Volume   *float64 `json:"volume"`
	IsActive *bool    `json:"isActive"`
}

func (c controller) UpdateLoop(w http.ResponseWriter, r *http.Request) {
	loopId, ok := c.idParam(r, "loop-id")
	if !ok {
		c.writeInvalidParam(w, "loop id")
		return
	}

	var req updateLoopRequest
	if !c.readAndValidate(w, r, &req) {
		return
	}

	loop, err := c.roomService.UpdateLoop(r.Context(), &room.UpdateLoopParams{
		LoopId:   loopId,
		Volume:   req.Volume,
		IsActive: req.IsActive,
	})
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, loop)
}

func (c controller) DeleteLoop(w http.ResponseWriter, r *http.Request) {
	loopId, ok := c.idParam(r, "loop-id")
	if !ok {
		c.writeInvalidParam(w, "loop id")
		return
	}

	if err := c.roomService.DeleteLoop(r.Context(), loopId); err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"success": true})
}

func (c controller) DeleteAllLoops(w http.ResponseWriter, r *http.Request) {
	roomId, ok := c.idParam(r, "room-id")
	if !ok {
		c.writeInvalidParam(w, "room id")
		return
	}

	resp, err := c.roomService.DeleteAllLoops(r.Context(), roomId)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		"success": resp.Failed == 0,
		"deleted": resp.Deleted,
		"failed":  resp.Failed,
	})
}
