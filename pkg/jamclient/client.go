// Package jamclient is the Go client for the jam-room server. It implements
// the reconciliation contract every participant follows: a fixed-interval
// ambient poll, an immediate refetch after each local mutation, optimistic
// local echo for volume/mute, and a coarser heartbeat cadence.
package jamclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is a non-2xx response with the server's message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Message == "" {
			errBody.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func (c *Client) Register(ctx context.Context, username, password string) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/api/users/register", map[string]string{
		"username": username,
		"password": password,
	}, &user)

	return user, err
}

func (c *Client) Login(ctx context.Context, username, password string) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/api/users/login", map[string]string{
		"username": username,
		"password": password,
	}, &user)

	return user, err
}

func (c *Client) ListPublicRooms(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	err := c.do(ctx, http.MethodGet, "/api/rooms", nil, &rooms)

	return rooms, err
}

func (c *Client) ListUserRooms(ctx context.Context, userId int64) ([]domain.Room, error) {
	var rooms []domain.Room
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/rooms", userId), nil, &rooms)

	return rooms, err
}

type CreateRoomParams struct {
	Name         string `json:"name"`
	Bpm          int    `json:"bpm"`
	KeySignature string `json:"keySignature"`
	IsPublic     bool   `json:"isPublic"`
	CreatorId    int64  `json:"creatorId"`
}

func (c *Client) CreateRoom(ctx context.Context, params *CreateRoomParams) (domain.Room, error) {
	var room domain.Room
	err := c.do(ctx, http.MethodPost, "/api/rooms", params, &room)

	return room, err
}

func (c *Client) GetRoomSnapshot(ctx context.Context, roomId int64) (domain.RoomSnapshot, error) {
	var snapshot domain.RoomSnapshot
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/rooms/%d", roomId), nil, &snapshot)

	return snapshot, err
}

func (c *Client) JoinRoom(ctx context.Context, roomId, userId int64) (domain.RoomParticipant, error) {
	var participant domain.RoomParticipant
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/rooms/%d/join", roomId), map[string]int64{
		"userId": userId,
	}, &participant)

	return participant, err
}

func (c *Client) LeaveRoom(ctx context.Context, roomId, userId int64) (bool, error) {
	var resp struct {
		Success bool `json:"success"`
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/rooms/%d/leave", roomId), map[string]int64{
		"userId": userId,
	}, &resp)

	return resp.Success, err
}

func (c *Client) Heartbeat(ctx context.Context, roomId, userId int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/rooms/%d/activity", roomId), map[string]int64{
		"userId": userId,
	}, nil)
}

func (c *Client) ListLoops(ctx context.Context, roomId int64) ([]domain.LoopWithUser, error) {
	var loops []domain.LoopWithUser
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/rooms/%d/loops", roomId), nil, &loops)

	return loops, err
}

type CreateLoopParams struct {
	Name      string  `json:"name"`
	AudioData string  `json:"audioData"`
	Duration  float64 `json:"duration"`
	UserId    int64   `json:"userId"`
}

func (c *Client) CreateLoop(ctx context.Context, roomId int64, params *CreateLoopParams) (domain.Loop, error) {
	var loop domain.Loop
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/rooms/%d/loops", roomId), params, &loop)

	return loop, err
}

type UpdateLoopParams struct {
	Volume   *float64 `json:"volume,omitempty"`
	IsActive *bool    `json:"isActive,omitempty"`
}

func (c *Client) UpdateLoop(ctx context.Context, loopId int64, params *UpdateLoopParams) (domain.Loop, error) {
	var loop domain.Loop
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/loops/%d", loopId), params, &loop)

	return loop, err
}

func (c *Client) DeleteLoop(ctx context.Context, loopId int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/loops/%d", loopId), nil, nil)
}

type DeleteAllLoopsResult struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
	Failed  int  `json:"failed"`
}

func (c *Client) DeleteAllLoops(ctx context.Context, roomId int64) (DeleteAllLoopsResult, error) {
	var resp DeleteAllLoopsResult
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/rooms/%d/loops", roomId), nil, &resp)

	return resp, err
}

type ExportResult struct {
	ExportId      string  `json:"exportId"`
	LoopsCount    int     `json:"loopsCount"`
	TotalDuration float64 `json:"totalDuration"`
	DownloadUrl   string  `json:"downloadUrl"`
}

func (c *Client) ExportMixdown(ctx context.Context, roomId int64) (ExportResult, error) {
	var resp ExportResult
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/rooms/%d/export", roomId), nil, &resp)

	return resp, err
}
