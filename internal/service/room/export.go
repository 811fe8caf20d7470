package room

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type ExportResponse struct {
	ExportId      string  `json:"exportId"`
	LoopsCount    int     `json:"loopsCount"`
	TotalDuration float64 `json:"totalDuration"`
	DownloadUrl   string  `json:"downloadUrl"`
}

// ExportMixdown is a stand-in for real mixing: it reports the active loops
// that would go into a mixdown. Total duration is the longest active loop,
// since loops play layered, not sequenced.
func (s service) ExportMixdown(ctx context.Context, roomId int64) (ExportResponse, error) {
	if _, err := s.store.GetRoom(ctx, roomId); err != nil {
		return ExportResponse{}, err
	}

	loops, err := s.store.ListLoopsForRoom(ctx, roomId)
	if err != nil {
		return ExportResponse{}, err
	}

	count := 0
	totalDuration := 0.0
	for _, loop := range loops {
		if !loop.IsActive {
			continue
		}
		count++
		if loop.Duration > totalDuration {
			totalDuration = loop.Duration
		}
	}

	exportId := "export_" + uuid.NewString()
	return ExportResponse{
		ExportId:      exportId,
		LoopsCount:    count,
		TotalDuration: totalDuration,
		DownloadUrl:   fmt.Sprintf("/api/exports/%s.wav", exportId),
	}, nil
}
