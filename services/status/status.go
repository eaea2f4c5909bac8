package status

import (
	"time"

	"slotbook/models"
)

// StatusService reports process status.
type StatusService interface {
	GetSystemStatus() models.StatusResponse
}

// DefaultStatusService measures uptime from StartedAt.
type DefaultStatusService struct {
	StartedAt time.Time
	Now       func() time.Time
}

func NewDefaultStatusService(startedAt time.Time) *DefaultStatusService {
	return &DefaultStatusService{StartedAt: startedAt, Now: time.Now}
}

// GetSystemStatus returns the uptime in whole seconds.
func (s *DefaultStatusService) GetSystemStatus() models.StatusResponse {
	return models.StatusResponse{
		UpTime: int64(s.Now().Sub(s.StartedAt) / time.Second),
	}
}
