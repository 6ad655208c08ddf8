package service

import (
	"context"
	"time"

	"retail-mis-console/internal/model"

	"go.uber.org/zap"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type DBStatusService interface {
	Status(ctx context.Context) *model.DBStatus
}

type dbStatusService struct {
	db      Pinger
	timeout time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

func NewDBStatusService(db Pinger, timeout time.Duration, lg *zap.Logger) DBStatusService {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &dbStatusService{db: db, timeout: timeout, now: time.Now, logger: lg}
}

// Status pings the database. A failed ping is reported in the result, not as an error.
func (s *dbStatusService) Status(ctx context.Context) *model.DBStatus {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.now()
	err := s.db.PingContext(ctx)
	end := s.now()

	status := &model.DBStatus{
		Status:    model.DBStatusConnected,
		LatencyMS: end.Sub(start).Milliseconds(),
		CheckedAt: end,
	}
	if err != nil {
		s.logger.Warn("database ping failed", zap.Error(err))
		status.Status = model.DBStatusDisconnected
		status.Error = "database unreachable"
	}
	return status
}
