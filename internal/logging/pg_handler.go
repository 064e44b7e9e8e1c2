package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/itamarben/shul-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	batchSize     = 50
	flushInterval = 5 * time.Second
)

// PGHandler is an slog.Handler that persists ERROR+ records as SystemLog
// rows. Records are queued on a channel and written in batches off the
// request path; when the queue is full the record is dropped rather than
// blocking the caller.
type PGHandler struct {
	db      *gorm.DB
	queue   chan models.SystemLog
	done    chan struct{}
	stopped chan struct{}
}

func NewPGHandler(db *gorm.DB) *PGHandler {
	h := &PGHandler{
		db:      db,
		queue:   make(chan models.SystemLog, 4*batchSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *PGHandler) run() {
	defer close(h.stopped)

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]models.SystemLog, 0, batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := h.db.CreateInBatches(batch, batchSize).Error; err != nil {
			slog.Error("failed to flush system logs to DB", "error", err, "count", len(batch))
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-h.queue:
			batch = append(batch, entry)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-h.done:
			for {
				select {
				case entry := <-h.queue:
					batch = append(batch, entry)
				default:
					flush()
					return
				}
			}
		}
	}
}

// Stop drains the queue and writes the final batch. Records logged after
// Stop are dropped.
func (h *PGHandler) Stop() {
	close(h.done)
	<-h.stopped
}

func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *PGHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	record.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "trace_id":
			entry.TraceID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	})
	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	select {
	case h.queue <- entry:
	default:
		// queue full; losing a row beats blocking a request
	}
	return nil
}

func (h *PGHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }

func (h *PGHandler) WithGroup(name string) slog.Handler { return h }
