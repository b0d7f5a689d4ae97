package publisher

import (
	"context"
	"fmt"

	"wisefido-monitor/internal/models"
	rediscommon "wisefido-monitor/pkg/redis"

	"go.uber.org/zap"
)

// AlarmStreamMaxLen approximate cap of the alarm event stream
const AlarmStreamMaxLen = 10000

// alarmStreamPayload body of one stream entry
type alarmStreamPayload struct {
	RunID string       `json:"run_id"`
	Alarm models.Alarm `json:"alarm"`
	At    int64        `json:"at"`
}

// AlarmStream appends alarm lifecycle events to a Redis Stream
type AlarmStream struct {
	client *rediscommon.Client
	stream string
	runID  string
	logger *zap.Logger
}

func NewAlarmStream(client *rediscommon.Client, stream, runID string, logger *zap.Logger) *AlarmStream {
	return &AlarmStream{
		client: client,
		stream: stream,
		runID:  runID,
		logger: logger,
	}
}

// OnAlarm publishes the event with type = event kind
func (s *AlarmStream) OnAlarm(ctx context.Context, event models.AlarmEvent) error {
	id, err := rediscommon.PublishJSONToStream(ctx, s.client, s.stream, AlarmStreamMaxLen, string(event.Kind), alarmStreamPayload{
		RunID: s.runID,
		Alarm: event.Alarm,
		At:    event.At.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s to stream %s: %w", event.Kind, s.stream, err)
	}

	s.logger.Debug("Alarm event published to stream",
		zap.String("stream", s.stream),
		zap.String("entry_id", id),
		zap.String("alarm_id", event.Alarm.ID),
	)
	return nil
}
