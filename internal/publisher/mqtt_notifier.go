package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"wisefido-monitor/internal/models"

	"go.uber.org/zap"
)

// Publisher MQTT publish surface (satisfied by pkg/mqtt.Client)
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// AlarmMessage MQTT payload
type AlarmMessage struct {
	Type      models.AlarmEventKind `json:"type"`
	RunID     string                `json:"run_id"`
	Alarm     models.Alarm          `json:"alarm"`
	Timestamp int64                 `json:"timestamp"`
}

// MQTTNotifier publishes alarm events to "<topic>/<patientId>"
type MQTTNotifier struct {
	pub    Publisher
	topic  string
	qos    byte
	runID  string
	logger *zap.Logger
}

func NewMQTTNotifier(pub Publisher, topic string, qos byte, runID string, logger *zap.Logger) *MQTTNotifier {
	return &MQTTNotifier{
		pub:    pub,
		topic:  topic,
		qos:    qos,
		runID:  runID,
		logger: logger,
	}
}

// Topic per-patient topic
func (n *MQTTNotifier) Topic(patientID int) string {
	return fmt.Sprintf("%s/%d", n.topic, patientID)
}

// OnAlarm publishes one event, not retained
func (n *MQTTNotifier) OnAlarm(_ context.Context, event models.AlarmEvent) error {
	payload, err := json.Marshal(AlarmMessage{
		Type:      event.Kind,
		RunID:     n.runID,
		Alarm:     event.Alarm,
		Timestamp: event.At.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal alarm message: %w", err)
	}

	topic := n.Topic(event.Alarm.PatientID)
	if err := n.pub.Publish(topic, n.qos, false, payload); err != nil {
		return err
	}

	n.logger.Debug("Alarm event published to MQTT",
		zap.String("topic", topic),
		zap.String("alarm_id", event.Alarm.ID),
	)
	return nil
}
