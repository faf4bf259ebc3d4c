// Package mqtt publishes computed schedules for visualization consumers.
// The engine itself never touches the wire; the service layer hands finished
// schedules to a SchedulePublisher.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/railops/trackplan/core/model"
	"github.com/railops/trackplan/infra/logger"
)

// SchedulePublisher publishes one schedule per scenario and returns the run
// id stamped on the payload.
type SchedulePublisher interface {
	PublishSchedule(scenario string, sched model.Schedule) (runID string, err error)
	Close()
}

// ScheduleEnvelope is the JSON payload published per schedule.
type ScheduleEnvelope struct {
	RunID       string         `json:"run_id"`
	Scenario    string         `json:"scenario"`
	GeneratedAt time.Time      `json:"generated_at"`
	Schedule    model.Schedule `json:"schedule"`
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// newMQTTClient points to the paho constructor. Tests override it to inject
// a fake client.
var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoPublisher implements SchedulePublisher using Eclipse Paho.
type PahoPublisher struct {
	cli    pahoClient
	prefix string
	qos    byte
	retain bool
	log    logger.Logger
}

// NewPahoPublisher connects to the MQTT broker described by cfg.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	cli := newMQTTClient(opts)
	token := cli.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &PahoPublisher{
		cli:    cli,
		prefix: cfg.TopicPrefix,
		qos:    cfg.QoS,
		retain: cfg.Retain,
		log:    logger.New("mqtt-publisher"),
	}, nil
}

// PublishSchedule marshals the schedule into an envelope and publishes it on
// <prefix>/schedule/<scenario>.
func (p *PahoPublisher) PublishSchedule(scenario string, sched model.Schedule) (string, error) {
	env := ScheduleEnvelope{
		RunID:       uuid.NewString(),
		Scenario:    scenario,
		GeneratedAt: time.Now().UTC(),
		Schedule:    sched,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshal schedule: %w", err)
	}
	topic := fmt.Sprintf("%s/schedule/%s", p.prefix, scenario)
	token := p.cli.Publish(topic, p.qos, p.retain, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return "", fmt.Errorf("publish %s: %w", topic, err)
	}
	p.log.Debugf("published schedule %s to %s", env.RunID, topic)
	return env.RunID, nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	p.cli.Disconnect(250)
}

// MockPublisher records published schedules for tests.
type MockPublisher struct {
	Envelopes []ScheduleEnvelope
	Fail      bool
}

// PublishSchedule records the envelope or fails when configured to.
func (m *MockPublisher) PublishSchedule(scenario string, sched model.Schedule) (string, error) {
	if m.Fail {
		return "", fmt.Errorf("publish failed")
	}
	env := ScheduleEnvelope{
		RunID:       fmt.Sprintf("run-%d", len(m.Envelopes)+1),
		Scenario:    scenario,
		GeneratedAt: time.Now().UTC(),
		Schedule:    sched,
	}
	m.Envelopes = append(m.Envelopes, env)
	return env.RunID, nil
}

// Close is a no-op.
func (m *MockPublisher) Close() {}
