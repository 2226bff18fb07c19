package export

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	coreexport "github.com/kilianp07/ocv/core/export"
	"github.com/kilianp07/ocv/infra/logger"
)

// MQTTConfig defines the connection parameters for the comparison publisher.
type MQTTConfig struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
	Retain   bool   `json:"retain"`
}

type mqttClient interface {
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// newMQTTClient is swapped out in tests.
var newMQTTClient = func(opts *paho.ClientOptions) mqttClient {
	return paho.NewClient(opts)
}

// MQTTSink publishes comparison results as JSON to a single topic.
type MQTTSink struct {
	cli    mqttClient
	topic  string
	qos    byte
	retain bool
	log    logger.Logger
}

// NewMQTTSink connects to the broker and returns the sink.
func NewMQTTSink(cfg MQTTConfig) (*MQTTSink, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &MQTTSink{
		cli:    cli,
		topic:  cfg.Topic,
		qos:    cfg.QoS,
		retain: cfg.Retain,
		log:    logger.New("mqtt-sink"),
	}, nil
}

// RecordComparison publishes the result JSON and waits for the broker
// acknowledgment.
func (s *MQTTSink) RecordComparison(res coreexport.ComparisonResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal comparison: %w", err)
	}
	token := s.cli.Publish(s.topic, s.qos, s.retain, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout on %s", s.topic)
	}
	return token.Error()
}

// Close disconnects from the broker.
func (s *MQTTSink) Close() error {
	s.cli.Disconnect(250)
	return nil
}
