package sink

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"accelstream/host/config"
)

// PublishTimeout bounds how long Write waits for the broker.
const PublishTimeout = 2 * time.Second

// ErrPublishTimeout is returned when the broker did not confirm in time.
var ErrPublishTimeout = errors.New("mqtt publish timed out")

// Publisher is the part of paho.Client used by the MQTT sink.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// MQTT publishes every record as JSON.
type MQTT struct {
	client   Publisher
	topic    string
	qos      byte
	retained bool
}

type mqttPayload struct {
	Seq    uint64 `json:"seq"`
	Time   int64  `json:"ts_ms"`
	X      uint8  `json:"x"`
	Y      uint8  `json:"y"`
	XMilli int32  `json:"x_mg"`
	YMilli int32  `json:"y_mg"`
}

// DialMQTT connects to the broker named in cfg.
func DialMQTT(cfg config.MQTTConfig) (*MQTT, error) {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			glog.Warningf("mqtt connection lost: %v", err)
		})
	client := paho.NewClient(opts)
	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, err)
	}
	glog.Infof("mqtt connected to %s", cfg.Broker)
	return NewMQTT(client, cfg), nil
}

// NewMQTT creates a sink on an already connected client.
func NewMQTT(client Publisher, cfg config.MQTTConfig) *MQTT {
	return &MQTT{
		client:   client,
		topic:    cfg.Topic,
		qos:      cfg.QoS,
		retained: cfg.Retained,
	}
}

// Write implements Sink.
func (m *MQTT) Write(r Record) error {
	x, y := r.MilliG()
	payload, err := json.Marshal(mqttPayload{
		Seq:    r.Seq,
		Time:   r.Time.UnixMilli(),
		X:      r.Sample.X,
		Y:      r.Sample.Y,
		XMilli: x,
		YMilli: y,
	})
	if err != nil {
		return err
	}
	token := m.client.Publish(m.topic, m.qos, m.retained, payload)
	if !token.WaitTimeout(PublishTimeout) {
		return ErrPublishTimeout
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish %s: %w", m.topic, err)
	}
	if glog.V(2) {
		glog.Infof("PUB %q %s", m.topic, payload)
	}
	return nil
}

// Close implements Sink.
func (m *MQTT) Close() error {
	m.client.Disconnect(250)
	return nil
}
