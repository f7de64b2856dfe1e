package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"incomfort"
	"incomfort/internal/logger"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	qos            = 0
	connectTimeout = 10 * time.Second
	publishTimeout = 2 * time.Second
)

// Client is the part of paho.Client the publisher needs.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// Options configures Connect.
type Options struct {
	Broker      string
	ClientID    string
	TopicPrefix string
	Retain      bool
}

// Message is one topic/payload pair derived from a heater state.
type Message struct {
	Topic   string
	Payload []byte
}

// Publisher sends every observed heater state to an MQTT broker.
type Publisher struct {
	client Client
	prefix string
	retain bool
	log    *logger.Logger
	close  func()
}

// NewPublisher wraps an already connected client.
func NewPublisher(c Client, prefix string, retain bool, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{client: c, prefix: prefix, retain: retain, log: log, close: func() {}}
}

// Connect dials the broker and returns a publisher. The client reconnects on
// its own after the first successful connection.
func Connect(opts Options, log *logger.Logger) (*Publisher, error) {
	if opts.Broker == "" {
		return nil, errors.New("mqtt broker is not set")
	}
	if log == nil {
		log = logger.Nop()
	}
	mopt := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetOrderMatters(false).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Warnw("mqtt_connection_lost", "err", err)
		}).
		SetOnConnectHandler(func(_ paho.Client) {
			log.Infow("mqtt_connected", "broker", opts.Broker)
		})

	c := paho.NewClient(mopt)
	tok := c.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		c.Disconnect(0)
		return nil, fmt.Errorf("connect to %s: timed out", opts.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", opts.Broker, err)
	}

	p := NewPublisher(c, opts.TopicPrefix, opts.Retain, log)
	p.close = func() { c.Disconnect(250) }
	return p, nil
}

// Observe implements service.Observer. Failures are logged, never returned.
func (p *Publisher) Observe(st incomfort.HeaterState) {
	msgs, err := Messages(p.prefix, st)
	if err != nil {
		p.log.Errorw("mqtt_encode_failed", "heater", st.Heater, "err", err)
		return
	}
	for _, m := range msgs {
		tok := p.client.Publish(m.Topic, qos, p.retain, m.Payload)
		if !tok.WaitTimeout(publishTimeout) {
			p.log.Warnw("mqtt_publish_timeout", "topic", m.Topic)
			continue
		}
		if err := tok.Error(); err != nil {
			p.log.Warnw("mqtt_publish_failed", "topic", m.Topic, "err", err)
		}
	}
}

// Close disconnects a publisher built by Connect.
func (p *Publisher) Close() {
	p.close()
}

// Messages maps a state to its topics under <prefix>/<heater>/.
func Messages(prefix string, st incomfort.HeaterState) ([]Message, error) {
	state, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	base := prefix + "/" + strconv.Itoa(st.Heater) + "/"
	value := func(v float64) []byte { return []byte(incomfort.FormatValue(v)) }
	flag := func(b bool) []byte { return []byte(incomfort.FormatBool(b)) }

	return []Message{
		{base + "pressure", value(st.PressureBar)},
		{base + "heater_temp", value(st.HeaterTempC)},
		{base + "tap_temp", value(st.TapTempC)},
		{base + "room_temp", value(st.RoomTempC)},
		{base + "setpoint", value(st.SetpointC)},
		{base + "setpoint_override", value(st.SetpointOverrideC)},
		{base + "display_code", []byte(st.Display.String())},
		{base + "burning", flag(st.Burning)},
		{base + "pumping", flag(st.Pumping)},
		{base + "tapping", flag(st.Tapping)},
		{base + "lockout", flag(st.Lockout)},
		{base + "state", state},
	}, nil
}
