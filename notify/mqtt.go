package notify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const mqttPublishTimeout = 2 * time.Second

// MQTT publishes events under <prefix>/<event-path>, with the colon in event
// names mapped to a topic level (transport:create -> prefix/transport/create).
type MQTT struct {
	client mqtt.Client
	prefix string
}

func NewMQTT(broker, clientID, topicPrefix string) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	return &MQTT{client: client, prefix: topicPrefix}, nil
}

func (m *MQTT) Publish(ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", ev.Event, err)
	}
	topic := m.prefix + "/" + strings.ReplaceAll(ev.Event, ":", "/")
	token := m.client.Publish(topic, 0, false, body)
	if !token.WaitTimeout(mqttPublishTimeout) {
		return fmt.Errorf("mqtt publish %s: timeout", topic)
	}
	return token.Error()
}

func (m *MQTT) Close() {
	m.client.Disconnect(250)
}
