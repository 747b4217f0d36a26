// Package notify tells connected screens that a year's published documents changed.
package notify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

const publishTimeout = 10 * time.Second

// MQTT connection handler
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("Connected to MQTT broker")
}

// MQTT connection lost handler
var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

type Notifier struct {
	client      mqtt.Client
	topicPrefix string
}

// Connect dials brokerURL and returns a Notifier publishing under "athan/".
func Connect(brokerURL, clientID string) (*Notifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Info().Str("broker", brokerURL).Msg("MQTT client initialized successfully")
	return NewNotifier(client, "athan"), nil
}

func NewNotifier(client mqtt.Client, topicPrefix string) *Notifier {
	return &Notifier{client: client, topicPrefix: strings.TrimSuffix(topicPrefix, "/")}
}

// Topic is where notices for year are published.
func (n *Notifier) Topic(year int) string {
	return fmt.Sprintf("%s/%d/updated", n.topicPrefix, year)
}

// PublishDigest sends a retained notice so screens that connect later still see the latest digest.
func (n *Notifier) PublishDigest(notice model.DigestNotice) error {
	if notice.Type == "" {
		notice.Type = "calendar_update"
	}
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("encode notice: %w", err)
	}

	topic := n.Topic(notice.Year)
	token := n.client.Publish(topic, 1, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, token.Error())
	}

	log.Info().Str("topic", topic).Str("sha1", notice.SHA1).Msg("digest notice published")
	return nil
}

func (n *Notifier) Close() {
	if n.client != nil && n.client.IsConnected() {
		n.client.Disconnect(250)
		log.Info().Msg("MQTT client disconnected")
	}
}
