package amqp

import (
	"encoding/json"
	"time"
)

// ConfigSavedMessage notifies the worker that a named configuration was
// saved. It carries only the reference; the worker loads the full record
// from the configuration store.
type ConfigSavedMessage struct {
	Ref       string    `json:"ref"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

func NewConfigSavedMessage(ref, name string) *ConfigSavedMessage {
	return &ConfigSavedMessage{
		Ref:       ref,
		Name:      name,
		Timestamp: time.Now(),
	}
}

func (m *ConfigSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ConfigSavedMessageFromJSON(data []byte) (*ConfigSavedMessage, error) {
	var msg ConfigSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
