package amqp

import "testing"

func TestConfigSavedMessageRoundTrip(t *testing.T) {
	msg := NewConfigSavedMessage("ref-1", "plan-a")
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := ConfigSavedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Ref != "ref-1" || got.Name != "plan-a" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp lost")
	}
}

func TestConfigSavedMessageFromJSONInvalid(t *testing.T) {
	if _, err := ConfigSavedMessageFromJSON([]byte("{")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
