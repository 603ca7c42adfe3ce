package mqtt

import (
	"strings"
	"testing"

	"github.com/Mavwarf/exticons/internal/config"
)

func TestPublishBadBroker(t *testing.T) {
	// Connecting to a non-existent broker should return a connect error.
	cfg := config.MQTT{Broker: "tcp://127.0.0.1:19999", Topic: "dev/icons"}
	if err := Publish(cfg, "icons updated"); err == nil {
		t.Fatal("expected error for unreachable broker")
	}
}

func TestPublishBadScheme(t *testing.T) {
	cfg := config.MQTT{Broker: "not-a-url", Topic: "dev/icons"}
	if err := Publish(cfg, "icons updated"); err == nil {
		t.Fatal("expected error for invalid broker URL")
	}
}

func TestPublishRequiresTopic(t *testing.T) {
	err := Publish(config.MQTT{Broker: "tcp://127.0.0.1:1883"}, "x")
	if err == nil || !strings.Contains(err.Error(), "topic") {
		t.Fatalf("Publish without topic = %v, want topic error", err)
	}
}

func TestClientID(t *testing.T) {
	if got := ClientID(config.MQTT{ClientID: "ci-runner"}); got != "ci-runner" {
		t.Errorf("ClientID = %q, want %q", got, "ci-runner")
	}
	if got := ClientID(config.MQTT{}); !strings.HasPrefix(got, "exticons-") {
		t.Errorf("ClientID = %q, want exticons-<pid>", got)
	}
}
