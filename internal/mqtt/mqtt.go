package mqtt

import (
	"fmt"
	"os"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Mavwarf/exticons/internal/config"
	"github.com/Mavwarf/exticons/internal/paths"
)

// Timeout bounds both the connect and the publish round trip.
const Timeout = 5 * time.Second

// ClientID returns the configured client ID, or one derived from the
// process ID so parallel builds do not kick each other off the broker.
func ClientID(cfg config.MQTT) string {
	if cfg.ClientID != "" {
		return cfg.ClientID
	}
	return fmt.Sprintf("%s-%d", paths.AppDirName, os.Getpid())
}

// Publish connects to the configured broker, publishes message to
// cfg.Topic, and disconnects. Each invocation creates a fresh connection.
func Publish(cfg config.MQTT, message string) error {
	if cfg.Topic == "" {
		return fmt.Errorf("mqtt: no topic configured")
	}
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(ClientID(cfg)).
		SetConnectTimeout(Timeout)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(os.ExpandEnv(cfg.Password))
	}

	client := pahomqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(Timeout) {
		return fmt.Errorf("mqtt: connect timeout")
	}
	if tok.Error() != nil {
		return fmt.Errorf("mqtt: connect: %w", tok.Error())
	}
	defer client.Disconnect(250)

	pub := client.Publish(cfg.Topic, cfg.QoS, cfg.Retain, message)
	if !pub.WaitTimeout(Timeout) {
		return fmt.Errorf("mqtt: publish timeout")
	}
	if pub.Error() != nil {
		return fmt.Errorf("mqtt: publish: %w", pub.Error())
	}
	return nil
}
