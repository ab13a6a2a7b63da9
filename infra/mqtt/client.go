// Package mqtt propagates delivery status updates to the external
// job-tracking system over MQTT. Publishing is fire-and-forget from the
// engine's point of view: failures are reported to the caller and never roll
// back the planning state.
package mqtt

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/freightworks/loadplan/core/model"
	"github.com/freightworks/loadplan/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker      string `json:"broker" yaml:"broker"`
	ClientID    string `json:"client_id" yaml:"client_id"`
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
	StatusTopic string `json:"status_topic" yaml:"status_topic"`
	QoS         byte   `json:"qos" yaml:"qos"`
	UseTLS      bool   `json:"use_tls" yaml:"use_tls"`
	ClientCert  string `json:"client_cert" yaml:"client_cert"`
	ClientKey   string `json:"client_key" yaml:"client_key"`
	CABundle    string `json:"ca_bundle" yaml:"ca_bundle"`
	MaxRetries  int    `json:"max_retries" yaml:"max_retries"`
	BackoffMS   int    `json:"backoff_ms" yaml:"backoff_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "loadplan"
	}
	if c.StatusTopic == "" {
		c.StatusTopic = "fleet/jobs/status"
	}
	if c.BackoffMS == 0 {
		c.BackoffMS = 200
	}
}

// statusMessage is the wire format consumed by the job-tracking store.
type statusMessage struct {
	JobID     string    `json:"job_id"`
	Status    string    `json:"new_delivery_status"`
	Timestamp time.Time `json:"timestamp"`
}

// pahoClient is the subset of the Paho API used by the tracker, extracted so
// tests can substitute a fake.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoTracker implements jobtracker.Tracker over MQTT.
type PahoTracker struct {
	cli        pahoClient
	topic      string
	qos        byte
	maxRetries int
	backoff    time.Duration
	log        logger.Logger
}

// NewPahoTracker connects to the MQTT broker.
func NewPahoTracker(cfg Config) (*PahoTracker, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt_tracker")
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &PahoTracker{
		cli:        c,
		topic:      cfg.StatusTopic,
		qos:        cfg.QoS,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		log:        log,
	}, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := newTLSConfig(cfg)
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

func newTLSConfig(cfg Config) (*tls.Config, error) {
	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if cfg.CABundle != "" {
		ca, err := os.ReadFile(cfg.CABundle)
		if err != nil {
			return nil, fmt.Errorf("read ca bundle: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(ca) {
			return nil, fmt.Errorf("invalid ca bundle %s", cfg.CABundle)
		}
		tlsCfg.RootCAs = pool
	}
	if cfg.ClientCert != "" && cfg.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client cert: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}
	return tlsCfg, nil
}

// ReportStatus publishes the status update, retrying with backoff up to
// MaxRetries times. The context deadline bounds each publish wait.
func (t *PahoTracker) ReportStatus(ctx context.Context, jobID string, status model.DeliveryStatus) error {
	msg := statusMessage{JobID: jobID, Status: status.String(), Timestamp: time.Now().UTC()}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	wait := time.Until(deadlineOr(ctx, time.Now().Add(3*time.Second)))
	var lastErr error
	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(t.backoff):
			}
		}
		token := t.cli.Publish(t.topic, t.qos, false, payload)
		if !token.WaitTimeout(wait) {
			lastErr = fmt.Errorf("publish timeout on %s", t.topic)
			continue
		}
		if err := token.Error(); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("report status for job %s: %w", jobID, lastErr)
}

// Close disconnects from the broker.
func (t *PahoTracker) Close() error {
	t.cli.Disconnect(250)
	return nil
}

func deadlineOr(ctx context.Context, fallback time.Time) time.Time {
	if dl, ok := ctx.Deadline(); ok {
		return dl
	}
	return fallback
}
