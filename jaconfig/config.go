// Package jaconfig holds connection configuration: the recognized fields
// from §6 (url, apisecret, server_root, capacity) plus the ambient hooks
// (logger, transaction generator) a real deployment needs to wire in.
package jaconfig

import (
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/jarust-go/jarust/transport"
	"github.com/jarust-go/jarust/transport/xidgen"
)

// DefaultCapacity mirrors the original's CHANNEL_BUFFER_SIZE.
const DefaultCapacity = 32

// DefaultServerRoot is the top-level path segment expected in URLs when
// none is configured, matching §6's "default 'janus'".
const DefaultServerRoot = "janus"

// Config holds everything Connect needs beyond the transport itself.
type Config struct {
	// URL is the transport endpoint. Connect does not read it and nothing
	// picks a transport from its scheme: the caller builds the transport
	// itself (transport.DialWebsocket or transport.NewRestful).
	URL string `yaml:"url"`

	// APISecret, if set, is appended to every request under "apisecret".
	APISecret string `yaml:"apisecret"`

	// ServerRoot is the router's root path segment, reflected in every
	// route the router computes (§6).
	ServerRoot string `yaml:"server_root"`

	// Capacity bounds the connection's correlator napmap (the number of
	// resolved transactions it keeps resident before evicting the oldest,
	// §4.B) and sizes the buffered session/handle event channels the
	// plugin adapter and session event relay read from.
	Capacity int `yaml:"capacity"`

	// Logger receives structured trace/debug/warn/error output from every
	// layer of the core. Defaults to a no-op logger.
	Logger zerolog.Logger `yaml:"-"`

	// TransactionGenerator produces transaction ids. Defaults to xidgen.
	TransactionGenerator transport.TransactionGenerator `yaml:"-"`
}

// Option mutates a Config under construction.
type Option func(*Config)

// New builds a Config for url with the given options applied, after
// filling in the documented defaults.
func New(url string, opts ...Option) Config {
	cfg := Config{
		URL:                  url,
		ServerRoot:           DefaultServerRoot,
		Capacity:             DefaultCapacity,
		Logger:               zerolog.Nop(),
		TransactionGenerator: xidgen.New(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithAPISecret sets the apisecret field.
func WithAPISecret(secret string) Option {
	return func(c *Config) { c.APISecret = secret }
}

// WithServerRoot overrides the default "janus" root segment.
func WithServerRoot(root string) Option {
	return func(c *Config) { c.ServerRoot = root }
}

// WithCapacity overrides the default channel/correlator capacity hint.
func WithCapacity(capacity int) Option {
	return func(c *Config) { c.Capacity = capacity }
}

// WithLogger wires a structured logger through the whole connection graph.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithTransactionGenerator swaps the transaction id generation strategy.
func WithTransactionGenerator(gen transport.TransactionGenerator) Option {
	return func(c *Config) { c.TransactionGenerator = gen }
}

// LoadFile reads a YAML configuration file, following
// jowharshamshiri-GoJanus's use of gopkg.in/yaml.v3 for manifest loading.
// Only the wire fields (url, apisecret, server_root, capacity) are
// populated from the file; ambient hooks (Logger, TransactionGenerator)
// still come from options or defaults.
func LoadFile(path string, opts ...Option) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Config{}, err
	}

	cfg := New(parsed.URL)
	if parsed.APISecret != "" {
		cfg.APISecret = parsed.APISecret
	}
	if parsed.ServerRoot != "" {
		cfg.ServerRoot = parsed.ServerRoot
	}
	if parsed.Capacity > 0 {
		cfg.Capacity = parsed.Capacity
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, nil
}
