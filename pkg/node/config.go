// Package node assembles the process-level configuration of an end node.
package node

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/e32.go/pkg/e32/link"
	"github.com/robotalks/e32.go/pkg/registry"
)

// Config provides common options to load a link configuration and reach the registry.
type Config struct {
	// LinkFile is a YAML file applied on top of link.DefaultOptions.
	LinkFile string
	// Role overrides the role from LinkFile, e.g. "tx" or "rx".
	Role string
	// RegistryURL specifies the MQTT broker used as registry.
	// e.g. mqtt://host:port/topic-prefix
	RegistryURL string
	// Description is announced with the node.
	Description string
}

var defaultConfig = Config{
	RegistryURL: "mqtt://localhost:1883/e32/",
}

func init() {
	if val := os.Getenv("E32_LINK_FILE"); val != "" {
		defaultConfig.LinkFile = val
	}
	if val := os.Getenv("E32_ROLE"); val != "" {
		defaultConfig.Role = val
	}
	if val := os.Getenv("E32_REGISTRY_URL"); val != "" {
		defaultConfig.RegistryURL = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.LinkFile, "link", defaultConfig.LinkFile, "Link configuration YAML file.")
	flag.StringVar(&defaultConfig.Role, "role", defaultConfig.Role, "Override role: tx or rx.")
	flag.StringVar(&defaultConfig.RegistryURL, "registry", defaultConfig.RegistryURL, "Registry MQTT broker URL, empty to disable.")
	flag.StringVar(&defaultConfig.Description, "desc", defaultConfig.Description, "Node description.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// LinkOptions resolves the link options: defaults, then LinkFile, then Role.
func (c *Config) LinkOptions() (link.Options, error) {
	opts := link.DefaultOptions()
	if c.LinkFile != "" {
		var err error
		if opts, err = link.LoadOptions(c.LinkFile, opts); err != nil {
			return opts, err
		}
		glog.V(1).Infof("link options loaded from %s", c.LinkFile)
	}
	if c.Role != "" {
		role, err := link.ParseRole(c.Role)
		if err != nil {
			return opts, err
		}
		opts.Role = role
	}
	return opts, nil
}

// LoadLink resolves and builds the link configuration.
func (c *Config) LoadLink() (link.RadioLinkConfig, error) {
	opts, err := c.LinkOptions()
	if err != nil {
		return link.RadioLinkConfig{}, err
	}
	cfg, err := link.Build(opts)
	if err != nil {
		return cfg, fmt.Errorf("invalid link configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadLink loads the link configuration and fails on error.
func (c *Config) MustLoadLink() link.RadioLinkConfig {
	cfg, err := c.LoadLink()
	if err != nil {
		log.Fatalln(err)
	}
	return cfg
}

// Descriptor describes cfg for the registry. The host id falls back to the
// hostname when the machine id is unavailable.
func (c *Config) Descriptor(cfg link.RadioLinkConfig) registry.Descriptor {
	host, err := registry.HostID()
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		host, _ = os.Hostname()
	}
	return registry.DescriptorOf(cfg, host, c.Description)
}

// NewAnnouncer creates an Announcer for cfg.
func (c *Config) NewAnnouncer(cfg link.RadioLinkConfig) (*registry.Announcer, error) {
	if c.RegistryURL == "" {
		return nil, fmt.Errorf("registry URL is required")
	}
	return registry.NewAnnouncer(c.RegistryURL, c.Descriptor(cfg))
}

// NewDiscoverer creates a Discoverer on the registry.
func (c *Config) NewDiscoverer() (*registry.Discoverer, error) {
	if c.RegistryURL == "" {
		return nil, fmt.Errorf("registry URL is required")
	}
	return registry.NewDiscoverer(c.RegistryURL)
}
