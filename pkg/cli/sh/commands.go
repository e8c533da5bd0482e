package sh

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/e32.go/pkg/e32/link"
	"github.com/robotalks/e32.go/pkg/registry"
)

type capacityInfo struct {
	Payload  int `json:"payload"`
	Capacity int `json:"capacity"`
	Overhead int `json:"overhead"`
}

var (
	// ShowCmd prints the current configuration.
	ShowCmd = ishell.Cmd{
		Name:    "show",
		Aliases: []string{"s"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			out, err := s.Link.Options().Marshal()
			if err != nil {
				c.Err(err)
				return
			}
			s.Print(c, s.Config.Descriptor(s.Link), strings.TrimRight(string(out), "\n"))
		},
	}

	// CapacityCmd prints payload sizing.
	CapacityCmd = ishell.Cmd{
		Name:    "capacity",
		Aliases: []string{"cap"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			info := capacityInfo{
				Payload:  s.Link.PacketPayloadBytes(),
				Capacity: s.Link.EffectivePayloadCapacity(),
				Overhead: s.Link.FramingOverhead(),
			}
			s.Print(c, info, fmt.Sprintf("payload %d/%d bytes, framing %d bytes (%s)",
				info.Payload, info.Capacity, info.Overhead, s.Link.TransmissionMode()))
		},
	}

	// SerialCmd prints the controller UART settings.
	SerialCmd = ishell.Cmd{
		Name: "serial",
		Help: "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			s.Print(c, s.Link.SerialMode(), fmt.Sprintf("%d %s", s.Link.UARTBaud().Bps(), s.Link.UARTParity()))
		},
	}

	// CheckCmd lists every violation of a configuration file.
	CheckCmd = ishell.Cmd{
		Name: "check",
		Help: "FILE",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("FILE required"))
				return
			}
			opts, err := link.LoadOptions(c.Args[0], link.DefaultOptions())
			if err != nil {
				c.Err(err)
				return
			}
			if err := link.Check(opts); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}

	// LoadCmd replaces the configuration with a file applied on defaults.
	LoadCmd = ishell.Cmd{
		Name: "load",
		Help: "FILE",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("FILE required"))
				return
			}
			opts, err := link.LoadOptions(c.Args[0], link.DefaultOptions())
			if err == nil {
				err = ShellFrom(c).Reconfigure(opts)
			}
			if err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}

	// SaveCmd writes the configuration as YAML.
	SaveCmd = ishell.Cmd{
		Name: "save",
		Help: "FILE",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("FILE required"))
				return
			}
			out, err := ShellFrom(c).Link.Options().Marshal()
			if err == nil {
				err = os.WriteFile(c.Args[0], out, 0644)
			}
			if err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}

	// RoleCmd rebuilds the configuration with another role.
	RoleCmd = ishell.Cmd{
		Name: "role",
		Help: "tx|rx",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("ROLE required"))
				return
			}
			s := ShellFrom(c)
			role, err := link.ParseRole(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			opts := s.Link.Options()
			opts.Role = role
			if err := s.Reconfigure(opts); err != nil {
				c.Err(err)
				return
			}
			c.Println(s.Link)
		},
	}

	// SetCmd rebuilds the configuration with one field changed.
	SetCmd = ishell.Cmd{
		Name: "set",
		Help: "FIELD VALUE (e.g. set txPower 17dBm, set pins.aux 7)",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("FIELD and VALUE required"))
				return
			}
			s := ShellFrom(c)
			opts, err := s.Link.Options().With(c.Args[0], strings.Join(c.Args[1:], " "))
			if err == nil {
				err = s.Reconfigure(opts)
			}
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(s.Link)
		},
	}

	// DiscoverCmd lists the nodes of the current group and flags id conflicts.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"list", "l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			d, err := s.Config.NewDiscoverer()
			if err != nil {
				c.Err(err)
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			peers, err := d.Discover(ctx, s.Link.DeviceAddress())
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if peers == nil {
					peers = []registry.Descriptor{}
				}
				s.Print(c, peers, "")
			} else if len(peers) == 0 {
				c.Println("No nodes found")
			} else {
				for _, peer := range peers {
					c.Println(peer.String())
				}
			}
			if err := registry.CheckUnique(s.Config.Descriptor(s.Link), peers); err != nil {
				c.Err(err)
			}
		},
	}
)
