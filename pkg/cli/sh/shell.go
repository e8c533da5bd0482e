package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/e32.go/pkg/e32/link"
	"github.com/robotalks/e32.go/pkg/node"
)

// Shell provides an ishell backed shell editing a link configuration.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Config *node.Config
	// Link is the current configuration, replaced only by a successful build.
	Link link.RadioLinkConfig
}

const shellKey = "$shell"

var (
	// flags

	evalOnly   bool
	outputJSON bool

	commands = []*ishell.Cmd{
		&ShowCmd,
		&CapacityCmd,
		&SerialCmd,
		&CheckCmd,
		&LoadCmd,
		&SaveCmd,
		&RoleCmd,
		&SetCmd,
		&DiscoverCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// New creates a shell starting from the link configuration of conf.
func New(conf *node.Config) (*Shell, error) {
	cfg, err := conf.LoadLink()
	if err != nil {
		return nil, err
	}
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	s.setLink(cfg)
	return s, nil
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Reconfigure builds opts and makes it current. On error the current link
// is kept.
func (s *Shell) Reconfigure(opts link.Options) error {
	cfg, err := link.Build(opts)
	if err != nil {
		return err
	}
	s.setLink(cfg)
	return nil
}

func (s *Shell) setLink(cfg link.RadioLinkConfig) {
	s.Link = cfg
	if s.Shell == nil {
		return
	}
	role := "tx"
	if cfg.Role() == link.Receiver {
		role = "rx"
	}
	s.Shell.SetPrompt(fmt.Sprintf("[%s %d/%d] > ", role, cfg.DeviceAddress(), cfg.DeviceID()))
}

// Print prints v as JSON in JSON mode, text otherwise.
func (s *Shell) Print(c *ishell.Context, v interface{}, text string) {
	if !s.OutputJSON {
		c.Println(text)
		return
	}
	out, err := json.Marshal(v)
	if err != nil {
		c.Err(err)
		return
	}
	c.Println(string(out))
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	s, err := New(node.NewConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	s.Run(flag.Args()...)
}
