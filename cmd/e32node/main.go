package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"github.com/robotalks/e32.go/pkg/node"
	"github.com/robotalks/e32.go/pkg/registry"
)

func init() {
	node.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := node.NewConfig()
	cfg := conf.MustLoadLink()
	glog.Infof("link %s", cfg)
	if conf.RegistryURL == "" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := conf.NewDiscoverer()
	if err != nil {
		log.Fatalln(err)
	}
	peers, err := d.Discover(ctx, cfg.DeviceAddress())
	if err != nil {
		log.Fatalln(err)
	}
	if err := registry.CheckUnique(conf.Descriptor(cfg), peers); err != nil {
		log.Fatalln(err)
	}

	a, err := conf.NewAnnouncer(cfg)
	if err != nil {
		log.Fatalln(err)
	}
	if err := a.Connect(ctx); err != nil {
		log.Fatalln(err)
	}
	<-ctx.Done()
	glog.Info("stop requested")
	if err := a.Close(); err != nil {
		glog.Warningf("clear announcement: %v", err)
	}
}
