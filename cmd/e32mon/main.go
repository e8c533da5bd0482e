package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/robotalks/e32.go/pkg/registry"
)

var (
	mqttURL = "mqtt://localhost:1883/e32/"
)

func init() {
	if val := os.Getenv("E32_REGISTRY_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "registry", mqttURL, "Registry MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := registry.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	q.Sub("+/+/link", registry.Handler(func(topic string, payload []byte) {
		if len(payload) == 0 {
			log.Printf("%s: gone", topic)
			return
		}
		desc, ok := registry.DecodeDescriptor(topic, payload)
		if !ok {
			log.Printf("%s: bad descriptor", topic)
			return
		}
		log.Printf("%s: %s", topic, desc)
	}))
	if err := q.Connect(context.Background()); err != nil {
		log.Fatalln(err)
	}
	<-(chan struct{})(nil)
}
