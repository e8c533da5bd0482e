package registry

import (
	"context"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Announcer keeps a node's descriptor retained on the broker while connected.
type Announcer struct {
	Queue      *Queue
	Descriptor Descriptor

	payload []byte
}

// NewAnnouncer creates an Announcer. The broker clears the descriptor through
// the will if the connection drops.
func NewAnnouncer(brokerURL string, desc Descriptor) (*Announcer, error) {
	opts, topicPrefix, err := announcerOptions(brokerURL, desc)
	if err != nil {
		return nil, err
	}
	return newAnnouncer(NewQueue(opts, topicPrefix), desc)
}

// announcerOptions sets an empty retained will on the descriptor topic.
func announcerOptions(brokerURL string, desc Descriptor) (*paho.ClientOptions, string, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, "", err
	}
	opts.SetBinaryWill(topicPrefix+desc.Ref().Topic(), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("e32:" + desc.Ref().Name())
	}
	return opts, topicPrefix, nil
}

func newAnnouncer(q *Queue, desc Descriptor) (*Announcer, error) {
	payload, err := desc.Encode()
	if err != nil {
		return nil, err
	}
	a := &Announcer{Queue: q, Descriptor: desc, payload: payload}
	topic := desc.Ref().Topic()
	q.OnConnect = func(q *Queue) {
		glog.Infof("announce %s", topic)
		q.PubWith(topic, a.payload, 1, true)
	}
	return a, nil
}

// Connect connects to the broker, the descriptor is published on every
// (re)connect.
func (a *Announcer) Connect(ctx context.Context) error {
	return a.Queue.Connect(ctx)
}

// Close clears the retained descriptor and disconnects.
func (a *Announcer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := waitToken(ctx, a.Queue.PubWith(a.Descriptor.Ref().Topic(), nil, 1, true))
	a.Queue.Close()
	return err
}
