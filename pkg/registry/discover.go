package registry

import (
	"context"
	"sort"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// DefaultDiscoverTimeout defines the default window collecting descriptors.
const DefaultDiscoverTimeout = 500 * time.Millisecond

// Discoverer lists the nodes announced in a group.
type Discoverer struct {
	Timeout time.Duration

	options     *paho.ClientOptions
	topicPrefix string
}

// NewDiscoverer creates a Discoverer.
func NewDiscoverer(brokerURL string) (*Discoverer, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return &Discoverer{
		Timeout:     DefaultDiscoverTimeout,
		options:     opts,
		topicPrefix: topicPrefix,
	}, nil
}

// Discover collects the retained descriptors of a group, ordered by id.
func (d *Discoverer) Discover(ctx context.Context, address uint16) ([]Descriptor, error) {
	q := NewQueue(d.options, d.topicPrefix)
	if err := q.Connect(ctx); err != nil {
		return nil, err
	}
	defer q.Close()

	dur := d.Timeout
	if dur == 0 {
		dur = DefaultDiscoverTimeout
	}
	return discover(ctx, q, address, dur)
}

// discover subscribes to the group on a connected queue and collects
// descriptors for dur once the broker confirmed the subscription.
func discover(ctx context.Context, q *Queue, address uint16, dur time.Duration) ([]Descriptor, error) {
	found := make(map[NodeRef]Descriptor)
	resCh := make(chan Descriptor, 1)
	sub := q.Sub(GroupPattern(address), func(topic string, payload []byte) {
		if desc, ok := DecodeDescriptor(topic, payload); ok {
			select {
			case resCh <- desc:
			case <-time.After(time.Second):
			}
		}
	})
	defer sub.Close()
	if err := waitSubscribed(ctx, sub.Token); err != nil {
		return nil, err
	}

	timeout := time.After(dur)
	for {
		select {
		case desc := <-resCh:
			found[desc.Ref()] = desc
		case <-timeout:
			return sortDescriptors(found), nil
		case <-ctx.Done():
			return sortDescriptors(found), ctx.Err()
		}
	}
}

// DecodeDescriptor decodes a descriptor message. Cleared (empty) and
// malformed messages are reported as not ok.
func DecodeDescriptor(topic string, payload []byte) (Descriptor, bool) {
	ref, ok := ParseTopic(topic)
	if !ok || len(payload) == 0 {
		return Descriptor{}, false
	}
	desc, err := DecodeDescriptorMsg(payload)
	if err != nil {
		glog.Warningf("%s: bad descriptor: %v", topic, err)
		return Descriptor{}, false
	}
	if desc.Ref() != ref {
		glog.Warningf("%s: descriptor announces %s", topic, desc.Ref().Name())
		return Descriptor{}, false
	}
	return desc, true
}

func sortDescriptors(m map[NodeRef]Descriptor) []Descriptor {
	out := make([]Descriptor, 0, len(m))
	for _, desc := range m {
		out = append(out, desc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Address != out[j].Address {
			return out[i].Address < out[j].Address
		}
		return out[i].ID < out[j].ID
	})
	return out
}
