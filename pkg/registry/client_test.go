package registry

import (
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

type fakeToken struct {
	paho.Token
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }

type fakeMessage struct {
	paho.Message
	topic   string
	payload []byte
}

func (m *fakeMessage) Topic() string   { return m.topic }
func (m *fakeMessage) Payload() []byte { return m.payload }

type publication struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// delivery is a message the broker sends after a subscription, after the
// given delay from the previous one.
type delivery struct {
	topic   string
	payload []byte
	after   time.Duration
}

// fakeClient records what is sent to the broker and replays deliveries
// matching each subscribed pattern.
type fakeClient struct {
	paho.Client

	subErr     error
	deliveries []delivery

	lock         sync.Mutex
	published    []publication
	subscribed   []string
	unsubscribed []string
	disconnected bool
}

func newFakeQueue(c *fakeClient) *Queue {
	return &Queue{Client: c, TopicPrefix: "e32/", subs: make(map[string][]*Subscription)}
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	data, _ := payload.([]byte)
	c.lock.Lock()
	c.published = append(c.published, publication{topic: topic, payload: data, qos: qos, retained: retained})
	c.lock.Unlock()
	return &fakeToken{}
}

func (c *fakeClient) Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token {
	c.lock.Lock()
	c.subscribed = append(c.subscribed, topic)
	c.lock.Unlock()
	if c.subErr != nil {
		return &fakeToken{err: c.subErr}
	}
	var matched []delivery
	for _, d := range c.deliveries {
		if MatchTopic(d.topic, topic) {
			matched = append(matched, d)
		}
	}
	go func() {
		for _, d := range matched {
			time.Sleep(d.after)
			callback(c, &fakeMessage{topic: d.topic, payload: d.payload})
		}
	}()
	return &fakeToken{}
}

func (c *fakeClient) Unsubscribe(topics ...string) paho.Token {
	c.lock.Lock()
	c.unsubscribed = append(c.unsubscribed, topics...)
	c.lock.Unlock()
	return &fakeToken{}
}

func (c *fakeClient) Disconnect(uint) {
	c.lock.Lock()
	c.disconnected = true
	c.lock.Unlock()
}

func (c *fakeClient) publications() []publication {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]publication(nil), c.published...)
}
