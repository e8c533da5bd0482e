// Package registry announces end node link configurations over MQTT so that
// device ids can be coordinated within a group address.
package registry

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/e32.go/pkg/e32/link"
)

// NodeRef identifies an end node by group address and device id.
type NodeRef struct {
	Address uint16
	ID      uint8
}

// Name returns "<address>/<id>".
func (r NodeRef) Name() string {
	return fmt.Sprintf("%d/%d", r.Address, r.ID)
}

// Topic returns the topic carrying the node's descriptor.
func (r NodeRef) Topic() string {
	return r.Name() + "/link"
}

// GroupPattern returns the topic pattern matching every node of a group.
func GroupPattern(address uint16) string {
	return fmt.Sprintf("%d/+/link", address)
}

// ParseTopic extracts the NodeRef from a descriptor topic.
func ParseTopic(topic string) (NodeRef, bool) {
	items := strings.Split(topic, "/")
	if len(items) != 3 || items[2] != "link" {
		return NodeRef{}, false
	}
	addr, err := strconv.ParseUint(items[0], 10, 16)
	if err != nil {
		return NodeRef{}, false
	}
	id, err := strconv.ParseUint(items[1], 10, 8)
	if err != nil {
		return NodeRef{}, false
	}
	return NodeRef{Address: uint16(addr), ID: uint8(id)}, true
}

// Descriptor is the published summary of a node's link configuration.
type Descriptor struct {
	Address          uint16 `json:"address"`
	ID               uint8  `json:"id"`
	Role             string `json:"role"`
	Channel          int    `json:"channel"`
	FrequencyMHz     int    `json:"frequency_mhz"`
	TransmissionMode string `json:"transmission_mode"`
	PayloadBytes     int    `json:"payload_bytes"`
	Capacity         int    `json:"capacity"`
	Host             string `json:"host,omitempty"`
	Description      string `json:"description,omitempty"`
}

// DescriptorOf summarizes cfg.
func DescriptorOf(cfg link.RadioLinkConfig, host, description string) Descriptor {
	return Descriptor{
		Address:          cfg.DeviceAddress(),
		ID:               cfg.DeviceID(),
		Role:             cfg.Role().String(),
		Channel:          cfg.Channel(),
		FrequencyMHz:     cfg.FrequencyMHz(),
		TransmissionMode: cfg.TransmissionMode().String(),
		PayloadBytes:     cfg.PacketPayloadBytes(),
		Capacity:         cfg.EffectivePayloadCapacity(),
		Host:             host,
		Description:      description,
	}
}

// Ref returns the node reference.
func (d Descriptor) Ref() NodeRef {
	return NodeRef{Address: d.Address, ID: d.ID}
}

func (d Descriptor) String() string {
	text := fmt.Sprintf("%s %s ch%d %s payload=%d/%d",
		d.Ref().Name(), d.Role, d.Channel, d.TransmissionMode, d.PayloadBytes, d.Capacity)
	if d.Description != "" {
		text += ": " + d.Description
	}
	return text
}

// Encode encodes the descriptor as the retained registry payload.
func (d Descriptor) Encode() ([]byte, error) {
	return proto.Marshal(&DescriptorMsg{
		Address:          uint32(d.Address),
		ID:               uint32(d.ID),
		Role:             d.Role,
		Channel:          int32(d.Channel),
		FrequencyMHz:     int32(d.FrequencyMHz),
		TransmissionMode: d.TransmissionMode,
		PayloadBytes:     int32(d.PayloadBytes),
		Capacity:         int32(d.Capacity),
		Host:             d.Host,
		Description:      d.Description,
	})
}

// DecodeDescriptorMsg decodes a registry payload produced by Encode.
func DecodeDescriptorMsg(payload []byte) (Descriptor, error) {
	var m DescriptorMsg
	if err := proto.Unmarshal(payload, &m); err != nil {
		return Descriptor{}, err
	}
	if m.Address > math.MaxUint16 || m.ID > math.MaxUint8 {
		return Descriptor{}, fmt.Errorf("node %d/%d out of range", m.Address, m.ID)
	}
	return Descriptor{
		Address:          uint16(m.Address),
		ID:               uint8(m.ID),
		Role:             m.Role,
		Channel:          int(m.Channel),
		FrequencyMHz:     int(m.FrequencyMHz),
		TransmissionMode: m.TransmissionMode,
		PayloadBytes:     int(m.PayloadBytes),
		Capacity:         int(m.Capacity),
		Host:             m.Host,
		Description:      m.Description,
	}, nil
}

// DescriptorMsg is the wire form of Descriptor.
type DescriptorMsg struct {
	Address          uint32 `protobuf:"varint,1,opt,name=address,proto3" json:"address,omitempty"`
	ID               uint32 `protobuf:"varint,2,opt,name=id,proto3" json:"id,omitempty"`
	Role             string `protobuf:"bytes,3,opt,name=role,proto3" json:"role,omitempty"`
	Channel          int32  `protobuf:"varint,4,opt,name=channel,proto3" json:"channel,omitempty"`
	FrequencyMHz     int32  `protobuf:"varint,5,opt,name=frequency_mhz,proto3" json:"frequency_mhz,omitempty"`
	TransmissionMode string `protobuf:"bytes,6,opt,name=transmission_mode,proto3" json:"transmission_mode,omitempty"`
	PayloadBytes     int32  `protobuf:"varint,7,opt,name=payload_bytes,proto3" json:"payload_bytes,omitempty"`
	Capacity         int32  `protobuf:"varint,8,opt,name=capacity,proto3" json:"capacity,omitempty"`
	Host             string `protobuf:"bytes,9,opt,name=host,proto3" json:"host,omitempty"`
	Description      string `protobuf:"bytes,10,opt,name=description,proto3" json:"description,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *DescriptorMsg) ProtoMessage() {}

// Reset implements proto.Message.
func (m *DescriptorMsg) Reset() { *m = DescriptorMsg{} }

// String implements proto.Message.
func (m *DescriptorMsg) String() string { return proto.CompactTextString(m) }

// DuplicateDeviceIDError indicates another host announces the same node.
type DuplicateDeviceIDError struct {
	Ref  NodeRef
	Host string
}

// Error implements error.
func (e *DuplicateDeviceIDError) Error() string {
	return fmt.Sprintf("device %s already announced by host %q", e.Ref.Name(), e.Host)
}

// CheckUnique verifies no peer from another host uses self's address and id.
// A peer from the same host is a previous announcement of self.
func CheckUnique(self Descriptor, peers []Descriptor) error {
	for _, peer := range peers {
		if peer.Ref() == self.Ref() && peer.Host != self.Host {
			return &DuplicateDeviceIDError{Ref: peer.Ref(), Host: peer.Host}
		}
	}
	return nil
}
