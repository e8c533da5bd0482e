// Package link provides the validated configuration model of an E32 radio link.
package link

// A RadioLinkConfig describes one physical end node: the controller pins wired
// to the module, the group address and device id, UART framing, RF parameters
// and the payload size the node sends per packet.
//
// The module buffers at most 64 bytes. In fixed transmission mode the first
// 3 bytes of every packet carry the target address and channel, which leaves
// 61 bytes for payload. A module either transmits or receives at one time,
// so the role is part of the configuration and changing it means building a
// new configuration.
//
// Building a configuration never touches hardware; the serial command layer
// and the pin HAL consume the result.
