// Package protocol is the binary wire format between a live session and its
// remote client.
//
// Every message is a frame with a 4-byte header:
//
//	[type u8][flags u8][payload length u16, big-endian][payload]
//
// The server opens with a Handshake (session id and the root handle the
// client must bind to its mount point). After every render pass it sends a
// Patches frame: a sequence number followed by the live mutations the
// reconciler issued, in order. The client answers user interaction with
// Event frames addressed by the handle the listener was attached to.
//
// Integers use protobuf-style varints; strings are varint length-prefixed.
// Handles are never reused by the server, so a late Event for a removed
// resource is simply unknown and dropped.
package protocol
