// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package p2p

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// CommandSize is the fixed size of all commands in the common message
	// header. Shorter commands must be zero padded.
	CommandSize = 12

	// HeaderSize is the number of bytes in a message header.
	// magic 4 bytes + command 12 bytes + length 4 bytes + checksum 4 bytes
	HeaderSize = 24

	// MaxMessagePayload is the maximum bytes a message can be regardless of
	// other individual limits imposed by messages themselves.
	MaxMessagePayload = 1024 * 1024 * 32 // 32MB
)

// Commands used in message headers which describe the type of message.
const (
	CmdInv             = "inv"
	CmdGetMNWinners    = "mnget"
	CmdMNWinner        = "mnw"
	CmdSyncStatusCount = "ssc"
)

// Message is the interface implemented by every message carried between
// peers.
type Message interface {
	CMD() string
	MaxLength() uint32
	Serialize(io.Writer) error
	Deserialize(io.Reader) error
}

// Header is the fixed size prefix of every message on the wire.
type Header struct {
	Magic    uint32
	Command  [CommandSize]byte
	Length   uint32
	Checksum [4]byte
}

func (h *Header) GetCMD() string {
	end := CommandSize
	for i, b := range h.Command {
		if b == 0 {
			end = i
			break
		}
	}
	return string(h.Command[:end])
}

func (h *Header) Serialize(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, h)
}

func (h *Header) Deserialize(r io.Reader) error {
	return binary.Read(r, binary.LittleEndian, h)
}

func (h *Header) Verify(payload []byte) error {
	sum := chainhash.DoubleHashB(payload)
	if !bytes.Equal(h.Checksum[:], sum[:4]) {
		return fmt.Errorf("unmatched payload checksum [%x], expected [%x]",
			h.Checksum, sum[:4])
	}
	return nil
}

// WriteMessage writes msg to w with a header carrying the given network
// magic.
func WriteMessage(w io.Writer, magic uint32, msg Message) error {
	cmd := msg.CMD()
	if len(cmd) > CommandSize {
		return fmt.Errorf("command [%s] is too long [max %v]", cmd, CommandSize)
	}

	payload, err := bufPool.GetPayload(msg)
	if err != nil {
		return err
	}

	if len(payload) > MaxMessagePayload {
		return fmt.Errorf("message payload is too large - header indicates"+
			" %d bytes, but max message payload is %d bytes.",
			len(payload), MaxMessagePayload)
	}

	if uint32(len(payload)) > msg.MaxLength() {
		return fmt.Errorf("message payload is too large - encoded %d bytes,"+
			" but maximum message payload of type [%s] is %d bytes",
			len(payload), cmd, msg.MaxLength())
	}

	hdr := Header{Magic: magic, Length: uint32(len(payload))}
	copy(hdr.Command[:], cmd)
	copy(hdr.Checksum[:], chainhash.DoubleHashB(payload)[:4])

	buf := bufPool.Get()
	defer bufPool.Put(buf)
	if err := hdr.Serialize(buf); err != nil {
		return err
	}
	buf.Write(payload)
	_, err = w.Write(buf.Bytes())
	return err
}

// ReadMessage reads the next message from r. makeMessage returns an empty
// message for a known command or an error for unknown commands.
func ReadMessage(r io.Reader, magic uint32,
	makeMessage func(cmd string) (Message, error)) (Message, error) {

	var hdr Header
	if err := hdr.Deserialize(r); err != nil {
		return nil, err
	}

	if hdr.Magic != magic {
		return nil, fmt.Errorf("unmatched magic [%d], expected [%d]",
			hdr.Magic, magic)
	}

	if hdr.Length > MaxMessagePayload {
		return nil, fmt.Errorf("message payload is too large - header"+
			" indicates %d bytes, but max message payload is %d bytes.",
			hdr.Length, MaxMessagePayload)
	}

	msg, err := makeMessage(hdr.GetCMD())
	if err != nil {
		return nil, err
	}

	if hdr.Length > msg.MaxLength() {
		return nil, fmt.Errorf("payload exceeds max length. indicates %d"+
			" bytes, but max of message type %s is %d.", hdr.Length,
			hdr.GetCMD(), msg.MaxLength())
	}

	payload := make([]byte, hdr.Length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}

	if err := hdr.Verify(payload); err != nil {
		return nil, err
	}

	if err := msg.Deserialize(bytes.NewReader(payload)); err != nil {
		return nil, fmt.Errorf("deserialize message %s failed %s",
			msg.CMD(), err.Error())
	}

	return msg, nil
}
