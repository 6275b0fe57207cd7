package store

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/supby/relay2mqtt/internal/devconfig"
)

const (
	signatureSize = 4
	slotSize      = devconfig.MaxFieldLength
	portSize      = 2

	// RecordSize is the footprint of an encoded configuration.
	RecordSize = signatureSize + 8*slotSize + portSize
)

var signature = [signatureSize]byte{'#', 'R', 'E', 'L'}

// Encode lays out cfg in the canonical order: signature, network name,
// network secret, resolution label, broker address, broker port
// (little-endian), broker user, broker secret, client id, topic.
func Encode(cfg devconfig.Config) []byte {
	buf := make([]byte, 0, RecordSize)
	buf = append(buf, signature[:]...)
	buf = appendSlot(buf, cfg.NetworkName)
	buf = appendSlot(buf, cfg.NetworkSecret)
	buf = appendSlot(buf, cfg.ResolutionLabel)
	buf = appendSlot(buf, cfg.BrokerAddress)
	buf = binary.LittleEndian.AppendUint16(buf, cfg.BrokerPort)
	buf = appendSlot(buf, cfg.BrokerUser)
	buf = appendSlot(buf, cfg.BrokerSecret)
	buf = appendSlot(buf, cfg.BrokerClientID)
	buf = appendSlot(buf, cfg.BrokerTopic)
	return buf
}

// Decode parses an image written by Encode. ErrNotFound is returned when
// the signature does not match.
func Decode(image []byte) (devconfig.Config, error) {
	if len(image) < RecordSize {
		return devconfig.Config{}, fmt.Errorf("image of %d bytes is shorter than record (%d)", len(image), RecordSize)
	}

	if !bytes.Equal(image[:signatureSize], signature[:]) {
		return devconfig.Config{}, ErrNotFound
	}

	d := decoder{buf: image, offset: signatureSize}
	cfg := devconfig.Config{}
	cfg.NetworkName = d.slot()
	cfg.NetworkSecret = d.slot()
	cfg.ResolutionLabel = d.slot()
	cfg.BrokerAddress = d.slot()
	cfg.BrokerPort = d.uint16()
	cfg.BrokerUser = d.slot()
	cfg.BrokerSecret = d.slot()
	cfg.BrokerClientID = d.slot()
	cfg.BrokerTopic = d.slot()

	return cfg, nil
}

func appendSlot(buf []byte, s string) []byte {
	slot := [slotSize]byte{}
	copy(slot[:], devconfig.Clamp(s))
	return append(buf, slot[:]...)
}

type decoder struct {
	buf    []byte
	offset int
}

func (d *decoder) slot() string {
	slot := d.buf[d.offset : d.offset+slotSize]
	d.offset += slotSize

	if i := bytes.IndexByte(slot, 0); i >= 0 {
		slot = slot[:i]
	}

	return string(slot)
}

func (d *decoder) uint16() uint16 {
	v := binary.LittleEndian.Uint16(d.buf[d.offset:])
	d.offset += portSize
	return v
}
