package pcapng

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	ecan "go.einride.tech/can"

	"github.com/BIwashi/dshotdecode/pkg/can"
)

// LinkTypeCAN is the SocketCAN link type without the Linux cooked header.
// ref: https://www.tcpdump.org/linktypes.html
const LinkTypeCAN layers.LinkType = 227

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithCANID only returns frames carrying the given identifier.
func WithCANID(id uint32, extended bool) ReaderOption {
	return func(r *Reader) {
		r.filter = &idFilter{id: id, extended: extended}
	}
}

type idFilter struct {
	id       uint32
	extended bool
}

// Reader reads DSHOT capture frames, logged as SocketCAN frames, from a PCAPNG file
type Reader struct {
	reader      *pcapgo.NgReader
	linkType    layers.LinkType
	filter      *idFilter
	packetCount uint64
	skipped     uint64
}

// NewReader creates a new PCAPNG reader
func NewReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	ngReader, err := pcapgo.NewNgReader(r, pcapgo.DefaultNgReaderOptions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pcapng reader")
	}

	// Get link type from the first interface
	linkType := ngReader.LinkType()

	reader := &Reader{
		reader:   ngReader,
		linkType: linkType,
	}
	for _, opt := range opts {
		opt(reader)
	}
	return reader, nil
}

// ReadNext reads the next capture frame from the PCAPNG file. It returns io.EOF at the end
// of the file. The payload length is not validated here.
func (r *Reader) ReadNext() (*can.TimedFrame, error) {
	for {
		data, ci, err := r.reader.ReadPacketData()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, errors.Wrap(err, "failed to read packet data")
		}

		r.packetCount++

		// Parse the packet based on link type
		packet := gopacket.NewPacket(data, r.linkType, gopacket.Default)

		canFrame, err := r.extractCANFrame(packet, ci)
		if err != nil {
			// Skip non-CAN packets
			r.skipped++
			continue
		}
		if canFrame.IsRemote || !r.accept(canFrame) {
			r.skipped++
			continue
		}

		return canFrame, nil
	}
}

func (r *Reader) accept(f *can.TimedFrame) bool {
	if r.filter == nil {
		return true
	}
	return f.ID == r.filter.id && f.IsExtended == r.filter.extended
}

// extractCANFrame extracts CAN frame from the packet
func (r *Reader) extractCANFrame(packet gopacket.Packet, ci gopacket.CaptureInfo) (*can.TimedFrame, error) {
	var payload []byte
	switch r.linkType {
	case layers.LinkTypeLinuxSLL:
		// Check if this is a Linux SLL (Linux cooked capture) packet
		if sllLayer := packet.Layer(layers.LayerTypeLinuxSLL); sllLayer != nil {
			sll := sllLayer.(*layers.LinuxSLL)
			payload = sll.Payload
		} else {
			// Try to parse as raw data
			payload = packet.Data()
		}
	case LinkTypeCAN:
		payload = packet.Data()
	default:
		return nil, fmt.Errorf("unsupported link type: %v", r.linkType)
	}

	canFrame, isError, err := r.extractRawCANFrame(payload, ci)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract RawCAN frame")
	}
	if isError {
		return nil, errors.New("error in RawCAN frame")
	}

	return canFrame, nil
}

const (
	idFlagExtended = 0x80000000
	idFlagRemote   = 0x40000000
	idFlagError    = 0x20000000
	idMaskExtended = 0x1fffffff
	idMaskStandard = 0x7ff
)

// extractRawCANFrame extracts CAN frame from raw CAN format
func (r *Reader) extractRawCANFrame(data []byte, ci gopacket.CaptureInfo) (*can.TimedFrame, bool, error) {
	// Raw CAN frame format (similar to SocketCAN but without SLL header)
	if len(data) < 8 {
		return nil, false, errors.Newf("data too short for CAN frame: %d", len(data))
	}

	var (
		// Parse CAN ID and flags
		canIDRaw = binary.LittleEndian.Uint32(data[0:4])

		// Extract flags from CAN ID
		isExtended = (canIDRaw & idFlagExtended) != 0
		isRemote   = (canIDRaw & idFlagRemote) != 0
		isError    = (canIDRaw & idFlagError) != 0
	)

	// Extract actual CAN ID
	var canID uint32
	if isExtended {
		canID = canIDRaw & idMaskExtended
	} else {
		canID = canIDRaw & idMaskStandard
	}

	// Get data length
	dataLen := data[4]
	if dataLen > 8 {
		dataLen = 8
	}
	if len(data) < 8+int(dataLen) {
		return nil, false, errors.Newf("truncated CAN payload: want %d bytes, have %d", dataLen, len(data)-8)
	}

	var canData ecan.Data
	copy(canData[:], data[8:8+dataLen])

	return &can.TimedFrame{
		Frame: ecan.Frame{
			ID:         canID,
			Length:     dataLen,
			Data:       canData,
			IsRemote:   isRemote,
			IsExtended: isExtended,
		},
		Timestamp: ci.Timestamp,
	}, isError, nil
}

// GetPacketCount returns the number of packets read
func (r *Reader) GetPacketCount() uint64 {
	return r.packetCount
}

// GetSkippedCount returns the number of packets that were not returned as capture frames
func (r *Reader) GetSkippedCount() uint64 {
	return r.skipped
}
