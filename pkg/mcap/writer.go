package mcap

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/foxglove/mcap/go/mcap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/BIwashi/dshotdecode/pkg/dshot"
)

const schemaName = "google.protobuf.Struct"

// Writer writes decoded DSHOT frames into an MCAP file.
//
// Design decisions:
//   - Single protobuf schema (google.protobuf.Struct) reused by all channels.
//   - Channel granularity = (capture source, frame kind).
//   - Topic naming: /dshot/<source>/<kind>
//   - Channel metadata includes: source, kind and rate.
//
// A new channel is created lazily on first occurrence of a (source, kind) combination.
type Writer struct {
	mu         sync.Mutex
	writer     *mcap.Writer
	schemaID   uint16
	nextChanID uint16
	channels   map[string]uint16 // key: source + ":" + kind
	sequence   map[uint16]uint32
	rate       dshot.Rate
}

// NewWriter initializes an MCAP writer with the Struct schema registered.
// The provided io.Writer should be an opened file (will not be closed here).
func NewWriter(out io.Writer, rate dshot.Rate) (*Writer, error) {
	w, err := mcap.NewWriter(out, &mcap.WriterOptions{
		Chunked:     true,
		ChunkSize:   2 * 1024 * 1024, // 2MB chunks
		Compression: mcap.CompressionZSTD,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create MCAP writer")
	}

	if err := w.WriteHeader(&mcap.Header{
		Profile: "",
		Library: "dshotdecode",
	}); err != nil {
		return nil, errors.Wrap(err, "write header")
	}

	// Foxglove expects a FileDescriptorSet for protobuf schemas.
	fds := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			protodesc.ToFileDescriptorProto(structpb.File_google_protobuf_struct_proto),
		},
	}
	data, err := proto.Marshal(fds)
	if err != nil {
		return nil, errors.Wrap(err, "marshal schema descriptor")
	}

	schemaID := uint16(1)
	if err := w.WriteSchema(&mcap.Schema{
		ID:       schemaID,
		Name:     schemaName,
		Encoding: "protobuf",
		Data:     data,
	}); err != nil {
		return nil, errors.Wrap(err, "write schema")
	}

	return &Writer{
		writer:   w,
		schemaID: schemaID,
		channels: make(map[string]uint16),
		sequence: make(map[uint16]uint32),
		rate:     rate,
	}, nil
}

// ensureChannel ensures a channel exists for a given source and kind; returns channel ID.
func (w *Writer) ensureChannel(source string, kind dshot.Kind) (uint16, error) {
	key := source + ":" + kind.String()
	if id, ok := w.channels[key]; ok {
		return id, nil
	}

	w.nextChanID++
	chID := w.nextChanID

	topic := fmt.Sprintf("/dshot/%s/%s", source, kind)
	if err := w.writer.WriteChannel(&mcap.Channel{
		ID:              chID,
		SchemaID:        w.schemaID,
		Topic:           topic,
		MessageEncoding: "protobuf",
		Metadata: map[string]string{
			"source": source,
			"kind":   kind.String(),
			"rate":   w.rate.String(),
		},
	}); err != nil {
		return 0, errors.Wrapf(err, "write channel (topic=%s)", topic)
	}

	w.channels[key] = chID
	return chID, nil
}

// WriteFrame writes a single frame as an MCAP message. LogTime and PublishTime use
// the frame start time.
func (w *Writer) WriteFrame(source string, f *dshot.Frame) error {
	if f == nil {
		return errors.New("nil frame")
	}
	msg, err := structpb.NewStruct(frameFields(f))
	if err != nil {
		return errors.Wrap(err, "build frame struct")
	}
	data, err := proto.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal frame struct")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	channelID, err := w.ensureChannel(source, f.Kind)
	if err != nil {
		return err
	}
	seq := w.sequence[channelID]
	w.sequence[channelID] = seq + 1

	ts := uint64(f.Start.UnixNano())
	if err := w.writer.WriteMessage(&mcap.Message{
		ChannelID:   channelID,
		Sequence:    seq,
		LogTime:     ts,
		PublishTime: ts,
		Data:        data,
	}); err != nil {
		return errors.Wrap(err, "write message")
	}
	return nil
}

func frameFields(f *dshot.Frame) map[string]any {
	fields := map[string]any{
		"kind":              f.Kind.String(),
		"start":             f.Start.Format(time.RFC3339Nano),
		"end":               f.End.Format(time.RFC3339Nano),
		"telemetry_request": f.TelemetryRequest,
		"crc":               int(f.CRC.Received),
		"crc_computed":      int(f.CRC.Computed),
		"crc_ok":            f.CRC.Pass,
	}
	switch f.Kind {
	case dshot.KindCommand:
		fields["command"] = int(f.Command)
		fields["command_name"] = f.Command.String()
	case dshot.KindThrottle:
		fields["throttle"] = int(f.Throttle)
		fields["throttle_percent"] = f.Percent
	}
	return fields
}

// Close finalizes the MCAP file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writer.Close()
}
