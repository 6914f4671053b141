package dbc

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	cdbc "go.einride.tech/can/pkg/dbc"

	"github.com/BIwashi/dshotdecode/pkg/dshot"
)

// Message is a CAN message declared in a DBC file.
type Message struct {
	ID          uint32
	Name        string
	Size        int
	IsExtended  bool
	Transmitter string
}

// ParseFile parses a DBC file using the can-go (go.einride.tech/can) parser and returns
// its message declarations in file order.
func ParseFile(filename string) ([]Message, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read dbc file")
	}

	parser := cdbc.NewParser(filepath.Base(filename), data)
	if perr := parser.Parse(); perr != nil {
		return nil, errors.Wrap(perr, "parse dbc (can-go)")
	}

	var out []Message
	for _, def := range parser.File().Defs {
		m, ok := def.(*cdbc.MessageDef)
		if !ok {
			continue
		}
		// can-go keeps the MSB to flag extended IDs.
		id := uint32(m.MessageID)
		extended := id&0x80000000 != 0
		if extended {
			id &= 0x1FFFFFFF
		}
		out = append(out, Message{
			ID:          id,
			Name:        string(m.Name),
			Size:        int(m.Size),
			IsExtended:  extended,
			Transmitter: string(m.Transmitter),
		})
	}
	return out, nil
}

// LookupMessage resolves the message the capture logger uses to carry DSHOT captures.
// The message must be declared with the capture size.
func LookupMessage(filename, name string) (*Message, error) {
	messages, err := ParseFile(filename)
	if err != nil {
		return nil, err
	}
	for i := range messages {
		m := messages[i]
		if m.Name != name {
			continue
		}
		if m.Size != dshot.CaptureSize {
			return nil, errors.Newf("message %s is %d bytes, dshot captures are %d", name, m.Size, dshot.CaptureSize)
		}
		return &m, nil
	}
	return nil, errors.Newf("message %s not found in %s", name, filepath.Base(filename))
}
