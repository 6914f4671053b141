package frame

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/BIwashi/dshotdecode/pkg/cli"
	"github.com/BIwashi/dshotdecode/pkg/dshot"
)

type framer struct {
	legacy bool
}

func NewCommand() *cobra.Command {
	s := &framer{}

	cmd := &cobra.Command{
		Use:   "frame <hex>...",
		Short: "Decode single DSHOT captures given as hex.",
		Example: `  dshotdecode frame dbefffdbfffe
  dshotdecode frame 0xDF:6D:F6:FF:FF:FF --legacy`,
		Args: cobra.MinimumNArgs(1),
		RunE: cli.WithContext(s.run),
	}

	cmd.Flags().BoolVar(&s.legacy, "legacy", s.legacy, "Report every frame as raw throttle scaled over 0x7FF")

	return cmd
}

func (s *framer) run(ctx context.Context, input cli.Input) error {
	dec := dshot.NewDecoder(
		dshot.WithClassification(!s.legacy),
		dshot.WithLogger(input.Logger),
	)

	var failed int
	for _, arg := range input.Args {
		data, err := parseHex(arg)
		if err != nil {
			return err
		}
		f, err := dec.Decode(data, time.Time{}, time.Time{})
		if err != nil {
			failed++
			input.Logger.Error("invalid capture", "capture", arg, "error", err.Error())
			continue
		}
		fmt.Fprintf(input.Stdout, "%s word=0x%04X %s\n", arg, uint16(f.Word), f)
	}
	if failed > 0 {
		return errors.Newf("%d of %d captures could not be decoded", failed, len(input.Args))
	}
	return nil
}

func parseHex(s string) ([]byte, error) {
	clean := strings.TrimPrefix(strings.ToLower(s), "0x")
	clean = strings.NewReplacer(":", "", " ", "", "_", "").Replace(clean)
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, errors.Wrapf(err, "parse capture %q", s)
	}
	return data, nil
}
