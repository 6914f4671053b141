package decode

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/BIwashi/dshotdecode/pkg/can"
	"github.com/BIwashi/dshotdecode/pkg/cli"
	"github.com/BIwashi/dshotdecode/pkg/dbc"
	"github.com/BIwashi/dshotdecode/pkg/dshot"
	"github.com/BIwashi/dshotdecode/pkg/mcap"
	"github.com/BIwashi/dshotdecode/pkg/output"
	"github.com/BIwashi/dshotdecode/pkg/pcapng"
)

type frameWriter interface {
	WriteFrame(source string, f *dshot.Frame) error
	Close() error
}

type decoder struct {
	pcapngFile string
	canID      uint32
	filterID   bool
	extendedID bool
	dbcFile    string
	dbcMessage string
	rate       string
	legacy     bool
	workers    int
	batchSize  int
	mcapFile   string
	cborFile   string
	text       bool
}

func NewCommand() *cobra.Command {
	s := &decoder{
		dbcMessage: "DSHOT",
		rate:       "600",
		workers:    4,
		batchSize:  4096,
		text:       true,
	}

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode DSHOT frames from oversampled captures stored in PCAPNG.",
		Long: `Decode DSHOT motor frames from a PCAPNG file.

Each capture is a 6-byte oversampled duty-cycle record logged as a CAN frame.
Frames are classified as disarmed, command or throttle, checked against their
checksum and written in capture order to stdout, MCAP and/or CBOR.`,
		Example: `  # Print every frame logged with CAN ID 0x120
  dshotdecode decode --pcapng-file capture.pcapng --can-id 0x120

  # Resolve the capture message from a DBC file and export MCAP
  dshotdecode decode --pcapng-file capture.pcapng --dbc-file logger.dbc --dbc-message DSHOT_M1 --mcap-file out.mcap --text=false`,
		PreRun: func(cmd *cobra.Command, _ []string) {
			s.filterID = cmd.Flags().Changed("can-id")
		},
		RunE: cli.WithContext(s.run),
	}

	cmd.Flags().StringVar(&s.pcapngFile, "pcapng-file", s.pcapngFile, "PCAPNG file")
	cmd.Flags().Uint32Var(&s.canID, "can-id", s.canID, "CAN ID carrying the captures (default: all frames)")
	cmd.Flags().BoolVar(&s.extendedID, "extended-id", s.extendedID, "CAN ID is a 29-bit extended identifier")
	cmd.Flags().StringVar(&s.dbcFile, "dbc-file", s.dbcFile, "DBC file declaring the capture message")
	cmd.Flags().StringVar(&s.dbcMessage, "dbc-message", s.dbcMessage, "Capture message name in the DBC file")
	cmd.Flags().StringVar(&s.rate, "rate", s.rate, "DSHOT rate (150, 300, 600, 1200)")
	cmd.Flags().BoolVar(&s.legacy, "legacy", s.legacy, "Report every frame as raw throttle scaled over 0x7FF")
	cmd.Flags().IntVar(&s.workers, "workers", s.workers, "Parallel decode workers")
	cmd.Flags().IntVar(&s.batchSize, "batch-size", s.batchSize, "Captures decoded per batch")
	cmd.Flags().StringVar(&s.mcapFile, "mcap-file", s.mcapFile, "MCAP output file")
	cmd.Flags().StringVar(&s.cborFile, "cbor-file", s.cborFile, "CBOR sequence output file")
	cmd.Flags().BoolVar(&s.text, "text", s.text, "Print frames to stdout")

	cmd.MarkFlagRequired("pcapng-file")
	cmd.MarkFlagsMutuallyExclusive("can-id", "dbc-file")

	return cmd
}

func (s *decoder) run(ctx context.Context, input cli.Input) error {
	rate, err := dshot.ParseRate(s.rate)
	if err != nil {
		return err
	}
	if s.batchSize < 1 {
		return errors.Newf("batch size must be positive, got %d", s.batchSize)
	}

	input.Logger.Info("Starting DSHOT decode",
		"pcapng_file", s.pcapngFile,
		"rate", rate.String(),
		"legacy", s.legacy,
		"mcap_file", s.mcapFile,
		"cbor_file", s.cborFile,
	)

	var readerOpts []pcapng.ReaderOption
	switch {
	case s.dbcFile != "":
		msg, err := dbc.LookupMessage(s.dbcFile, s.dbcMessage)
		if err != nil {
			return fmt.Errorf("failed to resolve capture message: %w", err)
		}
		input.Logger.Info("Resolved capture message from DBC",
			"message", msg.Name,
			"can_id", fmt.Sprintf("0x%03X", msg.ID),
			"extended", msg.IsExtended,
		)
		readerOpts = append(readerOpts, pcapng.WithCANID(msg.ID, msg.IsExtended))
	case s.filterID:
		readerOpts = append(readerOpts, pcapng.WithCANID(s.canID, s.extendedID))
	}

	pcapFile, err := os.Open(s.pcapngFile)
	if err != nil {
		return fmt.Errorf("failed to open PCAPNG file: %w", err)
	}
	defer pcapFile.Close()

	reader, err := pcapng.NewReader(pcapFile, readerOpts...)
	if err != nil {
		return fmt.Errorf("failed to create PCAPNG reader: %w", err)
	}

	writers, closeWriters, err := s.openWriters(rate, input)
	if err != nil {
		return err
	}
	defer closeWriters()

	stats := &dshot.Stats{}
	dec := dshot.NewDecoder(
		dshot.WithClassification(!s.legacy),
		dshot.WithObserver(stats.Observe),
		dshot.WithLogger(input.Logger),
	)

	p := &pipeline{
		reader:    reader,
		decoder:   dec,
		writers:   writers,
		stats:     stats,
		rate:      rate,
		workers:   s.workers,
		batchSize: s.batchSize,
		logger:    input.Logger,
	}

	startTime := time.Now()
	if err := p.run(ctx); err != nil {
		return err
	}
	if err := closeWriters(); err != nil {
		return fmt.Errorf("failed to finalize output: %w", err)
	}
	duration := time.Since(startTime)
	counts := stats.Snapshot()

	input.Logger.Info("Decode completed successfully!",
		"packets", reader.GetPacketCount(),
		"skipped_packets", reader.GetSkippedCount(),
		"frames", counts.Total,
		"disarmed", counts.Disarmed,
		"commands", counts.Commands,
		"throttles", counts.Throttles,
		"crc_failures", counts.CRCFailures,
		"length_errors", counts.LengthErrors,
		"telemetry_requests", counts.Telemetry,
		"duration", duration,
		"rate_fps", fmt.Sprintf("%.2f", float64(counts.Total)/duration.Seconds()),
	)
	if counts.Throttles > 0 {
		input.Logger.Info("Throttle range",
			"min", counts.MinThrottle,
			"max", counts.MaxThrottle,
		)
	}
	for cmd, count := range stats.CommandCounts() {
		input.Logger.Debug(fmt.Sprintf("  command %d (%s): %d frames", cmd, cmd, count))
	}

	return nil
}

// openWriters opens every configured output. The returned close function is idempotent.
func (s *decoder) openWriters(rate dshot.Rate, input cli.Input) ([]frameWriter, func() error, error) {
	var (
		writers []frameWriter
		files   []io.Closer
		closed  bool
	)
	closeAll := func() error {
		if closed {
			return nil
		}
		closed = true
		var errs error
		for _, w := range writers {
			errs = errors.CombineErrors(errs, w.Close())
		}
		for _, f := range files {
			errs = errors.CombineErrors(errs, f.Close())
		}
		return errs
	}

	if s.text {
		writers = append(writers, output.NewTextWriter(input.Stdout))
	}
	if s.mcapFile != "" {
		f, err := os.Create(s.mcapFile)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to create MCAP file: %w", err)
		}
		files = append(files, f)
		w, err := mcap.NewWriter(f, rate)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to create MCAP writer: %w", err)
		}
		writers = append(writers, w)
	}
	if s.cborFile != "" {
		f, err := os.Create(s.cborFile)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to create CBOR file: %w", err)
		}
		files = append(files, f)
		w, err := output.NewCBORWriter(f)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to create CBOR writer: %w", err)
		}
		writers = append(writers, w)
	}

	return writers, closeAll, nil
}

// frameSource yields capture frames until io.EOF.
type frameSource interface {
	ReadNext() (*can.TimedFrame, error)
}
