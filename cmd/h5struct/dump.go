package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	dumpOffset int64
	dumpLength int
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().Int64Var(&dumpOffset, "offset", 0, "Offset in file to start dumping from")
	cmd.Flags().IntVar(&dumpLength, "length", 128, "Number of bytes to dump")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Hex dump raw bytes of a file",
		Long: `The dump command prints raw bytes of a file as hex with an ASCII
column, for looking at superblocks and object headers directly.

Example:
  h5struct dump recording.h5
  h5struct dump recording.h5 --offset 0x60 --length 64`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
}

func runDump(args []string) error {
	name := args[0]
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}
	size := stat.Size()

	if dumpOffset < 0 || dumpOffset >= size {
		return fmt.Errorf("invalid offset %d (file size %d)", dumpOffset, size)
	}
	if dumpLength < 1 {
		return fmt.Errorf("invalid length %d", dumpLength)
	}

	n := min(int64(dumpLength), size-dumpOffset)
	if n < int64(dumpLength) {
		logger.Warn().Int("requested", dumpLength).Int64("available", n).Msg("length truncated at end of file")
	}

	buf := make([]byte, n)
	read, err := f.ReadAt(buf, dumpOffset)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read %s: %w", name, err)
	}

	printInfo("Dumping %d bytes at offset 0x%x (%d) of %s (size: %d bytes):\n",
		read, dumpOffset, dumpOffset, name, size)
	printInfo("%s", hexDump(buf[:read], dumpOffset))
	return nil
}

// hexDump formats data 16 bytes per line, addressed from base.
func hexDump(data []byte, base int64) string {
	var sb strings.Builder
	for i := 0; i < len(data); i += 16 {
		chunk := data[i:min(i+16, len(data))]

		fmt.Fprintf(&sb, "%08x: ", base+int64(i))
		for j := range 16 {
			if j < len(chunk) {
				fmt.Fprintf(&sb, "%02x ", chunk[j])
			} else {
				sb.WriteString("   ")
			}
			if j == 7 {
				sb.WriteByte(' ')
			}
		}

		sb.WriteString(" |")
		for _, b := range chunk {
			if b >= 32 && b <= 126 {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}
