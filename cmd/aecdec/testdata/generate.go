//go:build ignore

// This script generates the coded fixtures for the aecdec tests.
// Run from cmd/aecdec with: go run testdata/generate.go
//
// Requirements: xz must be installed and available in PATH.
//
// Generated files:
//   testdata/ramp.rz     # samples 0-127, 8 bits, uncompressed blocks
//   testdata/ramp.rz.xz  # the same stream, xz wrapped with a CRC32 check

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/llehouerou/go-aec/internal/testenc"
)

func main() {
	if err := checkXZ(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Please install xz: https://tukaani.org/xz/\n")
		os.Exit(1)
	}

	samples := make([]uint32, 128)
	for i := range samples {
		samples[i] = uint32(i)
	}
	stream := testenc.Encode(samples, testenc.Options{
		BitsPerSample: 8,
		BlockSize:     8,
		RSI:           2,
		Force:         testenc.Uncompressed,
	})

	path := filepath.Join("testdata", "ramp.rz")
	if err := os.WriteFile(path, stream, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s (%d bytes)\n", path, len(stream))

	// xz only keeps the input with -k; the test reads both files.
	cmd := exec.Command("xz", "--check=crc32", "-k", "-f", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "xz failed: %v\n%s", err, out)
		os.Exit(1)
	}
	fmt.Printf("Generated %s.xz\n", path)
}

func checkXZ() error {
	cmd := exec.Command("xz", "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("xz not found: %w", err)
	}
	return nil
}
