// Package main provides the entry point for rvcsr, a command-line
// inspector for the RISC-V privileged register model. It builds a
// hart from a platform configuration, optionally applies a sequence of
// CSR writes through the legalize-then-commit path, and prints the
// resulting register state.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nwf/sail-riscv/csr"
	"github.com/nwf/sail-riscv/platform"
)

var (
	xlen       = flag.Int("xlen", 64, "Register width (32 or 64)")
	configPath = flag.String("config", "", "Path to a platform capability file (YAML or JSON)")
	hartID     = flag.Uint64("hartid", 0, "Value mhartid reads as")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	cfg := platform.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = platform.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	var width csr.XLen
	switch *xlen {
	case 32:
		width = csr.XLen32
	case 64:
		width = csr.XLen64
	default:
		fmt.Fprintf(os.Stderr, "Unsupported -xlen %d (want 32 or 64)\n", *xlen)
		os.Exit(1)
	}

	hart := csr.NewHart(width, platform.New(cfg), csr.WithHartID(*hartID))

	if *verbose {
		fmt.Printf("Hart: RV%d, writable misa: %v, rvc: %v, fd: %v\n",
			*xlen, cfg.WritableMisa, cfg.RVC, cfg.FD)
	}

	for _, arg := range flag.Args() {
		name, value, err := parseAssignment(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := hart.WriteCSR(name, value); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", name, err)
			os.Exit(1)
		}
		if *verbose {
			committed, _ := hart.ReadCSR(name)
			fmt.Printf("write %s <- %#x, committed %#x\n", name, value, committed)
		}
	}

	dumpState(hart)
}

// parseAssignment splits a name=value argument. Values accept the
// usual Go integer literal prefixes (0x, 0b, 0o) and decimal.
func parseAssignment(arg string) (string, uint64, error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok {
		return "", 0, fmt.Errorf("malformed argument %q (want name=value)", arg)
	}
	v, err := strconv.ParseUint(value, 0, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed value in %q: %w", arg, err)
	}
	return name, v, nil
}

// dumpState prints every named register and view.
func dumpState(hart *csr.Hart) {
	names := []string{
		"misa", "mstatus", "mip", "mie", "mideleg", "medeleg",
		"mtvec", "stvec", "mcause", "scause", "mepc", "sepc",
		"mtval", "stval", "mscratch", "sscratch",
		"mcounteren", "scounteren", "mcountinhibit", "satp",
		"mcycle", "mtime", "minstret",
		"mvendorid", "mimpid", "marchid", "mhartid", "tselect",
		"sstatus", "sip", "sie", "sideleg", "sedeleg",
	}

	fmt.Printf("privilege: %v\n", hart.Privilege())
	for _, name := range names {
		v, err := hart.ReadCSR(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("%-14s %#018x\n", name, v)
	}
}
