// Command lattice-node is a single-process device-node simulator.
//
// It wires the full interaction stack over a demo device and exposes a
// readline REPL acting as a local controller: reads, writes, invokes
// and subscriptions run through the same dispatcher a network transport
// would use, including response chunking.
//
// Usage:
//
//	lattice-node [flags]
//
// Flags:
//
//	-buffer int     Response packet capacity in bytes (default 1024)
//	-acl string     ACL policy file (YAML); default grants admin to the REPL subject
//	-log string     Protocol event log file (CBOR)
//	-subject string REPL subject identity (default "admin")
//	-debug          Enable operational debug logging
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lattice-home/lattice-go/pkg/acl"
	"github.com/lattice-home/lattice-go/pkg/interaction"
	"github.com/lattice-home/lattice-go/pkg/log"
	"github.com/lattice-home/lattice-go/pkg/model"
	"github.com/lattice-home/lattice-go/pkg/subscription"
	"github.com/lattice-home/lattice-go/pkg/version"
)

type config struct {
	Buffer  int
	ACLFile string
	LogFile string
	Subject string
	Debug   bool
}

func main() {
	var cfg config
	flag.IntVar(&cfg.Buffer, "buffer", 1024, "Response packet capacity in bytes")
	flag.StringVar(&cfg.ACLFile, "acl", "", "ACL policy file (YAML)")
	flag.StringVar(&cfg.LogFile, "log", "", "Protocol event log file (CBOR)")
	flag.StringVar(&cfg.Subject, "subject", "admin", "REPL subject identity")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable operational debug logging")
	flag.Parse()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "lattice-node: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	device, err := buildDevice()
	if err != nil {
		return fmt.Errorf("failed to build device: %w", err)
	}

	aclm, err := buildACL(cfg)
	if err != nil {
		return err
	}

	opts := []interaction.Option{}
	if cfg.LogFile != "" {
		fl, err := log.NewFileLogger(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("failed to open event log: %w", err)
		}
		defer fl.Close()
		opts = append(opts, interaction.WithLogger(fl))
	}
	if cfg.Debug {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, interaction.WithDebugLogger(logger))
	}

	dm := interaction.New(model.NewNode(device), aclm, model.NewDeviceHandler(device), opts...)

	fmt.Printf("Lattice node simulator (protocol %s)\n", version.Current)
	fmt.Printf("device %s, packet capacity %d bytes, subject %q\n",
		device.DeviceID(), cfg.Buffer, cfg.Subject)

	repl, err := newREPL(cfg, dm, aclm, subscription.NewRegistry())
	if err != nil {
		return err
	}
	return repl.run()
}

// buildACL loads the policy file, or grants the REPL subject admin
// everywhere when none is given.
func buildACL(cfg config) (*acl.Manager, error) {
	m := acl.NewManager()

	if cfg.ACLFile == "" {
		if err := m.Add(acl.Entry{
			Subjects:  []string{cfg.Subject},
			Privilege: acl.PrivilegeAdmin,
		}); err != nil {
			return nil, err
		}
		return m, nil
	}

	entries, err := acl.LoadPolicy(cfg.ACLFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load ACL policy: %w", err)
	}
	for _, e := range entries {
		if err := m.Add(e); err != nil {
			return nil, fmt.Errorf("failed to apply ACL policy: %w", err)
		}
	}
	return m, nil
}
