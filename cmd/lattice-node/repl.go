package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"gopkg.in/yaml.v3"

	"github.com/lattice-home/lattice-go/pkg/acl"
	"github.com/lattice-home/lattice-go/pkg/inspect"
	"github.com/lattice-home/lattice-go/pkg/interaction"
	"github.com/lattice-home/lattice-go/pkg/subscription"
	"github.com/lattice-home/lattice-go/pkg/wire"
)

// replSession is the local controller identity the REPL dispatches as.
type replSession struct {
	subject string
}

func (s *replSession) SubjectID() string { return s.subject }

// repl drives the dispatcher interactively, playing both the
// controller and the transport: it feeds interactions in, loops the
// resumed interactions of partial responses, and prints each chunk's
// decoded elements.
type repl struct {
	cfg       config
	dm        *interaction.DataModel
	aclm      *acl.Manager
	registry  *subscription.Registry
	session   *replSession
	formatter *inspect.Formatter
	rl        *readline.Instance
}

func newREPL(cfg config, dm *interaction.DataModel, aclm *acl.Manager, registry *subscription.Registry) (*repl, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "node> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &repl{
		cfg:       cfg,
		dm:        dm,
		aclm:      aclm,
		registry:  registry,
		session:   &replSession{subject: cfg.Subject},
		formatter: inspect.NewFormatter(),
		rl:        rl,
	}, nil
}

func (r *repl) run() error {
	defer r.rl.Close()

	r.printHelp()

	for {
		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(r.rl.Stdout(), "Exiting...")
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			r.printHelp()

		case "read", "r":
			r.cmdRead(args)

		case "write", "w":
			r.cmdWrite(args)

		case "invoke", "i":
			r.cmdInvoke(args)

		case "subscribe", "sub":
			r.cmdSubscribe(args)

		case "subs":
			r.cmdSubs()

		case "acl":
			r.cmdACL()

		case "quit", "exit", "q":
			fmt.Fprintln(r.rl.Stdout(), "Exiting...")
			return nil

		default:
			fmt.Fprintf(r.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (r *repl) printHelp() {
	fmt.Fprintln(r.rl.Stdout(), `
Lattice Node Commands:
  read <path>...          - Read attributes (paths may use wildcards)
  write <path> <value>    - Write one attribute
  invoke <path> [args]    - Invoke a command (args as YAML/JSON map)
  subscribe <path>...     - Establish a subscription
  subs                    - List established subscriptions
  acl                     - Show access control entries
  help                    - Show this help
  quit                    - Exit

  Path Format:
    endpoint/cluster/attribute, e.g. 1/6/0 or 1/onoff/level
    "*" matches everything; commands use endpoint/cluster/cmd/id`)
}

// dispatch runs one interaction through as many exchanges as it needs,
// printing each chunk, and returns all decoded elements.
func (r *repl) dispatch(i interaction.Interaction) ([]wire.Element, error) {
	txn := interaction.NewTransaction(r.session)

	var all []wire.Element
	for chunk := 0; ; chunk++ {
		pkt := wire.NewPacket(r.cfg.Buffer)
		completed, err := r.dm.Handle(i, pkt, txn)
		if err != nil {
			return all, err
		}

		elements, err := wire.DecodeElements(pkt.Payload())
		if err != nil {
			return all, fmt.Errorf("failed to decode response: %w", err)
		}
		all = append(all, elements...)

		if len(elements) > 0 {
			if chunk > 0 || pkt.MoreChunks() {
				fmt.Fprintf(r.rl.Stdout(), "-- chunk %d (%d bytes) --\n", chunk+1, len(pkt.Payload()))
			}
			fmt.Fprintln(r.rl.Stdout(), r.formatter.FormatElements(elements))
		}

		if completed {
			return all, nil
		}
		i = txn.Resume()
		if i == nil {
			return all, errors.New("incomplete exchange without resume interaction")
		}
	}
}

func (r *repl) cmdRead(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(r.rl.Stdout(), "Usage: read <path>...")
		return
	}

	paths := make([]wire.AttrPath, 0, len(args))
	for _, arg := range args {
		p, err := inspect.ParseAttrPath(arg)
		if err != nil {
			fmt.Fprintf(r.rl.Stdout(), "Invalid path %q: %v\n", arg, err)
			return
		}
		paths = append(paths, p)
	}

	elements, err := r.dispatch(&interaction.ReadRequest{AttrPaths: paths})
	if err != nil {
		fmt.Fprintf(r.rl.Stdout(), "Read failed: %v\n", err)
		return
	}
	if len(elements) == 0 {
		fmt.Fprintln(r.rl.Stdout(), "No matching attributes")
	}
}

func (r *repl) cmdWrite(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.rl.Stdout(), "Usage: write <path> <value>")
		return
	}

	path, err := inspect.ParseAttrPath(args[0])
	if err != nil {
		fmt.Fprintf(r.rl.Stdout(), "Invalid path %q: %v\n", args[0], err)
		return
	}

	write := wire.AttrData{Path: path, Value: parseValue(args[1])}
	if _, err := r.dispatch(&interaction.WriteRequest{Writes: []wire.AttrData{write}}); err != nil {
		fmt.Fprintf(r.rl.Stdout(), "Write failed: %v\n", err)
	}
}

func (r *repl) cmdInvoke(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(r.rl.Stdout(), "Usage: invoke <path> [args]")
		return
	}

	path, err := inspect.ParseCmdPath(args[0])
	if err != nil {
		fmt.Fprintf(r.rl.Stdout(), "Invalid command path %q: %v\n", args[0], err)
		return
	}

	var cmdArgs any
	if len(args) > 1 {
		raw := strings.Join(args[1:], " ")
		var m map[string]any
		if err := yaml.Unmarshal([]byte(raw), &m); err != nil {
			fmt.Fprintf(r.rl.Stdout(), "Invalid arguments %q: %v\n", raw, err)
			return
		}
		cmdArgs = m
	}

	invoke := wire.CmdData{Path: path, Args: cmdArgs}
	if _, err := r.dispatch(&interaction.InvokeRequest{Invokes: []wire.CmdData{invoke}}); err != nil {
		fmt.Fprintf(r.rl.Stdout(), "Invoke failed: %v\n", err)
	}
}

func (r *repl) cmdSubscribe(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(r.rl.Stdout(), "Usage: subscribe <path>...")
		return
	}

	paths := make([]wire.AttrPath, 0, len(args))
	for _, arg := range args {
		p, err := inspect.ParseAttrPath(arg)
		if err != nil {
			fmt.Fprintf(r.rl.Stdout(), "Invalid path %q: %v\n", arg, err)
			return
		}
		paths = append(paths, p)
	}

	req := &interaction.SubscribeRequest{
		AttrPaths:   paths,
		MinInterval: 1,
		MaxInterval: interaction.DefaultSubscribeMaxInterval,
	}
	elements, err := r.dispatch(req)
	if err != nil {
		fmt.Fprintf(r.rl.Stdout(), "Subscribe failed: %v\n", err)
		return
	}

	for _, e := range elements {
		done, ok := e.(wire.SubscribeDone)
		if !ok {
			continue
		}
		sub := &subscription.Subscription{
			ID:            done.SubscriptionID,
			Subject:       r.session.subject,
			Paths:         paths,
			MaxInterval:   done.MaxInterval,
			EstablishedAt: time.Now(),
		}
		if err := r.registry.Add(sub); err != nil {
			fmt.Fprintf(r.rl.Stdout(), "Failed to register subscription: %v\n", err)
		}
	}
}

func (r *repl) cmdSubs() {
	subs := r.registry.BySubject(r.session.subject)
	if len(subs) == 0 {
		fmt.Fprintln(r.rl.Stdout(), "No subscriptions")
		return
	}
	for _, sub := range subs {
		paths := make([]string, len(sub.Paths))
		for i, p := range sub.Paths {
			paths[i] = p.String()
		}
		fmt.Fprintf(r.rl.Stdout(), "  %d: %s (max interval %ds, established %s)\n",
			sub.ID, strings.Join(paths, " "), sub.MaxInterval,
			sub.EstablishedAt.Format(time.TimeOnly))
	}
}

func (r *repl) cmdACL() {
	entries := r.aclm.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(r.rl.Stdout(), "No ACL entries")
		return
	}
	for i, e := range entries {
		subjects := "*"
		if len(e.Subjects) > 0 {
			subjects = strings.Join(e.Subjects, ",")
		}
		targets := "*"
		if len(e.Targets) > 0 {
			parts := make([]string, len(e.Targets))
			for j, t := range e.Targets {
				parts[j] = formatTarget(t)
			}
			targets = strings.Join(parts, " ")
		}
		fmt.Fprintf(r.rl.Stdout(), "  %d: %s -> %s @ %s\n", i, subjects, e.Privilege, targets)
	}
}

func formatTarget(t acl.Target) string {
	ep, cl := "*", "*"
	if t.Endpoint != nil {
		ep = strconv.Itoa(int(*t.Endpoint))
	}
	if t.Cluster != nil {
		cl = strconv.Itoa(int(*t.Cluster))
	}
	return ep + "/" + cl
}

// parseValue interprets a REPL value literal: bool, integer, float,
// null, or a (possibly quoted) string.
func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null", "nil":
		return nil
	}
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return strings.Trim(s, `"`)
}
