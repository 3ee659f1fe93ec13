// Package inspect provides path expression parsing and output
// formatting for interactive tooling.
//
// The inspect package offers a unified interface for:
//   - Parsing path expressions (e.g., "1/6/0", "1/onoff/level", "*")
//   - Resolving names to numeric IDs
//   - Formatting decoded report elements for display
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Path errors.
var (
	ErrEmptyPath     = errors.New("empty path")
	ErrInvalidPath   = errors.New("invalid path format")
	ErrInvalidNumber = errors.New("invalid numeric value in path")
)

// ParseAttrPath parses an attribute path expression.
//
// Supported formats:
//   - "endpoint/cluster/attribute" - fully concrete
//   - "*" - everything
//   - "1/*/*", "*/6/0", "1/6/*" - per-segment wildcards
//   - "1/6" - trailing segments default to wildcard
//
// Numeric segments can be decimal or hex (0x prefix). Cluster and
// attribute segments also accept the names from the name tables.
func ParseAttrPath(input string) (wire.AttrPath, error) {
	parts, err := splitPath(input)
	if err != nil {
		return wire.AttrPath{}, err
	}
	if len(parts) > 3 {
		return wire.AttrPath{}, fmt.Errorf("%w: too many segments in %q", ErrInvalidPath, input)
	}

	var p wire.AttrPath

	if len(parts) >= 1 {
		ep, ok, err := parseSegment(parts[0], 8, nil)
		if err != nil {
			return wire.AttrPath{}, fmt.Errorf("endpoint: %w", err)
		}
		if ok {
			id := wire.EndpointID(ep)
			p.Endpoint = &id
		}
	}

	var cluster *wire.ClusterID
	if len(parts) >= 2 {
		cl, ok, err := parseSegment(parts[1], 8, clusterNames)
		if err != nil {
			return wire.AttrPath{}, fmt.Errorf("cluster: %w", err)
		}
		if ok {
			id := wire.ClusterID(cl)
			p.Cluster = &id
			cluster = &id
		}
	}

	if len(parts) == 3 {
		var names map[string]uint64
		if cluster != nil {
			names = attributeNameTable(*cluster)
		}
		attr, ok, err := parseSegment(parts[2], 16, names)
		if err != nil {
			return wire.AttrPath{}, fmt.Errorf("attribute: %w", err)
		}
		if ok {
			id := wire.AttributeID(attr)
			p.Attribute = &id
		}
	}

	return p, nil
}

// ParseCmdPath parses a command path expression of the form
// "endpoint/cluster/cmd/command". Command paths must be concrete.
func ParseCmdPath(input string) (wire.CmdPath, error) {
	parts, err := splitPath(input)
	if err != nil {
		return wire.CmdPath{}, err
	}
	if len(parts) != 4 || parts[2] != "cmd" {
		return wire.CmdPath{}, fmt.Errorf("%w: want endpoint/cluster/cmd/command, got %q", ErrInvalidPath, input)
	}

	ep, ok, err := parseSegment(parts[0], 8, nil)
	if err != nil || !ok {
		return wire.CmdPath{}, fmt.Errorf("endpoint: %w", orWildcardErr(err))
	}
	cl, ok, err := parseSegment(parts[1], 8, clusterNames)
	if err != nil || !ok {
		return wire.CmdPath{}, fmt.Errorf("cluster: %w", orWildcardErr(err))
	}
	cmd, ok, err := parseSegment(parts[3], 8, commandNameTable(wire.ClusterID(cl)))
	if err != nil || !ok {
		return wire.CmdPath{}, fmt.Errorf("command: %w", orWildcardErr(err))
	}

	return wire.ConcreteCmdPath(wire.EndpointID(ep), wire.ClusterID(cl), wire.CommandID(cmd)), nil
}

// IsCmdPath reports whether the expression uses the command form.
func IsCmdPath(input string) bool {
	parts := strings.Split(strings.TrimSpace(input), "/")
	return len(parts) == 4 && parts[2] == "cmd"
}

func splitPath(input string) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}
	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, input)
	}
	return strings.Split(input, "/"), nil
}

// parseSegment parses one path segment. The second result is false for
// a wildcard segment.
func parseSegment(s string, bits int, names map[string]uint64) (uint64, bool, error) {
	if s == "*" {
		return 0, false, nil
	}

	var v uint64
	var err error
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, bits)
	} else {
		v, err = strconv.ParseUint(s, 10, bits)
	}
	if err == nil {
		return v, true, nil
	}

	if id, ok := resolveName(names, s); ok {
		return id, true, nil
	}
	return 0, false, fmt.Errorf("%w: %s", ErrInvalidNumber, s)
}

func orWildcardErr(err error) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: wildcard not allowed in command path", ErrInvalidPath)
}
