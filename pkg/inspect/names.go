package inspect

import (
	"strings"

	"github.com/lattice-home/lattice-go/pkg/model"
	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Name tables for resolving human-readable names to IDs, covering the
// demo cluster set plus the global attributes. Numeric segments always
// work; names are a REPL convenience.
var (
	clusterNames = map[string]uint64{
		"deviceinfo": 40,
		"onoff":      6,
	}

	globalAttributeNames = map[string]uint64{
		"commandlist":     uint64(model.AttrIDCommandList),
		"attributelist":   uint64(model.AttrIDAttributeList),
		"clusterrevision": uint64(model.AttrIDClusterRevision),
	}

	attributeNames = map[wire.ClusterID]map[string]uint64{
		40: {
			"vendorname":   0,
			"productname":  1,
			"serialnumber": 2,
		},
		6: {
			"onoff": 0,
			"level": 1,
		},
	}

	commandNames = map[wire.ClusterID]map[string]uint64{
		6: {
			"toggle":   1,
			"setlevel": 2,
		},
	}
)

// resolveName resolves a name against a table, case-insensitively.
func resolveName(names map[string]uint64, s string) (uint64, bool) {
	id, ok := names[strings.ToLower(s)]
	return id, ok
}

// attributeNameTable returns the attribute names of one cluster,
// globals included.
func attributeNameTable(cl wire.ClusterID) map[string]uint64 {
	table := make(map[string]uint64, len(globalAttributeNames)+len(attributeNames[cl]))
	for name, id := range globalAttributeNames {
		table[name] = id
	}
	for name, id := range attributeNames[cl] {
		table[name] = id
	}
	return table
}

// commandNameTable returns the command names of one cluster.
func commandNameTable(cl wire.ClusterID) map[string]uint64 {
	return commandNames[cl]
}

// ClusterName returns the name for a cluster ID, empty when unknown.
func ClusterName(cl wire.ClusterID) string {
	for name, id := range clusterNames {
		if wire.ClusterID(id) == cl {
			return name
		}
	}
	return ""
}

// AttributeName returns the name for an attribute ID within a cluster,
// empty when unknown.
func AttributeName(cl wire.ClusterID, attr wire.AttributeID) string {
	for name, id := range attributeNameTable(cl) {
		if wire.AttributeID(id) == attr {
			return name
		}
	}
	return ""
}

// CommandName returns the name for a command ID within a cluster,
// empty when unknown.
func CommandName(cl wire.ClusterID, cmd wire.CommandID) string {
	for name, id := range commandNames[cl] {
		if wire.CommandID(id) == cmd {
			return name
		}
	}
	return ""
}
