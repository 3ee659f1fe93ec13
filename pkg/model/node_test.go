package model

import (
	"testing"

	"github.com/lattice-home/lattice-go/pkg/acl"
	"github.com/lattice-home/lattice-go/pkg/wire"
)

type nodeSession struct {
	subject string
}

func (s *nodeSession) SubjectID() string { return s.subject }

// newTestNode builds a two-endpoint device and an accessor holding the
// given privilege everywhere.
func newTestNode(t *testing.T, p acl.Privilege) (*Node, *acl.Accessor) {
	t.Helper()

	d := NewDevice("dev-001", 0xFFF1, 0x0001)
	for _, id := range []wire.EndpointID{1, 2} {
		ep := NewEndpoint(id, "outlet")
		ep.AddCluster(newTestCluster())
		if err := d.AddEndpoint(ep); err != nil {
			t.Fatalf("AddEndpoint failed: %v", err)
		}
	}

	m := acl.NewManager()
	if p != 0 {
		if err := m.Add(acl.Entry{Subjects: []string{"ctrl-1"}, Privilege: p}); err != nil {
			t.Fatalf("acl Add failed: %v", err)
		}
	}
	acc, err := acl.ForSession(&nodeSession{subject: "ctrl-1"}, m)
	if err != nil {
		t.Fatalf("ForSession failed: %v", err)
	}

	return NewNode(d), acc
}

func collectAttrItems(t *testing.T, seq func(func(AttrItem, error) bool)) []AttrItem {
	t.Helper()
	var items []AttrItem
	for item, err := range seq {
		if err != nil {
			t.Fatalf("traversal error: %v", err)
		}
		items = append(items, item)
	}
	return items
}

func TestNodeReadWildcardOrder(t *testing.T) {
	node, acc := newTestNode(t, acl.PrivilegeView)

	items := collectAttrItems(t, node.Read([]wire.AttrPath{{}}, acc))

	// 2 endpoints x 1 cluster x 5 readable attributes
	if len(items) != 10 {
		t.Fatalf("got %d items, want 10", len(items))
	}

	// Strictly ascending (endpoint, cluster, attribute) order
	for i := 1; i < len(items); i++ {
		a, b := items[i-1].Details.Path, items[i].Details.Path
		if *a.Endpoint > *b.Endpoint {
			t.Fatalf("endpoint order violated at %d: %s before %s", i, a, b)
		}
		if *a.Endpoint == *b.Endpoint && *a.Attribute >= *b.Attribute {
			t.Fatalf("attribute order violated at %d: %s before %s", i, a, b)
		}
	}

	for _, item := range items {
		if item.Status != wire.StatusSuccess {
			t.Errorf("wildcard item %s has status %v", item.Details.Path, item.Status)
		}
		if !item.Details.Wildcard {
			t.Errorf("wildcard item %s not marked wildcard", item.Details.Path)
		}
	}
}

func TestNodeReadConcreteStatuses(t *testing.T) {
	node, acc := newTestNode(t, acl.PrivilegeView)

	tests := []struct {
		name string
		path wire.AttrPath
		want wire.Status
	}{
		{"ok", wire.ConcreteAttrPath(1, 6, 0), wire.StatusSuccess},
		{"bad endpoint", wire.ConcreteAttrPath(9, 6, 0), wire.StatusUnsupportedEndpoint},
		{"bad cluster", wire.ConcreteAttrPath(1, 9, 0), wire.StatusUnsupportedCluster},
		{"bad attribute", wire.ConcreteAttrPath(1, 6, 42), wire.StatusUnsupportedAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := collectAttrItems(t, node.Read([]wire.AttrPath{tt.path}, acc))
			if len(items) != 1 {
				t.Fatalf("got %d items, want 1", len(items))
			}
			if items[0].Status != tt.want {
				t.Errorf("status = %v, want %v", items[0].Status, tt.want)
			}
		})
	}
}

func TestNodeReadAccessControl(t *testing.T) {
	t.Run("wildcard skips denied silently", func(t *testing.T) {
		node, acc := newTestNode(t, 0) // no grants at all
		items := collectAttrItems(t, node.Read([]wire.AttrPath{{}}, acc))
		if len(items) != 0 {
			t.Errorf("denied wildcard read yielded %d items, want 0", len(items))
		}
	})

	t.Run("concrete yields NotAuthorized", func(t *testing.T) {
		node, acc := newTestNode(t, 0)
		items := collectAttrItems(t, node.Read([]wire.AttrPath{wire.ConcreteAttrPath(1, 6, 0)}, acc))
		if len(items) != 1 {
			t.Fatalf("got %d items, want 1", len(items))
		}
		if items[0].Status != wire.StatusNotAuthorized {
			t.Errorf("status = %v, want NOT_AUTHORIZED", items[0].Status)
		}
	})
}

func TestNodeResumeRead(t *testing.T) {
	node, acc := newTestNode(t, acl.PrivilegeView)
	filters := []wire.AttrPath{{}}

	all := collectAttrItems(t, node.Read(filters, acc))
	if len(all) < 3 {
		t.Fatalf("need at least 3 items, got %d", len(all))
	}

	// Resume from the third item: it must be re-yielded first.
	resume := all[2].Details.Path
	resumed := collectAttrItems(t, node.ResumeRead(filters, &resume, acc))

	if len(resumed) != len(all)-2 {
		t.Fatalf("resumed yields %d items, want %d", len(resumed), len(all)-2)
	}
	for i, item := range resumed {
		if !item.Details.Path.Equal(all[i+2].Details.Path) {
			t.Errorf("resumed item %d = %s, want %s", i, item.Details.Path, all[i+2].Details.Path)
		}
	}

	t.Run("nil resume path starts from beginning", func(t *testing.T) {
		fresh := collectAttrItems(t, node.ResumeRead(filters, nil, acc))
		if len(fresh) != len(all) {
			t.Errorf("got %d items, want %d", len(fresh), len(all))
		}
	})
}

func TestNodeSubscribingRead(t *testing.T) {
	node, acc := newTestNode(t, acl.PrivilegeView)

	// attributeList/commandList are AccessRead only (no subscribe);
	// subscribing reads must exclude them.
	items := collectAttrItems(t, node.SubscribingRead([]wire.AttrPath{{}}, acc))
	for _, item := range items {
		if *item.Details.Path.Attribute == AttrIDAttributeList || *item.Details.Path.Attribute == AttrIDCommandList {
			t.Errorf("non-subscribable attribute %s yielded", item.Details.Path)
		}
	}
	// 2 endpoints x (onOff, level, clusterRevision)
	if len(items) != 6 {
		t.Errorf("got %d items, want 6", len(items))
	}
}

func TestNodeWrite(t *testing.T) {
	node, acc := newTestNode(t, acl.PrivilegeOperate)

	writes := []wire.AttrData{
		{Path: wire.ConcreteAttrPath(1, 6, 0), Value: true},
		{Path: wire.ConcreteAttrPath(1, 6, AttrIDClusterRevision), Value: uint16(2)},
		{Path: wire.AttrPath{}, Value: 1},
		{Path: wire.ConcreteAttrPath(9, 6, 0), Value: true},
	}

	var items []AttrWriteItem
	for item, err := range node.Write(writes, acc) {
		if err != nil {
			t.Fatalf("traversal error: %v", err)
		}
		items = append(items, item)
	}

	if len(items) != 4 {
		t.Fatalf("got %d items, want 4", len(items))
	}
	want := []wire.Status{
		wire.StatusSuccess,
		wire.StatusUnsupportedWrite,
		wire.StatusInvalidParameter,
		wire.StatusUnsupportedEndpoint,
	}
	for i, w := range want {
		if items[i].Status != w {
			t.Errorf("item %d status = %v, want %v", i, items[i].Status, w)
		}
	}
	if items[0].Value != true {
		t.Errorf("item 0 value = %v, want true", items[0].Value)
	}

	t.Run("view privilege cannot write", func(t *testing.T) {
		nodeV, accV := newTestNode(t, acl.PrivilegeView)
		for item, err := range nodeV.Write(writes[:1], accV) {
			if err != nil {
				t.Fatalf("traversal error: %v", err)
			}
			if item.Status != wire.StatusNotAuthorized {
				t.Errorf("status = %v, want NOT_AUTHORIZED", item.Status)
			}
		}
	})
}

func TestNodeInvoke(t *testing.T) {
	node, acc := newTestNode(t, acl.PrivilegeOperate)

	invokes := []wire.CmdData{
		{Path: wire.ConcreteCmdPath(1, 6, 1)},
		{Path: wire.ConcreteCmdPath(1, 6, 9)},
		{Path: wire.CmdPath{}},
	}

	var items []CmdItem
	for item, err := range node.Invoke(invokes, acc) {
		if err != nil {
			t.Fatalf("traversal error: %v", err)
		}
		items = append(items, item)
	}

	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	want := []wire.Status{
		wire.StatusSuccess,
		wire.StatusUnsupportedCommand,
		wire.StatusInvalidParameter,
	}
	for i, w := range want {
		if items[i].Status != w {
			t.Errorf("item %d status = %v, want %v", i, items[i].Status, w)
		}
	}
}

func TestNodeNilAccessor(t *testing.T) {
	node, _ := newTestNode(t, acl.PrivilegeView)

	for _, err := range node.Read([]wire.AttrPath{{}}, nil) {
		if err == nil {
			t.Fatal("expected error for nil accessor")
		}
		return
	}
	t.Fatal("sequence yielded nothing")
}
