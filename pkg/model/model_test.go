package model

import (
	"context"
	"errors"
	"testing"

	"github.com/lattice-home/lattice-go/pkg/acl"
	"github.com/lattice-home/lattice-go/pkg/wire"
)

func newTestCluster() *Cluster {
	c := NewCluster(6, "onoff", 1)
	c.AddAttribute(NewAttribute(&AttributeMetadata{
		ID:      0,
		Name:    "onOff",
		Type:    DataTypeBool,
		Access:  AccessReadWrite,
		Default: false,
	}))
	c.AddAttribute(NewAttribute(&AttributeMetadata{
		ID:       1,
		Name:     "level",
		Type:     DataTypeUint8,
		Access:   AccessReadWrite,
		MinValue: 0,
		MaxValue: 100,
		Default:  uint8(0),
	}))
	c.AddCommand(NewCommand(&CommandMetadata{
		ID:   1,
		Name: "toggle",
	}, func(ctx context.Context, params map[string]any) (map[string]any, error) {
		return map[string]any{"toggled": true}, nil
	}))
	return c
}

func TestDeviceHierarchy(t *testing.T) {
	d := NewDevice("dev-001", 0xFFF1, 0x0001)

	if d.RootEndpoint() == nil {
		t.Fatal("root endpoint missing")
	}
	if d.EndpointCount() != 1 {
		t.Fatalf("EndpointCount = %d, want 1", d.EndpointCount())
	}

	ep := NewEndpoint(1, "outlet")
	ep.AddCluster(newTestCluster())
	if err := d.AddEndpoint(ep); err != nil {
		t.Fatalf("AddEndpoint failed: %v", err)
	}
	if err := d.AddEndpoint(NewEndpoint(1, "dup")); !errors.Is(err, ErrDuplicateEndpoint) {
		t.Errorf("duplicate AddEndpoint error = %v, want ErrDuplicateEndpoint", err)
	}

	if _, err := d.GetEndpoint(9); !errors.Is(err, ErrEndpointNotFound) {
		t.Errorf("GetEndpoint(9) error = %v, want ErrEndpointNotFound", err)
	}
	if _, err := d.GetCluster(1, 99); !errors.Is(err, ErrClusterNotFound) {
		t.Errorf("GetCluster(1, 99) error = %v, want ErrClusterNotFound", err)
	}

	got := d.EndpointIDs()
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("EndpointIDs = %v, want [0 1]", got)
	}
}

func TestClusterReadWrite(t *testing.T) {
	d := NewDevice("dev-001", 0xFFF1, 0x0001)
	ep := NewEndpoint(1, "outlet")
	ep.AddCluster(newTestCluster())
	if err := d.AddEndpoint(ep); err != nil {
		t.Fatalf("AddEndpoint failed: %v", err)
	}

	if err := d.WriteAttribute(1, 6, 0, true); err != nil {
		t.Fatalf("WriteAttribute failed: %v", err)
	}
	v, err := d.ReadAttribute(1, 6, 0)
	if err != nil {
		t.Fatalf("ReadAttribute failed: %v", err)
	}
	if v != true {
		t.Errorf("value = %v, want true", v)
	}

	t.Run("range constraint", func(t *testing.T) {
		err := d.WriteAttribute(1, 6, 1, 150)
		if !errors.Is(err, ErrAttributeOutOfRange) {
			t.Errorf("error = %v, want ErrAttributeOutOfRange", err)
		}
	})

	t.Run("type constraint", func(t *testing.T) {
		err := d.WriteAttribute(1, 6, 0, "yes")
		if !errors.Is(err, ErrAttributeValueType) {
			t.Errorf("error = %v, want ErrAttributeValueType", err)
		}
	})

	t.Run("global attributes read-only", func(t *testing.T) {
		err := d.WriteAttribute(1, 6, AttrIDClusterRevision, uint16(9))
		if !errors.Is(err, ErrAttributeNotWritable) {
			t.Errorf("error = %v, want ErrAttributeNotWritable", err)
		}
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := d.ReadAttribute(1, 6, 42)
		if !errors.Is(err, ErrAttributeNotFound) {
			t.Errorf("error = %v, want ErrAttributeNotFound", err)
		}
	})
}

func TestClusterGlobalAttributes(t *testing.T) {
	c := newTestCluster()

	rev, err := c.ReadAttribute(AttrIDClusterRevision)
	if err != nil {
		t.Fatalf("clusterRevision read failed: %v", err)
	}
	if rev != uint16(1) {
		t.Errorf("clusterRevision = %v, want 1", rev)
	}

	list, err := c.ReadAttribute(AttrIDAttributeList)
	if err != nil {
		t.Fatalf("attributeList read failed: %v", err)
	}
	ids, ok := list.([]wire.AttributeID)
	if !ok {
		t.Fatalf("attributeList type = %T", list)
	}
	// 0, 1 plus the three globals
	if len(ids) != 5 {
		t.Errorf("attributeList = %v, want 5 entries", ids)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("attributeList not ascending: %v", ids)
		}
	}

	cmds, err := c.ReadAttribute(AttrIDCommandList)
	if err != nil {
		t.Fatalf("commandList read failed: %v", err)
	}
	if got := cmds.([]wire.CommandID); len(got) != 1 || got[0] != 1 {
		t.Errorf("commandList = %v, want [1]", got)
	}
}

func TestAttributeNullable(t *testing.T) {
	a := NewAttribute(&AttributeMetadata{ID: 5, Type: DataTypeUint32, Access: AccessReadWrite})
	if err := a.SetValue(nil); !errors.Is(err, ErrAttributeNotNullable) {
		t.Errorf("error = %v, want ErrAttributeNotNullable", err)
	}

	n := NewAttribute(&AttributeMetadata{ID: 6, Type: DataTypeUint32, Access: AccessReadWrite, Nullable: true})
	if err := n.SetValue(nil); err != nil {
		t.Errorf("nullable attribute rejected null: %v", err)
	}
}

func TestCommandInvoke(t *testing.T) {
	c := newTestCluster()

	result, err := c.InvokeCommand(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("InvokeCommand failed: %v", err)
	}
	if result["toggled"] != true {
		t.Errorf("result = %v", result)
	}

	if _, err := c.InvokeCommand(context.Background(), 9, nil); !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("error = %v, want ErrCommandNotFound", err)
	}

	t.Run("required parameter", func(t *testing.T) {
		c.AddCommand(NewCommand(&CommandMetadata{
			ID:         2,
			Name:       "setLevel",
			Parameters: []ParameterMetadata{{Name: "level", Type: DataTypeUint8, Required: true}},
		}, func(ctx context.Context, params map[string]any) (map[string]any, error) {
			return nil, nil
		}))

		if _, err := c.InvokeCommand(context.Background(), 2, nil); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("error = %v, want ErrInvalidParameters", err)
		}
		if _, err := c.InvokeCommand(context.Background(), 2, map[string]any{"level": 5}); err != nil {
			t.Errorf("invoke with parameter failed: %v", err)
		}
	})
}

type recordingObserver struct {
	changes []wire.AttributeID
}

func (r *recordingObserver) OnAttributeChanged(cl wire.ClusterID, attr wire.AttributeID, value any) {
	r.changes = append(r.changes, attr)
}

func TestClusterObserver(t *testing.T) {
	c := newTestCluster()
	obs := &recordingObserver{}
	c.Observe(obs)

	if err := c.WriteAttribute(0, true); err != nil {
		t.Fatalf("WriteAttribute failed: %v", err)
	}
	if err := c.SetAttributeInternal(1, uint8(7)); err != nil {
		t.Fatalf("SetAttributeInternal failed: %v", err)
	}
	if len(obs.changes) != 2 || obs.changes[0] != 0 || obs.changes[1] != 1 {
		t.Errorf("changes = %v, want [0 1]", obs.changes)
	}

	c.Unobserve(obs)
	if err := c.WriteAttribute(0, false); err != nil {
		t.Fatalf("WriteAttribute failed: %v", err)
	}
	if len(obs.changes) != 2 {
		t.Errorf("observer notified after Unobserve")
	}
}

func TestDeviceHandler(t *testing.T) {
	d := NewDevice("dev-001", 0xFFF1, 0x0001)
	ep := NewEndpoint(1, "outlet")
	ep.AddCluster(newTestCluster())
	if err := d.AddEndpoint(ep); err != nil {
		t.Fatalf("AddEndpoint failed: %v", err)
	}

	m := acl.NewManager()
	if err := m.Add(acl.Entry{Privilege: acl.PrivilegeView}); err != nil {
		t.Fatalf("acl Add failed: %v", err)
	}

	h := NewDeviceHandler(d)
	attr := &AttrDetails{Path: wire.ConcreteAttrPath(1, 6, 0)}

	if err := h.Write(attr, nil, true); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	v, err := h.Read(attr, nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if v != true {
		t.Errorf("value = %v, want true", v)
	}

	cmd := &CmdDetails{Path: wire.ConcreteCmdPath(1, 6, 1)}
	result, err := h.Invoke(cmd, nil, nil)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if result.(map[string]any)["toggled"] != true {
		t.Errorf("result = %v", result)
	}

	t.Run("cbor argument map", func(t *testing.T) {
		if _, err := h.Invoke(cmd, nil, map[any]any{"k": 1}); err != nil {
			t.Errorf("map[any]any args rejected: %v", err)
		}
		if _, err := h.Invoke(cmd, nil, "not-a-map"); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("error = %v, want ErrInvalidParameters", err)
		}
	})
}

func TestAsyncDeviceHandlerContext(t *testing.T) {
	d := NewDevice("dev-001", 0xFFF1, 0x0001)
	ep := NewEndpoint(1, "outlet")
	ep.AddCluster(newTestCluster())
	if err := d.AddEndpoint(ep); err != nil {
		t.Fatalf("AddEndpoint failed: %v", err)
	}

	h := NewAsyncDeviceHandler(d)
	attr := &AttrDetails{Path: wire.ConcreteAttrPath(1, 6, 0)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := h.Read(ctx, attr, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}

	if _, err := h.Read(context.Background(), attr, nil); err != nil {
		t.Errorf("Read failed: %v", err)
	}
}
