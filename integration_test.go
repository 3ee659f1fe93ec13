package lattice_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/lattice-home/lattice-go/pkg/acl"
	"github.com/lattice-home/lattice-go/pkg/interaction"
	"github.com/lattice-home/lattice-go/pkg/model"
	"github.com/lattice-home/lattice-go/pkg/subscription"
	"github.com/lattice-home/lattice-go/pkg/wire"
)

type session struct {
	subject string
}

func (s *session) SubjectID() string { return s.subject }

// buildNode assembles a device close to the simulator's demo layout: a
// device-info cluster on the root endpoint and two outlets.
func buildNode(t *testing.T) (*model.Device, *acl.Manager) {
	t.Helper()

	device := model.NewDevice("it-node-001", 0xFFF1, 0x0001)

	info := model.NewCluster(40, "deviceinfo", 1)
	info.AddAttribute(model.NewAttribute(&model.AttributeMetadata{
		ID:      0,
		Name:    "vendorName",
		Type:    model.DataTypeString,
		Access:  model.AccessReadOnly,
		Default: "Lattice Home",
	}))
	device.RootEndpoint().AddCluster(info)

	for _, id := range []wire.EndpointID{1, 2} {
		outlet := model.NewEndpoint(id, "outlet")
		onoff := model.NewCluster(6, "onoff", 1)
		onoff.AddAttribute(model.NewAttribute(&model.AttributeMetadata{
			ID:      0,
			Name:    "onOff",
			Type:    model.DataTypeBool,
			Access:  model.AccessReadWrite,
			Default: false,
		}))
		onoff.AddAttribute(model.NewAttribute(&model.AttributeMetadata{
			ID:       1,
			Name:     "level",
			Type:     model.DataTypeUint8,
			Access:   model.AccessReadWrite,
			MinValue: 0,
			MaxValue: 100,
			Default:  uint8(0),
		}))
		onoff.AddCommand(model.NewCommand(&model.CommandMetadata{
			ID:   1,
			Name: "toggle",
		}, func(ctx context.Context, params map[string]any) (map[string]any, error) {
			return map[string]any{"toggled": true}, nil
		}))
		outlet.AddCluster(onoff)
		if err := device.AddEndpoint(outlet); err != nil {
			t.Fatalf("AddEndpoint failed: %v", err)
		}
	}

	policy := []byte(`
entries:
  - subjects: ["ctrl-1"]
    privilege: operate
  - subjects: ["viewer"]
    privilege: view
    targets:
      - endpoint: 1
`)
	entries, err := acl.ParsePolicy(policy)
	if err != nil {
		t.Fatalf("ParsePolicy failed: %v", err)
	}
	m := acl.NewManager()
	for _, e := range entries {
		if err := m.Add(e); err != nil {
			t.Fatalf("acl Add failed: %v", err)
		}
	}
	return device, m
}

// exchange plays the transport role for one logical interaction: it
// dispatches, replays resumed interactions, and collects every chunk.
func exchange(t *testing.T, dm *interaction.DataModel, sess acl.Session, i interaction.Interaction, capacity int) []*wire.Packet {
	t.Helper()

	txn := interaction.NewTransaction(sess)
	var packets []*wire.Packet
	for {
		pkt := wire.NewPacket(capacity)
		completed, err := dm.Handle(i, pkt, txn)
		if err != nil {
			t.Fatalf("Handle(%s) failed: %v", i.Kind(), err)
		}
		packets = append(packets, pkt)
		if completed {
			return packets
		}
		if i = txn.Resume(); i == nil {
			t.Fatal("incomplete exchange without resume interaction")
		}
		if len(packets) > 128 {
			t.Fatal("dispatch loop does not terminate")
		}
	}
}

func decodeAll(t *testing.T, packets []*wire.Packet) []wire.Element {
	t.Helper()

	var elements []wire.Element
	for _, pkt := range packets {
		decoded, err := wire.DecodeElements(pkt.Payload())
		if err != nil {
			t.Fatalf("DecodeElements failed: %v", err)
		}
		elements = append(elements, decoded...)
	}
	return elements
}

func TestChunkedReadEndToEnd(t *testing.T) {
	device, aclm := buildNode(t)
	dm := interaction.New(model.NewNode(device), aclm, model.NewDeviceHandler(device))
	sess := &session{subject: "ctrl-1"}

	req := &interaction.ReadRequest{AttrPaths: []wire.AttrPath{{}}}

	whole := exchange(t, dm, sess, req, 1<<16)
	if len(whole) != 1 {
		t.Fatalf("unbounded read took %d packets", len(whole))
	}

	chunked := exchange(t, dm, sess, req, 64)
	if len(chunked) < 2 {
		t.Fatalf("capacity 64 produced %d packets", len(chunked))
	}

	var joined bytes.Buffer
	for _, pkt := range chunked {
		joined.Write(pkt.Payload())
	}
	if !bytes.Equal(joined.Bytes(), whole[0].Payload()) {
		t.Fatal("chunked response differs from unbounded response")
	}

	// Root endpoint: vendorName + 3 globals; each outlet: onOff, level
	// + 3 globals.
	elements := decodeAll(t, chunked)
	if len(elements) != 14 {
		t.Fatalf("got %d elements, want 14", len(elements))
	}
}

func TestScopedViewerSeesOnlyItsEndpoint(t *testing.T) {
	device, aclm := buildNode(t)
	dm := interaction.New(model.NewNode(device), aclm, model.NewDeviceHandler(device))

	packets := exchange(t, dm, &session{subject: "viewer"}, &interaction.ReadRequest{
		AttrPaths: []wire.AttrPath{{}},
	}, 1<<16)

	elements := decodeAll(t, packets)
	if len(elements) == 0 {
		t.Fatal("viewer saw nothing")
	}
	for _, e := range elements {
		report := e.(wire.AttrReport)
		if *report.Path.Endpoint != 1 {
			t.Errorf("viewer saw endpoint %d attribute %s", *report.Path.Endpoint, report.Path)
		}
	}
}

func TestSubscribeEstablishmentEndToEnd(t *testing.T) {
	device, aclm := buildNode(t)
	dm := interaction.New(model.NewNode(device), aclm, model.NewDeviceHandler(device))
	registry := subscription.NewRegistry()
	sess := &session{subject: "ctrl-1"}

	paths := []wire.AttrPath{{}}
	req := &interaction.SubscribeRequest{AttrPaths: paths, MinInterval: 1, MaxInterval: 30}

	packets := exchange(t, dm, sess, req, 64)
	elements := decodeAll(t, packets)
	if len(elements) < 2 {
		t.Fatalf("got %d elements", len(elements))
	}

	for _, e := range elements[:len(elements)-1] {
		if _, ok := e.(wire.SubscribeDone); ok {
			t.Fatal("establishment element before end of priming")
		}
	}
	done, ok := elements[len(elements)-1].(wire.SubscribeDone)
	if !ok {
		t.Fatalf("last element is %T, want SubscribeDone", elements[len(elements)-1])
	}
	if done.MaxInterval != 30 {
		t.Errorf("max interval = %d, want 30", done.MaxInterval)
	}

	if err := registry.Add(&subscription.Subscription{
		ID:          done.SubscriptionID,
		Subject:     sess.subject,
		Paths:       paths,
		MaxInterval: done.MaxInterval,
	}); err != nil {
		t.Fatalf("registry Add failed: %v", err)
	}

	matching := registry.Matching(1, 6, 0)
	if len(matching) != 1 || matching[0].ID != done.SubscriptionID {
		t.Fatalf("Matching = %v", matching)
	}

	t.Run("write then invoke on the live model", func(t *testing.T) {
		writePackets := exchange(t, dm, sess, &interaction.WriteRequest{
			Writes: []wire.AttrData{{Path: wire.ConcreteAttrPath(1, 6, 0), Value: true}},
		}, 1<<16)
		status := decodeAll(t, writePackets)[0].(wire.AttrStatus)
		if status.Status != wire.StatusSuccess {
			t.Fatalf("write status = %v", status.Status)
		}

		invokePackets := exchange(t, dm, sess, &interaction.InvokeRequest{
			Invokes: []wire.CmdData{{Path: wire.ConcreteCmdPath(1, 6, 1)}},
		}, 1<<16)
		report := decodeAll(t, invokePackets)[0].(wire.CmdReport)
		if report.Status != wire.StatusSuccess {
			t.Fatalf("invoke status = %v", report.Status)
		}
	})
}
