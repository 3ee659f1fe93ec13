package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestPayloadWriterAppend(t *testing.T) {
	pkt := NewPacket(1024)
	w, err := pkt.Writer()
	if err != nil {
		t.Fatalf("Writer failed: %v", err)
	}

	if err := w.WriteElement(NewAttrReport(ConcreteAttrPath(1, 6, 0), uint32(1))); err != nil {
		t.Fatalf("WriteElement failed: %v", err)
	}
	first := w.Len()
	if first == 0 {
		t.Fatalf("nothing written")
	}

	if err := w.WriteElement(NewAttrReport(ConcreteAttrPath(1, 6, 1), uint32(2))); err != nil {
		t.Fatalf("WriteElement failed: %v", err)
	}
	if w.Len() <= first {
		t.Errorf("second element not appended: len %d", w.Len())
	}
	if w.Free() != w.Cap()-w.Len() {
		t.Errorf("Free() = %d, want %d", w.Free(), w.Cap()-w.Len())
	}
}

func TestPayloadWriterNoSpace(t *testing.T) {
	report := NewAttrReport(ConcreteAttrPath(1, 6, 0), uint32(12345))
	encoded, err := Marshal(report)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// Room for exactly one element
	pkt := NewPacket(len(encoded))
	w, err := pkt.Writer()
	if err != nil {
		t.Fatalf("Writer failed: %v", err)
	}
	if err := w.WriteElement(report); err != nil {
		t.Fatalf("WriteElement failed: %v", err)
	}

	before := append([]byte(nil), w.Bytes()...)
	err = w.WriteElement(NewAttrReport(ConcreteAttrPath(1, 6, 1), uint32(12345)))
	if !errors.Is(err, ErrNoSpace) {
		t.Fatalf("WriteElement error = %v, want ErrNoSpace", err)
	}

	// Buffer must be untouched by the rejected element
	if !bytes.Equal(before, w.Bytes()) {
		t.Errorf("buffer modified by rejected element")
	}

	// Payload must still decode as a whole number of elements
	elements, err := DecodeElements(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeElements failed: %v", err)
	}
	if len(elements) != 1 {
		t.Errorf("got %d elements, want 1", len(elements))
	}
}

func TestPayloadWriterZeroCapacity(t *testing.T) {
	pkt := NewPacket(0)
	w, err := pkt.Writer()
	if err != nil {
		t.Fatalf("Writer failed: %v", err)
	}
	err = w.WriteElement(NewAttrStatus(ConcreteAttrPath(1, 6, 0), StatusSuccess))
	if !errors.Is(err, ErrNoSpace) {
		t.Errorf("WriteElement error = %v, want ErrNoSpace", err)
	}
	if w.Len() != 0 {
		t.Errorf("Len() = %d, want 0", w.Len())
	}
}

func TestPayloadWriterReset(t *testing.T) {
	pkt := NewPacket(256)
	w, _ := pkt.Writer()
	if err := w.WriteElement(NewSubscribeDone(1, 40)); err != nil {
		t.Fatalf("WriteElement failed: %v", err)
	}
	w.Reset()
	if w.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", w.Len())
	}
	if w.Cap() != 256 {
		t.Errorf("Cap() after Reset = %d, want 256", w.Cap())
	}
}

func TestPacketComplete(t *testing.T) {
	pkt := NewPacket(256)
	if pkt.Completed() {
		t.Fatalf("new packet should not be completed")
	}

	pkt.Complete(FlagMoreChunks)
	if !pkt.Completed() {
		t.Errorf("packet should be completed")
	}
	if !pkt.MoreChunks() {
		t.Errorf("MoreChunks should be set")
	}

	// Completing again must not clear the flags
	pkt.Complete(0)
	if !pkt.MoreChunks() {
		t.Errorf("second Complete changed flags")
	}

	if _, err := pkt.Writer(); !errors.Is(err, ErrPacketCompleted) {
		t.Errorf("Writer after Complete = %v, want ErrPacketCompleted", err)
	}
}

func TestPacketNegativeCapacity(t *testing.T) {
	pkt := NewPacket(-5)
	w, err := pkt.Writer()
	if err != nil {
		t.Fatalf("Writer failed: %v", err)
	}
	if w.Cap() != 0 {
		t.Errorf("Cap() = %d, want 0", w.Cap())
	}
}
