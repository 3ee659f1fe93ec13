package inspect

import (
	"strings"
	"testing"

	"github.com/lattice-home/lattice-go/pkg/wire"
)

func TestFormatElement(t *testing.T) {
	f := NewFormatter()

	tests := []struct {
		name string
		elem wire.Element
		want string
	}{
		{
			"value report with name",
			wire.NewAttrReport(wire.ConcreteAttrPath(1, 6, 0), true),
			"1/6/0 (onoff) = true",
		},
		{
			"status report",
			wire.NewAttrReportStatus(wire.ConcreteAttrPath(1, 6, 42), wire.StatusUnsupportedAttribute),
			"1/6/42: UNSUPPORTED_ATTRIBUTE",
		},
		{
			"write outcome",
			wire.NewAttrStatus(wire.ConcreteAttrPath(1, 6, 0), wire.StatusSuccess),
			"write 1/6/0 (onoff): SUCCESS",
		},
		{
			"command report without data",
			wire.NewCmdReport(wire.ConcreteCmdPath(1, 6, 1), nil),
			"invoke 1/6/1 (toggle): SUCCESS",
		},
		{
			"command failure",
			wire.NewCmdReportStatus(wire.ConcreteCmdPath(1, 6, 9), wire.StatusUnsupportedCommand),
			"invoke 1/6/9: UNSUPPORTED_COMMAND",
		},
		{
			"subscription establishment",
			wire.NewSubscribeDone(7, 40),
			"subscription 7 established (max interval 40s)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatElement(tt.elem); got != tt.want {
				t.Errorf("FormatElement = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("command data is rendered sorted", func(t *testing.T) {
		elem := wire.NewCmdReport(wire.ConcreteCmdPath(1, 6, 1), map[any]any{
			"toggled": true,
			"level":   uint8(5),
		})
		got := f.FormatElement(elem)
		if !strings.HasSuffix(got, "{level: 5, toggled: true}") {
			t.Errorf("FormatElement = %q", got)
		}
	})
}

func TestFormatValue(t *testing.T) {
	f := NewFormatter()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"null", nil, "null"},
		{"false", false, "false"},
		{"string", "outlet", `"outlet"`},
		{"bytes", []byte{0xDE, 0xAD}, "0xdead"},
		{"array", []any{uint64(1), uint64(2)}, "[1, 2]"},
		{"number", uint16(100), "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatValue(tt.value); got != tt.want {
				t.Errorf("FormatValue = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNameLookups(t *testing.T) {
	if got := ClusterName(6); got != "onoff" {
		t.Errorf("ClusterName(6) = %q", got)
	}
	if got := ClusterName(99); got != "" {
		t.Errorf("ClusterName(99) = %q, want empty", got)
	}
	if got := AttributeName(6, 1); got != "level" {
		t.Errorf("AttributeName(6, 1) = %q", got)
	}
	if got := AttributeName(6, 0xFFFD); got != "clusterrevision" {
		t.Errorf("AttributeName(6, 0xFFFD) = %q", got)
	}
	if got := CommandName(6, 1); got != "toggle" {
		t.Errorf("CommandName(6, 1) = %q", got)
	}
}
