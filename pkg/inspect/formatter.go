package inspect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Formatter formats decoded report elements for display.
type Formatter struct {
	// ShowNames annotates paths with cluster/attribute names when known.
	ShowNames bool
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{ShowNames: true}
}

// FormatElements formats a sequence of elements, one line each.
func (f *Formatter) FormatElements(elements []wire.Element) string {
	lines := make([]string, 0, len(elements))
	for _, e := range elements {
		lines = append(lines, f.FormatElement(e))
	}
	return strings.Join(lines, "\n")
}

// FormatElement formats one report element.
func (f *Formatter) FormatElement(e wire.Element) string {
	switch elem := e.(type) {
	case wire.AttrReport:
		path := f.attrPathLabel(elem.Path)
		if elem.Status != wire.StatusSuccess {
			return fmt.Sprintf("%s: %s", path, elem.Status)
		}
		return fmt.Sprintf("%s = %s", path, f.FormatValue(elem.Value))

	case wire.AttrStatus:
		return fmt.Sprintf("write %s: %s", f.attrPathLabel(elem.Path), elem.Status)

	case wire.CmdReport:
		path := f.cmdPathLabel(elem.Path)
		if elem.Status != wire.StatusSuccess {
			return fmt.Sprintf("invoke %s: %s", path, elem.Status)
		}
		if elem.Data == nil {
			return fmt.Sprintf("invoke %s: %s", path, wire.StatusSuccess)
		}
		return fmt.Sprintf("invoke %s: %s %s", path, wire.StatusSuccess, f.FormatValue(elem.Data))

	case wire.SubscribeDone:
		return fmt.Sprintf("subscription %d established (max interval %ds)",
			elem.SubscriptionID, elem.MaxInterval)

	default:
		return fmt.Sprintf("%v", e)
	}
}

// FormatValue formats a value for display.
func (f *Formatter) FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"

	case bool:
		if v {
			return "true"
		}
		return "false"

	case string:
		return fmt.Sprintf("%q", v)

	case []byte:
		return fmt.Sprintf("0x%x", v)

	case map[any]any:
		return f.formatMap(v)

	case map[string]any:
		converted := make(map[any]any, len(v))
		for k, val := range v {
			converted[k] = val
		}
		return f.formatMap(converted)

	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = f.FormatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"

	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatMap renders a decoded map with sorted keys so output is stable.
func (f *Formatter) formatMap(m map[any]any) string {
	keys := make([]string, 0, len(m))
	byKey := make(map[string]any, len(m))
	for k, v := range m {
		key := fmt.Sprintf("%v", k)
		keys = append(keys, key)
		byKey[key] = v
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, f.FormatValue(byKey[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (f *Formatter) attrPathLabel(p wire.AttrPath) string {
	label := p.String()
	if !f.ShowNames || !p.IsConcrete() {
		return label
	}
	if name := AttributeName(*p.Cluster, *p.Attribute); name != "" {
		return fmt.Sprintf("%s (%s)", label, name)
	}
	return label
}

func (f *Formatter) cmdPathLabel(p wire.CmdPath) string {
	label := p.String()
	if !f.ShowNames || !p.IsConcrete() {
		return label
	}
	if name := CommandName(*p.Cluster, *p.Command); name != "" {
		return fmt.Sprintf("%s (%s)", label, name)
	}
	return label
}
