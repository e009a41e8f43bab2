package workflow

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/gjson"
)

// ErrNotFound is returned when a workflow file does not exist.
var ErrNotFound = errors.New("workflow not found")

// ParseError reports a workflow document that is not valid JSON.
type ParseError struct {
	Path string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "failed to parse JSON: invalid workflow document"
	}
	return fmt.Sprintf("failed to parse JSON: invalid workflow document %s", e.Path)
}

// Workflow is a parsed workflow document.
type Workflow struct {
	raw gjson.Result
}

// Node is one element of the workflow's nodes array.
type Node struct {
	Index int
	raw   gjson.Result
}

// Parse parses a workflow document. Any valid JSON value is accepted; shape
// problems are for the validator to report.
func Parse(data []byte) (*Workflow, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{}
	}
	return &Workflow{raw: gjson.ParseBytes(data)}, nil
}

// Load reads and parses the workflow file at path.
func Load(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	wf, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path}
	}
	return wf, nil
}

// Raw returns the whole document.
func (w *Workflow) Raw() gjson.Result { return w.raw }

// Field returns a top-level member; it does not exist when the document is
// not an object or lacks the key.
func (w *Workflow) Field(key string) gjson.Result {
	return Member(w.raw, key)
}

// Name returns the workflow name when it is a string.
func (w *Workflow) Name() (string, bool) {
	name := w.Field("name")
	if name.Type != gjson.String {
		return "", false
	}
	return name.Str, true
}

// Nodes returns the nodes array in order. It is empty when nodes is absent
// or not an array.
func (w *Workflow) Nodes() []Node {
	nodes := w.Field("nodes")
	if !nodes.IsArray() {
		return nil
	}
	var result []Node
	for i, n := range nodes.Array() {
		result = append(result, Node{Index: i, raw: n})
	}
	return result
}

// Connections calls fn for each entry of the connections mapping in document
// order. Array connections are keyed by index, as JavaScript would see them.
func (w *Workflow) Connections(fn func(source string, outputs gjson.Result)) {
	conns := w.Field("connections")
	switch {
	case conns.IsObject():
		conns.ForEach(func(key, value gjson.Result) bool {
			fn(key.String(), value)
			return true
		})
	case conns.IsArray():
		for i, value := range conns.Array() {
			fn(fmt.Sprint(i), value)
		}
	}
}

// HasNodeNamed reports whether any node's name equals v under strict equality.
func (w *Workflow) HasNodeNamed(v gjson.Result) bool {
	for _, n := range w.Nodes() {
		if StrictEqual(n.Name(), v) {
			return true
		}
	}
	return false
}

// Raw returns the node value.
func (n Node) Raw() gjson.Result { return n.raw }

// Field returns a member of the node object.
func (n Node) Field(key string) gjson.Result { return Member(n.raw, key) }

// Name returns the raw name member.
func (n Node) Name() gjson.Result { return n.Field("name") }

// Type returns the raw type member.
func (n Node) Type() gjson.Result { return n.Field("type") }

// Position returns the raw position member.
func (n Node) Position() gjson.Result { return n.Field("position") }

// Parameters returns the raw parameters member.
func (n Node) Parameters() gjson.Result { return n.Field("parameters") }

// Credentials returns the raw credentials member.
func (n Node) Credentials() gjson.Result { return n.Field("credentials") }

// TypeString returns the node type when it is a string.
func (n Node) TypeString() (string, bool) {
	t := n.Type()
	if t.Type != gjson.String {
		return "", false
	}
	return t.Str, true
}

// Label renders the node name the way it appears in messages; a missing name
// reads as "undefined" and a null one as "null".
func (n Node) Label() string {
	name := n.Name()
	switch {
	case !name.Exists():
		return "undefined"
	case name.Type == gjson.Null:
		return "null"
	}
	return name.String()
}

// Member looks up key on an object without interpreting gjson path syntax,
// so names containing dots or wildcards resolve literally.
func Member(obj gjson.Result, key string) gjson.Result {
	if !obj.IsObject() {
		return gjson.Result{}
	}
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found = v
		}
		return true
	})
	return found
}
