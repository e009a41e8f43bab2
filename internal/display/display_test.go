package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_StatusLines(t *testing.T) {
	var out, errOut bytes.Buffer
	p := New(&out, &errOut)

	p.Success("saved %d files", 3)
	p.Warning("careful")
	p.Info("note")
	p.Error("failed: %s", "boom")

	assert.Contains(t, out.String(), "✓ saved 3 files")
	assert.Contains(t, out.String(), "⚠ careful")
	assert.Contains(t, out.String(), "ℹ note")
	assert.NotContains(t, out.String(), "boom")
	assert.Contains(t, errOut.String(), "✗ failed: boom")
}

func TestPrinter_Structure(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &out)

	p.Section("Expertise")
	p.List([]string{"Routing", "Testing"})
	p.KeyValue("Role", "Developer")
	p.Box("Summary", []string{"Errors: 0", "Warnings: 1"})

	s := out.String()
	assert.Contains(t, s, "Expertise\n─────────")
	assert.Contains(t, s, "- Routing")
	assert.Contains(t, s, "Role: Developer")
	assert.Contains(t, s, "Summary")
	assert.Contains(t, s, "Warnings: 1")
	assert.Contains(t, s, "╭")
}
