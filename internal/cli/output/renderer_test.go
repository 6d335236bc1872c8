package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode Mode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{name: "auto on terminal", mode: ModeAuto, isTTY: true, want: ModeText},
		{name: "auto piped", mode: ModeAuto, isTTY: false, want: ModeMarkdown},
		{name: "explicit text piped", mode: ModeText, isTTY: false, want: ModeText},
		{name: "explicit markdown on terminal", mode: ModeMarkdown, isTTY: true, want: ModeMarkdown},
		{name: "explicit json", mode: ModeJSON, isTTY: false, want: ModeJSON},
		{name: "unknown falls back to auto", mode: Mode("csv"), isTTY: false, want: ModeMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRendererDetectsNonTerminal(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestJSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)
	require.NoError(t, r.JSON(map[string]int{"issues": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["issues"])
	assert.Contains(t, out.String(), "  \"issues\": 3")
}

func TestFormatHeader(t *testing.T) {
	assert.Equal(t, "# Rules", FormatHeader(1, "Rules"))
	assert.Equal(t, "## Files", FormatHeader(2, "Files"))
	assert.Equal(t, "# Rules", FormatHeader(0, "Rules"))
}

func TestHeader(t *testing.T) {
	t.Run("markdown mode", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		r.Header(2, "Results")
		assert.Equal(t, "## Results\n", out.String())
	})

	t.Run("text mode", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, false)
		r.Header(1, "Results")
		assert.Equal(t, "Results\n", out.String())
	})
}

func TestSuccess(t *testing.T) {
	t.Run("text mode", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, false)
		r.Success("done")
		assert.Equal(t, "✓ done\n", out.String())
	})

	t.Run("markdown mode stays plain", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		r.Success("done")
		assert.Equal(t, "done\n", out.String())
	})
}

func TestWarningGoesToErrWriter(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText, false)
	r.Warning("careful")
	assert.Empty(t, out.String())
	assert.Equal(t, "! careful\n", errOut.String())
}

func TestStatusLine(t *testing.T) {
	t.Run("text mode", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, false)
		r.StatusLine("queries/a.hql", "success", "reformatted")
		assert.Equal(t, "  ✓ queries/a.hql  reformatted\n", out.String())
	})

	t.Run("text mode failed", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, false)
		r.StatusLine("queries/a.hql", "failed", "")
		assert.Equal(t, "  ✗ queries/a.hql\n", out.String())
	})

	t.Run("markdown mode", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		r.StatusLine("queries/a.hql", "success", "reformatted")
		assert.Equal(t, "- queries/a.hql (success): reformatted\n", out.String())
	})
}

func TestNoEscapeSequencesWhenPiped(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText, false)
	r.Header(1, "Results")
	r.Success("clean")
	r.Warning("careful")
	r.Muted("detail")
	r.StatusLine("a.hql", "failed", "unbalanced parentheses")
	r.Println(r.Styles().FilePath.Render("a.hql"))

	combined := out.String() + errOut.String()
	assert.NotContains(t, combined, "\x1b[")
}
