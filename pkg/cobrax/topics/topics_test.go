package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTopics() fstest.MapFS {
	return fstest.MapFS{
		"reject-rules.md":  {Data: []byte("# Reject rules\n\nOne ERE per line.\n")},
		"manifests.txt":    {Data: []byte("One path per line.\n")},
		"option-force.txt": {Data: []byte("Force skips checks.\n")},
		"nested/layout.md": {Data: []byte("# Layout\n")},
		"ignored.json":     {Data: []byte("{}")},
		"notes.txxt":       {Data: []byte("custom")},
	}
}

func TestLoad_DefaultExtensions(t *testing.T) {
	tm := New(sampleTopics(), Options{})
	require.NoError(t, tm.Load())

	assert.Equal(t, []string{"layout", "manifests", "option-force", "reject-rules"}, tm.ListTopics())

	topic, ok := tm.GetTopic("manifests")
	require.True(t, ok)
	assert.Equal(t, "One path per line.\n", topic.Content)
	assert.Equal(t, "manifests.txt", topic.FilePath)

	_, ok = tm.GetTopic("ignored")
	assert.False(t, ok)
}

func TestLoad_CustomExtensions(t *testing.T) {
	tm := New(sampleTopics(), Options{Extensions: []string{".txxt"}})
	require.NoError(t, tm.Load())
	assert.Equal(t, []string{"notes"}, tm.ListTopics())
}

func TestGetTopic_FlagStyle(t *testing.T) {
	tm := New(sampleTopics(), Options{})
	require.NoError(t, tm.Load())

	for _, name := range []string{"--force", "-force", "force", "option-force"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-force", topic.Name)
	}
}

type upperRenderer struct{ exts []string }

func (r *upperRenderer) Render(content, ext string) string {
	r.exts = append(r.exts, ext)
	return "RENDERED:" + content
}

func newRoot(t *testing.T, renderer Renderer) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "pkgdb", Run: func(cmd *cobra.Command, args []string) {}}
	root.AddCommand(&cobra.Command{Use: "list", Short: "List installed packages", Run: func(cmd *cobra.Command, args []string) {}})
	out := &bytes.Buffer{}
	root.SetOut(out)

	_, err := Initialize(root, sampleTopics(), Options{Renderer: renderer})
	require.NoError(t, err)
	return root, out
}

func TestHelpCommand_Topic(t *testing.T) {
	renderer := &upperRenderer{}
	root, out := newRoot(t, renderer)

	root.SetArgs([]string{"help", "reject-rules"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "RENDERED:# Reject rules\n\nOne ERE per line.\n", out.String())
	assert.Equal(t, []string{".md"}, renderer.exts)
}

func TestHelpCommand_ListTopics(t *testing.T) {
	root, out := newRoot(t, nil)

	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())

	text := out.String()
	assert.Contains(t, text, "General topics:")
	assert.Contains(t, text, "  reject-rules")
	assert.Contains(t, text, "Option topics:")
	assert.Contains(t, text, "  --force")
	assert.Contains(t, text, "pkgdb help <topic>")
}

func TestHelpCommand_FallsBackToCommandHelp(t *testing.T) {
	root, out := newRoot(t, nil)

	root.SetArgs([]string{"help", "list"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "List installed packages")
}

func TestPlainRenderer(t *testing.T) {
	assert.Equal(t, "x", (&PlainRenderer{}).Render("x", ".md"))
}

func TestGlamourRenderer_PassesThroughText(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}

func TestGlamourRenderer_Markdown(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 60}
	out := r.Render("# Title\n\nBody text.\n", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Body text.")
}
