package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	require.Contains(t, names, "serve")
	require.Contains(t, names, "generate")
	require.NotNil(t, root.PersistentFlags().Lookup("env-file"))
}

func TestGenerateCommandWritesOnlyJSONToStdout(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","model":"test-model",`+
			`"choices":[{"index":0,"message":{"role":"assistant","content":"Solid month."},"finish_reason":"stop"}],`+
			`"usage":{"prompt_tokens":10,"completion_tokens":3,"total_tokens":13}}`)
	}))
	defer api.Close()

	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", api.URL)
	t.Setenv("OPENAI_MODEL", "test-model")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "json")

	var stdout bytes.Buffer
	stderr := &lockedBuffer{}
	root := newRootCmd()
	root.SetArgs([]string{"generate"})
	root.SetIn(strings.NewReader(`{"employees":[{"name":"Ada","id":"E-1","department":"Eng","month":"May","tasksCompleted":4,"goalsMet":90}]}`))
	root.SetOut(&stdout)
	root.SetErr(stderr)
	require.NoError(t, root.ExecuteContext(context.Background()))

	var got struct {
		Summaries []map[string]string `json:"summaries"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got), stdout.String())
	require.Len(t, got.Summaries, 1)
	require.Equal(t, "Solid month.", got.Summaries[0]["summary"])
	require.Equal(t, "90.0%", got.Summaries[0]["goalsMet"])
	require.Contains(t, stderr.String(), "batch started")
}

func TestRunBatchFileToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte("payload"), 0o600))

	runner := &stubRunner{output: `{"summaries":[]}`}
	require.NoError(t, runBatch(context.Background(), runner, in, out, nil, nil))
	require.Equal(t, "payload", runner.input)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, `{"summaries":[]}`, string(written))
}

func TestRunBatchStdio(t *testing.T) {
	runner := &stubRunner{output: "ok"}
	var stdout bytes.Buffer
	require.NoError(t, runBatch(context.Background(), runner, "-", "-", strings.NewReader("from stdin"), &stdout))
	require.Equal(t, "from stdin", runner.input)
	require.Equal(t, "ok", stdout.String())
}

func TestRunBatchFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.json")

	runner := &stubRunner{output: "partial", err: errors.New("boom")}
	err := runBatch(context.Background(), runner, "-", out, strings.NewReader("{}"), nil)
	require.EqualError(t, err, "boom")

	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

type stubRunner struct {
	input  string
	output string
	err    error
}

func (s *stubRunner) Run(_ context.Context, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.input = string(data)
	_, _ = io.WriteString(w, s.output)
	return s.err
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
