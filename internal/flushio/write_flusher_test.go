package flushio

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriteFlusher(t *testing.T) {
	var buf bytes.Buffer
	assert.IsType(t, nopFlusher{}, NewWriteFlusher(&buf, 64))
	assert.IsType(t, nopFlusher{}, NewWriteFlusher(io.Discard, 64))

	bw := bufio.NewWriter(&buf)
	assert.Equal(t, WriteFlusher(bw), NewWriteFlusher(bw, 64))

	f, err := os.Create(filepath.Join(t.TempDir(), "out.raw"))
	require.NoError(t, err)
	defer f.Close()

	wf := NewWriteFlusher(f, 4096)
	require.IsType(t, &bufio.Writer{}, wf)
	assert.Equal(t, 4096, wf.(*bufio.Writer).Size())

	cw := &CountingWriter{WriteFlusher: wf}
	_, err = cw.Write([]byte{0x80, 0x81, 0x82})
	require.NoError(t, err)
	assert.Equal(t, int64(3), cw.N)

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size(), "expected bytes to be buffered")

	require.NoError(t, cw.Flush())
	info, err = f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size(), "expected bytes to be flushed")
}
