//go:build test

package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/isseis/go-multiboot-check/internal/diagnostic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(binPath string, offset int) diagnostic.Record {
	return diagnostic.NewRecord(diagnostic.Findings{
		BinPath:     binPath,
		FileSize:    128,
		MagicOffset: offset,
		ScanLimit:   8192,
		HeaderHex:   "02b0ad1b",
	}, time.UnixMilli(1_700_000_000_000))
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestNewAppender_EmptyPath(t *testing.T) {
	_, err := NewAppender("")

	assert.ErrorIs(t, err, ErrEmptyLogPath)
}

func TestAppender_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cursor", "nested", "debug.log")
	appender, err := NewAppender(path)
	require.NoError(t, err)

	require.NoError(t, appender.Append(testRecord("a.bin", 0)))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Len(t, readLines(t, path), 1)
}

func TestAppender_AppendsInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"earlier_tool"}`+"\n"), 0o600))

	appender, err := NewAppender(path)
	require.NoError(t, err)
	require.NoError(t, appender.Append(testRecord("first.bin", 0)))
	require.NoError(t, appender.Append(testRecord("second.bin", -1)))

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	assert.Equal(t, `{"id":"earlier_tool"}`, lines[0])

	var first, second diagnostic.Record
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &second))
	assert.Equal(t, "first.bin", first.Data.BinPath)
	assert.Equal(t, diagnostic.HypothesisOK, first.HypothesisID)
	assert.Equal(t, "second.bin", second.Data.BinPath)
	assert.Equal(t, diagnostic.HypothesisHeaderMissing, second.HypothesisID)
}

func TestAppender_PropagatesErrors(t *testing.T) {
	errMkdir := errors.New("mkdir denied")
	errAppend := errors.New("disk full")

	t.Run("mkdir failure", func(t *testing.T) {
		appender, err := NewAppender("/logs/debug.log")
		require.NoError(t, err)
		appender.mkdirAll = func(string, os.FileMode) error { return errMkdir }
		appender.appendFile = func(string, []byte, os.FileMode) error {
			t.Fatal("append must not be attempted")
			return nil
		}

		assert.ErrorIs(t, appender.Append(testRecord("a.bin", 0)), errMkdir)
	})

	t.Run("append failure", func(t *testing.T) {
		appender, err := NewAppender("/logs/debug.log")
		require.NoError(t, err)
		appender.mkdirAll = func(string, os.FileMode) error { return nil }
		appender.appendFile = func(string, []byte, os.FileMode) error { return errAppend }

		assert.ErrorIs(t, appender.Append(testRecord("a.bin", 0)), errAppend)
	})
}

func TestAppender_WritesWholeLineOnce(t *testing.T) {
	appender, err := NewAppender("/logs/debug.log")
	require.NoError(t, err)
	appender.mkdirAll = func(string, os.FileMode) error { return nil }

	var writes [][]byte
	appender.appendFile = func(path string, content []byte, perm os.FileMode) error {
		assert.Equal(t, "/logs/debug.log", path)
		assert.Equal(t, logFilePerm, perm)
		writes = append(writes, content)
		return nil
	}

	require.NoError(t, appender.Append(testRecord("a.bin", 0)))

	require.Len(t, writes, 1)
	assert.Equal(t, byte('\n'), writes[0][len(writes[0])-1])
}
