package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var record map[string]any
		require.NoError(t, json.Unmarshal(line, &record))
		records = append(records, record)
	}
	return records
}

func TestJSONOutputCarriesServiceAndCriticalLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: slog.LevelInfo, Format: FormatJSON, Service: "swipe"})

	log.Debug("hidden")
	log.Critical("db down", "attempt", 3)

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "CRITICAL", records[0]["level"])
	assert.Equal(t, "swipe", records[0]["service"])
	assert.Equal(t, float64(3), records[0]["attempt"])
}

func TestErrorHelpersSkipNil(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: slog.LevelDebug, Format: FormatJSON})

	log.BusinessError("rejected", nil)
	log.InternalError("failed", nil)
	log.BusinessError("announcements.update: not found", errors.New("announcement not found"), "announcement_id", 7)

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "WARN", records[0]["level"])
	assert.Equal(t, "announcement not found", records[0]["err"])
}

func TestLevelAndFormatDefaults(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, levelFromString("", true))
	assert.Equal(t, slog.LevelInfo, levelFromString("", false))
	assert.Equal(t, slog.LevelInfo, levelFromString("info", true))
	assert.Equal(t, LevelCritical, levelFromString(" Fatal ", false))

	assert.Equal(t, FormatText, formatFromString("", true))
	assert.Equal(t, FormatJSON, formatFromString("bogus", false))
	assert.Equal(t, FormatPlain, formatFromString("PLAIN", false))
}

func TestDiscardIsSilent(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(LevelCritical))
}
