package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/startlist/internal/store"
)

func TestStartlist_JSON(t *testing.T) {
	db := tempDB(t)
	seedClub(t, db)

	out, err := runCLI(t, "--format", "json", "startlist", "--db", db, clubEventFile)
	require.NoError(t, err)

	var rows []StartlistRow
	decodeResponse(t, out, &rows)
	require.Len(t, rows, 4)

	want := []struct {
		id        int64
		start     string
		clock     string
		gapChange bool
	}{
		{103, "+0:05:00", "09:05:00", false},
		{101, "+0:06:00", "09:06:00", false},
		{102, "+0:08:00", "09:08:00", true},
		{104, "+0:13:00", "09:13:00", true},
	}
	for i, w := range want {
		assert.Equal(t, i+1, rows[i].Position)
		assert.Equal(t, w.id, rows[i].ParticipantID)
		assert.Equal(t, w.start, rows[i].StartTime)
		assert.Equal(t, w.clock, rows[i].ClockTime)
		assert.Equal(t, w.gapChange, rows[i].GapChange, "row %d", i+1)
	}
}

func TestStartlist_UnseededListedLast(t *testing.T) {
	out, err := runCLI(t, "startlist", "--db", tempDB(t), clubEventFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5) // header + 4 riders
	assert.Contains(t, lines[0], "Club 10 TT")
	for _, line := range lines[1:] {
		assert.Contains(t, line, " - ")
		assert.NotContains(t, line, "*")
	}
}

func TestStartlist_TextMarksGapChanges(t *testing.T) {
	db := tempDB(t)
	seedClub(t, db)

	out, err := runCLI(t, "startlist", "--db", db, clubEventFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[1], " "))
	assert.True(t, strings.HasPrefix(lines[2], " "))
	assert.True(t, strings.HasPrefix(lines[3], "*"))
	assert.Contains(t, lines[4], "09:13:00")
}

func TestStartlist_Wave(t *testing.T) {
	db := tempDB(t)
	seedClub(t, db)

	out, err := runCLI(t, "--format", "json", "startlist", "--db", db, clubEventFile, "--wave", "20")
	require.NoError(t, err)

	var rows []StartlistRow
	decodeResponse(t, out, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(104), rows[0].ParticipantID)
	assert.Equal(t, int64(20), rows[0].WaveID)
}

func TestStartlist_Participant(t *testing.T) {
	db := tempDB(t)
	seedClub(t, db)

	out, err := runCLI(t, "startlist", "--db", db, clubEventFile, "--participant", "101")
	require.NoError(t, err)
	assert.Contains(t, out, "participant 101: +0:06:00 (09:06:00)")

	out, err = runCLI(t, "--format", "json", "startlist", "--db", db, clubEventFile, "--participant", "105")
	require.NoError(t, err)
	var result StartTimeResult
	decodeResponse(t, out, &result)
	assert.False(t, result.Scheduled)
	assert.Empty(t, result.StartTime)
}

func TestStartlist_SpeedOnceFinished(t *testing.T) {
	db := tempDB(t)
	seedClub(t, db)

	// A timing system records Alice's finish 30 minutes after her 6:00 start.
	st, err := store.Open(db)
	require.NoError(t, err)
	_, err = st.DB().Exec(`UPDATE entries SET finish_time_ns = ? WHERE event_id = 1 AND participant_id = 101`,
		int64(36*time.Minute))
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := runCLI(t, "--format", "json", "startlist", "--db", db, clubEventFile)
	require.NoError(t, err)
	var rows []StartlistRow
	decodeResponse(t, out, &rows)
	require.Len(t, rows, 4)
	assert.Equal(t, int64(101), rows[1].ParticipantID)
	assert.InDelta(t, 32.2, rows[1].Speed, 1e-9)
	assert.Zero(t, rows[0].Speed)

	out, err = runCLI(t, "startlist", "--db", db, clubEventFile)
	require.NoError(t, err)
	assert.Contains(t, out, "09:06:00  32.2")
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "+0:00:00", formatOffset(0))
	assert.Equal(t, "+0:05:30", formatOffset(5*60e9+30e9))
	assert.Equal(t, "+1:02:03", formatOffset(3723e9))
}
