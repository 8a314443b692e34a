package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339Nano, value)
	require.NoError(t, err)
	return out
}

func TestTaskCodecRoundTrip(t *testing.T) {
	created := mustTime(t, "2026-02-09T12:00:00.123456789+02:00")
	done := mustTime(t, "2026-02-10T08:30:15.5Z")

	tasks := []Task{
		{
			ID:          "b",
			Title:       "Write report",
			Description: "quarterly numbers",
			Difficulty:  "hard",
			Category:    "work",
			Completed:   true,
			CreatedAt:   created,
			CompletedAt: &done,
			XPReward:    50,
			Photo:       "data:image/png;base64,AAAA",
		},
		{
			ID:         "a",
			Title:      "Stretch",
			Difficulty: "easy",
			Category:   "health",
			CreatedAt:  created,
			XPReward:   10,
			Audio:      "blob:clip-1",
		},
	}

	text, err := EncodeTasks(tasks)
	require.NoError(t, err)

	got, err := DecodeTasks(text)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "b", got[0].ID)
	assert.True(t, got[0].CreatedAt.Equal(created.Truncate(time.Millisecond)))
	require.NotNil(t, got[0].CompletedAt)
	assert.True(t, got[0].CompletedAt.Equal(done))
	assert.Equal(t, "data:image/png;base64,AAAA", got[0].Photo)
	assert.Equal(t, 50, got[0].XPReward)

	assert.Nil(t, got[1].CompletedAt)
	assert.False(t, got[1].Completed)
	assert.Equal(t, "blob:clip-1", got[1].Audio)
	assert.Empty(t, got[1].Description)
}

func TestEncodeTasksUsesUTCMillisAndOmitsAbsentCompletion(t *testing.T) {
	created := mustTime(t, "2026-02-09T12:00:00.987654321+02:00")
	text, err := EncodeTasks([]Task{{ID: "1", Title: "x", Difficulty: "easy", Category: "work", CreatedAt: created, XPReward: 10}})
	require.NoError(t, err)

	assert.Contains(t, text, `"createdAt":"2026-02-09T10:00:00.987Z"`)
	assert.NotContains(t, text, "completedAt")
	assert.NotContains(t, text, "0001-01-01")
}

func TestDecodeTasksAbsentCompletedAt(t *testing.T) {
	blob := `[{"id":"1700000000000","title":"Read","difficulty":"medium","category":"learning","completed":false,"createdAt":"2026-01-01T09:00:00.000Z","xpReward":25}]`

	got, err := DecodeTasks(blob)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].CompletedAt)
	assert.Equal(t, 25, got[0].XPReward)
	assert.True(t, got[0].CreatedAt.Equal(mustTime(t, "2026-01-01T09:00:00Z")))
}

func TestDecodeFailsSoft(t *testing.T) {
	cases := []string{
		`not json`,
		`{"id":"1"}`,
		`[{"id":"1","title":"x","createdAt":"yesterday"}]`,
		`[{"id":"1","title":"x","createdAt":"2026-01-01T09:00:00.000Z","completedAt":"soon"}]`,
	}
	for _, blob := range cases {
		got, err := DecodeTasks(blob)
		assert.Error(t, err, blob)
		assert.NotNil(t, got, blob)
		assert.Empty(t, got, blob)
	}

	ach, err := DecodeAchievements(`[{"id":"1","unlockedAt":42}]`)
	assert.Error(t, err)
	assert.NotNil(t, ach)
	assert.Empty(t, ach)
}

func TestDecodeEmptyText(t *testing.T) {
	tasks, err := DecodeTasks("")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	tasks, err = DecodeTasks("[]")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	ach, err := DecodeAchievements("  ")
	require.NoError(t, err)
	assert.Empty(t, ach)
}

func TestAchievementCodecRoundTrip(t *testing.T) {
	at := mustTime(t, "2026-03-01T00:00:01Z")
	in := []Achievement{
		{ID: "1", Title: "First Quest", Description: "Complete your first task", Icon: "🎯", Unlocked: true, UnlockedAt: &at, Requirement: Requirement{Type: "tasks_completed", Value: 1}},
		{ID: "3", Title: "Streak Champion", Description: "Maintain a 7-day streak", Icon: "🔥", Requirement: Requirement{Type: "streak_days", Value: 7}},
	}

	text, err := EncodeAchievements(in)
	require.NoError(t, err)
	assert.Contains(t, text, `"unlockedAt":"2026-03-01T00:00:01.000Z"`)

	got, err := DecodeAchievements(text)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, in[0].Requirement, got[0].Requirement)
	require.NotNil(t, got[0].UnlockedAt)
	assert.True(t, got[0].UnlockedAt.Equal(at))
	assert.Nil(t, got[1].UnlockedAt)
	assert.False(t, got[1].Unlocked)
	assert.Equal(t, "🔥", got[1].Icon)
}
