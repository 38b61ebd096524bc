package keyboard

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectGroupData_RoundTrip(t *testing.T) {
	data := SelectGroupData(model.GroupResult{ID: "531", Name: "ИКС-432"})
	assert.Equal(t, "select_group:531:ИКС-432", data)

	g, ok := ParseSelectGroup(data)
	require.True(t, ok)
	assert.Equal(t, model.GroupID("531"), g.ID)
	assert.Equal(t, "ИКС-432", g.Name)
}

func TestSelectGroupData_FitsTelegramLimit(t *testing.T) {
	data := SelectGroupData(model.GroupResult{ID: "531", Name: strings.Repeat("Группа", 20)})
	assert.LessOrEqual(t, len(data), maxCallbackData)
	assert.True(t, utf8.ValidString(data))
}

func TestParseSelectGroup(t *testing.T) {
	g, ok := ParseSelectGroup("select_group:77")
	require.True(t, ok)
	assert.Equal(t, "77", g.Name)

	_, ok = ParseSelectGroup("select_group:")
	assert.False(t, ok)

	_, ok = ParseSelectGroup("schedule:today")
	assert.False(t, ok)
}

func TestParseScheduleView(t *testing.T) {
	view, ok := ParseScheduleView("schedule:week")
	require.True(t, ok)
	assert.Equal(t, ViewWeek, view)

	_, ok = ParseScheduleView("schedule:month")
	assert.False(t, ok)
}

func TestGroups_Limit(t *testing.T) {
	var groups []model.GroupResult
	for i := 0; i < 15; i++ {
		groups = append(groups, model.GroupResult{ID: model.GroupID(strings.Repeat("1", i+1)), Name: "ИКС"})
	}

	kb := Groups(groups)
	assert.Len(t, kb.InlineKeyboard, maxGroupButtons)
	assert.Equal(t, "select_group:1:ИКС", kb.InlineKeyboard[0][0].CallbackData)
}
