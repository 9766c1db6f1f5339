package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swimlog/internal/domain/record"
)

func TestLoadBulkFile_YAML(t *testing.T) {
	input := `
- style: free
  distance: 100
  course: short
  date: 2024-05-01
  memo: контрольный
  laps: ["00:31.20", "01:05.40"]
- style: 4
  distance: 50m
  course: long
  date: "2024-05-02"
  laps:
    - "00:29.80"
`
	drafts, err := LoadBulkFile(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, record.StyleFreestyle, drafts[0].StyleID)
	assert.Equal(t, record.Distance100, drafts[0].DistanceID)
	assert.True(t, drafts[0].IsShortCourse)
	assert.Equal(t, "2024-05-01", drafts[0].Date.String())
	assert.Equal(t, "контрольный", drafts[0].Memo)
	assert.Equal(t, []string{"00:31.20", "01:05.40"}, drafts[0].LapTimes)
	require.NoError(t, drafts[0].Validate())

	assert.Equal(t, record.StyleButterfly, drafts[1].StyleID)
	assert.False(t, drafts[1].IsShortCourse)
	require.NoError(t, drafts[1].Validate())
}

func TestLoadBulkFile_JSON(t *testing.T) {
	input := `[{"style": "back", "distance": "200", "date": "2024-06-10",
		"laps": ["00:35.00", "01:12.00", "01:50.00", "02:27.50"]}]`

	drafts, err := LoadBulkFile(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, record.StyleBackstroke, drafts[0].StyleID)
	assert.True(t, drafts[0].IsShortCourse, "бассейн по умолчанию короткий")
	assert.NoError(t, drafts[0].Validate())
}

func TestLoadBulkFile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "пустой файл", input: "", want: "файл пуст"},
		{name: "пустой список", input: "[]", want: "нет записей"},
		{name: "не список", input: "style: free", want: "ошибка разбора"},
		{name: "неизвестный стиль", input: "- {style: crawl, distance: 100, date: 2024-05-01}", want: "запись 1"},
		{name: "неверная дата", input: "- {style: free, distance: 100, date: вчера}", want: "неверная дата"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBulkFile(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
