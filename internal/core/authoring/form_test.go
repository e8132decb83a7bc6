// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authoring

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/enredo/internal/core/chapter"
	"github.com/taibuivan/enredo/internal/platform/apperr"
)

func TestParseChoiceRows(t *testing.T) {
	values := url.Values{
		"choices[2][text]":             {"Third"},
		"choices[0][text]":             {"First"},
		"choices[0][order]":            {" 4 "},
		"choices[0][next_content]":     {"Inline body"},
		"choices[10][next_chapter_id]": {" abc "},
		"choices[1][unknown]":          {"ignored"},
		"title":                        {"not a cell"},
		"choices[x][text]":             {"bad key"},
	}

	rows := ParseChoiceRows(values)
	require.Len(t, rows, 4)

	assert.Equal(t, []int{0, 1, 2, 10}, []int{rows[0].Key, rows[1].Key, rows[2].Key, rows[3].Key})
	assert.Equal(t, Row{Key: 0, Text: "First", NextContent: "Inline body", Order: "4"}, rows[0])
	assert.Equal(t, Row{Key: 1}, rows[1])
	assert.Equal(t, "Third", rows[2].Text)
	assert.Equal(t, "abc", rows[3].NextChapterID)
}

func TestDrafts_ParsesOptionalOrder(t *testing.T) {
	drafts := Drafts([]Row{
		{Key: 0, Text: "a", Order: "3"},
		{Key: 1, Text: "b", Order: ""},
		{Key: 2, Text: "c", Order: "soon"},
		{Key: 3, Text: "d", Order: "0"},
	})

	require.Len(t, drafts, 4)
	require.NotNil(t, drafts[0].Order)
	assert.Equal(t, 3, *drafts[0].Order)
	assert.Nil(t, drafts[1].Order)
	assert.Nil(t, drafts[2].Order)
	require.NotNil(t, drafts[3].Order)
	assert.Equal(t, 0, *drafts[3].Order)
}

func TestRowsFor_AppendsBlankRows(t *testing.T) {
	next := "chapter-2"
	rows := RowsFor([]*chapter.Choice{
		{Text: "Linked", Order: 1, NextChapterID: &next},
		{Text: "Dangling", Order: 2},
	})

	require.Len(t, rows, 2+BlankRows)
	assert.Equal(t, Row{Key: 0, Text: "Linked", Order: "1", NextChapterID: "chapter-2"}, rows[0])
	assert.Equal(t, Row{Key: 1, Text: "Dangling", Order: "2"}, rows[1])
	for i, row := range rows[2:] {
		assert.Equal(t, Row{Key: 2 + i}, row)
	}
}

func TestAppendBlank_ContinuesAfterHighestKey(t *testing.T) {
	rows := appendBlank([]Row{{Key: 7, Text: "kept"}})

	require.Len(t, rows, 1+BlankRows)
	assert.Equal(t, 8, rows[1].Key)
	assert.Equal(t, 10, rows[3].Key)
}

func TestChapterForm_Input(t *testing.T) {
	input, err := ChapterForm{ID: "id-1", Number: " 7 ", Title: "Seven", Content: "Body", IsEnding: true}.Input()
	require.NoError(t, err)
	assert.Equal(t, chapter.ChapterInput{ID: "id-1", Number: 7, Title: "Seven", Content: "Body", IsEnding: true}, input)

	for _, number := range []string{"", "  ", "abc", "2.5"} {
		_, err := ChapterForm{Number: number, Title: "T", Content: "C"}.Input()
		require.Error(t, err, "number %q", number)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		require.Len(t, appErr.Details, 1)
		assert.Equal(t, chapter.FieldNumber, appErr.Details[0].Field)
	}
}

func TestFormFrom_KeepsStoredNumber(t *testing.T) {
	form := FormFrom(&chapter.Chapter{ID: "c1", Number: 12, Title: "Twelve"})
	assert.Equal(t, "12", form.Number)
	assert.Equal(t, "5", NumberForm(5).Number)
}
