// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authoring

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/taibuivan/enredo/internal/core/chapter"
	"github.com/taibuivan/enredo/internal/platform/validate"
	"github.com/taibuivan/enredo/pkg/convert"
)

// BlankRows is how many empty rows the choices editor offers.
const BlankRows = 3

// choiceFieldPattern matches editor cells such as "choices[0][text]".
var choiceFieldPattern = regexp.MustCompile(`^choices\[(\d+)\]\[(\w+)\]$`)

// ChapterForm echoes the chapter fields back into the form.
// Number keeps the submitted text so a rejected value is shown as typed.
type ChapterForm struct {
	ID       string
	Number   string
	Title    string
	Content  string
	IsEnding bool
}

// Row is one line of the choices editor as rendered.
type Row struct {
	Key           int
	Text          string
	NextContent   string
	Order         string
	NextChapterID string
}

// ParseChoiceRows collects the choices[k][column] cells of a posted form.
// Unknown columns are ignored; rows come back ordered by key.
func ParseChoiceRows(values url.Values) []Row {
	rows := make(map[int]*Row)

	for name, cell := range values {
		match := choiceFieldPattern.FindStringSubmatch(name)
		if match == nil || len(cell) == 0 {
			continue
		}

		key, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		row, ok := rows[key]
		if !ok {
			row = &Row{Key: key}
			rows[key] = row
		}

		value := cell[0]
		switch match[2] {
		case "text":
			row.Text = value
		case "next_content":
			row.NextContent = value
		case "order":
			row.Order = strings.TrimSpace(value)
		case "next_chapter_id":
			row.NextChapterID = strings.TrimSpace(value)
		}
	}

	parsed := make([]Row, 0, len(rows))
	for _, row := range rows {
		parsed = append(parsed, *row)
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Key < parsed[j].Key })
	return parsed
}

// Drafts converts editor rows into workflow input.
func Drafts(rows []Row) []ChoiceDraft {
	drafts := make([]ChoiceDraft, 0, len(rows))
	for _, row := range rows {
		drafts = append(drafts, ChoiceDraft{
			Key:           row.Key,
			Text:          row.Text,
			NextContent:   row.NextContent,
			NextChapterID: row.NextChapterID,
			Order:         convert.ToIntPtr(row.Order),
		})
	}
	return drafts
}

// RowsFor prefills the editor with the existing choices plus blank rows.
func RowsFor(choices []*chapter.Choice) []Row {
	rows := make([]Row, 0, len(choices)+BlankRows)
	for i, choice := range choices {
		row := Row{Key: i, Text: choice.Text, Order: strconv.Itoa(choice.Order)}
		if !choice.Dangling() {
			row.NextChapterID = *choice.NextChapterID
		}
		rows = append(rows, row)
	}
	return appendBlank(rows)
}

func appendBlank(rows []Row) []Row {
	next := 0
	for _, row := range rows {
		if row.Key >= next {
			next = row.Key + 1
		}
	}
	for i := 0; i < BlankRows; i++ {
		rows = append(rows, Row{Key: next + i})
	}
	return rows
}

// FormFrom prefills the chapter fields from a stored chapter.
func FormFrom(existing *chapter.Chapter) ChapterForm {
	return ChapterForm{
		ID:       existing.ID,
		Number:   strconv.Itoa(existing.Number),
		Title:    existing.Title,
		Content:  existing.Content,
		IsEnding: existing.IsEnding,
	}
}

// NumberForm is an empty chapter form suggesting the given number.
func NumberForm(number int) ChapterForm {
	return ChapterForm{Number: strconv.Itoa(number)}
}

/*
Input converts the submitted chapter fields into a [chapter.ChapterInput].

Returns:
  - A validation error on chapter_number when it is blank or not a whole number
*/
func (form ChapterForm) Input() (chapter.ChapterInput, error) {
	number := convert.ToIntPtr(form.Number)

	validator := &validate.Validator{}
	validator.Required(chapter.FieldNumber, form.Number)
	validator.Custom(chapter.FieldNumber, strings.TrimSpace(form.Number) != "" && number == nil, "Must be a whole number")
	if err := validator.Err(); err != nil {
		return chapter.ChapterInput{}, err
	}

	return chapter.ChapterInput{
		ID:       form.ID,
		Number:   *number,
		Title:    form.Title,
		Content:  form.Content,
		IsEnding: form.IsEnding,
	}, nil
}
