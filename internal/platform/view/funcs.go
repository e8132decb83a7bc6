// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"html/template"
	"strings"
	"time"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/pkg/textutil"
)

var funcs = template.FuncMap{
	"paragraphs": paragraphs,
	"deref":      deref,
	"excerpt":    excerpt,
	"date":       date,
	"fieldError": fieldError,
	"add":        func(a, b int) int { return a + b },
}

// paragraphs splits chapter content on blank lines, keeping single newlines inside a paragraph.
func paragraphs(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")

	var result []string
	for _, block := range strings.Split(normalized, "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			result = append(result, block)
		}
	}
	return result
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func excerpt(text string, max int) string {
	return textutil.Abbreviate(text, max)
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// fieldError returns the inline message for field, tolerating a nil error.
func fieldError(err *apperr.AppError, field string) string {
	if err == nil {
		return ""
	}
	return err.FieldMessage(field)
}
