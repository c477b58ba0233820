package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opsdd/ddx/internal/model"
)

func TestDocumentFailSoftAccess(t *testing.T) {
	doc := model.Document{
		"name":   "ACME",
		"count":  float64(7),
		"active": true,
		"nested": map[string]interface{}{"key": "value"},
		"items": []interface{}{
			map[string]interface{}{"id": "a"},
			map[string]interface{}{"id": "b"},
			"not-an-object",
		},
		"wrong": 42,
	}

	assert.Equal(t, "ACME", doc.Str("name"))
	assert.Equal(t, "", doc.Str("missing"))
	assert.Equal(t, "", doc.Str("wrong"))

	assert.Equal(t, 7, doc.Int("count"))
	assert.Equal(t, 0, doc.Int("missing"))

	assert.True(t, doc.Bool("active"))
	assert.False(t, doc.Bool("missing"))

	assert.Equal(t, "value", doc.Doc("nested").Str("key"))
	assert.Empty(t, doc.Doc("missing"))

	items := doc.Docs("items")
	assert.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Str("id"))

	assert.True(t, doc.Has("name"))
	assert.False(t, doc.Has("missing"))
}

func TestReportSummaryFromDocument(t *testing.T) {
	tests := map[string]struct {
		doc model.Document
		exp model.ReportSummary
	}{
		"A complete entry should map every field": {
			doc: model.Document{
				"id":           "r1",
				"company_name": "ACME",
				"status":       "completed",
				"created_at":   "2026-08-01T10:00:00Z",
			},
			exp: model.ReportSummary{
				ID:          "r1",
				CompanyName: "ACME",
				Status:      "completed",
				CreatedAt:   time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			},
		},

		"Missing fields should default to zero values": {
			doc: model.Document{"id": "r2"},
			exp: model.ReportSummary{ID: "r2"},
		},

		"An unparseable timestamp should be ignored": {
			doc: model.Document{"id": "r3", "created_at": "yesterday"},
			exp: model.ReportSummary{ID: "r3"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, model.ReportSummaryFromDocument(test.doc))
		})
	}
}

func TestAnalysisResultFromDocument(t *testing.T) {
	doc := model.Document{
		"status":     "success",
		"session_id": "s-42",
		"report_id":  "r-7",
		"summary":    "All good.",
	}

	result := model.AnalysisResultFromDocument("ACME", doc)

	assert.Equal(t, "ACME", result.CompanyName)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "s-42", result.SessionID)
	assert.Equal(t, "r-7", result.ReportID)
	assert.Equal(t, "All good.", result.Summary)
	assert.Equal(t, doc, result.Raw)
}
