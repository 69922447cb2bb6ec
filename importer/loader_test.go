package importer

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestLoadFeedback(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"source", "content", "rating", "date", "platform"},
		{"reviews", "Great pasta", 5, "2026-08-01", "yelp"},
		{"surveys", "Too noisy", "", "", ""},
		{"reviews", "", 3, "", ""}, // 空内容行应被跳过
	})

	list, err := LoadFeedback(buf, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("rows = %d, want 2", len(list))
	}

	first := list[0]
	if first.ShopID != 42 || first.Source != "reviews" || first.Content != "Great pasta" {
		t.Errorf("first row = %+v", first)
	}
	if first.Rating == nil || *first.Rating != 5 {
		t.Errorf("first rating = %v, want 5", first.Rating)
	}
	if first.Platform != "yelp" {
		t.Errorf("platform = %q", first.Platform)
	}

	// 历史日期必须随行保留，否则导入的反馈全部挤进当天的趋势桶
	want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !first.CreatedAt.Equal(want) {
		t.Errorf("created_at = %v, want %v", first.CreatedAt, want)
	}

	if list[1].Rating != nil {
		t.Errorf("missing rating should stay nil, got %v", *list[1].Rating)
	}
	if !list[1].CreatedAt.IsZero() {
		t.Errorf("missing date should stay zero, got %v", list[1].CreatedAt)
	}
}

func TestLoadFeedbackInvalidDate(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"source", "content", "date"},
		{"reviews", "ok", "next tuesday"},
	})

	if _, err := LoadFeedback(buf, 1); err == nil {
		t.Error("expected error for unparseable date")
	}
}

func TestLoadFeedbackInvalidSource(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"source", "content"},
		{"carrier_pigeon", "hello"},
	})

	if _, err := LoadFeedback(buf, 1); err == nil {
		t.Error("expected error for invalid source")
	}
}

func TestLoadFeedbackInvalidRating(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"source", "content", "rating"},
		{"reviews", "ok", 9},
	})

	if _, err := LoadFeedback(buf, 1); err == nil {
		t.Error("expected error for out-of-range rating")
	}
}

func TestLoadFeedbackMissingHeader(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"content", "rating"},
		{"hello", 4},
	})

	if _, err := LoadFeedback(buf, 1); err == nil {
		t.Error("expected error for missing source column")
	}
}

func TestLoadFeedbackNoRows(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"source", "content"},
	})

	if _, err := LoadFeedback(buf, 1); err == nil {
		t.Error("expected error for header-only sheet")
	}

	if _, err := LoadFeedback(bytes.NewReader([]byte("not an xlsx")), 1); err == nil {
		t.Error("expected error for non-xlsx input")
	}
}
