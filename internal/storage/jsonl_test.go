package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"clmScope/internal/batch"
	"clmScope/internal/model"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan %s: %v", path, err)
	}
	return lines
}

func TestJsonlStorageAppendsValuations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "valuations.jsonl")
	s := NewJsonlStorage(path)

	results := []batch.ValuationResult{
		{PositionID: "pos-1", Valuation: &model.PositionValuation{PositionID: "pos-1", PoolID: "0xa"}},
		{PositionID: "pos-2", Err: "pool 0xb: no snapshot"},
	}
	if err := s.PutValuations(results); err != nil {
		t.Fatalf("PutValuations: %v", err)
	}
	if err := s.PutValuations(results[:1]); err != nil {
		t.Fatalf("PutValuations (append): %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 3 {
		t.Fatalf("line count: %d", len(lines))
	}

	var first batch.ValuationResult
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("parse line 0: %v", err)
	}
	if first.PositionID != "pos-1" || first.Valuation == nil {
		t.Fatalf("line 0: %+v", first)
	}

	var second batch.ValuationResult
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("parse line 1: %v", err)
	}
	if second.Err == "" || second.Valuation != nil {
		t.Fatalf("line 1: %+v", second)
	}
}

func TestJsonlStorageAppendsAnalytics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.jsonl")
	s := NewJsonlStorage(path)

	results := []batch.AnalyticsResult{
		{PoolAddress: "0xa", Analytics: &model.PoolAnalytics{PoolAddress: "0xa", Recommendation: model.RecommendationFair}},
	}
	if err := s.PutAnalytics(results); err != nil {
		t.Fatalf("PutAnalytics: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 1 {
		t.Fatalf("line count: %d", len(lines))
	}

	var got batch.AnalyticsResult
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Analytics == nil || got.Analytics.Recommendation != model.RecommendationFair {
		t.Fatalf("record: %+v", got)
	}
}

func TestJsonlStorageEmptyBatchWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	s := NewJsonlStorage(path)

	if err := s.PutValuations(nil); err != nil {
		t.Fatalf("PutValuations: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("empty batch must not create the file: %v", err)
	}
}
