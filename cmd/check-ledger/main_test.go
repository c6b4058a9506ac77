package main

import (
	"strings"
	"testing"
)

func TestAuditRows_CleanLedger(t *testing.T) {
	rows := [][]string{
		{"2024-01-01", "100", "50"},
		{"2024-01-02", "30.5", "70"},
		{"2024-01-03", "0", "0"},
	}

	if findings := auditRows(rows); len(findings) != 0 {
		t.Errorf("auditRows() = %v, want none", findings)
	}
}

func TestAuditRows(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		wantTags []string
	}{
		{
			name:     "empty ledger",
			rows:     nil,
			wantTags: nil,
		},
		{
			name:     "empty first cell",
			rows:     [][]string{{"", "1", "2"}},
			wantTags: []string{tagBad},
		},
		{
			name:     "zero cells",
			rows:     [][]string{{}},
			wantTags: []string{tagBad},
		},
		{
			name:     "unparseable date",
			rows:     [][]string{{"01/02/2024", "1", "2"}},
			wantTags: []string{tagBad},
		},
		{
			name:     "short row",
			rows:     [][]string{{"2024-01-01", "1"}},
			wantTags: []string{tagBad},
		},
		{
			name:     "long row",
			rows:     [][]string{{"2024-01-01", "1", "2", "3"}},
			wantTags: []string{tagBad},
		},
		{
			name:     "non numeric amounts",
			rows:     [][]string{{"2024-01-01", "abc", "xyz"}},
			wantTags: []string{tagBad, tagBad},
		},
		{
			name: "out of order dates",
			rows: [][]string{
				{"2024-01-05", "1", "2"},
				{"2024-01-03", "1", "2"},
			},
			wantTags: []string{tagOrd},
		},
		{
			name: "duplicate implies disorder",
			rows: [][]string{
				{"2024-01-01", "1", "2"},
				{"2024-01-02", "1", "2"},
				{"2024-01-01", "3", "4"},
			},
			wantTags: []string{tagDup, tagOrd},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := auditRows(tt.rows)

			var got []string
			for _, f := range findings {
				got = append(got, f.Tag)
			}

			if len(got) != len(tt.wantTags) {
				t.Fatalf("auditRows() tags = %v, want %v (findings: %v)", got, tt.wantTags, findings)
			}
			for i := range tt.wantTags {
				if got[i] != tt.wantTags[i] {
					t.Errorf("finding %d tag = %s, want %s", i, got[i], tt.wantTags[i])
				}
			}
		})
	}
}

func TestAuditRows_DuplicateListsAllPositions(t *testing.T) {
	rows := [][]string{
		{"2024-01-01", "1", "2"},
		{"2024-01-02", "1", "2"},
		{"2024-01-01", "3", "4"},
	}

	var dup *Finding
	findings := auditRows(rows)
	for i := range findings {
		if findings[i].Tag == tagDup {
			dup = &findings[i]
		}
	}

	if dup == nil {
		t.Fatalf("auditRows() = %v, want a %s finding", findings, tagDup)
	}
	// Anchored to the last occurrence, the row an overwrite would target.
	if dup.Position != 3 {
		t.Errorf("duplicate finding position = %d, want 3", dup.Position)
	}
	if !strings.Contains(dup.Detail, "[1 3]") {
		t.Errorf("duplicate detail = %q, want it to list rows [1 3]", dup.Detail)
	}
}

func TestAuditRows_JunkKeysStillCollide(t *testing.T) {
	rows := [][]string{
		{"note", "1", "2"},
		{"note", "1", "2"},
	}

	counts := map[string]int{}
	for _, f := range auditRows(rows) {
		counts[f.Tag]++
	}

	if counts[tagBad] != 2 {
		t.Errorf("got %d %s findings, want 2 (one per unparseable date)", counts[tagBad], tagBad)
	}
	if counts[tagDup] != 1 {
		t.Errorf("got %d %s findings, want 1 (non-date keys still collide)", counts[tagDup], tagDup)
	}
}
