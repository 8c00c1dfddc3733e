package views

import (
	"strings"
	"testing"
)

func sampleGrid() GridData {
	return GridData{
		Month:  "February",
		Header: []string{" 9 ", "10 ", "11 ", "12 ", "13 ", "14 ", "15 "},
		Labels: []string{"Read", "Drink Water"},
		Rows: [][]CellData{
			{{Value: "true", Recorded: true}, {}, {}, {}, {}, {}, {}},
			{{}, {Value: "12", Recorded: true}, {}, {}, {}, {}, {Value: "x", Recorded: true}},
		},
		TodayCol: 3,
	}
}

func TestRenderGridShowsLabelsAndMarks(t *testing.T) {
	out := RenderGrid(sampleGrid())
	for _, want := range []string{"February", "0 Read", "1 Drink Water", "•", "◦", "12", "x", "15"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in grid:\n%s", want, out)
		}
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected month, header and two rows, got %d lines:\n%s", len(lines), out)
	}
}

func TestRenderGridEmpty(t *testing.T) {
	data := sampleGrid()
	data.Labels = nil
	data.Rows = nil
	out := RenderGrid(data)
	if !strings.Contains(out, "no habits yet") {
		t.Fatalf("expected empty hint, got:\n%s", out)
	}
}

func TestCellText(t *testing.T) {
	cases := []struct {
		cell CellData
		want string
	}{
		{CellData{}, " ◦ "},
		{CellData{Value: "true", Recorded: true}, " • "},
		{CellData{Value: "x", Recorded: true}, " x "},
		{CellData{Value: "0", Recorded: true}, " 0 "},
	}
	for _, tc := range cases {
		if got := CellText(tc.cell); got != tc.want {
			t.Fatalf("CellText(%+v) = %q, want %q", tc.cell, got, tc.want)
		}
	}
}

func TestCellState(t *testing.T) {
	data := sampleGrid()
	data.HasSelection = true
	data.SelectedRow, data.SelectedCol = 1, 3
	if data.cellState(1, 3) != cellSelected {
		t.Fatal("selected cell should win over today")
	}
	if data.cellState(0, 3) != cellToday {
		t.Fatal("expected today column")
	}
	if data.cellState(0, 2) != cellNormal {
		t.Fatal("expected normal cell")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("unexpected truncate %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Fatalf("unexpected truncate %q", got)
	}
}

func TestRenderCommandLine(t *testing.T) {
	if got := RenderCommandLine("COMMAND", ": add x", "old"); got != ": add x" {
		t.Fatalf("command mode should show input, got %q", got)
	}
	if got := RenderCommandLine("NORMAL", ": ", "Error! please use format `delete 1`"); !strings.Contains(got, "delete 1") {
		t.Fatalf("normal mode should show message, got %q", got)
	}
	if got := RenderCommandLine("VALUE", "", ""); !strings.Contains(got, "esc") {
		t.Fatalf("value mode should prompt, got %q", got)
	}
}

func TestRenderStats(t *testing.T) {
	if RenderStats(StatsData{}) != "" {
		t.Fatal("expected empty stats without a label")
	}
	out := RenderStats(StatsData{Label: "Read", Type: "Boolean", CurrentStreak: 3, LongestStreak: 5, WeekRate: 42.857, Total: 9})
	for _, want := range []string{"Read", "boolean", "streak: 3", "best: 5", "week: 43%", "total: 9"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderAppLayout(t *testing.T) {
	out := RenderApp(AppData{
		Grid:        "grid",
		CommandLine: "cmd",
		StatusLine:  "saved",
		HelpPanel:   "help body",
		Footer:      "NORMAL",
	})
	for _, want := range []string{"grid", "cmd", "saved", "help body", "NORMAL"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	if RenderMarkdown("  ") != "" {
		t.Fatal("expected empty output for blank markdown")
	}
	if out := RenderMarkdown("# Keys\n\n- `q` quit"); !strings.Contains(out, "quit") {
		t.Fatalf("expected rendered markdown, got %q", out)
	}
}
