package display

import (
	"strings"
	"testing"
)

func TestTable_EmptyHeaders(t *testing.T) {
	if got := NewTable([]string{}).Render(); got != "" {
		t.Errorf("Render() with empty headers = %q, want empty", got)
	}
}

func TestTable_BasicRender(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable([]string{"Prayer", "Athan", "Iqamah"})
	tbl.AddRow([]string{"Fajr", "05:17", "05:37"})
	tbl.AddRow([]string{"Sunrise", "06:48", ""})

	want := "" +
		"  Prayer   Athan  Iqamah\n" +
		"  ───────  ─────  ──────\n" +
		"  Fajr     05:17  05:37 \n" +
		"  Sunrise  06:48        \n"
	if got := tbl.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}

func TestTable_WidthCountsRunes(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable([]string{"Day", "Fajr"})
	tbl.AddRow([]string{"Çarşamba", "05:06"})

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	// "Çarşamba" is 8 runes, so the Fajr column starts at the same rune
	// offset on every line.
	header := []rune(lines[0])
	data := []rune(lines[2])
	if string(header[12:16]) != "Fajr" || string(data[12:17]) != "05:06" {
		t.Errorf("misaligned columns:\n%s", strings.Join(lines, "\n"))
	}
}

func TestTable_RowStyles(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	tbl := NewTable([]string{"Prayer", "Athan"})
	tbl.AddStyledRow(Faded, []string{"Fajr", "05:17"})
	tbl.AddRow([]string{"Dhuhr", "12:13"})
	tbl.AddRow([]string{"Asr", "15:02"})
	tbl.SetHighlightRow(1)
	tbl.SetHighlightRow(99) // ignored

	got := tbl.Render()
	if !strings.Contains(got, dim+"Fajr ") {
		t.Errorf("faded row not dimmed:\n%q", got)
	}
	if !strings.Contains(got, bold+cyan+"Dhuhr ") {
		t.Errorf("highlighted row not accented:\n%q", got)
	}
	if strings.Contains(got, cyan+"Asr") || strings.Contains(got, dim+"Asr") {
		t.Errorf("plain row was styled:\n%q", got)
	}
}

func TestTable_Notes(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable([]string{"Prayer", "Athan"})
	tbl.AddRow([]string{"Isha*", "00:37"})
	tbl.AddNote("* set by the one-seventh high latitude rule")

	got := tbl.Render()
	if !strings.HasSuffix(got, "\n\n  * set by the one-seventh high latitude rule\n") {
		t.Errorf("note missing or misplaced:\n%s", got)
	}
}

func TestFormatRow_MissingCells(t *testing.T) {
	got := formatRow([]string{"A"}, []int{3, 2})
	if got != "A      " {
		t.Errorf("formatRow = %q, want %q", got, "A      ")
	}
}
