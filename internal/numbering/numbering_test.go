package numbering

import "testing"

func TestFormatBandAndBlock(t *testing.T) {
	if got := FormatBand(0); got != "0000" {
		t.Errorf("FormatBand(0) = %q, want %q", got, "0000")
	}
	if got := FormatBand(42); got != "0042" {
		t.Errorf("FormatBand(42) = %q, want %q", got, "0042")
	}
	if got := FormatBlock(0); got != "000000" {
		t.Errorf("FormatBlock(0) = %q, want %q", got, "000000")
	}
	if got := FormatBlock(7); got != "000007" {
		t.Errorf("FormatBlock(7) = %q, want %q", got, "000007")
	}
}

func TestBandDirNameRoundTrip(t *testing.T) {
	dir := BandDirName("0003")
	if dir != "b0003" {
		t.Fatalf("BandDirName = %q, want %q", dir, "b0003")
	}
	canonical, ok := ParseBandDirName(dir)
	if !ok || canonical != "0003" {
		t.Fatalf("ParseBandDirName(%q) = (%q, %v), want (0003, true)", dir, canonical, ok)
	}
}

func TestParseBandDirNameRejectsGarbage(t *testing.T) {
	cases := []string{"", "x", "b", "bxyz", "archive.header", "b0001-", "b-0001"}
	for _, name := range cases {
		if _, ok := ParseBandDirName(name); ok {
			t.Errorf("ParseBandDirName(%q) unexpectedly succeeded", name)
		}
	}
}

func TestCompareBandNumbers(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"0000", "0001", -1},
		{"0001", "0000", 1},
		{"0005", "0005", 0},
		{"0002", "0002-0001", -1},
		{"0002-0001", "0002", 1},
		{"0002-0001", "0002-0002", -1},
		{"0010", "0002", 1},
	}
	for _, c := range cases {
		if got := CompareBandNumbers(c.a, c.b); got != c.want {
			t.Errorf("CompareBandNumbers(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestBlockFileNames(t *testing.T) {
	if got := BlockDataName("000000"); got != "d000000.d" {
		t.Errorf("BlockDataName = %q", got)
	}
	if got := BlockIndexName("000000"); got != "d000000.i" {
		t.Errorf("BlockIndexName = %q", got)
	}
}
