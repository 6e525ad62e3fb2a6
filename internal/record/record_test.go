package record

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArchiveHeaderRoundTrip(t *testing.T) {
	h := &ArchiveHeader{Magic: ArchiveMagic, ReadVersion: 0, WriteVersion: 0}
	got, err := UnmarshalArchiveHeader(h.Marshal())
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(h, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestArchiveHeaderBadFraming(t *testing.T) {
	if _, err := UnmarshalArchiveHeader([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatal("expected an error for malformed framing")
	}
}

func TestBandHeadRoundTrip(t *testing.T) {
	h := &BandHead{BandNumber: "0003", StartUnixtime: 1234567890, SourceHostname: "box1"}
	got, err := UnmarshalBandHead(h.Marshal())
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(h, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBandTailRoundTrip(t *testing.T) {
	tt := &BandTail{BandNumber: "0003", BlockCount: 5, EndUnixtime: 1234567999}
	got, err := UnmarshalBandTail(tt.Marshal())
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(tt, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFileEntryRoundTripWithContent(t *testing.T) {
	e := &FileEntry{
		Path:    "/t/src/hello",
		Type:    FileTypeRegular,
		Length:  6,
		HasData: true,
		Offset:  0,
		SHA1:    [20]byte{1, 2, 3},
	}
	got, err := UnmarshalFileEntry(e.Marshal())
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(e, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFileEntryRoundTripDirectory(t *testing.T) {
	e := &FileEntry{Path: "/t/src/subdir", Type: FileTypeDirectory}
	got, err := UnmarshalFileEntry(e.Marshal())
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.HasData {
		t.Fatal("directory entry should not have HasData set")
	}
	if diff := cmp.Diff(e, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBlockIndexRoundTrip(t *testing.T) {
	idx := &BlockIndex{
		Files: []FileEntry{
			{Path: "a", Type: FileTypeRegular, Length: 3, HasData: true, Offset: 0, SHA1: [20]byte{9}},
			{Path: "b", Type: FileTypeDirectory},
			{Path: "c", Type: FileTypeSymlink, Length: 4, HasData: true, Offset: 3, SHA1: [20]byte{8}},
		},
		DataSHA1:   [20]byte{7, 7, 7},
		DataLength: 7,
	}
	got, err := UnmarshalBlockIndex(idx.Marshal())
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(idx, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFileTypeString(t *testing.T) {
	cases := map[FileType]string{
		FileTypeRegular:   "regular",
		FileTypeDirectory: "directory",
		FileTypeSymlink:   "symlink",
	}
	for ft, want := range cases {
		if got := ft.String(); got != want {
			t.Errorf("FileType(%d).String() = %q, want %q", ft, got, want)
		}
	}
}
