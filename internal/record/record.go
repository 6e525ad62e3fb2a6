// Package record defines dura's on-disk record schemas and their
// tagged-field binary framing.
//
// Every record type (de)serializes through google.golang.org/protobuf's
// low-level protowire primitives: a tag (field number + wire type)
// followed by a varint, length-delimited, or fixed-width value, the same
// framing the original dura tool got from the protobuf wire format. This
// package hand-writes that framing rather than depending on generated
// .pb.go stubs, but the bytes it produces follow the identical tag/varint/
// length-delimited shape, so round-trips are exact and unknown trailing
// fields are skipped rather than rejected, matching protobuf's forward
// compatibility story.
package record

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Priyanshu23/duraarchive/internal/derrors"
)

// FileType classifies a captured filesystem object.
type FileType int32

const (
	FileTypeRegular   FileType = 1
	FileTypeDirectory FileType = 2
	FileTypeSymlink   FileType = 3
)

func (t FileType) String() string {
	switch t {
	case FileTypeRegular:
		return "regular"
	case FileTypeDirectory:
		return "directory"
	case FileTypeSymlink:
		return "symlink"
	default:
		return fmt.Sprintf("file_type(%d)", int32(t))
	}
}

// ArchiveMagic is the exact magic string an ArchiveHeader must carry.
const ArchiveMagic = "dura backup archive"

// ArchiveHeader is the archive's single format marker.
type ArchiveHeader struct {
	Magic        string
	ReadVersion  int64
	WriteVersion int64
}

// BandHead marks the start of a band.
type BandHead struct {
	BandNumber     string
	StartUnixtime  int64
	SourceHostname string
}

// BandTail marks the (successful) end of a band.
type BandTail struct {
	BandNumber   string
	BlockCount   int64
	EndUnixtime  int64
}

// FileEntry describes one captured file, directory, or symlink within a
// block.
type FileEntry struct {
	Path     string
	Type     FileType
	Length   int64
	HasData  bool // true iff Length > 0, i.e. Offset/SHA1 are meaningful
	SHA1     [20]byte
	Offset   int64
}

// BlockIndex is the manifest of files stored in one block.
type BlockIndex struct {
	Files      []FileEntry
	DataSHA1   [20]byte
	DataLength int64
}

const (
	fieldArchiveMagic        = 1
	fieldArchiveReadVersion  = 2
	fieldArchiveWriteVersion = 3
)

// Marshal encodes h in dura's tagged-field wire format.
func (h *ArchiveHeader) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldArchiveMagic, protowire.BytesType)
	b = protowire.AppendString(b, h.Magic)
	b = protowire.AppendTag(b, fieldArchiveReadVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(h.ReadVersion))
	b = protowire.AppendTag(b, fieldArchiveWriteVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(h.WriteVersion))
	return b
}

// UnmarshalArchiveHeader decodes an ArchiveHeader, returning a
// *derrors.Error{Kind: BadRecord} on malformed framing.
func UnmarshalArchiveHeader(b []byte) (*ArchiveHeader, error) {
	h := &ArchiveHeader{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, badRecord("archive header", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case fieldArchiveMagic:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, badRecord("archive header magic", protowire.ParseError(n))
			}
			h.Magic = v
			b = b[n:]
		case fieldArchiveReadVersion:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, badRecord("archive header read_version", protowire.ParseError(n))
			}
			h.ReadVersion = int64(v)
			b = b[n:]
		case fieldArchiveWriteVersion:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, badRecord("archive header write_version", protowire.ParseError(n))
			}
			h.WriteVersion = int64(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, badRecord("archive header unknown field", protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return h, nil
}

const (
	fieldBandHeadNumber   = 1
	fieldBandHeadStart    = 2
	fieldBandHeadHostname = 3
)

// Marshal encodes h.
func (h *BandHead) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldBandHeadNumber, protowire.BytesType)
	b = protowire.AppendString(b, h.BandNumber)
	b = protowire.AppendTag(b, fieldBandHeadStart, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(h.StartUnixtime))
	b = protowire.AppendTag(b, fieldBandHeadHostname, protowire.BytesType)
	b = protowire.AppendString(b, h.SourceHostname)
	return b
}

// UnmarshalBandHead decodes a BandHead.
func UnmarshalBandHead(b []byte) (*BandHead, error) {
	h := &BandHead{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, badRecord("band head", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case fieldBandHeadNumber:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, badRecord("band head band_number", protowire.ParseError(n))
			}
			h.BandNumber = v
			b = b[n:]
		case fieldBandHeadStart:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, badRecord("band head start_unixtime", protowire.ParseError(n))
			}
			h.StartUnixtime = int64(v)
			b = b[n:]
		case fieldBandHeadHostname:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, badRecord("band head source_hostname", protowire.ParseError(n))
			}
			h.SourceHostname = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, badRecord("band head unknown field", protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return h, nil
}

const (
	fieldBandTailNumber = 1
	fieldBandTailCount  = 2
	fieldBandTailEnd    = 3
)

// Marshal encodes t.
func (t *BandTail) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldBandTailNumber, protowire.BytesType)
	b = protowire.AppendString(b, t.BandNumber)
	b = protowire.AppendTag(b, fieldBandTailCount, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(t.BlockCount))
	b = protowire.AppendTag(b, fieldBandTailEnd, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(t.EndUnixtime))
	return b
}

// UnmarshalBandTail decodes a BandTail.
func UnmarshalBandTail(b []byte) (*BandTail, error) {
	t := &BandTail{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, badRecord("band tail", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case fieldBandTailNumber:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, badRecord("band tail band_number", protowire.ParseError(n))
			}
			t.BandNumber = v
			b = b[n:]
		case fieldBandTailCount:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, badRecord("band tail block_count", protowire.ParseError(n))
			}
			t.BlockCount = int64(v)
			b = b[n:]
		case fieldBandTailEnd:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, badRecord("band tail end_unixtime", protowire.ParseError(n))
			}
			t.EndUnixtime = int64(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, badRecord("band tail unknown field", protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return t, nil
}

const (
	fieldFileEntryPath   = 1
	fieldFileEntryType   = 2
	fieldFileEntryLength = 3
	fieldFileEntrySHA1   = 4
	fieldFileEntryOffset = 5
)

// Marshal encodes e. The SHA1/Offset fields are omitted entirely when
// e.HasData is false, matching spec.md's "optional" content fields for
// zero-length entries (directories, empty files).
func (e *FileEntry) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldFileEntryPath, protowire.BytesType)
	b = protowire.AppendString(b, e.Path)
	b = protowire.AppendTag(b, fieldFileEntryType, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.Type))
	b = protowire.AppendTag(b, fieldFileEntryLength, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.Length))
	if e.HasData {
		b = protowire.AppendTag(b, fieldFileEntrySHA1, protowire.BytesType)
		b = protowire.AppendBytes(b, e.SHA1[:])
		b = protowire.AppendTag(b, fieldFileEntryOffset, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(e.Offset))
	}
	return b
}

// UnmarshalFileEntry decodes a FileEntry.
func UnmarshalFileEntry(b []byte) (*FileEntry, error) {
	e := &FileEntry{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, badRecord("file entry", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case fieldFileEntryPath:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, badRecord("file entry path", protowire.ParseError(n))
			}
			e.Path = v
			b = b[n:]
		case fieldFileEntryType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, badRecord("file entry file_type", protowire.ParseError(n))
			}
			e.Type = FileType(v)
			b = b[n:]
		case fieldFileEntryLength:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, badRecord("file entry data_length", protowire.ParseError(n))
			}
			e.Length = int64(v)
			b = b[n:]
		case fieldFileEntrySHA1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, badRecord("file entry data_sha1", protowire.ParseError(n))
			}
			if len(v) != 20 {
				return nil, badRecord("file entry data_sha1", fmt.Errorf("want 20 bytes, got %d", len(v)))
			}
			copy(e.SHA1[:], v)
			e.HasData = true
			b = b[n:]
		case fieldFileEntryOffset:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, badRecord("file entry data_offset", protowire.ParseError(n))
			}
			e.Offset = int64(v)
			e.HasData = true
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, badRecord("file entry unknown field", protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return e, nil
}

const (
	fieldBlockIndexFile       = 1
	fieldBlockIndexDataSHA1   = 2
	fieldBlockIndexDataLength = 3
)

// Marshal encodes idx.
func (idx *BlockIndex) Marshal() []byte {
	var b []byte
	for i := range idx.Files {
		sub := idx.Files[i].Marshal()
		b = protowire.AppendTag(b, fieldBlockIndexFile, protowire.BytesType)
		b = protowire.AppendBytes(b, sub)
	}
	b = protowire.AppendTag(b, fieldBlockIndexDataSHA1, protowire.BytesType)
	b = protowire.AppendBytes(b, idx.DataSHA1[:])
	b = protowire.AppendTag(b, fieldBlockIndexDataLength, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(idx.DataLength))
	return b
}

// UnmarshalBlockIndex decodes a BlockIndex.
func UnmarshalBlockIndex(b []byte) (*BlockIndex, error) {
	idx := &BlockIndex{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, badRecord("block index", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case fieldBlockIndexFile:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, badRecord("block index file", protowire.ParseError(n))
			}
			fe, err := UnmarshalFileEntry(v)
			if err != nil {
				return nil, err
			}
			idx.Files = append(idx.Files, *fe)
			b = b[n:]
		case fieldBlockIndexDataSHA1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, badRecord("block index data_sha1", protowire.ParseError(n))
			}
			if len(v) != 20 {
				return nil, badRecord("block index data_sha1", fmt.Errorf("want 20 bytes, got %d", len(v)))
			}
			copy(idx.DataSHA1[:], v)
			b = b[n:]
		case fieldBlockIndexDataLength:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, badRecord("block index data_length", protowire.ParseError(n))
			}
			idx.DataLength = int64(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, badRecord("block index unknown field", protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return idx, nil
}

func badRecord(what string, cause error) error {
	return derrors.E(derrors.BadRecord, what, cause)
}
