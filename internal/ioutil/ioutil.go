// Package ioutil implements dura's two whole-record I/O primitives:
// atomic writes and typed-failure reads.
package ioutil

import (
	"io"
	"os"

	"github.com/google/renameio"

	"github.com/Priyanshu23/duraarchive/internal/derrors"
)

// Marshaler is anything that can serialize itself to bytes, satisfied by
// every record type in internal/record.
type Marshaler interface {
	Marshal() []byte
}

// WriteRecord serializes rec and writes the resulting bytes to path as a
// single atomic operation: the data is written to a temporary file in the
// same directory and renamed into place, so a process killed mid-write
// never leaves a torn record behind and a clean return always means path
// holds a complete file.
func WriteRecord(rec Marshaler, path string) error {
	b := rec.Marshal()
	if err := renameio.WriteFile(path, b, 0o644); err != nil {
		return derrors.E(derrors.Other, path, err)
	}
	return nil
}

// ReadRecord reads the whole file at path and hands its bytes to decode.
// ENOENT is reported via notFound (the caller supplies the Kind that's
// appropriate at its layer: NoSuchArchive, MissingRecord, ...); any other
// I/O failure is wrapped as derrors.Other; decode failures propagate
// unchanged (decode is expected to return a *derrors.Error{Kind: BadRecord}).
func ReadRecord[T any](path string, notFound derrors.Kind, decode func([]byte) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return zero, derrors.E(notFound, path, err)
		}
		return zero, derrors.E(derrors.Other, path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return zero, derrors.E(derrors.Other, path, err)
	}

	return decode(b)
}
