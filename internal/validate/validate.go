// Package validate implements the validation engine: it traverses an
// archive, loads each band's tail/head, opens each block index, and
// verifies per-file and per-block digests against the companion data
// file, recording a finding per discrepancy rather than aborting on the
// first one.
package validate

import (
	"fmt"

	"github.com/Priyanshu23/duraarchive/internal/archive"
	"github.com/Priyanshu23/duraarchive/internal/derrors"
)

// Finding is one discrepancy (or informational note) produced while
// validating an archive.
type Finding struct {
	Band  string
	Block int // -1 if not block-specific
	*derrors.Error
}

func (f Finding) String() string {
	if f.Block >= 0 {
		return fmt.Sprintf("band %s block %06d: %v", f.Band, f.Block, f.Error)
	}
	return fmt.Sprintf("band %s: %v", f.Band, f.Error)
}

// Report is the result of validating one archive.
type Report struct {
	Findings []Finding
}

// OK reports whether validation produced no findings at all.
func (r *Report) OK() bool { return len(r.Findings) == 0 }

// Archive opens and validates the archive at path, per spec.md §4.7. A
// non-nil error here means the archive itself could not be opened at all
// (bad header, missing directory) or its root directory could not be
// listed; everything past that point is reported as Findings, never as a
// returned error, so a single corrupted block never hides findings from
// subsequent blocks or bands.
func Archive(path string) (*Report, error) {
	a, err := archive.Open(path)
	if err != nil {
		return nil, err
	}

	bands, err := a.ListBands()
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, bn := range bands {
		report.Findings = append(report.Findings, validateBand(a, bn)...)
	}
	return report, nil
}

func validateBand(a *archive.Archive, bn string) []Finding {
	var findings []Finding

	r := a.OpenBandReader(bn)
	if r.HeadErr() != nil {
		findings = append(findings, Finding{Band: bn, Block: -1,
			Error: derrors.E(derrors.MissingRecord, bn, r.HeadErr())})
	}

	var blockNumbers []int
	if r.IsFinished() {
		tail, err := r.ReadTail()
		if err != nil {
			findings = append(findings, Finding{Band: bn, Block: -1,
				Error: derrors.E(derrors.MissingRecord, bn, err)})
		} else {
			for i := 0; i < int(tail.BlockCount); i++ {
				blockNumbers = append(blockNumbers, i)
			}
		}
	} else {
		findings = append(findings, Finding{Band: bn, Block: -1,
			Error: &derrors.Error{Kind: derrors.MissingRecord, Path: bn, Detail: "band tail absent: band is unfinished"}})
		nums, err := r.BlockNumbers()
		if err != nil {
			findings = append(findings, Finding{Band: bn, Block: -1,
				Error: derrors.E(derrors.Other, bn, err)})
			return findings
		}
		blockNumbers = nums
	}

	for _, n := range blockNumbers {
		br, err := r.OpenBlockReader(n)
		if err != nil {
			findings = append(findings, Finding{Band: bn, Block: n,
				Error: derrors.E(derrors.MissingRecord, bn, err)})
			continue
		}

		blockFindings, err := br.Verify()
		if err != nil {
			findings = append(findings, Finding{Band: bn, Block: n,
				Error: derrors.E(derrors.Other, bn, err)})
			br.Close()
			continue
		}
		for _, f := range blockFindings {
			findings = append(findings, Finding{Band: bn, Block: n, Error: f})
		}
		br.Close()
	}

	return findings
}
