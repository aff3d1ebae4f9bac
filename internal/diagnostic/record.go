// Package diagnostic defines the record written for each multiboot check.
// The JSON field names and order form the NDJSON log schema and must not change.
package diagnostic

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// RecordID identifies multiboot check records within a shared debug log.
	RecordID = "multiboot_check"

	// Location is the source label stored in every record.
	Location = "check_multiboot"

	// Message is the human-readable description stored in every record.
	Message = "Kernel binary multiboot header check"
)

// Hypothesis classifies the outcome of a check.
type Hypothesis string

const (
	// HypothesisHeaderMissing means the magic is absent from the scanned window.
	HypothesisHeaderMissing Hypothesis = "A"

	// HypothesisOK means the header is visible to the bootloader.
	HypothesisOK Hypothesis = "OK"
)

// Data is the nested payload of a Record.
type Data struct {
	BinPath               string  `json:"bin_path"`
	FileSize              int64   `json:"file_size"`
	MagicFoundInFirst8K   bool    `json:"magic_found_in_first_8k"`
	MagicFileOffset       *int    `json:"magic_file_offset"`
	GrubScanLimit         int     `json:"grub_scan_limit"`
	First64BytesHex       string  `json:"first_64_bytes_hex"`
	FirstPTLoadFileOffset *uint32 `json:"first_pt_load_file_offset"`
	HeaderWithin8K        bool    `json:"header_within_8k"`
}

// Record is one diagnostic log entry.
type Record struct {
	ID           string     `json:"id"`
	Timestamp    int64      `json:"timestamp"`
	Location     string     `json:"location"`
	Message      string     `json:"message"`
	Data         Data       `json:"data"`
	HypothesisID Hypothesis `json:"hypothesisId"`
}

// Findings holds the raw results of inspecting one binary.
type Findings struct {
	BinPath      string
	FileSize     int64
	MagicOffset  int // negative when not found
	ScanLimit    int
	HeaderHex    string
	FirstPTLoad  uint32
	HasFirstLoad bool
}

// NewRecord assembles the record for findings observed at time now.
func NewRecord(f Findings, now time.Time) Record {
	found := f.MagicOffset >= 0
	within := found && f.MagicOffset < f.ScanLimit

	data := Data{
		BinPath:             f.BinPath,
		FileSize:            f.FileSize,
		MagicFoundInFirst8K: found,
		GrubScanLimit:       f.ScanLimit,
		First64BytesHex:     f.HeaderHex,
		HeaderWithin8K:      within,
	}
	if found {
		offset := f.MagicOffset
		data.MagicFileOffset = &offset
	}
	if f.HasFirstLoad {
		load := f.FirstPTLoad
		data.FirstPTLoadFileOffset = &load
	}

	hypothesis := HypothesisOK
	if !within {
		hypothesis = HypothesisHeaderMissing
	}

	return Record{
		ID:           RecordID,
		Timestamp:    now.UnixMilli(),
		Location:     Location,
		Message:      Message,
		Data:         data,
		HypothesisID: hypothesis,
	}
}

// Passed reports whether the header is within the bootloader's scan window.
func (r Record) Passed() bool {
	return r.Data.HeaderWithin8K
}

// MarshalLine encodes the record as a single NDJSON line including the
// trailing newline.
func (r Record) MarshalLine() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal diagnostic record: %w", err)
	}
	return append(data, '\n'), nil
}
