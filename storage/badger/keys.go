package badger

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/licitia/radar/core"
)

// Key prefixes for different data types
const (
	tenderRecordPrefix      = "tenrec"
	tenderDatePrefix        = "tenrecd"
	experienceRecordPrefix  = "exprec"
	experienceCompanyPrefix = "expcom"
	experienceIDSeq         = "exprecseq"
)

// makeTenderKey generates a key for a tender by ID.
func makeTenderKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", tenderRecordPrefix, id))
}

// makeTenderDateKey generates a composite key for the publication date index.
// Format: prefix:timestamp:id
func makeTenderDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := tenderDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialTenderDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialTenderDateKey(timestamp time.Time) []byte {
	prefix := tenderDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeExperienceKey generates a key for an experience by ID.
func makeExperienceKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", experienceRecordPrefix, id))
}

// normalizeCompanyKey lowercases and collapses whitespace so company lookups
// are insensitive to formatting differences in import files.
func normalizeCompanyKey(companyName string) string {
	return strings.Join(strings.Fields(strings.ToLower(companyName)), " ")
}

// makeExperienceCompanyKey generates a composite key for the company index.
// Format: prefix:company\x00id (the NUL byte terminates the variable-length
// company name so prefix scans cannot bleed into other companies).
func makeExperienceCompanyKey(companyName string, id core.ID) []byte {
	partial := makePartialExperienceCompanyKey(companyName)
	buf := make([]byte, len(partial)+8)
	offset := copy(buf, partial)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialExperienceCompanyKey generates a partial key for company queries.
func makePartialExperienceCompanyKey(companyName string) []byte {
	normalized := normalizeCompanyKey(companyName)
	prefix := experienceCompanyPrefix + ":"
	buf := make([]byte, 0, len(prefix)+len(normalized)+1)
	buf = append(buf, prefix...)
	buf = append(buf, normalized...)
	buf = append(buf, 0x00)
	return buf
}

// makeCheckpointKey generates a key for job checkpoints.
func makeCheckpointKey(jobName string) []byte {
	return []byte(fmt.Sprintf("%s:chkpt", jobName))
}
