package storage

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DatabaseFile is the name of the log inside the data directory.
const DatabaseFile = "api_requests.csv"

// FileLog keeps submissions in a CSV file, one record per line:
//
//	timestamp,sender_id,"artist","song","link"
//
// Free-text fields are always quoted with embedded quotes doubled. An absent
// link is written as an empty unquoted field.
type FileLog struct {
	path string
	mu   sync.Mutex
}

// NewFileLog prepares the data directory. The log file itself is created
// on first append.
func NewFileLog(dataDir string) (*FileLog, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure data dir: %w", err)
	}
	return &FileLog{path: filepath.Join(dataDir, DatabaseFile)}, nil
}

func (l *FileLog) Path() string { return l.path }

func (l *FileLog) Append(s Submission) error {
	line := EncodeRecord(s)
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open append: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	// a crash mid-write may have left a partial record behind
	if err := repairTail(f); err != nil {
		return fmt.Errorf("repair tail: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write append: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync append: %w", err)
	}
	return nil
}

func (l *FileLog) CountBySender(senderID string) (int, error) {
	count := 0
	err := l.scan(func(s Submission) {
		if s.SenderID == senderID {
			count++
		}
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (l *FileLog) LoadSubmissions() ([]Submission, error) {
	var out []Submission
	if err := l.scan(func(s Submission) { out = append(out, s) }); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *FileLog) scan(fn func(Submission)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open read: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	br := bufio.NewReader(f)
	for {
		line, err := br.ReadString('\n')
		if err == io.EOF {
			// an unterminated last line counts only when it is a whole record
			if s, ok := decodeTail(line); ok {
				fn(s)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		r := csv.NewReader(strings.NewReader(line))
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		rec, err := r.Read()
		if err != nil {
			continue
		}
		s, ok := DecodeRecord(rec)
		if !ok {
			continue
		}
		fn(s)
	}
}

// EncodeRecord renders one newline-terminated log line.
func EncodeRecord(s Submission) string {
	link := ""
	if s.Link != "" {
		link = quote(s.Link)
	}
	fields := []string{
		s.Timestamp.UTC().Format(time.RFC3339),
		quoteIfNeeded(s.SenderID),
		quote(s.Artist),
		quote(s.Song),
		link,
	}
	return strings.Join(fields, ",") + "\n"
}

// DecodeRecord maps parsed CSV fields back to a Submission. Records
// without at least sender, artist and song are rejected.
func DecodeRecord(rec []string) (Submission, bool) {
	if len(rec) < 4 {
		return Submission{}, false
	}
	s := Submission{SenderID: rec[1], Artist: rec[2], Song: rec[3]}
	if len(rec) > 4 {
		s.Link = rec[4]
	}
	if ts, err := time.Parse(time.RFC3339, rec[0]); err == nil {
		s.Timestamp = ts.UTC()
	}
	return s, true
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// quote keeps every record on one physical line.
func quote(s string) string {
	s = lineBreaks.Replace(s)
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, ",\"\r\n ") {
		return quote(s)
	}
	return s
}

// repairTail makes sure the next record starts on a fresh line. An
// unterminated last line that holds a whole record gets its newline back;
// anything else there is a torn write and is cut off.
func repairTail(f *os.File) error {
	st, err := f.Stat()
	if err != nil {
		return err
	}
	size := st.Size()
	cut, err := lastLineStart(f, size)
	if err != nil {
		return err
	}
	if cut == size {
		return nil
	}
	tail := make([]byte, size-cut)
	if _, err := f.ReadAt(tail, cut); err != nil {
		return err
	}
	if _, ok := decodeTail(string(tail)); ok {
		_, err := f.WriteString("\n")
		return err
	}
	return f.Truncate(cut)
}

// lastLineStart returns the offset just past the last newline, or 0.
func lastLineStart(f *os.File, size int64) (int64, error) {
	buf := make([]byte, 4096)
	end := size
	for end > 0 {
		start := end - int64(len(buf))
		if start < 0 {
			start = 0
		}
		chunk := buf[:end-start]
		if _, err := f.ReadAt(chunk, start); err != nil {
			return 0, err
		}
		if i := bytes.LastIndexByte(chunk, '\n'); i >= 0 {
			return start + int64(i) + 1, nil
		}
		end = start
	}
	return 0, nil
}

// decodeTail accepts an unterminated line only when it is a complete
// record: every quoted field closed, all five columns present and a valid
// timestamp.
func decodeTail(line string) (Submission, bool) {
	line = strings.TrimRight(line, "\r")
	if line == "" || strings.Count(line, `"`)%2 != 0 {
		return Submission{}, false
	}
	rec, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil || len(rec) != 5 {
		return Submission{}, false
	}
	if _, err := time.Parse(time.RFC3339, rec[0]); err != nil {
		return Submission{}, false
	}
	return DecodeRecord(rec)
}
