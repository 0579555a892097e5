package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileWriter appends log lines to dir/name, rotating by size and once a day.
// Rotated files are gzipped and only the newest keep of them are retained.
type FileWriter struct {
	mu          sync.Mutex
	dir         string
	name        string
	maxSize     int64
	keep        int
	file        *os.File
	size        int64
	openedAt    time.Time
	seq         int
	now         func() time.Time
	compressing sync.WaitGroup
}

// NewFileWriter opens (or creates) dir/name for appending.
func NewFileWriter(dir, name string, maxSizeMB, keep int) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if keep <= 0 {
		keep = 5
	}
	fw := &FileWriter{
		dir:     dir,
		name:    name,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		keep:    keep,
		now:     time.Now,
	}
	if err := fw.open(); err != nil {
		return nil, err
	}
	return fw, nil
}

func (fw *FileWriter) path() string {
	return filepath.Join(fw.dir, fw.name)
}

func (fw *FileWriter) open() error {
	f, err := os.OpenFile(fw.path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	fw.file = f
	fw.size = info.Size()
	fw.openedAt = fw.now()
	return nil
}

// Write implements io.Writer.
func (fw *FileWriter) Write(p []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.size+int64(len(p)) > fw.maxSize || fw.now().Sub(fw.openedAt) > 24*time.Hour {
		if err := fw.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := fw.file.Write(p)
	fw.size += int64(n)
	return n, err
}

func (fw *FileWriter) rotate() error {
	if err := fw.file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	fw.seq++
	rotated := fmt.Sprintf("%s.%s-%04d", fw.path(), fw.now().Format("20060102-150405"), fw.seq%10000)
	if err := os.Rename(fw.path(), rotated); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rename log file: %w", err)
	}
	fw.compressing.Add(1)
	go func() {
		defer fw.compressing.Done()
		compressFile(rotated)
		fw.prune()
	}()
	return fw.open()
}

func compressFile(path string) {
	in, err := os.Open(path)
	if err != nil {
		return
	}
	defer in.Close()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return
	}
	gz := gzip.NewWriter(out)
	_, copyErr := io.Copy(gz, in)
	closeErr := gz.Close()
	out.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(path + ".gz")
		return
	}
	os.Remove(path)
}

func (fw *FileWriter) prune() {
	matches, err := filepath.Glob(fw.path() + ".*.gz")
	if err != nil || len(matches) <= fw.keep {
		return
	}
	// Timestamped suffixes sort chronologically.
	sort.Strings(matches)
	for _, path := range matches[:len(matches)-fw.keep] {
		os.Remove(path)
	}
}

// Close flushes pending compression and closes the current file.
func (fw *FileWriter) Close() error {
	fw.compressing.Wait()
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.file == nil {
		return nil
	}
	err := fw.file.Close()
	fw.file = nil
	return err
}
