package wpress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wooport/wooport/internal/domain"
)

// Header layout of an All-in-One WP Migration archive entry
const (
	nameSize   = 255
	sizeSize   = 14
	mtimeSize  = 12
	prefixSize = 4096
	HeaderSize = nameSize + sizeSize + mtimeSize + prefixSize
)

// Entry describes one file stored in the archive
type Entry struct {
	Name   string
	Prefix string
	Size   int64
	MTime  int64
}

// Path returns the entry's path inside the archive
func (e Entry) Path() string {
	if e.Prefix == "" || e.Prefix == "." {
		return e.Name
	}
	return e.Prefix + "/" + e.Name
}

// Walk calls fn for each entry with a reader limited to the entry's content.
// fn may leave the content unread. The walk ends at a short or empty header.
func Walk(r io.ReadSeeker, fn func(Entry, io.Reader) error) error {
	header := make([]byte, HeaderSize)
	var pos int64

	for {
		if _, err := io.ReadFull(r, header); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return err
		}

		entry, ok := parseHeader(header)
		if !ok {
			return nil
		}
		pos += HeaderSize

		if err := fn(entry, io.LimitReader(r, entry.Size)); err != nil {
			return err
		}

		pos += entry.Size
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return fmt.Errorf("%w: seek past %s: %v", domain.ErrInvalidArchive, entry.Name, err)
		}
	}
}

func parseHeader(header []byte) (Entry, bool) {
	name := field(header[:nameSize])
	size, err := strconv.ParseInt(field(header[nameSize:nameSize+sizeSize]), 10, 64)
	if name == "" || err != nil || size < 0 {
		return Entry{}, false
	}

	mtime, _ := strconv.ParseInt(field(header[nameSize+sizeSize:nameSize+sizeSize+mtimeSize]), 10, 64)

	return Entry{
		Name:   name,
		Prefix: field(header[nameSize+sizeSize+mtimeSize:]),
		Size:   size,
		MTime:  mtime,
	}, true
}

func field(b []byte) string {
	return strings.TrimSpace(string(bytes.ReplaceAll(b, []byte{0}, nil)))
}

// WantedForMigration selects the files the migration needs: the database dump,
// product exports, CSV files and package.json
func WantedForMigration(name string) bool {
	return name == "database.sql" ||
		strings.Contains(name, "product") ||
		strings.HasSuffix(name, ".csv") ||
		name == "package.json"
}

// Unpacker extracts selected files from an archive into a flat directory
type Unpacker struct {
	want   func(name string) bool
	logger logrus.FieldLogger
}

// NewUnpacker creates an unpacker; a nil want selects WantedForMigration
func NewUnpacker(want func(name string) bool, logger logrus.FieldLogger) *Unpacker {
	if want == nil {
		want = WantedForMigration
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Unpacker{want: want, logger: logger}
}

// Unpack copies the wanted entries of archivePath into outputDir, keeping only
// their base names. It returns the entries written.
func (u *Unpacker) Unpack(ctx context.Context, archivePath, outputDir string) ([]Entry, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}

	var written []Entry
	err = Walk(f, func(entry Entry, content io.Reader) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !u.want(entry.Name) {
			return nil
		}

		target := filepath.Join(outputDir, filepath.Base(entry.Name))
		u.logger.WithFields(logrus.Fields{
			"entry": entry.Path(),
			"bytes": entry.Size,
		}).Info("[UNPACK] Extracting")

		if err := copyTo(target, content, entry.Size); err != nil {
			return fmt.Errorf("extract %s: %w", entry.Path(), err)
		}
		written = append(written, entry)
		return nil
	})

	return written, err
}

func copyTo(path string, content io.Reader, size int64) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.CopyN(out, content, size); err != nil {
		out.Close()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: truncated content", domain.ErrInvalidArchive)
		}
		return err
	}
	return out.Close()
}
