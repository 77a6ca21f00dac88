// Package loader reads the org hierarchy and user data files. Both are plain
// line-oriented text: one record per line, comma separated, no header.
package loader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/org-rollup/modules/org/domain/records"
	"github.com/iota-uz/org-rollup/pkg/logging"
)

var ErrInputNotFound = errors.New("input file not found")

const maxLineBytes = 1 << 20

// ValidateInputFile checks that path names an existing regular file.
func ValidateInputFile(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.Wrap(ErrInputNotFound, "empty path")
	}
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrInputNotFound, "%s", path)
		}
		return errors.Wrapf(err, "stat %s", path)
	}
	if fi.IsDir() {
		return errors.Wrapf(ErrInputNotFound, "%s is a directory", path)
	}
	if l := logging.FromContext(ctx); l != nil {
		l.WithField("path", path).Debug("Validated input file")
	}
	return nil
}

func LoadOrgs(ctx context.Context, path string) ([]records.OrgRecord, error) {
	return load(ctx, path, "org", records.ParseOrg)
}

func LoadUsers(ctx context.Context, path string) ([]records.UserRecord, error) {
	return load(ctx, path, "user", records.ParseUser)
}

func load[T any](ctx context.Context, path, entity string, parse func(string) (T, error)) ([]T, error) {
	if err := ValidateInputFile(ctx, path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	out, err := Parse(ctx, f, path, parse)
	if err != nil {
		return nil, err
	}
	if l := logging.FromContext(ctx); l != nil {
		l.WithFields(logrus.Fields{
			"path":         path,
			"entity":       entity,
			"entity_count": len(out),
		}).Info("Loaded data from file")
	}
	return out, nil
}

// Parse applies parse to every non-blank line of r. name only labels errors.
// A leading UTF-8 BOM and trailing carriage returns are dropped.
func Parse[T any](ctx context.Context, r io.Reader, name string, parse func(string) (T, error)) ([]T, error) {
	br := stripUTF8BOM(bufio.NewReader(r))
	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var out []T
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := parse(line)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", name, lineNo)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, errors.Wrapf(&records.FormatError{
				Line:    fmt.Sprintf("longer than %d bytes", maxLineBytes),
				Message: "Line too long in input file",
			}, "%s:%d", name, lineNo+1)
		}
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return out, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}
