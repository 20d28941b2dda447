package repertoire

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/viant/afs"
)

// Load reads a repertoire from a local path or URL. Gzip-compressed input is
// detected by its magic number. Files ending in .jsonl hold one entry per
// line with the character in the "name" field; anything else is a single
// JSON object keyed by character.
func Load(ctx context.Context, location string) (*Repertoire, error) {
	data, err := Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(strings.TrimSuffix(location, ".gz"), ".jsonl") {
		return DecodeLines(bytes.NewReader(data))
	}
	return Decode(data)
}

// Fetch downloads location through afs and transparently gunzips it.
func Fetch(ctx context.Context, location string) ([]byte, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening gzip %s: %w", location, err)
		}
		defer zr.Close()
		if data, err = io.ReadAll(zr); err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", location, err)
		}
	}
	return data, nil
}

// DecodeLines parses one JSON entry per line. Blank lines are skipped;
// malformed lines are errors carrying their line number.
func DecodeLines(r io.Reader) (*Repertoire, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var entries []*Entry
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var re rawEntry
		if err := json.Unmarshal(line, &re); err != nil {
			return nil, fmt.Errorf("parsing repertoire line %d: %w", lineNum, err)
		}
		e, err := convert(re.Name, re)
		if err != nil {
			return nil, fmt.Errorf("repertoire line %d: %w", lineNum, err)
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading repertoire: %w", err)
	}

	return New(entries...), nil
}
