package assemble

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/viant/afs"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
)

// ReadDictionary parses tab-separated lines of word, comma-joined pinyin and
// frequency. Blank lines and lines starting with # are skipped; a missing
// frequency is 0.
func ReadDictionary(r io.Reader) ([]chai.DictEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []chai.DictEntry
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 || len(fields) > 3 || fields[0] == "" {
			return nil, fmt.Errorf("dictionary line %d: want word, pinyin and frequency", lineNum)
		}
		e := chai.DictEntry{Word: fields[0]}
		if fields[1] != "" {
			e.Pinyin = strings.Split(fields[1], ",")
		}
		if len(fields) == 3 && fields[2] != "" {
			f, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("dictionary line %d: frequency: %w", lineNum, err)
			}
			e.Frequency = f
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	return entries, nil
}

// LoadDictionary reads the dictionary at a local path or URL.
func LoadDictionary(ctx context.Context, location string) ([]chai.DictEntry, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary %s: %w", location, err)
	}
	return ReadDictionary(bytes.NewReader(data))
}

// WriteDictionary writes entries in the format read by ReadDictionary,
// most frequent first.
func WriteDictionary(w io.Writer, entries []chai.DictEntry) error {
	sorted := append([]chai.DictEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Frequency != sorted[j].Frequency {
			return sorted[i].Frequency > sorted[j].Frequency
		}
		return sorted[i].Word < sorted[j].Word
	})

	bw := bufio.NewWriter(w)
	for _, e := range sorted {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%d\n", e.Word, strings.Join(e.Pinyin, ","), e.Frequency); err != nil {
			return fmt.Errorf("writing dictionary: %w", err)
		}
	}
	return bw.Flush()
}

// WriteCodebook writes word, code and frequency lines in the given order.
func WriteCodebook(w io.Writer, entries []chai.CodeEntry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%d\n", e.Word, e.Code, e.Frequency); err != nil {
			return fmt.Errorf("writing codebook: %w", err)
		}
	}
	return bw.Flush()
}
