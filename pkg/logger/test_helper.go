package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/rs/zerolog"
)

func NewTestLogger() Logger {
	return Nop()
}

// NewBufferedTestLogger writes JSON lines to w, debug level included.
func NewBufferedTestLogger(w io.Writer) Logger {
	return Logger{Logger: zerolog.New(w).Level(zerolog.DebugLevel)}
}

// DecodeEntries parses the JSON lines written by a buffered test logger.
func DecodeEntries(data []byte) ([]map[string]any, error) {
	var entries []map[string]any

	decoder := json.NewDecoder(bytes.NewReader(data))

	for {
		var entry map[string]any

		err := decoder.Decode(&entry)
		if errors.Is(err, io.EOF) {
			return entries, nil
		}

		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}
}
