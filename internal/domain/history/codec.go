package history

import (
	"fmt"

	"github.com/NordCoder/Uptimer/internal/domain/probe"
	jsoniter "github.com/json-iterator/go"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// wireRecord makes every field of a stored record mandatory.
type wireRecord struct {
	Timestamp *int64         `json:"timestamp"`
	Outcome   *probe.Outcome `json:"result"`
	Ping      *int64         `json:"ping"`
}

func Encode(h History) ([]byte, error) {
	if h == nil {
		h = History{}
	}
	b, err := codec.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return b, nil
}

func Decode(b []byte) (History, error) {
	var raw []*wireRecord
	if err := codec.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if raw == nil {
		// a stored JSON null is not a history
		return nil, fmt.Errorf("%w: value is null", ErrDecode)
	}
	h := make(History, 0, len(raw))
	for i, w := range raw {
		r, err := w.record()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrDecode, i, err)
		}
		h = append(h, r)
	}
	return h, nil
}

func (w *wireRecord) record() (probe.Record, error) {
	switch {
	case w == nil:
		return probe.Record{}, fmt.Errorf("record is null")
	case w.Timestamp == nil:
		return probe.Record{}, fmt.Errorf("missing field timestamp")
	case w.Outcome == nil:
		return probe.Record{}, fmt.Errorf("missing field result")
	case w.Ping == nil:
		return probe.Record{}, fmt.Errorf("missing field ping")
	}
	return probe.Record{Timestamp: *w.Timestamp, Outcome: *w.Outcome, LatencyMillis: *w.Ping}, nil
}
