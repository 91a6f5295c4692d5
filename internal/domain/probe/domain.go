package probe

import (
	"encoding/json"
	"fmt"
	"time"
)

type Outcome int

const (
	Success Outcome = iota + 1
	NoResponse
)

const (
	wireSuccess    = "Success"
	wireNoResponse = "No Response"
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return wireSuccess
	case NoResponse:
		return wireNoResponse
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case wireSuccess:
		return Success, nil
	case wireNoResponse:
		return NoResponse, nil
	default:
		return 0, fmt.Errorf("unknown outcome %q", s)
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	switch o {
	case Success, NoResponse:
		return json.Marshal(o.String())
	default:
		return nil, fmt.Errorf("marshal outcome: invalid value %d", int(o))
	}
}

func (o *Outcome) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("outcome must be a string: %w", err)
	}
	v, err := ParseOutcome(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o Outcome) MarshalYAML() (any, error) { return o.String(), nil }

// Record is one probe observation. Field order is the wire order.
type Record struct {
	Timestamp     int64   `json:"timestamp" yaml:"timestamp"`
	Outcome       Outcome `json:"result" yaml:"result"`
	LatencyMillis int64   `json:"ping" yaml:"ping"`
}

func (r Record) Time() time.Time { return time.Unix(r.Timestamp, 0).UTC() }
