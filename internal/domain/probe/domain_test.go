package probe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutcome_JSON(t *testing.T) {
	b, err := json.Marshal(Record{Timestamp: 1, Outcome: NoResponse, LatencyMillis: 2})
	require.NoError(t, err)
	require.Equal(t, `{"timestamp":1,"result":"No Response","ping":2}`, string(b))

	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"timestamp":5,"result":"Success","ping":9}`), &r))
	require.Equal(t, Record{Timestamp: 5, Outcome: Success, LatencyMillis: 9}, r)
}

func TestOutcome_RejectsUnknown(t *testing.T) {
	var o Outcome
	require.Error(t, json.Unmarshal([]byte(`"Down"`), &o))
	require.Error(t, json.Unmarshal([]byte(`1`), &o))

	_, err := json.Marshal(Outcome(0))
	require.Error(t, err)
}
