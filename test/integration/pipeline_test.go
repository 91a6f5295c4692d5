//go:build integration

package integration

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/history"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func getHistory(t *testing.T, base string) history.History {
	t.Helper()
	resp, err := http.Get(base + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	h, err := history.Decode(body)
	require.NoError(t, err)
	return h
}

// Requires the api and a kafka-triggered recorder running against the same
// store.
func TestPipeline_ProbeRequestLandsInHistory(t *testing.T) {
	cfg := LoadCfg()
	WaitTCP(t, "kafka", cfg.KafkaBootstrap, 60*time.Second)

	before := len(getHistory(t, cfg.APIBase))
	PublishProto(t, cfg.KafkaBootstrap, cfg.Topic, []byte(uuid.NewString()), timestamppb.Now())

	require.Eventually(t, func() bool {
		return len(getHistory(t, cfg.APIBase)) == before+1
	}, 60*time.Second, time.Second)
}
