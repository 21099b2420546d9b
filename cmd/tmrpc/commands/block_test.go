package commands

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startNode runs a stub node that answers every call with an empty result and
// records the params of the last request.
func startNode(t *testing.T, lastParams *json.RawMessage) {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := ioutil.ReadAll(r.Body)
		require.NoError(t, err)

		var req struct {
			ID     json.RawMessage `json:"id"`
			Params json.RawMessage `json:"params"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		*lastParams = req.Params

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":{}}`))
	}))
	t.Cleanup(ts.Close)

	viper.Reset()
	viper.Set(flagRemote, ts.URL)
}

func TestBlockHeightZeroMeansLatest(t *testing.T) {
	var lastParams json.RawMessage
	startNode(t, &lastParams)

	cases := []struct {
		height int64
		want   string
	}{
		{0, `{}`},
		{-1, `{}`},
		{7, `{"height": "7"}`},
	}
	for _, tc := range cases {
		blockHeight = tc.height
		require.NoError(t, BlockCmd.RunE(BlockCmd, nil))
		assert.JSONEq(t, tc.want, string(lastParams))
	}
	blockHeight = 0
}

func TestValidatorsZeroValuesOmitted(t *testing.T) {
	var lastParams json.RawMessage
	startNode(t, &lastParams)

	validatorHeight, page, perPage = 0, 0, 0
	require.NoError(t, ValidatorsCmd.RunE(ValidatorsCmd, nil))
	assert.JSONEq(t, `{}`, string(lastParams))

	validatorHeight, page, perPage = 5, 1, 30
	require.NoError(t, ValidatorsCmd.RunE(ValidatorsCmd, nil))
	assert.JSONEq(t, `{"height": "5", "page": "1", "per_page": "30"}`, string(lastParams))
	validatorHeight, page, perPage = 0, 0, 0
}
