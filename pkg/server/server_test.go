package server

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func intPtr(n int) *int { return &n }

// run feeds values to a fresh server and returns every raw value it wrote.
func run(t *testing.T, cfg config.ServerConfig, dict *dictionary.Dictionary, values ...any) []msgpack.RawMessage {
	t.Helper()
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, v := range values {
		require.NoError(t, enc.Encode(v))
	}

	var out bytes.Buffer
	srv := NewServerWithIO(dict, cfg, 2, &in, &out)
	require.NoError(t, srv.Start())

	var raws []msgpack.RawMessage
	dec := msgpack.NewDecoder(&out)
	for {
		raw, err := dec.DecodeRaw()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		raws = append(raws, raw)
	}
	return raws
}

func newDict() *dictionary.Dictionary {
	return dictionary.New(dictionary.WithLogger(logger.Discard()))
}

func quietConfig() config.ServerConfig {
	cfg := config.DefaultConfig().Server
	cfg.SendReady = false
	return cfg
}

func asResponse(t *testing.T, raw msgpack.RawMessage) Response {
	t.Helper()
	var resp Response
	require.NoError(t, msgpack.Unmarshal(raw, &resp))
	require.True(t, resp.OK, "expected a success response")
	return resp
}

func asError(t *testing.T, raw msgpack.RawMessage) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, msgpack.Unmarshal(raw, &resp))
	require.NotZero(t, resp.Code, "expected an error response")
	return resp
}

func TestReadySignal(t *testing.T) {
	raws := run(t, config.DefaultConfig().Server, newDict())
	require.Len(t, raws, 1)

	var ready map[string]string
	require.NoError(t, msgpack.Unmarshal(raws[0], &ready))
	assert.Equal(t, "ready", ready["status"])
}

func TestRoundTrips(t *testing.T) {
	dict := newDict()
	raws := run(t, quietConfig(), dict,
		Request{ID: "1", Op: OpInsert, Word: "Τεστ"},
		Request{ID: "2", Op: OpInsert, Word: "test"},
		Request{ID: "3", Op: OpContains, Word: "τεστ"},
		Request{ID: "4", Op: OpContains, Word: "tes"},
		Request{ID: "5", Op: OpSize},
		Request{ID: "6", Op: OpClosest, Word: "τεσ"},
		Request{ID: "7", Op: OpSuggest, Word: "tast", Threshold: intPtr(1)},
		Request{ID: "8", Op: OpDelete, Word: "TEST"},
		Request{ID: "9", Op: OpHealth},
	)
	require.Len(t, raws, 9)

	insert := asResponse(t, raws[0])
	assert.Equal(t, "1", insert.ID)
	assert.Equal(t, 1, insert.Size)
	assert.Equal(t, NoDistance, insert.Distance)

	assert.Equal(t, 2, asResponse(t, raws[1]).Size)
	assert.True(t, asResponse(t, raws[2]).Found)
	assert.False(t, asResponse(t, raws[3]).Found)
	assert.Equal(t, 2, asResponse(t, raws[4]).Size)

	closest := asResponse(t, raws[5])
	assert.Equal(t, []string{"ΤΕΣΤ"}, closest.Words)
	assert.True(t, closest.Found)

	suggest := asResponse(t, raws[6])
	assert.Equal(t, "TEST", suggest.Best)
	assert.Equal(t, 1, suggest.Distance)
	assert.Empty(t, suggest.Words, "per-request threshold of 1 keeps distance 1 out")

	assert.Equal(t, 1, asResponse(t, raws[7]).Size)
	health := asResponse(t, raws[8])
	assert.Equal(t, "9", health.ID)
	assert.Equal(t, 1, health.Size)

	assert.False(t, dict.Contains("test"))
}

func TestSuggestOnEmptyDictionary(t *testing.T) {
	raws := run(t, quietConfig(), newDict(), Request{ID: "s", Op: OpSuggest, Word: "abc"})
	require.Len(t, raws, 1)

	resp := asResponse(t, raws[0])
	assert.False(t, resp.Found)
	assert.Empty(t, resp.Best)
	assert.Equal(t, NoDistance, resp.Distance)
}

func TestErrorCodes(t *testing.T) {
	cfg := quietConfig()
	cfg.MaxWordLen = 5
	dict := newDict()

	raws := run(t, cfg, dict,
		Request{ID: "bad-char", Op: OpInsert, Word: "ab!"},
		Request{ID: "too-long", Op: OpClosest, Word: "abcdefg"},
		Request{ID: "spaces", Op: OpInsert, Word: "a b"},
		Request{ID: "no-op"},
		Request{ID: "neg", Op: OpClosest, Word: "a", Threshold: intPtr(-1)},
		Request{ID: "what", Op: "rename", Word: "a"},
		"not a request",
		Request{ID: "after", Op: OpSize},
	)
	require.Len(t, raws, 8)

	tests := []struct {
		id   string
		code int
	}{
		{"bad-char", CodeBadRequest},
		{"too-long", CodeBadRequest},
		{"spaces", CodeBadRequest},
		{"no-op", CodeBadRequest},
		{"neg", CodeBadRequest},
		{"what", CodeUnknownOp},
		{"", CodeUndecodable},
	}
	for i, tt := range tests {
		got := asError(t, raws[i])
		assert.Equal(t, tt.id, got.ID)
		assert.Equal(t, tt.code, got.Code, tt.id)
		assert.NotEmpty(t, got.Error)
	}

	after := asResponse(t, raws[7])
	assert.Equal(t, 0, after.Size, "failed requests leave the dictionary alone")
	assert.Equal(t, 0, dict.Size())
}

func TestErrorCode(t *testing.T) {
	_, err := newDict().Closest("ab?")
	require.Error(t, err)
	assert.Equal(t, CodeBadRequest, errorCode(err))
	assert.Equal(t, CodeInternalError, errorCode(errors.New("boom")))
}

func TestStopsOnEmptyInput(t *testing.T) {
	var out bytes.Buffer
	srv := NewServerWithIO(newDict(), quietConfig(), 2, bytes.NewReader(nil), &out)
	assert.NoError(t, srv.Start())
	assert.Zero(t, out.Len())
}
