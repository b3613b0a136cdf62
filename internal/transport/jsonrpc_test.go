package transport

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(strings.NewReader(`{"jsonrpc":"2.0","method":"timeline_rows","params":{"view":"team"},"id":"a"}`))
	require.NoError(t, err)
	require.Equal(t, "timeline_rows", req.Method)
	require.Equal(t, "a", req.ID)
	require.JSONEq(t, `{"view":"team"}`, string(req.Params))

	req, err = ParseRequest(strings.NewReader(`{"jsonrpc":"2.0","method":"dashboard_status","params":null}`))
	require.NoError(t, err)
	require.Nil(t, req.ID)
}

func TestParseRequest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"truncated", `{"jsonrpc":"2.0",`, ErrRPCParse},
		{"not json", `hello`, ErrRPCParse},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, ErrRPCInvalidRequest},
		{"wrong version", `{"jsonrpc":"1.0","method":"dashboard_status"}`, ErrRPCInvalidRequest},
		{"array params", `{"jsonrpc":"2.0","method":"query_tasks","params":[1,2]}`, ErrRPCInvalidRequest},
		{"method not a string", `{"jsonrpc":"2.0","method":5}`, ErrRPCInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest(strings.NewReader(tt.body))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRPCCode(t *testing.T) {
	require.Equal(t, CodeInvalidParams, rpcCode("INVALID_PARAMS"))
	require.Equal(t, CodeMethodNotFound, rpcCode("METHOD_NOT_FOUND"))
	require.Equal(t, CodeInternalError, rpcCode("NOT_LOADED"))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, 7, CodeInvalidParams, "days must be positive", map[string]string{"code": "INVALID_PARAMS"})

	require.Equal(t, 200, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Nil(t, resp.Result)
	require.Equal(t, CodeInvalidParams, resp.Error.Code)
	require.Equal(t, "days must be positive", resp.Error.Message)
	require.EqualValues(t, 7, resp.ID)
}
