package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsoTime(t *testing.T) {
	var req ExpenseReq
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"12.30","date":"2026-02-01"}`), &req))
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *req.Date.ptr())
	assert.Equal(t, "12.3", req.Amount.String())

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2026-02-01T08:30:00+02:00"}`), &req))
	assert.True(t, req.Date.ptr().Equal(time.Date(2026, 2, 1, 6, 30, 0, 0, time.UTC)))

	req = ExpenseReq{}
	require.NoError(t, json.Unmarshal([]byte(`{"date":null}`), &req))
	assert.Nil(t, req.Date.ptr())

	require.NoError(t, json.Unmarshal([]byte(`{"date":""}`), &req))
	assert.Nil(t, req.Date.ptr())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"01/02/2026"}`), &req))
}
