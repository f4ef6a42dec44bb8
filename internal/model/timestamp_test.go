package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestampJSON(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 3, 5, 7, 8, 9, 123456789, time.FixedZone("X", 3*3600)))

	payload, err := json.Marshal(ts)
	require.NoError(t, err)
	require.Equal(t, `"2024-03-05T04:08:09.123Z"`, string(payload))

	var back Timestamp
	require.NoError(t, json.Unmarshal(payload, &back))
	require.Equal(t, ts.String(), back.String())
}

func TestUserJSONFieldNames(t *testing.T) {
	user := User{
		ID:        1,
		Username:  "alice",
		Email:     "a@b.com",
		CreatedAt: NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	payload, err := json.Marshal(user)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1,"username":"alice","email":"a@b.com","createdAt":"2024-01-01T00:00:00.000Z"}`, string(payload))
}
