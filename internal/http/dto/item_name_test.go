package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemNameDecoding(t *testing.T) {
	cases := map[string]ItemName{
		`{"name":"Lamp"}`:     "Lamp",
		`{"name":5}`:          "5",
		`{"name":2.50}`:       "2.5",
		`{"name":-1}`:         "-1",
		`{"name":true}`:       "true",
		`{"name":0}`:          "",
		`{"name":false}`:      "",
		`{"name":null}`:       "",
		`{"name":""}`:         "",
		`{"name":{"a":1}}`:    "",
		`{"name":["a"]}`:      "",
		`{"title":"ignored"}`: "",
	}
	for body, want := range cases {
		var item BulkItem
		require.NoError(t, json.Unmarshal([]byte(body), &item), body)
		require.Equal(t, want, item.Name, body)
	}
}
