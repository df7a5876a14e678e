// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestChunkInfoMarshalJSON(t *testing.T) {
	started := time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		r := require.New(t)
		info := &ChunkInfo{
			Chunk:     Chunk{Index: 1, Start: 3, End: 5},
			Elapsed:   1500 * time.Millisecond,
			Name:      "calc",
			Processed: 2,
			Started:   started,
		}
		data, err := info.MarshalJSON()
		r.NoError(err)

		var m map[string]any
		r.NoError(json.Unmarshal(data, &m))
		r.Equal("calc", m["name"])
		r.Equal("success", m["state"])
		r.Equal("1.5s", m["elapsed"])
		r.EqualValues(1, m["index"])
		r.EqualValues(3, m["start"])
		r.EqualValues(5, m["end"])
		r.EqualValues(2, m["processed"])
		r.NotContains(m, "error")
	})

	t.Run("failed", func(t *testing.T) {
		r := require.New(t)
		info := &ChunkInfo{
			Chunk: Chunk{Index: 0, Start: 0, End: 4},
			Err:   errors.New("boom"),
			Name:  "calc",
		}
		data, err := info.MarshalJSON()
		r.NoError(err)

		var m map[string]any
		r.NoError(json.Unmarshal(data, &m))
		r.Equal("failed", m["state"])
		r.Equal("boom", m["error"])
		r.NotContains(m, "elapsed")
		r.NotContains(m, "started")
	})

	t.Run("via json.Marshal", func(t *testing.T) {
		r := require.New(t)
		data, err := json.Marshal(&ChunkInfo{Name: "rt"})
		r.NoError(err)
		r.Contains(string(data), `"state":"success"`)
	})
}

func TestChunkInfoString(t *testing.T) {
	r := require.New(t)

	info := &ChunkInfo{
		Chunk:     Chunk{Index: 2, Start: 4, End: 6},
		Elapsed:   time.Second,
		Name:      "calc",
		Processed: 2,
	}
	r.Equal("calc chunk 2 [4, 6): 2/2 in 1s (success)", info.String())

	info.Processed = 1
	info.Err = errors.New("boom")
	r.Contains(info.String(), "1/2")
	r.Contains(info.String(), "(failed boom)")
}
