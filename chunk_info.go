// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"encoding/json"
	"fmt"
	"time"
)

// A ChunkInfo is delivered to observers registered with
// [WithChunkObserver] once a worker has finished its chunk.
type ChunkInfo struct {
	Chunk     Chunk         // The range processed by the worker.
	Elapsed   time.Duration // Wall time spent by the worker, including Middleware.
	Err       error         // Nil on success, otherwise a *TransformError or *ChunkError.
	Name      string        // The value passed to [WithName].
	Processed int           // Elements transformed successfully.
	Started   time.Time     // Set before Middleware starts.
}

// MarshalJSON summarizes the ChunkInfo.
func (i *ChunkInfo) MarshalJSON() ([]byte, error) {
	p := struct {
		Elapsed   string    `json:"elapsed,omitzero"`
		End       int       `json:"end"`
		Error     string    `json:"error,omitzero"`
		Index     int       `json:"index"`
		Name      string    `json:"name,omitzero"`
		Processed int       `json:"processed"`
		Start     int       `json:"start"`
		Started   time.Time `json:"started,omitzero"`
		State     string    `json:"state"`
	}{
		End:       i.Chunk.End,
		Index:     i.Chunk.Index,
		Name:      i.Name,
		Processed: i.Processed,
		Start:     i.Chunk.Start,
		Started:   i.Started,
		State:     "success",
	}
	if i.Elapsed > 0 {
		p.Elapsed = i.Elapsed.String()
	}
	if i.Err != nil {
		p.Error = i.Err.Error()
		p.State = "failed"
	}
	return json.Marshal(p)
}

// String is for debugging use only.
func (i *ChunkInfo) String() string {
	state := "(success)"
	if i.Err != nil {
		state = fmt.Sprintf("(failed %v)", i.Err)
	}
	return fmt.Sprintf("%s %s: %d/%d in %s %s",
		i.Name, i.Chunk, i.Processed, i.Chunk.Len(), i.Elapsed, state)
}
