// Package store persists episode traces: JSONL files for local runs,
// Redis lists when results from several hosts are collected centrally.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"pcgrl/types"
	"pcgrl/util"
)

// JSONLSink appends one JSON line per trace to
// <dir>/traces/<experiment>_<run>.jsonl.
type JSONLSink struct {
	Dir string
}

var _ types.TraceSink = &JSONLSink{}

func NewJSONLSink(dir string) *JSONLSink {
	return &JSONLSink{Dir: dir}
}

func (s *JSONLSink) Append(experiment string, run int, trace *types.Trace) error {
	bs, err := json.Marshal(trace)
	if err != nil {
		return err
	}
	file := path.Join(s.Dir, "traces", experiment+"_"+strconv.Itoa(run)+".jsonl")
	return util.AppendToFile(file, string(bs))
}

// RedisSink pushes marshalled traces onto a per-experiment list.
type RedisSink struct {
	client  *redis.Client
	timeout time.Duration
}

var _ types.TraceSink = &RedisSink{}

// NewRedisSink connects to the given address and verifies the server
// responds before any experiment starts.
func NewRedisSink(addr string) (*RedisSink, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis at %s unreachable: %w", addr, err)
	}
	return &RedisSink{client: client, timeout: 5 * time.Second}, nil
}

func (s *RedisSink) Append(experiment string, run int, trace *types.Trace) error {
	bs, err := json.Marshal(trace)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	key := "pcgrl:traces:" + experiment + ":" + strconv.Itoa(run)
	return s.client.RPush(ctx, key, string(bs)).Err()
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}
