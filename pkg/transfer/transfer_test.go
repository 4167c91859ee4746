// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package transfer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"storj.io/bridge/pkg/client"
	"storj.io/bridge/pkg/keypair"
	"storj.io/bridge/pkg/transfer"
)

const (
	testBucketID = "e3eca45f4d294132c07b49f4"
	testFileID   = "e3eca45f4d294132c07b49f5"
	testFrameID  = "d4a1e45f4d294132c07b49aa"
	testPullTok  = "a264e12c7cda2acd0a8ed51d"
)

// mockBridge records the staging calls the orchestration makes.
type mockBridge struct {
	mu           sync.Mutex
	stagedShards []client.Shard
	entryBody    map[string]interface{}
	pointers     []client.Pointer
}

func (m *mockBridge) handler(t *testing.T) http.Handler {
	router := httprouter.New()

	router.POST("/frames", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		fmt.Fprintf(w, `{"id":"%s","user":"testuser@storj.io"}`, testFrameID)
	})

	router.PUT("/frames/:id", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		require.Equal(t, testFrameID, ps.ByName("id"))

		var body struct {
			Hash       string   `json:"hash"`
			Size       int64    `json:"size"`
			Index      int      `json:"index"`
			Challenges []string `json:"challenges"`
			Tree       []string `json:"tree"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		m.mu.Lock()
		m.stagedShards = append(m.stagedShards, client.Shard{
			Hash:       body.Hash,
			Size:       body.Size,
			Index:      body.Index,
			Challenges: body.Challenges,
			Tree:       body.Tree,
		})
		m.mu.Unlock()

		fmt.Fprintf(w, `{"hash":"%s","token":"token-%s","index":%d,"size":%d,"farmer":{"nodeID":"farmer-%d","address":"127.0.0.1","port":4000}}`,
			body.Hash, body.Hash, body.Index, body.Size, body.Index)
	})

	router.POST("/buckets/:id/files", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		m.mu.Lock()
		m.entryBody = body
		m.mu.Unlock()

		fmt.Fprintf(w, `{"id":"%s","bucket":"%s","filename":"%s","size":10}`,
			testFileID, ps.ByName("id"), body["filename"])
	})

	router.POST("/buckets/:id/tokens", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		fmt.Fprintf(w, `{"token":"%s","operation":"PULL","bucket":"%s"}`, testPullTok, ps.ByName("id"))
	})

	router.GET("/buckets/:id/files/:file", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		require.Equal(t, testPullTok, r.Header.Get("x-token"))

		m.mu.Lock()
		pointers := m.pointers
		m.mu.Unlock()

		require.NoError(t, json.NewEncoder(w).Encode(pointers))
	})

	return router
}

// fakeTransport is an in-memory ShardTransport.
type fakeTransport struct {
	mu       sync.Mutex
	pushed   map[string][]byte
	shards   map[string][]byte
	failHash string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		pushed: map[string][]byte{},
		shards: map[string][]byte{},
	}
}

func (f *fakeTransport) Push(ctx context.Context, farmer client.Farmer, token, hash string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if hash == f.failHash {
		return fmt.Errorf("push failed")
	}
	if token != "token-"+hash {
		return fmt.Errorf("unexpected token %q for shard %s", token, hash)
	}
	f.pushed[hash] = data
	return nil
}

func (f *fakeTransport) Pull(ctx context.Context, farmer client.Farmer, token, hash string, size int64) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.shards[hash]
	if !ok {
		return nil, fmt.Errorf("no such shard %s", hash)
	}
	return data, nil
}

func testEnv(ts *httptest.Server) client.Env {
	return client.Env{URL: ts.URL}
}

func TestStore(t *testing.T) {
	bridge := &mockBridge{}
	ts := httptest.NewServer(bridge.handler(t))
	defer ts.Close()

	transport := newFakeTransport()
	uploader := transfer.NewUploader(zaptest.NewLogger(t), testEnv(ts),
		transfer.FixedDemuxer{ShardSize: 4}, transfer.ChallengeAuditor{Challenges: 2}, transport)

	content := "abcdefghij"
	file, err := uploader.Store(context.Background(), testBucketID, "test.txt", "text/plain", strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, testFileID, file.ID)

	// every shard was staged with its audit material and pushed to the
	// assigned farmer
	require.Len(t, bridge.stagedShards, 3)
	require.Len(t, transport.pushed, 3)

	indexes := map[int]bool{}
	for _, shard := range bridge.stagedShards {
		indexes[shard.Index] = true
		assert.Len(t, shard.Challenges, 2)
		assert.Len(t, shard.Tree, 2)
		assert.Equal(t, shard.Hash, keypair.Hash160(transport.pushed[shard.Hash]))
	}
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true}, indexes)

	// the entry was registered from the staged frame
	require.NotNil(t, bridge.entryBody)
	assert.Equal(t, testFrameID, bridge.entryBody["frame"])
	assert.Equal(t, "test.txt", bridge.entryBody["filename"])
}

func TestStoreShardFailure(t *testing.T) {
	bridge := &mockBridge{}
	ts := httptest.NewServer(bridge.handler(t))
	defer ts.Close()

	transport := newFakeTransport()
	transport.failHash = keypair.Hash160([]byte("efgh"))

	uploader := transfer.NewUploader(zaptest.NewLogger(t), testEnv(ts),
		transfer.FixedDemuxer{ShardSize: 4}, transfer.ChallengeAuditor{Challenges: 2}, transport)

	_, err := uploader.Store(context.Background(), testBucketID, "test.txt", "text/plain", strings.NewReader("abcdefghij"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "push failed")

	// a failed shard must prevent the file entry from being registered
	assert.Nil(t, bridge.entryBody)
}

func TestStoreEmptyFile(t *testing.T) {
	bridge := &mockBridge{}
	ts := httptest.NewServer(bridge.handler(t))
	defer ts.Close()

	uploader := transfer.NewUploader(zaptest.NewLogger(t), testEnv(ts),
		transfer.FixedDemuxer{ShardSize: 4}, transfer.ChallengeAuditor{}, newFakeTransport())

	_, err := uploader.Store(context.Background(), testBucketID, "empty", "text/plain", strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no shards to store")
}

func TestResolve(t *testing.T) {
	bridge := &mockBridge{}
	ts := httptest.NewServer(bridge.handler(t))
	defer ts.Close()

	transport := newFakeTransport()
	hello, world := []byte("hello"), []byte("world")
	helloHash, worldHash := keypair.Hash160(hello), keypair.Hash160(world)
	transport.shards[helloHash] = hello
	transport.shards[worldHash] = world

	// pointers arrive out of order and with a parity shard mixed in
	bridge.pointers = []client.Pointer{
		{Hash: worldHash, Token: "t", Index: 1, Size: 5, Farmer: client.Farmer{Address: "127.0.0.1", Port: 4000}},
		{Hash: "ignored", Token: "t", Index: 2, Size: 5, Parity: true},
		{Hash: helloHash, Token: "t", Index: 0, Size: 5, Farmer: client.Farmer{Address: "127.0.0.1", Port: 4001}},
	}

	downloader := transfer.NewDownloader(zaptest.NewLogger(t), testEnv(ts), transport)

	var out bytes.Buffer
	err := downloader.Resolve(context.Background(), testBucketID, testFileID, &out)
	require.NoError(t, err)
	assert.Equal(t, "helloworld", out.String())
}

func TestResolveHashMismatch(t *testing.T) {
	bridge := &mockBridge{}
	ts := httptest.NewServer(bridge.handler(t))
	defer ts.Close()

	transport := newFakeTransport()
	transport.shards["deadbeef"] = []byte("corrupted data")

	bridge.pointers = []client.Pointer{
		{Hash: "deadbeef", Token: "t", Index: 0, Size: 14},
	}

	downloader := transfer.NewDownloader(zaptest.NewLogger(t), testEnv(ts), transport)

	err := downloader.Resolve(context.Background(), testBucketID, testFileID, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hash mismatch")
}

func TestResolveNoPointers(t *testing.T) {
	bridge := &mockBridge{}
	ts := httptest.NewServer(bridge.handler(t))
	defer ts.Close()

	downloader := transfer.NewDownloader(zaptest.NewLogger(t), testEnv(ts), newFakeTransport())

	err := downloader.Resolve(context.Background(), testBucketID, testFileID, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pointers")
}

func TestFixedDemuxer(t *testing.T) {
	shards, err := transfer.FixedDemuxer{ShardSize: 4}.Demux(context.Background(), strings.NewReader("abcdefgh"))
	require.NoError(t, err)
	require.Len(t, shards, 2)
	assert.Equal(t, []byte("abcd"), shards[0].Data)
	assert.Equal(t, []byte("efgh"), shards[1].Data)
	assert.Equal(t, 0, shards[0].Index)
	assert.Equal(t, 1, shards[1].Index)
}

func TestChallengeAuditor(t *testing.T) {
	challenges, tree, err := transfer.ChallengeAuditor{Challenges: 3}.Generate([]byte("data"))
	require.NoError(t, err)
	assert.Len(t, challenges, 3)
	assert.Len(t, tree, 3)

	// challenges are random, so two runs must not collide
	again, _, err := transfer.ChallengeAuditor{Challenges: 3}.Generate([]byte("data"))
	require.NoError(t, err)
	assert.NotEqual(t, challenges, again)
}
