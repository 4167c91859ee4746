// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/zeebo/errs"
)

// Error is the default client error class, used for local failures. Errors
// reported by the bridge are returned verbatim so callers see the exact
// server message.
var Error = errs.Class("bridge client error")

// The bridge closes idle data connections well before this, so the timeout
// only guards against dead peers.
var httpClient = &http.Client{Timeout: 10 * time.Minute}

func get(ctx context.Context, env Env, path string, query url.Values, result interface{}) error {
	return do(ctx, env, http.MethodGet, path, query, nil, nil, result)
}

func getWithHeaders(ctx context.Context, env Env, path string, query url.Values, headers map[string]string, result interface{}) error {
	return do(ctx, env, http.MethodGet, path, query, headers, nil, result)
}

func post(ctx context.Context, env Env, path string, body map[string]interface{}, result interface{}) error {
	return do(ctx, env, http.MethodPost, path, nil, nil, body, result)
}

func put(ctx context.Context, env Env, path string, body map[string]interface{}, result interface{}) error {
	return do(ctx, env, http.MethodPut, path, nil, nil, body, result)
}

func patch(ctx context.Context, env Env, path string, body map[string]interface{}, result interface{}) error {
	return do(ctx, env, http.MethodPatch, path, nil, nil, body, result)
}

func del(ctx context.Context, env Env, path string, query url.Values) error {
	return do(ctx, env, http.MethodDelete, path, query, nil, nil, nil)
}

// do issues a single request against the bridge. There are no retries: the
// outcome of the one attempt is the outcome of the call.
//
// The signed payload and the transmitted payload are the same string, so
// server-side signature verification sees byte-identical input.
func do(ctx context.Context, env Env, method, path string, query url.Values, headers map[string]string, body map[string]interface{}, result interface{}) error {
	var payload string
	var reqBody io.Reader

	switch method {
	case http.MethodGet, http.MethodDelete:
		if env.Key != nil {
			if query == nil {
				query = url.Values{}
			}
			query.Set("__nonce", nonce())
		}
		payload = query.Encode()
	default:
		if env.Key != nil {
			if body == nil {
				body = map[string]interface{}{}
			}
			body["__nonce"] = nonce()
		}
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return Error.Wrap(err)
			}
			payload = string(data)
			reqBody = bytes.NewReader(data)
		}
	}

	endpoint := env.URL + path
	if payload != "" && reqBody == nil {
		endpoint += "?" + payload
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return Error.Wrap(err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}
	signRequest(req, env, method, path, payload)

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Error.Wrap(err)
	}

	if !successful(resp.StatusCode) {
		return unexpectedResponse(resp.StatusCode, data)
	}

	if result != nil {
		return json.Unmarshal(data, result)
	}
	return nil
}

func successful(code int) bool {
	return (code >= 200 && code < 300) || code == http.StatusNotModified
}

// unexpectedResponse surfaces the server's own error message when the body
// carries one, otherwise reports the status code.
func unexpectedResponse(code int, body []byte) error {
	var serverError struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &serverError); err == nil && serverError.Error != "" {
		return errs.New("%s", serverError.Error)
	}
	return errs.New("Unexpected response code: %d", code)
}

// nonce is the freshness value appended to signed requests as __nonce.
// It is wall-clock based and carries no monotonicity guarantee.
func nonce() string {
	return strconv.FormatInt(time.Now().UnixNano()/int64(time.Millisecond), 10)
}
