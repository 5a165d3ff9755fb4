package storage

import (
	"bytes"
	"context"
	"crypto/md5" //nolint:gosec // etag only
	"encoding/hex"
	"io"
	"maps"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Memory keeps objects in a map. Presigned URLs point at baseURL and are
// not servable.
type Memory struct {
	baseURL string

	mu      sync.RWMutex
	buckets map[string]map[string]memoryObject
}

type memoryObject struct {
	info ObjectInfo
	data []byte
}

// NewMemory returns an empty Memory whose links start with baseURL.
func NewMemory(baseURL string) *Memory {
	return &Memory{baseURL: baseURL, buckets: make(map[string]map[string]memoryObject)}
}

func (m *Memory) EnsureBucket(_ context.Context, bucket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.buckets[bucket]; !ok {
		m.buckets[bucket] = make(map[string]memoryObject)
	}
	return nil
}

func (m *Memory) Put(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := m.EnsureBucket(ctx, bucket); err != nil {
		return ObjectInfo{}, err
	}

	sum := md5.Sum(data) //nolint:gosec // etag only
	info := ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Size:        int64(len(data)),
		ETag:        hex.EncodeToString(sum[:]),
		ContentType: opts.ContentType,
		Metadata:    maps.Clone(opts.Metadata),
		UpdatedAt:   time.Now(),
	}

	m.mu.Lock()
	m.buckets[bucket][key] = memoryObject{info: info, data: data}
	m.mu.Unlock()

	return info, nil
}

func (m *Memory) Stat(_ context.Context, bucket, key string) (ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.buckets[bucket][key]
	if !ok {
		return ObjectInfo{}, ErrObjectNotFound
	}
	return obj.info, nil
}

// Read returns the stored bytes of key.
func (m *Memory) Read(bucket, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.buckets[bucket][key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return bytes.Clone(obj.data), nil
}

func (m *Memory) Delete(_ context.Context, bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buckets[bucket], key)
	return nil
}

func (m *Memory) PresignGet(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(int64(expiry/time.Second), 10))
	return m.baseURL + url.PathEscape(bucket) + "/" + url.PathEscape(key) + "?" + q.Encode(), nil
}

func (m *Memory) Close() error { return nil }
