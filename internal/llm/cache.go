package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedClient memoizes successful completions from an inner Client,
// keyed by a digest of the full request. Errors are never cached.
type CachedClient struct {
	inner Client
	cache *lru.Cache[string, Completion]
}

// NewCachedClient wraps inner with an LRU cache holding up to size
// completions.
func NewCachedClient(inner Client, size int) (*CachedClient, error) {
	c, err := lru.New[string, Completion](size)
	if err != nil {
		return nil, err
	}
	return &CachedClient{inner: inner, cache: c}, nil
}

// Model returns the inner client's default model identifier.
func (c *CachedClient) Model() string {
	return c.inner.Model()
}

// Complete returns a cached completion when an identical request was
// answered before; otherwise it delegates to the inner client and stores
// the result. A hit reports zero usage, since no tokens are billed.
func (c *CachedClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	key := cacheKey(req)
	if hit, ok := c.cache.Get(key); ok {
		hit.Usage = Usage{}
		return &hit, nil
	}

	comp, err := c.inner.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, *comp)

	out := *comp
	return &out, nil
}

func cacheKey(req Request) string {
	h := sha256.New()
	io.WriteString(h, req.Model)
	h.Write([]byte{0})
	io.WriteString(h, req.System)
	h.Write([]byte{0})
	io.WriteString(h, req.User)
	h.Write([]byte{0})
	fmt.Fprintf(h, "%g", req.Temperature)
	return hex.EncodeToString(h.Sum(nil))
}
