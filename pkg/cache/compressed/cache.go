package compressed

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"io"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/composio/docsite/pkg/apis/cache"
)

const (
	cachePrefix  = "gz:"
	checksumSize = sha256.Size
)

// Cache gzips every body before handing it to the wrapped cache and appends a
// sha256 of the uncompressed content, verified on the way back out.
type Cache struct {
	cache cache.Cache
}

var _ cache.Cache = &Cache{}

func NewCompressedCache(c cache.Cache) *Cache {
	return &Cache{cache: c}
}

func (c *Cache) Get(key string) ([]byte, error) {
	b, err := c.cache.Get(cachePrefix + key)
	if err != nil {
		return nil, err
	}

	if len(b) < checksumSize {
		return nil, errors.Errorf("invalid cache item length %d for key %s", len(b), key)
	}

	data := b[:len(b)-checksumSize]
	var sum [checksumSize]byte
	copy(sum[:], b[len(b)-checksumSize:])
	return uncompress(data, sum)
}

func (c *Cache) Set(key string, content []byte, duration time.Duration) error {
	if len(content) == 0 {
		log.WithField("key", key).Warning("refusing to cache empty body")
		return nil
	}

	data, sum, err := compress(content)
	if err != nil {
		return errors.Wrapf(err, "compressing %s", key)
	}

	log.WithFields(log.Fields{
		"key":    key,
		"before": len(content),
		"after":  len(data),
	}).Debug("compressed cache entry")

	return c.cache.Set(cachePrefix+key, append(data, sum[:]...), duration)
}

func compress(value []byte) ([]byte, [checksumSize]byte, error) {
	sum := sha256.Sum256(value)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(value); err != nil {
		return nil, sum, err
	}
	if err := zw.Close(); err != nil {
		return nil, sum, err
	}
	return buf.Bytes(), sum, nil
}

func uncompress(value []byte, expected [checksumSize]byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(value))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}

	if sha256.Sum256(out) != expected {
		return nil, errors.New("checksum validation did not match")
	}
	return out, nil
}
