package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"time"
)

// GenerateObjectName produces a collision-resistant object name from an
// original filename, preserving its extension. The name is a millisecond
// timestamp plus 8 random bytes, so two calls in the same process collide
// only with negligible probability.
func GenerateObjectName(original string) string {
	ext := path.Ext(original)
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(buf), ext)
}
