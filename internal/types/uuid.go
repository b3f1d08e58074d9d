package types

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	UUID_PREFIX_STUDENT = "stud"
	UUID_PREFIX_PAYMENT = "pay"
	UUID_PREFIX_REQUEST = "req"
)

// GenerateUUID generates a lexicographically sortable unique identifier
func GenerateUUID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String()
}

// GenerateUUIDWithPrefix generates a unique identifier with a given prefix
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}
