package paystack

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referencePattern = regexp.MustCompile(`^EA_TRAIN_\d{13,}_[A-Z0-9]{6}$`)

func TestNewReferenceFormat(t *testing.T) {
	ref := NewReference("")
	assert.Regexp(t, referencePattern, ref)

	ref = NewReference("EA_TRAIN")
	assert.Regexp(t, referencePattern, ref)
}

func TestNewReferenceCustomPrefix(t *testing.T) {
	ref := NewReference("TEST")
	assert.Regexp(t, regexp.MustCompile(`^TEST_\d{13,}_[A-Z0-9]{6}$`), ref)
}

func TestNewReferenceDistinct(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		ref := NewReference("")
		_, dup := seen[ref]
		require.False(t, dup, "duplicate reference %s", ref)
		seen[ref] = struct{}{}
	}
}
