package errx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = errors.New("nfhook: sentinel")

func TestWith_IsMatchesSentinel(t *testing.T) {
	err := With(errSentinel, ": entry %d", 3)
	assert.True(t, errors.Is(err, errSentinel))
	assert.Contains(t, err.Error(), "sentinel")
	assert.Contains(t, err.Error(), "entry 3")
}

func TestWrap_NilCauseReturnsSentinel(t *testing.T) {
	err := Wrap(errSentinel, nil)
	assert.Same(t, errSentinel, err)
}

func TestWrap_IsMatchesSentinelAndUnwrapsCause(t *testing.T) {
	cause := errors.New("underlying failure")
	err := Wrap(errSentinel, cause)
	assert.True(t, errors.Is(err, errSentinel))
	assert.True(t, errors.Is(err, cause))
}
