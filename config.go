package chainmap

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// defaultHashDensity is the default ratio of entries to buckets.
	defaultHashDensity = 1.0

	// defaultInitialLength fills one cache line with bucket heads.
	defaultInitialLength = int(CacheLineSize / unsafe.Sizeof(ref(0)))
)

// Config defines configurable Table options.
type Config struct {
	initialLength int
	sizeHint      int
	density       float32
	logger        *zap.Logger
	maxLength     int
}

// WithInitialLength sets the initial length of the bucket array. The value
// is rounded up to a power of two.
func WithInitialLength(length int) func(*Config) {
	return func(c *Config) {
		c.initialLength = length
	}
}

// WithPresize configures a new Table with capacity enough to hold sizeHint
// entries without rebuilding its bucket index. If sizeHint is zero or
// negative, the value is ignored.
func WithPresize(sizeHint int) func(*Config) {
	return func(c *Config) {
		c.sizeHint = sizeHint
	}
}

// WithHashDensity sets the ratio of entries to buckets at which the bucket
// index grows. It must be positive and finite.
func WithHashDensity(density float32) func(*Config) {
	return func(c *Config) {
		c.density = density
	}
}

// WithLogger sets the logger that reports index rebuilds and capacity
// problems. Tables log nothing by default.
func WithLogger(logger *zap.Logger) func(*Config) {
	return func(c *Config) {
		c.logger = logger
	}
}

// withMaxBucketLength lowers the maximal bucket length so the fallback to
// a maximal index can be exercised in tests.
func withMaxBucketLength(length int) func(*Config) {
	return func(c *Config) {
		c.maxLength = length
	}
}

func newConfig(options []func(*Config)) Config {
	c := Config{
		initialLength: defaultInitialLength,
		density:       defaultHashDensity,
		maxLength:     maxBucketLength,
	}
	for _, o := range options {
		o(&c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

func (c *Config) validate() error {
	if err := validateDensity(c.density); err != nil {
		return err
	}
	if c.initialLength < 0 {
		return errors.Wrapf(ErrInvalidConfig, "initial length %d", c.initialLength)
	}
	if c.maxLength <= 0 || c.maxLength > maxBucketLength || c.maxLength&(c.maxLength-1) != 0 {
		return errors.Wrapf(ErrInvalidConfig, "maximal bucket length %d", c.maxLength)
	}
	return nil
}

func validateDensity(density float32) error {
	d := float64(density)
	if !(d > 0) || math.IsInf(d, 0) {
		return errors.Wrapf(ErrInvalidConfig, "hash density %v", density)
	}
	return nil
}
