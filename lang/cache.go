package lang

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

var (
	// globalCache stores resolved values keyed by (source_hash:name).
	// This allows efficient lookup without keeping full environments in
	// memory.
	globalCache sync.Map

	// globalRegistry tracks source metadata by source hash.
	globalRegistry sync.Map
)

// state tracks parsing state and top-level constant list for a source.
type state struct {
	once  sync.Once
	names []string // Constant names in environment order
	err   error
}

// Stream provides cached access to the constants of a deft source.
// It parses on first access and caches individual resolved values, not full
// environments. Values are immutable after construction, so cache entries
// can be shared safely across goroutines.
type Stream struct {
	reader    io.Reader
	source    string
	sourceKey string
	metadata  *state
}

// NewStream creates a stream from an io.Reader.
// The reader is not consumed until first constant access.
func NewStream(r io.Reader) *Stream {
	var s Stream

	s.reader = r
	s.metadata = new(state)

	return &s
}

// NewStreamFromString creates a stream from a source string.
func NewStreamFromString(source string) *Stream {
	// Create source key (hash) for caching - using xxhash3 for performance
	hash := xxh3.Hash([]byte(source))
	sourceKey := strconv.FormatUint(hash, 36)

	// Get or create metadata entry
	entry := new(state)
	value, _ := globalRegistry.LoadOrStore(sourceKey, entry)

	metadata, ok := value.(*state)
	if !ok {
		metadata = entry
	}

	return &Stream{
		source:    source,
		sourceKey: sourceKey,
		metadata:  metadata,
	}
}

// ensureParsed ensures the source has been read and translated.
// This extracts and caches individual constants on first access.
func (s *Stream) ensureParsed(ctx context.Context) error {
	s.metadata.once.Do(func() {
		// Read source if from reader
		if s.source == "" && s.reader != nil {
			// Wrap reader with async read-ahead for concurrent I/O.
			ra := readahead.NewReader(s.reader)
			defer ra.Close()

			data, err := io.ReadAll(ra)
			if err != nil {
				s.metadata.err = ErrReadInput.Wrap(err).
					With(slog.String("source", "reader"))

				return
			}

			s.source = string(data)

			// Generate source key - using xxhash3 for performance
			hash := xxh3.Hash(data)
			s.sourceKey = strconv.FormatUint(hash, 36)
		}

		// Translate the source into its resolved environment
		env, err := ParseString(ctx, s.source)
		if err != nil {
			s.metadata.err = err

			return
		}

		// Cache each constant individually and track names
		s.metadata.names = env.Names()
		for name, val := range env.All() {
			cacheKey := s.sourceKey + ":" + name
			globalCache.Store(cacheKey, val)
		}
	})

	return s.metadata.err
}

// GetConstant retrieves a resolved constant by name.
// Returns an error if translation fails or the constant is not defined.
func (s *Stream) GetConstant(
	ctx context.Context,
	name string,
) (*Value, error) {
	err := s.ensureParsed(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := s.sourceKey + ":" + name
	if value, ok := globalCache.Load(cacheKey); ok {
		if val, ok := value.(*Value); ok {
			return val, nil
		}

		return nil, ErrInvalidCache.With(slog.String("name", name))
	}

	return nil, ErrConstantNotFound.
		With(slog.String("name", name))
}

// Constants returns an iterator over all constants in environment order.
// If translation fails, the iterator yields no values.
func (s *Stream) Constants(ctx context.Context) iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		err := s.ensureParsed(ctx)
		if err != nil {
			return
		}

		for _, name := range s.metadata.names {
			cacheKey := s.sourceKey + ":" + name
			if value, ok := globalCache.Load(cacheKey); ok {
				if val, ok := value.(*Value); ok {
					if !yield(name, val) {
						return
					}
				}
			}
		}
	}
}

// Environment returns the complete resolved environment.
// This reconstructs the environment from cached constants.
// Use sparingly - prefer GetConstant or Constants for efficiency.
func (s *Stream) Environment(ctx context.Context) (*Environment, error) {
	err := s.ensureParsed(ctx)
	if err != nil {
		return nil, err
	}

	env := NewEnvironment()

	for name, val := range s.Constants(ctx) {
		env.Define(name, val)
	}

	return env, nil
}

// ParseReader translates input from an io.Reader into its resolved
// environment. The reader is wrapped with async read-ahead so data is
// pre-fetched while earlier chunks are processed.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Environment, error) {
	// With default options the cached stream can serve repeated inputs.
	if len(opts) == 0 {
		return NewStream(r).Environment(ctx)
	}

	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseString(ctx, string(data), opts...)
}

// ClearCache removes all cached constants and source metadata.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache = sync.Map{}
	globalRegistry = sync.Map{}
}
