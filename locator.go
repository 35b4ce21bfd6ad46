package configfile

import (
	"errors"
	"fmt"
	"os"

	modellib "github.com/ygrebnov/model"

	"github.com/configfile-go/configfile/codec"
	"github.com/configfile-go/configfile/streams"
)

// Exported error categories returned by this package. These are used with
// wrapping so callers can detect error classes using errors.Is.
//   - ErrNotFound: no candidate directory contains the file and neither
//     create-if-missing nor a default can produce a result.
//   - ErrNoDefault: the file is missing or unreadable/corrupt and no default
//     value was configured.
//
// Decode, encode and write failures are never surfaced by Load; they always
// degrade to the default-fallback path or to one of the two errors above.
var (
	ErrNotFound  = errors.New("config file not found")
	ErrNoDefault = errors.New("no default config provided")
)

// Locator resolves a configuration file of type T across an ordered list of
// candidate directories and loads it.
//
// A Locator performs the following steps on Load:
//  1. Resolve the file path: the first directory whose join with the filename
//     exists on disk wins. With no match, create-if-missing selects the first
//     directory as the write target; otherwise resolution fails.
//  2. Read and decode the file at the resolved path using the codec.
//  3. On read or decode failure, fall back to the configured default value,
//     persisting it to the resolved path on a best-effort basis.
//
// A Locator is intended for a single call site; it is not safe for
// concurrent use.
type Locator[T any] struct {
	filename        string
	directories     []string
	defaultFn       func() *T
	createIfMissing bool
	codec           codec.Codec
	streams         streams.Streams
	modelInit       ModelInit[T]
}

// Option configures a Locator at construction time. Options are composable
// and can be passed to New in any order.
type Option[T any] func(*Locator[T])

// New constructs a Locator[T] for the given filename and applies all given
// options. Unless WithCodec is used, the codec is chosen from the filename
// extension at Load time. Panics if filename is empty.
func New[T any](filename string, opts ...Option[T]) *Locator[T] {
	if filename == "" {
		panic("configfile: New: filename cannot be empty")
	}
	l := &Locator[T]{filename: filename}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithDirectory appends one candidate directory to the search path. It can be
// given multiple times; directories are scanned in the order added. Panics if
// dir is empty (use "." for the current directory).
func WithDirectory[T any](dir string) Option[T] {
	return func(l *Locator[T]) {
		if dir == "" {
			panic("configfile: WithDirectory: dir cannot be empty")
		}
		l.directories = append(l.directories, dir)
	}
}

// WithDirectories appends several candidate directories at once, preserving
// their order. Panics if any entry is empty.
func WithDirectories[T any](dirs ...string) Option[T] {
	return func(l *Locator[T]) {
		for _, dir := range dirs {
			if dir == "" {
				panic("configfile: WithDirectories: dir cannot be empty")
			}
			l.directories = append(l.directories, dir)
		}
	}
}

// WithDefault registers a fallback value returned when no valid file is
// found. Each fallback produces a fresh copy of v, so mutating a returned
// config cannot corrupt later loads. For defaults holding maps, slices or
// pointers, prefer WithDefaultFn with a factory that builds them anew.
func WithDefault[T any](v T) Option[T] {
	return func(l *Locator[T]) {
		l.defaultFn = func() *T { c := v; return &c }
	}
}

// WithDefaultFn registers a factory invoked to construct the fallback value
// when no valid file is found. Panics if fn is nil.
func WithDefaultFn[T any](fn func() *T) Option[T] {
	return func(l *Locator[T]) {
		if fn == nil {
			panic("configfile: WithDefaultFn: fn cannot be nil")
		}
		l.defaultFn = fn
	}
}

// WithCreateIfMissing allows resolution to succeed even when no candidate
// directory contains the file: the first directory becomes the target path,
// so a configured default can be persisted there.
func WithCreateIfMissing[T any]() Option[T] {
	return func(l *Locator[T]) {
		l.createIfMissing = true
	}
}

// WithCodec sets the serialization codec explicitly, overriding the
// extension-based selection. Panics if c is nil.
func WithCodec[T any](c codec.Codec) Option[T] {
	return func(l *Locator[T]) {
		if c == nil {
			panic("configfile: WithCodec: codec cannot be nil")
		}
		l.codec = c
	}
}

// WithStreams wires user-facing message streams (for "created config"
// notifications and non-fatal warnings). Pass adapters from the companion
// streams package to route output to writers, buffers, logs, or nowhere.
func WithStreams[T any](s streams.Streams) Option[T] {
	return func(l *Locator[T]) {
		l.streams = s
	}
}

// ModelInit is a constructor hook that binds a model.Model[T] to the loaded
// *T. Return the constructed model.Model[T] or an error.
type ModelInit[T any] func(*T) (*modellib.Model[T], error)

// WithModel enables integration with github.com/ygrebnov/model. The provided
// init function is called during Load to build a model.Model[T] bound to the
// loaded (or fallback) value. The Locator then calls SetDefaults() to fill
// zero values from `default` struct tags and Validate() to check `validate`
// tags. Panics if init is nil.
func WithModel[T any](init ModelInit[T]) Option[T] {
	return func(l *Locator[T]) {
		if init == nil {
			panic("configfile: WithModel: init cannot be nil")
		}
		l.modelInit = init
	}
}

// ResolvePath scans the candidate directories in order and returns the join
// of the first directory containing the file with the filename. If none
// contains it:
//   - with no directories configured, the bare filename is returned (empty
//     prefix join);
//   - with create-if-missing enabled, the first directory is returned as the
//     target for later creation, even though the file does not exist there;
//   - otherwise ResolvePath fails with ErrNotFound.
func (l *Locator[T]) ResolvePath() (string, error) {
	var dir string
	found := false
	for _, d := range l.directories {
		if _, err := os.Stat(joinPath(d, l.filename)); err == nil {
			dir = d
			found = true
			break
		}
	}
	if len(l.directories) > 0 && !found {
		if !l.createIfMissing {
			return "", fmt.Errorf("%w: %s", ErrNotFound, l.filename)
		}
		dir = l.directories[0]
	}
	return joinPath(dir, l.filename), nil
}

// Load resolves the config file path, reads and decodes the file, and falls
// back to the configured default when no valid file is found. It returns the
// loaded value, the resolved path (empty when resolution failed but a default
// was still returned), and whether the file was created on this call. The
// created result is true only when Load wrote the file at a path where none
// existed before; replacing an existing corrupt or unreadable file does not
// count.
//
// Load writes at most one file: the encoded default at the resolved path,
// when falling back with a default configured. Persistence is best-effort; a
// write failure is reported on the error stream and does not affect the
// returned value. When resolution itself fails, a configured default is
// returned without persistence, since there is no sanctioned path to write
// to.
func (l *Locator[T]) Load() (cfg *T, path string, created bool, err error) {
	c := l.codec
	if c == nil {
		if c, err = codec.ForPath(l.filename); err != nil {
			return nil, "", false, err
		}
	}

	path, resolveErr := l.ResolvePath()
	if resolveErr != nil {
		if l.defaultFn == nil {
			return nil, "", false, resolveErr
		}
		cfg = l.defaultFn()
		if err = l.applyModel(cfg); err != nil {
			return nil, "", false, err
		}
		return cfg, "", false, nil
	}

	data, readErr := os.ReadFile(path)
	if readErr == nil {
		cfg = new(T)
		if decodeErr := c.Decode(data, cfg); decodeErr == nil {
			if err = l.applyModel(cfg); err != nil {
				return nil, "", false, err
			}
			return cfg, path, false, nil
		}
		l.warnf("configfile: cannot parse %s, falling back to default\n", path)
	}

	if l.defaultFn == nil {
		return nil, "", false, fmt.Errorf("%w: %s", ErrNoDefault, l.filename)
	}

	cfg = l.defaultFn()
	// Model defaults must land in the persisted file too, so the model is
	// applied before encoding. A validation failure aborts the fallback
	// without writing anything.
	if err = l.applyModel(cfg); err != nil {
		return nil, "", false, err
	}
	wrote := l.persistDefault(c, path, cfg)
	created = wrote && errors.Is(readErr, os.ErrNotExist)
	return cfg, path, created, nil
}

// persistDefault encodes cfg and writes it to path, replacing any partial or
// corrupt content. Failures are reported as warnings and yield a false
// return; they never abort the fallback.
func (l *Locator[T]) persistDefault(c codec.Codec, path string, cfg *T) bool {
	data, err := c.Encode(cfg)
	if err != nil {
		l.warnf("configfile: cannot encode default config: %v\n", err)
		return false
	}
	if err := ensurePath(path); err != nil {
		l.warnf("configfile: cannot prepare %s: %v\n", path, err)
		return false
	}
	if err := writeFile(path, data); err != nil {
		l.warnf("configfile: cannot write default config to %s: %v\n", path, err)
		return false
	}
	l.printf("configfile: created %s\n", path)
	return true
}

func (l *Locator[T]) applyModel(cfg *T) error {
	if l.modelInit == nil {
		return nil
	}
	mdl, err := l.modelInit(cfg)
	if err != nil {
		return err
	}
	if mdl == nil {
		return nil
	}
	if err := mdl.SetDefaults(); err != nil {
		return err
	}
	return mdl.Validate()
}

func (l *Locator[T]) printf(format string, args ...any) {
	if l.streams != nil && l.streams.Out() != nil {
		fmt.Fprintf(l.streams.Out(), format, args...)
	}
}

func (l *Locator[T]) warnf(format string, args ...any) {
	if l.streams != nil && l.streams.ErrOut() != nil {
		fmt.Fprintf(l.streams.ErrOut(), format, args...)
	}
}
