package configfile

import (
	"bytes"
	"io"
	"testing"

	modellib "github.com/ygrebnov/model"

	"github.com/configfile-go/configfile/codec"
)

// test type for T
type testCfg struct {
	Answer int
}

// Minimal Streams stub used only for testing.
type fakeStreams struct {
	out    io.Writer
	errOut io.Writer
}

func (s fakeStreams) Out() io.Writer    { return s.out }
func (s fakeStreams) ErrOut() io.Writer { return s.errOut }

func mustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	fn()
}

func TestNew(t *testing.T) {
	fs := fakeStreams{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	mInit := func(*testCfg) (*modellib.Model[testCfg], error) { return nil, nil }

	tests := []struct {
		name   string
		opts   []Option[testCfg]
		verify func(t *testing.T, l *Locator[testCfg])
	}{
		{
			name: "no options",
			verify: func(t *testing.T, l *Locator[testCfg]) {
				if l.filename != "app.json" {
					t.Fatalf("filename = %q, want %q", l.filename, "app.json")
				}
				if len(l.directories) != 0 {
					t.Fatalf("directories = %v, want empty", l.directories)
				}
				if l.defaultFn != nil {
					t.Fatalf("defaultFn: expected nil")
				}
				if l.createIfMissing {
					t.Fatalf("createIfMissing: expected false")
				}
			},
		},
		{
			name: "WithDirectory is repeatable and preserves order",
			opts: []Option[testCfg]{
				WithDirectory[testCfg]("a"),
				WithDirectory[testCfg]("b"),
			},
			verify: func(t *testing.T, l *Locator[testCfg]) {
				if len(l.directories) != 2 || l.directories[0] != "a" || l.directories[1] != "b" {
					t.Fatalf("directories = %v, want [a b]", l.directories)
				}
			},
		},
		{
			name: "WithDirectories appends after WithDirectory",
			opts: []Option[testCfg]{
				WithDirectory[testCfg]("a"),
				WithDirectories[testCfg]("b", "c"),
			},
			verify: func(t *testing.T, l *Locator[testCfg]) {
				want := []string{"a", "b", "c"}
				if len(l.directories) != len(want) {
					t.Fatalf("directories = %v, want %v", l.directories, want)
				}
				for i := range want {
					if l.directories[i] != want[i] {
						t.Fatalf("directories = %v, want %v", l.directories, want)
					}
				}
			},
		},
		{
			name: "WithDefault copies the value out",
			opts: []Option[testCfg]{WithDefault(testCfg{Answer: 42})},
			verify: func(t *testing.T, l *Locator[testCfg]) {
				if l.defaultFn == nil {
					t.Fatalf("defaultFn: expected non-nil")
				}
				a, b := l.defaultFn(), l.defaultFn()
				if a == b {
					t.Fatalf("defaultFn: expected independent instances")
				}
				if a.Answer != 42 || b.Answer != 42 {
					t.Fatalf("defaultFn: Answer = %d/%d, want 42", a.Answer, b.Answer)
				}
			},
		},
		{
			name: "WithDefaultFn",
			opts: []Option[testCfg]{WithDefaultFn(func() *testCfg { return &testCfg{Answer: 7} })},
			verify: func(t *testing.T, l *Locator[testCfg]) {
				if got := l.defaultFn().Answer; got != 7 {
					t.Fatalf("defaultFn().Answer = %d, want 7", got)
				}
			},
		},
		{
			name: "WithCreateIfMissing",
			opts: []Option[testCfg]{WithCreateIfMissing[testCfg]()},
			verify: func(t *testing.T, l *Locator[testCfg]) {
				if !l.createIfMissing {
					t.Fatalf("createIfMissing: expected true")
				}
			},
		},
		{
			name: "WithCodec overrides extension-based selection",
			opts: []Option[testCfg]{WithCodec[testCfg](codec.YAML{})},
			verify: func(t *testing.T, l *Locator[testCfg]) {
				if l.codec == nil {
					t.Fatalf("codec: expected non-nil")
				}
			},
		},
		{
			name: "WithStreams and WithModel",
			opts: []Option[testCfg]{
				WithStreams[testCfg](fs),
				WithModel(mInit),
			},
			verify: func(t *testing.T, l *Locator[testCfg]) {
				if l.streams == nil {
					t.Fatalf("streams: expected non-nil")
				}
				if l.modelInit == nil {
					t.Fatalf("modelInit: expected non-nil")
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			l := New[testCfg]("app.json", tt.opts...)
			tt.verify(t, l)
		})
	}
}

func TestNew_Panics(t *testing.T) {
	mustPanic(t, func() { New[testCfg]("") })
	mustPanic(t, func() { New[testCfg]("app.json", WithDirectory[testCfg]("")) })
	mustPanic(t, func() { New[testCfg]("app.json", WithDirectories[testCfg]("a", "")) })
	mustPanic(t, func() { New[testCfg]("app.json", WithDefaultFn[testCfg](nil)) })
	mustPanic(t, func() { New[testCfg]("app.json", WithCodec[testCfg](nil)) })
	mustPanic(t, func() { New[testCfg]("app.json", WithModel[testCfg](nil)) })
}
