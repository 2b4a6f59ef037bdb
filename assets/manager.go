// Package assets loads textures and fonts off the render goroutine.
//
// Every Load call registers one item and decodes it on its own goroutine.
// Results are queued; the render loop applies them with Poll between frames,
// so callbacks never race with scene updates.
package assets

import (
	"context"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"earthscene/gfx"
	"earthscene/typeface"
)

// GoRegularPath names the Go Regular font bundled with the binary. LoadFont
// does not touch the file system for it.
const GoRegularPath = "goregular"

// Hooks observe the loading lifecycle. All hooks are optional.
//
// OnStart runs synchronously inside the Load call that moves the manager from
// idle to loading. OnError and OnLoad run from Poll or Wait. OnLoad fires once
// every registered item has ended, whether it succeeded or failed. An item
// whose context is canceled before the render loop drains it ends silently.
type Hooks struct {
	OnStart func()
	OnLoad  func()
	OnError func(path string, err error)
}

type Option func(*Manager)

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

func WithHooks(h Hooks) Option {
	return func(m *Manager) { m.hooks = h }
}

// WithMaxTextureSize downsamples textures whose longest side exceeds n.
// Zero disables the limit.
func WithMaxTextureSize(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.maxTexture = n
		}
	}
}

type completion struct {
	path  string
	apply func()
	err   error
	took  time.Duration
}

// Manager tracks outstanding loads.
//
// Load, Poll, Pending and Wait are meant to be called from the render
// goroutine.
type Manager struct {
	fsys       fs.FS
	log        *slog.Logger
	hooks      Hooks
	maxTexture int

	queue   chan completion
	dropped chan struct{}

	mu         sync.Mutex
	registered int
	ended      int
}

func NewManager(fsys fs.FS, opts ...Option) *Manager {
	m := &Manager{
		fsys:       fsys,
		log:        slog.Default(),
		maxTexture: 4096,
		queue:      make(chan completion, 16),
		dropped:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LoadTexture decodes an image file into a texture. onLoad runs from Poll.
func (m *Manager) LoadTexture(ctx context.Context, path string, onLoad func(*gfx.Texture)) {
	m.start(ctx, path, func(data []byte) (func(), error) {
		tex, err := decodeTexture(path, data, m.maxTexture)
		if err != nil {
			return nil, err
		}
		return func() {
			if onLoad != nil {
				onLoad(tex)
			}
		}, nil
	})
}

// LoadFont decodes a typeface JSON or TrueType/OpenType file. onLoad runs
// from Poll.
func (m *Manager) LoadFont(ctx context.Context, path string, onLoad func(*typeface.Font)) {
	m.start(ctx, path, func(data []byte) (func(), error) {
		f, err := decodeFont(path, data)
		if err != nil {
			return nil, err
		}
		return func() {
			if onLoad != nil {
				onLoad(f)
			}
		}, nil
	})
}

func (m *Manager) start(ctx context.Context, path string, decode func([]byte) (func(), error)) {
	if ctx == nil {
		ctx = context.Background()
	}
	m.mu.Lock()
	idle := m.registered == m.ended
	m.registered++
	m.mu.Unlock()
	if idle && m.hooks.OnStart != nil {
		m.hooks.OnStart()
	}

	go func() {
		begin := time.Now()
		c := completion{path: path}
		var data []byte
		if path != GoRegularPath {
			data, c.err = readFile(ctx, m.fsys, path)
		}
		if c.err == nil {
			c.apply, c.err = decode(data)
		}
		c.took = time.Since(begin)
		select {
		case m.queue <- c:
			return
		default:
		}
		select {
		case m.queue <- c:
		case <-ctx.Done():
			m.abandon(c.path)
		}
	}()
}

// Poll applies every completion that has arrived and returns how many it
// applied. It never blocks.
func (m *Manager) Poll() int {
	n := 0
	for {
		select {
		case c := <-m.queue:
			m.finish(c)
			n++
		default:
			return n
		}
	}
}

// Wait applies completions until no item is outstanding or ctx ends.
func (m *Manager) Wait(ctx context.Context) error {
	for m.Pending() > 0 {
		select {
		case c := <-m.queue:
			m.finish(c)
		case <-m.dropped:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Pending returns the number of registered items that have not ended.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registered - m.ended
}

// abandon ends an item whose load context was canceled while the queue was
// full. No hook runs for it.
func (m *Manager) abandon(path string) {
	m.mu.Lock()
	m.ended++
	m.mu.Unlock()
	m.log.Debug("asset load abandoned", "path", path)
	select {
	case m.dropped <- struct{}{}:
	default:
	}
}

func (m *Manager) finish(c completion) {
	if c.err != nil {
		if m.hooks.OnError != nil {
			m.hooks.OnError(c.path, c.err)
		}
	} else {
		m.log.Debug("asset loaded", "path", c.path, "took", c.took)
		if c.apply != nil {
			c.apply()
		}
	}

	m.mu.Lock()
	m.ended++
	done := m.ended == m.registered
	m.mu.Unlock()
	if done && m.hooks.OnLoad != nil {
		m.hooks.OnLoad()
	}
}
