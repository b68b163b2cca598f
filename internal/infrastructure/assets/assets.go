// Package assets loads images and fonts from a directory and caches them.
//
// With Watch enabled, file changes are picked up by a background fsnotify
// reader and queued; the caches themselves are only touched by Sync, which
// the application calls at the frame boundary.
package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/fzipp/bmfont"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/rage/internal/graphics"
)

// changeQueueSize bounds the pending invalidations between two frames.
// When it overflows the next Sync drops every cache instead.
const changeQueueSize = 64

// Manager is a cache of decoded assets under one root directory.
// Apart from Watch's reader goroutine, it is used from the loop goroutine only.
type Manager struct {
	dir    string
	logger *log.Logger

	images  map[string]*ebiten.Image
	fonts   map[string]*graphics.OpenTypeFont
	bitmaps map[string]*graphics.BitmapFont

	// Fonts dropped from the cache may still back live Texts; they are
	// closed with the Manager.
	retired []*graphics.OpenTypeFont

	watcher  *fsnotify.Watcher
	changes  chan string
	overflow atomic.Bool
	wg       sync.WaitGroup
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Manager rooted at dir. Nothing is read until requested.
func New(dir string, opts ...Option) *Manager {
	m := &Manager{
		dir:     dir,
		logger:  log.New(io.Discard),
		images:  make(map[string]*ebiten.Image),
		fonts:   make(map[string]*graphics.OpenTypeFont),
		bitmaps: make(map[string]*graphics.BitmapFont),
		changes: make(chan string, changeQueueSize),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the root directory.
func (m *Manager) Dir() string {
	return m.dir
}

// key normalizes an asset name to a slash separated path relative to the root.
func key(name string) string {
	return path.Clean(filepath.ToSlash(name))
}

func (m *Manager) path(k string) string {
	return filepath.Join(m.dir, filepath.FromSlash(k))
}

// Image returns the decoded PNG or JPEG image name.
func (m *Manager) Image(name string) (*ebiten.Image, error) {
	k := key(name)
	if img, ok := m.images[k]; ok {
		return img, nil
	}

	f, err := os.Open(m.path(k))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", k, err)
	}
	defer func() { _ = f.Close() }()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", k, err)
	}

	img := ebiten.NewImageFromImage(src)
	m.images[k] = img
	m.logger.Debug("image loaded", "name", k, "size", src.Bounds().Size())
	return img, nil
}

// Font returns the TrueType/OpenType font name.
func (m *Manager) Font(name string) (*graphics.OpenTypeFont, error) {
	k := key(name)
	if f, ok := m.fonts[k]; ok {
		return f, nil
	}

	data, err := os.ReadFile(m.path(k))
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", k, err)
	}
	f, err := graphics.ParseOpenType(data)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", k, err)
	}

	m.fonts[k] = f
	m.logger.Debug("font loaded", "name", k, "family", f.Family())
	return f, nil
}

// BitmapFont returns the BMFont descriptor name with its page texture,
// which is looked up relative to the descriptor.
func (m *Manager) BitmapFont(name string) (*graphics.BitmapFont, error) {
	k := key(name)
	if f, ok := m.bitmaps[k]; ok {
		return f, nil
	}

	loaded, err := bmfont.Load(m.path(k))
	if err != nil {
		return nil, fmt.Errorf("failed to load bitmap font %s: %w", k, err)
	}

	var page *ebiten.Image
	for _, p := range loaded.Descriptor.Pages {
		page, err = m.Image(path.Join(path.Dir(k), p.File))
		if err != nil {
			return nil, fmt.Errorf("bitmap font %s: %w", k, err)
		}
	}
	if page == nil {
		return nil, fmt.Errorf("bitmap font %s: no pages", k)
	}

	f, err := graphics.NewBitmapFont(loaded.Descriptor, page)
	if err != nil {
		return nil, fmt.Errorf("bitmap font %s: %w", k, err)
	}

	m.bitmaps[k] = f
	m.logger.Debug("bitmap font loaded", "name", k, "face", f.Name())
	return f, nil
}

// Invalidate drops name from every cache and returns how many entries went.
// A dropped bitmap font page also drops the fonts built on it.
//
// Values handed out earlier stay usable; callers pick up the new file by
// requesting the name again.
func (m *Manager) Invalidate(name string) int {
	k := key(name)
	n := 0
	if img, ok := m.images[k]; ok {
		delete(m.images, k)
		n++
		for bk, bf := range m.bitmaps {
			if bf.Texture(0) == img {
				delete(m.bitmaps, bk)
				n++
			}
		}
	}
	if f, ok := m.fonts[k]; ok {
		m.retired = append(m.retired, f)
		delete(m.fonts, k)
		n++
	}
	if _, ok := m.bitmaps[k]; ok {
		delete(m.bitmaps, k)
		n++
	}
	return n
}

// Len returns the number of cached assets.
func (m *Manager) Len() int {
	return len(m.images) + len(m.fonts) + len(m.bitmaps)
}

// Watch starts watching the root directory tree for changes.
func (m *Manager) Watch() error {
	if m.watcher != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	err = filepath.WalkDir(m.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
	if err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to watch %s: %w", m.dir, err)
	}

	m.watcher = w
	m.wg.Add(1)
	go m.watch(w)
	m.logger.Info("watching assets", "dir", m.dir)
	return nil
}

func (m *Manager) watch(w *fsnotify.Watcher) {
	defer m.wg.Done()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			m.handle(w, ev)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			m.logger.Warn("watch error", "err", err)
		}
	}
}

func (m *Manager) handle(w *fsnotify.Watcher, ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if err := w.Add(ev.Name); err != nil {
				m.logger.Warn("watch add failed", "dir", ev.Name, "err", err)
			}
			return
		}
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}

	rel, err := filepath.Rel(m.dir, ev.Name)
	if err != nil {
		return
	}
	m.enqueue(rel)
}

// enqueue records a changed file for the next Sync.
func (m *Manager) enqueue(name string) {
	select {
	case m.changes <- key(name):
	default:
		m.overflow.Store(true)
	}
}

// Sync applies the changes queued since the previous call and returns the
// number of cache entries dropped.
func (m *Manager) Sync() int {
	if m.overflow.Swap(false) {
		n := m.Len()
		m.clear()
		m.drain()
		m.logger.Warn("change queue overflowed, caches cleared", "dropped", n)
		return n
	}

	n := 0
	for {
		select {
		case name := <-m.changes:
			if d := m.Invalidate(name); d > 0 {
				m.logger.Debug("asset changed", "name", name)
				n += d
			}
		default:
			return n
		}
	}
}

func (m *Manager) drain() {
	for {
		select {
		case <-m.changes:
		default:
			return
		}
	}
}

func (m *Manager) clear() {
	for _, f := range m.fonts {
		m.retired = append(m.retired, f)
	}
	clear(m.images)
	clear(m.fonts)
	clear(m.bitmaps)
}

// Close stops watching and releases fonts.
func (m *Manager) Close() error {
	var err error
	if m.watcher != nil {
		if cerr := m.watcher.Close(); cerr != nil {
			err = fmt.Errorf("failed to close watcher: %w", cerr)
		}
		m.wg.Wait()
		m.watcher = nil
	}
	m.clear()
	for _, f := range m.retired {
		_ = f.Close()
	}
	m.retired = nil
	return err
}
