// Package photo renders row thumbnails (the photourl column) inside the terminal.
package photo

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/blacktop/go-termimg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

// Protocol selects how thumbnails are drawn
type Protocol string

const (
	Halfblocks Protocol = "halfblocks"
	Kitty      Protocol = "kitty"
	ITerm2     Protocol = "iterm2"
	Sixel      Protocol = "sixel"
	None       Protocol = "none"
)

// ParseProtocol maps a config value to a Protocol, defaulting to halfblocks
func ParseProtocol(s string) Protocol {
	switch p := Protocol(strings.ToLower(strings.TrimSpace(s))); p {
	case Kitty, ITerm2, Sixel, None:
		return p
	default:
		return Halfblocks
	}
}

const (
	DefaultWidth  = 4 // cells
	DefaultHeight = 2 // rows
	fetchTimeout  = 10 * time.Second
	maxImageBytes = 8 << 20
)

// LoadedMsg reports a finished thumbnail load
type LoadedMsg struct {
	URL  string
	View string
	Err  error
}

// Loader fetches and renders thumbnails, caching the rendered result per URL
type Loader struct {
	protocol Protocol
	width    int
	height   int
	http     *http.Client

	mu       sync.Mutex
	cache    map[string]string
	inflight map[string]bool
}

// NewLoader creates a loader drawing DefaultWidth x DefaultHeight cells
func NewLoader(protocol Protocol, hc *http.Client) *Loader {
	if hc == nil {
		hc = &http.Client{Timeout: fetchTimeout}
	}
	return &Loader{
		protocol: protocol,
		width:    DefaultWidth,
		height:   DefaultHeight,
		http:     hc,
		cache:    make(map[string]string),
		inflight: make(map[string]bool),
	}
}

// Width returns the column width a thumbnail occupies
func (l *Loader) Width() int {
	return l.width
}

// Placeholder is shown while loading, when disabled or when loading failed
func (l *Loader) Placeholder() string {
	return lipgloss.NewStyle().
		Width(l.width).
		Height(l.height).
		Faint(true).
		Render("foto")
}

// View returns the rendered thumbnail or the placeholder
func (l *Loader) View(url string) string {
	if url == "" || l.protocol == None {
		return l.Placeholder()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if v, ok := l.cache[url]; ok {
		return v
	}
	return l.Placeholder()
}

// Load returns a command that fetches url, or nil when nothing needs loading
func (l *Loader) Load(url string) tea.Cmd {
	if url == "" || l.protocol == None {
		return nil
	}
	l.mu.Lock()
	if _, ok := l.cache[url]; ok || l.inflight[url] {
		l.mu.Unlock()
		return nil
	}
	l.inflight[url] = true
	l.mu.Unlock()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		img, err := l.fetch(ctx, url)
		if err != nil {
			return LoadedMsg{URL: url, Err: err}
		}
		view, err := l.Render(img)
		return LoadedMsg{URL: url, View: view, Err: err}
	}
}

// Store records the outcome of a load. Failed loads cache the placeholder
// so the URL is not fetched again.
func (l *Loader) Store(msg LoadedMsg) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inflight, msg.URL)
	if msg.Err != nil {
		l.cache[msg.URL] = l.Placeholder()
		return
	}
	l.cache[msg.URL] = msg.View
}

func (l *Loader) fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build photo request: %w", err)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch photo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch photo: status %d", resp.StatusCode)
	}
	img, err := imaging.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	return img, nil
}

// Render draws img into the loader's cell box
func (l *Loader) Render(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("image is nil")
	}
	switch l.protocol {
	case Kitty:
		return l.renderTermimg(img, termimg.Kitty)
	case ITerm2:
		return l.renderTermimg(img, termimg.ITerm2)
	case Sixel:
		return l.renderTermimg(img, termimg.Sixel)
	case None:
		return l.Placeholder(), nil
	default:
		return l.renderHalfblocks(img), nil
	}
}

func (l *Loader) renderTermimg(img image.Image, proto termimg.Protocol) (string, error) {
	ti := termimg.New(img)
	if ti == nil {
		return "", fmt.Errorf("go-termimg: failed to create image wrapper")
	}
	ti.Protocol(proto).Size(l.width, l.height).Scale(termimg.ScaleFit)
	return ti.Render()
}

// renderHalfblocks packs two vertical pixels per cell using the upper half
// block: foreground is the top pixel, background the bottom one.
func (l *Loader) renderHalfblocks(img image.Image) string {
	thumb := imaging.Resize(img, l.width, l.height*2, imaging.Lanczos)
	b := thumb.Bounds()

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteString("\n")
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := thumb.NRGBAAt(x, y)
			bot := color.NRGBA{}
			if y+1 < b.Max.Y {
				bot = thumb.NRGBAAt(x, y+1)
			}
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bot.R, bot.G, bot.B)
		}
		sb.WriteString("\x1b[0m")
	}
	return sb.String()
}
