package search

import (
	"fmt"
	"sync"
	"time"
)

// fakePage is a scriptable in-memory Page for controller, monitor and
// intervention tests.
type fakePage struct {
	mu sync.Mutex

	// text is returned by Text(); textSeq, when non-empty, is consumed
	// one entry per call before falling back to text.
	text    string
	textSeq []string
	textErr error

	visible map[string]bool
	links   []Link
	url     string

	navErr      error
	navigations []string

	// onPress replaces the page text when a key is sent, simulating the
	// transcript re-render after a follow-up submit.
	onPress func(p *fakePage)

	evalResults map[string]any

	fillValues map[string]string
	persisted  int
	closed     bool
}

func newFakePage(text string) *fakePage {
	return &fakePage{
		text:        text,
		visible:     make(map[string]bool),
		evalResults: make(map[string]any),
		fillValues:  make(map[string]string),
	}
}

func (p *fakePage) Navigate(url string, timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.navigations = append(p.navigations, url)
	if p.navErr != nil {
		return p.navErr
	}
	p.url = url
	return nil
}

func (p *fakePage) Text() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.textErr != nil {
		return "", p.textErr
	}
	if len(p.textSeq) > 0 {
		next := p.textSeq[0]
		p.textSeq = p.textSeq[1:]
		p.text = next
	}
	return p.text, nil
}

func (p *fakePage) setText(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.text = text
}

func (p *fakePage) Evaluate(script string) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if result, ok := p.evalResults[script]; ok {
		return result, nil
	}
	return false, nil
}

func (p *fakePage) IsVisible(selector string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible[selector]
}

func (p *fakePage) setVisible(selector string, visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible[selector] = visible
}

func (p *fakePage) WaitForSelector(selector string, timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.visible[selector] {
		return nil
	}
	return fmt.Errorf("selector %q not found", selector)
}

func (p *fakePage) Click(selector string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.visible[selector] {
		return fmt.Errorf("selector %q not visible", selector)
	}
	return nil
}

func (p *fakePage) Fill(selector, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.visible[selector] {
		return fmt.Errorf("selector %q not visible", selector)
	}
	p.fillValues[selector] = value
	return nil
}

func (p *fakePage) Press(selector, key string) error {
	p.mu.Lock()
	onPress := p.onPress
	p.mu.Unlock()
	if onPress != nil {
		onPress(p)
	}
	return nil
}

func (p *fakePage) Links() ([]Link, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.links, nil
}

func (p *fakePage) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *fakePage) PersistAuthState() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.persisted++
	return nil
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// fakeLauncher hands out scripted pages in order. The last page is
// reused once the script runs out.
type fakeLauncher struct {
	mu       sync.Mutex
	pages    []*fakePage
	launches []LaunchOptions
	err      error
}

func (l *fakeLauncher) Launch(opts LaunchOptions) (Page, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.launches = append(l.launches, opts)
	if l.err != nil {
		return nil, l.err
	}
	if len(l.pages) == 0 {
		return nil, fmt.Errorf("no scripted pages left")
	}
	page := l.pages[0]
	if len(l.pages) > 1 {
		l.pages = l.pages[1:]
	}
	return page, nil
}
