package adapter

import (
	"context"
	"fmt"

	"github.com/jobdeck/jobdeck/internal/browser"
)

// fakeDriver hands out fakeSessions backed by a canned URL -> HTML map.
type fakeDriver struct {
	pages      map[string]string
	sessionErr error
	sessions   []*fakeSession
}

func (d *fakeDriver) NewSession(_ context.Context) (browser.Session, error) {
	if d.sessionErr != nil {
		return nil, d.sessionErr
	}
	s := &fakeSession{driver: d}
	d.sessions = append(d.sessions, s)
	return s, nil
}

// closedAll reports whether every session handed out was closed.
func (d *fakeDriver) closedAll() bool {
	for _, s := range d.sessions {
		if !s.closed {
			return false
		}
	}
	return true
}

type fakeSession struct {
	driver     *fakeDriver
	currentURL string
	visited    []string
	closed     bool
}

func (s *fakeSession) Navigate(url, _ string) error {
	if _, ok := s.driver.pages[url]; !ok {
		return fmt.Errorf("no page for %s", url)
	}
	s.currentURL = url
	s.visited = append(s.visited, url)
	return nil
}

func (s *fakeSession) PageHTML() (string, error) {
	html, ok := s.driver.pages[s.currentURL]
	if !ok {
		return "", fmt.Errorf("no page loaded")
	}
	return html, nil
}

func (s *fakeSession) Close() {
	s.closed = true
}
