package token

import (
	"regexp"
	"testing"
	"time"
)

type fakeCookieStore struct {
	cookies map[string]string
	sets    int
}

func newFakeCookieStore() *fakeCookieStore {
	return &fakeCookieStore{cookies: map[string]string{}}
}

func (s *fakeCookieStore) Get(name string) (string, bool) {
	v, ok := s.cookies[name]
	return v, ok
}

func (s *fakeCookieStore) Set(name string, value string, ttl time.Duration) {
	s.cookies[name] = value
	s.sets++
}

func TestResolveSuffix(t *testing.T) {
	suffix, persist := ResolveSuffix("ab12")
	if suffix != "ab12" || persist {
		t.Errorf("existing suffix must be reused without persisting, got %q persist=%t", suffix, persist)
	}

	suffix, persist = ResolveSuffix("")
	if !persist {
		t.Error("fresh suffix must be persisted")
	}
	if !regexp.MustCompile(`^[a-z0-9]{4}$`).MatchString(suffix) {
		t.Errorf("suffix %q is not 4 lowercase alphanumerics", suffix)
	}
}

func TestEnsureSuffix_ReusedAcrossJoins(t *testing.T) {
	store := newFakeCookieStore()

	first := EnsureSuffix(store)
	second := EnsureSuffix(store)

	if first != second {
		t.Errorf("same browser session must keep one suffix, got %q then %q", first, second)
	}
	if store.sets != 1 {
		t.Errorf("cookie must be written exactly once, got %d writes", store.sets)
	}
}
