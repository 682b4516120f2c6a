package loaderwithmetrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/composio/docsite/pkg/dataloader"
)

// mockDataLoader implements the DataLoader interface for testing
type mockDataLoader struct {
	name    string
	errs    []error
	started chan struct{}
	release chan struct{}
}

func (m *mockDataLoader) Name() string {
	return m.name
}

func (m *mockDataLoader) Load(ctx context.Context) {
	if m.started != nil {
		close(m.started)
	}
	if m.release != nil {
		<-m.release
	}
}

func (m *mockDataLoader) Errors() []error {
	return m.errs
}

func TestLoadStartsAllLoadersBeforeWaiting(t *testing.T) {
	release := make(chan struct{})
	a := &mockDataLoader{name: "a", started: make(chan struct{}), release: release}
	b := &mockDataLoader{name: "b", started: make(chan struct{}), release: release}

	l := New([]dataloader.DataLoader{a, b})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		l.Load(context.Background())
	}()

	// Both must be running while neither has been released.
	for _, m := range []*mockDataLoader{a, b} {
		select {
		case <-m.started:
		case <-time.After(5 * time.Second):
			t.Fatalf("loader %s never started", m.name)
		}
	}
	close(release)
	wg.Wait()
}

func TestErrorsAreAttributedToLoader(t *testing.T) {
	l := New([]dataloader.DataLoader{
		&mockDataLoader{name: "changelog", errs: []error{errors.New("boom")}},
		&mockDataLoader{name: "load-tests"},
	})
	l.Load(context.Background())

	errs := l.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, `loader "changelog" returned error: boom`, errs[0].Error())

	names := []string{}
	for _, loader := range l.loaders {
		names = append(names, loader.Name())
	}
	if diff := cmp.Diff([]string{"changelog", "load-tests"}, names); diff != "" {
		t.Errorf("unexpected loader order (-want +got):\n%s", diff)
	}
}
