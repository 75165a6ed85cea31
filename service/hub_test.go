package service

import (
	"errors"
	"strings"
	"testing"
)

type fakeService struct {
	name     string
	deps     []string
	journal  *[]string
	initArgs []any
	startErr error
	stopErr  error
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }

func (f *fakeService) Init(args ...any) error {
	f.initArgs = args
	*f.journal = append(*f.journal, "init:"+f.name)
	return nil
}

func (f *fakeService) Start() error {
	*f.journal = append(*f.journal, "start:"+f.name)
	return f.startErr
}

func (f *fakeService) Stop() error {
	*f.journal = append(*f.journal, "stop:"+f.name)
	return f.stopErr
}

func TestHubDependencyOrder(t *testing.T) {
	var journal []string
	h := NewHub()
	audio := &fakeService{name: "audio", deps: []string{"network"}, journal: &journal}
	h.Register(audio, true)
	h.Register(&fakeService{name: "network", journal: &journal})

	if err := h.InitAll(); err != nil {
		t.Fatal(err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatal(err)
	}
	if err := h.StopAll(); err != nil {
		t.Fatal(err)
	}

	want := "init:network init:audio start:network start:audio stop:audio stop:network"
	if got := strings.Join(journal, " "); got != want {
		t.Errorf("Lifecycle order\n got: %s\nwant: %s", got, want)
	}
	if len(audio.initArgs) != 1 || audio.initArgs[0] != true {
		t.Errorf("Expected registration args passed to Init, got %v", audio.initArgs)
	}
}

func TestHubStopAllJoinsErrors(t *testing.T) {
	var journal []string
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	h := NewHub()
	h.Register(&fakeService{name: "a", journal: &journal, stopErr: errA})
	h.Register(&fakeService{name: "b", journal: &journal, stopErr: errB})
	h.Register(&fakeService{name: "c", journal: &journal})
	h.InitAll()
	h.StartAll()

	err := h.StopAll()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Expected both stop errors, got %v", err)
	}
	if stops := strings.Count(strings.Join(journal, " "), "stop:"); stops != 3 {
		t.Errorf("Expected every service stopped, got %d stops", stops)
	}
	if err := h.StopAll(); err != nil {
		t.Errorf("Second StopAll should be a no-op, got %v", err)
	}
}

func TestHubStartRollback(t *testing.T) {
	var journal []string
	h := NewHub()
	h.Register(&fakeService{name: "a", journal: &journal})
	h.Register(&fakeService{name: "b", deps: []string{"a"}, journal: &journal, startErr: errors.New("refused")})
	h.InitAll()

	if err := h.StartAll(); err == nil {
		t.Fatal("Expected start failure")
	}
	want := "init:a init:b start:a start:b stop:a"
	if got := strings.Join(journal, " "); got != want {
		t.Errorf("Rollback order\n got: %s\nwant: %s", got, want)
	}
}

func TestHubRejectsBadGraphs(t *testing.T) {
	var journal []string

	h := NewHub()
	h.Register(&fakeService{name: "a", deps: []string{"missing"}, journal: &journal})
	if err := h.InitAll(); err == nil {
		t.Error("Expected unregistered dependency error")
	}

	h = NewHub()
	h.Register(&fakeService{name: "a", deps: []string{"b"}, journal: &journal})
	h.Register(&fakeService{name: "b", deps: []string{"a"}, journal: &journal})
	if err := h.InitAll(); err == nil {
		t.Error("Expected cycle error")
	}

	if err := h.Register(&fakeService{name: "a", journal: &journal}); err == nil {
		t.Error("Expected duplicate registration error")
	}
	if err := NewHub().StartAll(); err == nil {
		t.Error("Expected StartAll before InitAll to fail")
	}
}

func TestMustGet(t *testing.T) {
	var journal []string
	h := NewHub()
	h.Register(&fakeService{name: "net", journal: &journal})

	if got := MustGet[*fakeService](h, "net"); got.name != "net" {
		t.Errorf("Expected net service, got %s", got.name)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for missing service")
		}
	}()
	MustGet[*fakeService](h, "audio")
}
