package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return strings.ToUpper(g.id) }
func (g stubGame) Description() string                  { return "stub " + g.id }
func (g stubGame) Attach(core.Hooks)                    {}
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) TimerTick()                           {}
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }
func (g stubGame) Summary() core.Summary                { return core.Summary{Mode: g.id} }

func TestRegisterListCreate(t *testing.T) {
	Register("stub-a", func() Game { return stubGame{id: "stub-a"} })
	Register("stub-b", func() Game { return stubGame{id: "stub-b"} })

	if !Exists("stub-a") || Exists("stub-c") {
		t.Fatal("Exists() disagrees with registrations")
	}

	var ids []string
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "stub-") {
			ids = append(ids, info.ID)
			if info.Title != strings.ToUpper(info.ID) {
				t.Errorf("Title = %q for %s", info.Title, info.ID)
			}
			if info.Description != "stub "+info.ID {
				t.Errorf("Description = %q for %s", info.Description, info.ID)
			}
		}
	}
	if strings.Join(ids, ",") != "stub-a,stub-b" {
		t.Errorf("List() order = %v, expected registration order", ids)
	}

	g, err := Create("stub-b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub-b" {
		t.Errorf("Create() = %s, expected stub-b", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of an unknown mode returned nil error")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return stubGame{id: "stub-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("stub-dup", func() Game { return stubGame{id: "stub-dup"} })
}
