package sim

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"mooring/internal/domain"
	"mooring/internal/pool"
)

func allStates(state domain.HookState) [domain.HooksPerBollard]domain.HookState {
	return [domain.HooksPerBollard]domain.HookState{state, state, state}
}

func TestHook(t *testing.T) {
	e := newTestEngine(11)

	t.Run("active hook has line and tension", func(t *testing.T) {
		h := e.NewHook(4, domain.HookActive, domain.LineSpring)
		for i := 0; i < 50; i++ {
			rec := h.Record()
			if rec.Tension == nil || *rec.Tension < 0 {
				t.Fatalf("update %d: expected non-negative tension, got %v", i, rec.Tension)
			}
			if rec.AttachedLine == nil || *rec.AttachedLine != domain.LineSpring {
				t.Fatalf("update %d: expected SPRING line, got %v", i, rec.AttachedLine)
			}
			if rec.Faulted {
				t.Fatal("active hook should not be faulted")
			}
			h.Update()
		}
	})

	t.Run("inactive hook never reports", func(t *testing.T) {
		h := e.NewHook(5, domain.HookInactive, domain.LineSpring)
		for i := 0; i < 20; i++ {
			rec := h.Record()
			if rec.Tension != nil || rec.AttachedLine != nil || rec.Faulted {
				t.Fatalf("update %d: expected empty inactive reading, got %+v", i, rec)
			}
			h.Update()
		}
	})

	t.Run("faulted hook stays faulted without tension", func(t *testing.T) {
		h := e.NewHook(6, domain.HookFaulted, domain.LineSpring)
		for i := 0; i < 20; i++ {
			rec := h.Record()
			if !rec.Faulted || rec.Tension != nil || rec.AttachedLine != nil {
				t.Fatalf("update %d: expected faulted reading, got %+v", i, rec)
			}
			h.Update()
		}
	})

	t.Run("record is a copy", func(t *testing.T) {
		h := e.NewHook(1, domain.HookActive, domain.LineHead)
		want := *h.Record().Tension
		rec := h.Record()
		*rec.Tension = want + 1
		*rec.AttachedLine = domain.LineStern
		got := h.Record()
		if *got.Tension != want || *got.AttachedLine != domain.LineHead {
			t.Error("mutating a record changed the hook")
		}
	})

	t.Run("name follows number", func(t *testing.T) {
		if got := e.NewHook(27, domain.HookInactive, domain.LineHead).Record().Name; got != "Hook 27" {
			t.Errorf("expected 'Hook 27', got %q", got)
		}
	})
}

func TestRadar(t *testing.T) {
	e := newTestEngine(13)

	t.Run("active radar tracks change", func(t *testing.T) {
		r := e.NewRadar("BBRD1", true)
		rec := r.Record()
		if rec.ShipDistance == nil || rec.DistanceChange == nil {
			t.Fatal("active radar should start with a reading")
		}
		if rec.DistanceStatus != domain.DistanceActive {
			t.Errorf("expected ACTIVE, got %s", rec.DistanceStatus)
		}

		old := *rec.ShipDistance
		distance, change := r.Update()
		if distance == nil || change == nil {
			t.Fatal("update should return a reading")
		}
		if *distance < 0 {
			t.Errorf("distance should be non-negative, got %f", *distance)
		}
		if want := math.Abs(old - *distance); math.Abs(*change-want) > 1e-9 {
			t.Errorf("expected change %f, got %f", want, *change)
		}
	})

	t.Run("inactive radar stays empty", func(t *testing.T) {
		r := e.NewRadar("BBRD2", false)
		for i := 0; i < 10; i++ {
			distance, change := r.Update()
			if distance != nil || change != nil {
				t.Fatalf("update %d: expected nil reading", i)
			}
		}
		if rec := r.Record(); rec.DistanceStatus != domain.DistanceInactive {
			t.Errorf("expected INACTIVE, got %s", rec.DistanceStatus)
		}
	})
}

func TestBollardHookNumbering(t *testing.T) {
	e := newTestEngine(17)
	for k := 1; k <= 15; k++ {
		b, err := e.NewBollard(BollardPlan{Number: k, Line: domain.LineHead, HookStates: allStates(domain.HookActive)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []int{3*k - 2, 3*k - 1, 3 * k}
		for i, h := range b.Hooks() {
			if h.Number() != want[i] {
				t.Errorf("bollard %d hook %d: expected number %d, got %d", k, i, want[i], h.Number())
			}
		}
	}
}

func TestBollardLineOnlyOnActiveHooks(t *testing.T) {
	e := newTestEngine(19)
	b, err := e.NewBollard(BollardPlan{
		Number:     2,
		Line:       domain.LineBreast,
		HookStates: [domain.HooksPerBollard]domain.HookState{domain.HookActive, domain.HookInactive, domain.HookFaulted},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := b.Record()
	if rec.Hooks[0].AttachedLine == nil || *rec.Hooks[0].AttachedLine != domain.LineBreast {
		t.Error("active hook should carry the bollard line")
	}
	if rec.Hooks[1].AttachedLine != nil || rec.Hooks[2].AttachedLine != nil {
		t.Error("inactive and faulted hooks should not carry a line")
	}
}

func TestNewPortInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		e := newTestEngine(seed)
		p, err := e.NewPort()
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if n := len(p.Berths()); n < 1 || n > MaxBerths {
			t.Fatalf("seed %d: expected 1..%d berths, got %d", seed, MaxBerths, n)
		}

		for i, berth := range p.Berths() {
			if berth.Code() != BerthAlphabet[i+1] {
				t.Errorf("seed %d: berth %d expected code %c, got %c", seed, i, BerthAlphabet[i+1], berth.Code())
			}
			if berth.HookCount() != berth.BollardCount()*domain.HooksPerBollard {
				t.Errorf("seed %d: hook count %d != 3 * %d", seed, berth.HookCount(), berth.BollardCount())
			}
			if len(berth.Bollards()) != berth.BollardCount() {
				t.Errorf("seed %d: %d bollards, expected %d", seed, len(berth.Bollards()), berth.BollardCount())
			}
			if n := len(berth.Radars()); n != 5 && n != 6 {
				t.Errorf("seed %d: expected 5 or 6 radars, got %d", seed, n)
			}
			for k, bollard := range berth.Bollards() {
				for j, h := range bollard.Hooks() {
					if want := 3*(k+1) - 2 + j; h.Number() != want {
						t.Errorf("seed %d: bollard %d hook %d expected %d, got %d", seed, k+1, j, want, h.Number())
					}
				}
			}
		}

		for step := 0; step < 5; step++ {
			if _, err := p.Export(); err != nil {
				t.Fatalf("seed %d step %d: export failed: %v", seed, step, err)
			}
			p.Update()
		}
	}
}

func TestFirstBerthIsSecondLetter(t *testing.T) {
	p, err := newTestEngine(23).BuildPort(PortPlan{Berths: make([]BerthPlan, 2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.Berths()[0].Name(); got != "Berth B" {
		t.Errorf("expected first berth 'Berth B', got %q", got)
	}
	if got := p.Berths()[1].Name(); got != "Berth C" {
		t.Errorf("expected second berth 'Berth C', got %q", got)
	}
}

func TestExportRejectsForcedViolation(t *testing.T) {
	plan := PortPlan{Berths: []BerthPlan{{
		Bollards: []BollardPlan{
			{Line: domain.LineHead, HookStates: allStates(domain.HookActive)},
			{Line: domain.LineBreast, HookStates: allStates(domain.HookActive)},
			{Line: domain.LineStern, HookStates: allStates(domain.HookActive)},
		},
	}}}
	p, err := newTestEngine(29).BuildPort(plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	forced := 150
	p.berths[0].bollards[2].hooks[1].tension = &forced

	_, err = p.Export()
	var sv *domain.SchemaViolation
	if !errors.As(err, &sv) {
		t.Fatalf("expected SchemaViolation, got %v", err)
	}
	if sv.Path != "berths[0].bollards[2].hooks[1].tension" {
		t.Errorf("unexpected path %q", sv.Path)
	}
	if sv.Value != 150 {
		t.Errorf("expected value 150, got %v", sv.Value)
	}
}

func TestExportRejectsLineWithoutTension(t *testing.T) {
	plan := PortPlan{Berths: []BerthPlan{{
		Bollards: []BollardPlan{{Line: domain.LineHead, HookStates: allStates(domain.HookActive)}},
	}}}
	p, err := newTestEngine(30).BuildPort(plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.berths[0].bollards[0].hooks[1].tension = nil

	_, err = p.Export()
	var sv *domain.SchemaViolation
	if !errors.As(err, &sv) {
		t.Fatalf("expected SchemaViolation, got %v", err)
	}
	if sv.Path != "berths[0].bollards[0].hooks[1].tension" {
		t.Errorf("unexpected path %q", sv.Path)
	}
	if sv.Value != nil {
		t.Errorf("expected nil value, got %v", sv.Value)
	}
}

func TestExportIsStable(t *testing.T) {
	p, err := newTestEngine(31).NewPort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := mustJSON(t, p)
	second := mustJSON(t, p)
	if !bytes.Equal(first, second) {
		t.Fatal("exporting an unchanged port twice gave different JSON")
	}

	before, _ := p.Export()
	p.Update()
	after, _ := p.Export()

	if before.Name != after.Name || len(before.Berths) != len(after.Berths) {
		t.Fatal("update changed port structure")
	}
	for i := range before.Berths {
		b, a := before.Berths[i], after.Berths[i]
		if b.Name != a.Name || b.BollardCount != a.BollardCount || b.HookCount != a.HookCount || b.Ship != a.Ship {
			t.Errorf("berth %d: structural fields changed", i)
		}
		for j := range b.Radars {
			if b.Radars[j].Name != a.Radars[j].Name || b.Radars[j].DistanceStatus != a.Radars[j].DistanceStatus {
				t.Errorf("berth %d radar %d: structural fields changed", i, j)
			}
		}
		for j := range b.Bollards {
			if b.Bollards[j].Name != a.Bollards[j].Name {
				t.Errorf("berth %d bollard %d: name changed", i, j)
			}
			for k := range b.Bollards[j].Hooks {
				bh, ah := b.Bollards[j].Hooks[k], a.Bollards[j].Hooks[k]
				if bh.Name != ah.Name || bh.Faulted != ah.Faulted || !sameLine(bh.AttachedLine, ah.AttachedLine) {
					t.Errorf("berth %d bollard %d hook %d: structural fields changed", i, j, k)
				}
				if (bh.Tension == nil) != (ah.Tension == nil) {
					t.Errorf("berth %d bollard %d hook %d: tension presence changed", i, j, k)
				}
			}
		}
	}
}

func TestSingleBollardHeadPort(t *testing.T) {
	plan := PortPlan{Berths: []BerthPlan{{
		Bollards: []BollardPlan{{Line: domain.LineHead, HookStates: allStates(domain.HookActive)}},
	}}}
	p, err := newTestEngine(37).BuildPort(plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, err := p.Export()
	if err != nil {
		t.Fatalf("unexpected export error: %v", err)
	}

	if len(rec.Berths) != 1 {
		t.Fatalf("expected 1 berth, got %d", len(rec.Berths))
	}
	berth := rec.Berths[0]
	if berth.BollardCount != 1 || berth.HookCount != 3 || len(berth.Bollards) != 1 {
		t.Fatalf("expected one bollard with three hooks, got %+v", berth)
	}
	for i, h := range berth.Bollards[0].Hooks {
		if h.Name != domain.HookName(i+1) {
			t.Errorf("hook %d: expected name %q, got %q", i, domain.HookName(i+1), h.Name)
		}
		if h.AttachedLine == nil || *h.AttachedLine != domain.LineHead {
			t.Errorf("hook %d: expected HEAD line", i)
		}
		if h.Tension == nil {
			t.Errorf("hook %d: expected a tension", i)
		}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := strings.Count(string(data), `"attachedLine":"HEAD"`); got != 3 {
		t.Errorf("expected three HEAD lines on the wire, got %d", got)
	}
}

func TestExhaustionPropagates(t *testing.T) {
	t.Run("port names", func(t *testing.T) {
		names := pool.NewAllocator()
		names.Ports = pool.New(pool.PoolPorts, nil)
		_, err := NewEngine(newTestEngine(41).rnd, names).NewPort()

		var exhausted *pool.ExhaustionError
		if !errors.As(err, &exhausted) || exhausted.Pool != pool.PoolPorts {
			t.Errorf("expected ports exhaustion, got %v", err)
		}
	})

	t.Run("bollard names", func(t *testing.T) {
		names := pool.NewAllocator()
		names.Bollards = pool.New(pool.PoolBollards, []string{"BOL001"})
		plan := PortPlan{Berths: []BerthPlan{{Bollards: make([]BollardPlan, 2)}}}
		_, err := NewEngine(newTestEngine(43).rnd, names).BuildPort(plan)

		var exhausted *pool.ExhaustionError
		if !errors.As(err, &exhausted) || exhausted.Pool != pool.PoolBollards {
			t.Errorf("expected bollards exhaustion, got %v", err)
		}
	})

	t.Run("every port gets a unique name until the pool runs dry", func(t *testing.T) {
		e := newTestEngine(47)
		seen := make(map[string]bool)
		for range pool.WAPortNames {
			p, err := e.BuildPort(PortPlan{Berths: make([]BerthPlan, 1)})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if seen[p.Name()] {
				t.Fatalf("port name %q drawn twice", p.Name())
			}
			seen[p.Name()] = true
		}
		if _, err := e.BuildPort(PortPlan{Berths: make([]BerthPlan, 1)}); err == nil {
			t.Error("expected exhaustion after every port name was used")
		}
	})
}

func TestNewBerthRejectsBadCode(t *testing.T) {
	if _, err := newTestEngine(53).NewBerth('b', nil); err == nil {
		t.Error("expected error for lowercase berth code")
	}
}

func TestSeededEnginesAgree(t *testing.T) {
	a, err := newTestEngine(59).NewPort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := newTestEngine(59).NewPort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.Update()
	b.Update()
	if !bytes.Equal(mustJSON(t, a), mustJSON(t, b)) {
		t.Error("engines with the same seed produced different ports")
	}
}

func mustJSON(t *testing.T, p *Port) []byte {
	t.Helper()
	rec, err := p.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func sameLine(a, b *domain.AttachedLine) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
