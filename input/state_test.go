package input

import (
	"image"
	"testing"
)

func TestState_KeyAndPadShareNames(t *testing.T) {
	s := NewState(DefaultDeadZone, DefaultSensitivity)

	s.Apply(KeyDown("A"))
	if !s.Pressed(ButtonA) {
		t.Fatal("expected A pressed after key A")
	}
	s.Apply(ButtonEvent{Button: PadA, Pressed: false})
	if s.Pressed(ButtonA) {
		t.Fatal("expected gamepad release to clear A")
	}

	s.Apply(ButtonEvent{Button: PadHome, Pressed: true})
	if !s.Pressed(ButtonHome) {
		t.Fatal("expected HOME pressed after gamepad button 8")
	}
	s.Apply(KeyUp("Escape"))
	if s.Pressed(ButtonHome) {
		t.Fatal("expected Escape release to clear HOME")
	}
}

func TestState_KeyTable(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"Escape", ButtonHome},
		{"Enter", ButtonStart},
		{"Backspace", ButtonSelect},
		{"S", ButtonB},
		{"D", ButtonX},
		{"W", ButtonY},
		{"Q", ButtonL},
		{"E", ButtonR},
		{"ArrowUp", ButtonUp},
		{"ArrowDown", ButtonDown},
		{"ArrowLeft", ButtonLeft},
		{"ArrowRight", ButtonRight},
		{"F", ButtonFriends},
		{"P", ButtonPower},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			s := NewState(DefaultDeadZone, DefaultSensitivity)
			s.Apply(KeyDown(tc.key))
			if !s.Pressed(tc.want) {
				t.Errorf("key %s did not press %s", tc.key, tc.want)
			}
		})
	}
}

func TestState_UnmappedIgnored(t *testing.T) {
	s := NewState(DefaultDeadZone, DefaultSensitivity)
	before := s.Buttons()

	s.Apply(KeyDown("Z"))
	s.Apply(ButtonEvent{Button: 42, Pressed: true})

	after := s.Buttons()
	if len(after) != len(before) {
		t.Fatalf("button map grew from %d to %d", len(before), len(after))
	}
	for k, v := range after {
		if v {
			t.Errorf("unexpected pressed button %s", k)
		}
	}
}

func TestState_LevelTriggered(t *testing.T) {
	s := NewState(DefaultDeadZone, DefaultSensitivity)
	s.Apply(KeyDown("ArrowUp"))

	// Unrelated events must not release a held button.
	s.Apply(KeyDown("A"))
	s.Apply(PointerEvent{Action: PointerDown, Pos: image.Pt(1, 1)})
	if !s.Pressed(ButtonUp) {
		t.Fatal("UP released without a release event")
	}
}

func TestState_ButtonsSnapshotIsCopy(t *testing.T) {
	s := NewState(DefaultDeadZone, DefaultSensitivity)
	snap := s.Buttons()

	s.Apply(KeyDown("Escape"))
	if snap[ButtonHome] {
		t.Fatal("snapshot observed a later mutation")
	}

	snap[ButtonPower] = true
	if s.Pressed(ButtonPower) {
		t.Fatal("mutating the snapshot changed the state")
	}
}

func TestState_Pointer(t *testing.T) {
	s := NewState(DefaultDeadZone, DefaultSensitivity)

	if _, ok := s.Pointer(); ok {
		t.Fatal("expected no pointer before first press")
	}

	// Moves before any press are not tracked.
	s.Apply(PointerEvent{Action: PointerMove, Pos: image.Pt(5, 5)})
	if _, ok := s.Pointer(); ok {
		t.Fatal("hover move should not create a pointer")
	}

	s.Apply(PointerEvent{Action: PointerDown, Pos: image.Pt(10, 20), Held: true})
	s.Apply(PointerEvent{Action: PointerMove, Pos: image.Pt(15, 25), Held: true})
	p, ok := s.Pointer()
	if !ok || !p.Pressed || p.Pos != image.Pt(15, 25) {
		t.Fatalf("after drag pointer = %+v ok=%v", p, ok)
	}

	s.Apply(PointerEvent{Action: PointerUp, Pos: image.Pt(99, 99)})
	p, _ = s.Pointer()
	if p.Pressed {
		t.Fatal("expected pointer released")
	}
	if p.Pos != image.Pt(15, 25) {
		t.Errorf("release should keep last position, got %v", p.Pos)
	}

	s.Apply(PointerEvent{Action: PointerMove, Pos: image.Pt(50, 50)})
	p, _ = s.Pointer()
	if p.Pos != image.Pt(15, 25) {
		t.Errorf("move while released changed position to %v", p.Pos)
	}
}

func TestState_AxisDeadZone(t *testing.T) {
	tests := []struct {
		name        string
		sensitivity float64
		raw         float64
		want        float64
	}{
		{"inside dead zone", 1.0, 0.1, 0},
		{"negative inside dead zone", 1.0, -0.149, 0},
		{"at dead zone edge", 1.0, 0.15, 0.15},
		{"passes through", 1.0, -0.6, -0.6},
		{"scaled", 1.5, 0.5, 0.75},
		{"scaled and clamped", 2.0, 0.8, 1.0},
		{"negative clamped", 2.0, -0.8, -1.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState(DefaultDeadZone, tc.sensitivity)
			s.Apply(AxisEvent{Axis: RightY, Value: tc.raw})
			if got := s.Axis(RightY); got != tc.want {
				t.Errorf("Axis = %v, want %v", got, tc.want)
			}
			if got := s.Axis(LeftX); got != 0 {
				t.Errorf("other axis changed to %v", got)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	if !IsPress(KeyDown("S"), ButtonB) {
		t.Error("key S press should be B")
	}
	if !IsPress(ButtonEvent{Button: PadB, Pressed: true}, ButtonB) {
		t.Error("pad 1 press should be B")
	}
	if IsPress(KeyUp("S"), ButtonB) {
		t.Error("release is not a press")
	}
	if IsPress(PointerEvent{Action: PointerDown}, ButtonA) {
		t.Error("pointer events have no canonical name")
	}
}

func TestKeyDownRune(t *testing.T) {
	tests := []struct {
		key  string
		want rune
	}{
		{"A", 'a'},
		{"Digit7", '7'},
		{"Space", ' '},
		{"Period", '.'},
		{"Enter", 0},
		{"ArrowUp", 0},
	}
	for _, tc := range tests {
		if got := KeyDown(tc.key).Rune; got != tc.want {
			t.Errorf("KeyDown(%q).Rune = %q, want %q", tc.key, got, tc.want)
		}
	}
}
