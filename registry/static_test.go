package registry

import "testing"

func TestStaticCallbacksFireOnPoll(t *testing.T) {
	s := NewStatic(0,
		Viewport{ID: "a", Shape: Shape{0, 0, 100, 100}},
		Viewport{ID: "b", Shape: Shape{200, 0, 100, 100}},
	)

	sets, shapes := 0, 0
	s.OnSetChanged(func() { sets++ })
	s.OnShapeChanged(func(Shape) { shapes++ })

	if err := s.Init(map[string]string{"k": "v"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if sets != 0 {
		t.Error("Expected callbacks deferred until Poll")
	}
	s.Poll()
	if sets != 1 {
		t.Errorf("Expected initial set change, got %d", sets)
	}
	if s.Viewports()[0].Meta["k"] != "v" {
		t.Error("Expected local metadata to be stored")
	}

	s.Move(1, Shape{300, 0, 100, 100})
	s.Poll()
	if sets != 1 || shapes != 0 {
		t.Errorf("Peer move must not fire callbacks, got sets=%d shapes=%d", sets, shapes)
	}

	s.SetShape(Shape{10, 0, 100, 100})
	s.Poll()
	if shapes != 1 {
		t.Errorf("Expected local shape callback, got %d", shapes)
	}

	s.SetViewports(0, Viewport{ID: "a", Shape: Shape{10, 0, 100, 100}})
	s.Poll()
	if sets != 2 || len(s.Viewports()) != 1 {
		t.Errorf("Expected set change on replace, got sets=%d len=%d", sets, len(s.Viewports()))
	}
	if s.Polls() != 4 {
		t.Errorf("Expected 4 polls, got %d", s.Polls())
	}
}
