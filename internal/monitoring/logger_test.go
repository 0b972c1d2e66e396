package monitoring

import "testing"

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	Logf("clearing %s", "obstacle_layer")
	if !called {
		t.Error("custom logger was not called")
	}

	// nil installs a no-op logger that must not panic and must not call
	// the previous logger.
	called = false
	SetLogger(nil)
	Logf("muted message")
	if called {
		t.Error("no-op logger invoked the replaced logger")
	}
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf should not be nil by default")
	}
}
