package di

import "testing"

type fakeService struct {
	name string
}

func TestRegisterAndGet(t *testing.T) {
	c := NewContainer()
	c.Register("config", &fakeService{name: "cfg"})

	got := c.Get("config").(*fakeService)
	if got.name != "cfg" {
		t.Errorf("Get() = %q, want %q", got.name, "cfg")
	}
}

func TestFactoryIsMemoized(t *testing.T) {
	c := NewContainer()
	calls := 0
	c.RegisterFactory("svc", func(ServiceRegistry) any {
		calls++
		return &fakeService{name: "lazy"}
	})

	first := c.Get("svc")
	second := c.Get("svc")

	if calls != 1 {
		t.Errorf("factory ran %d times, want 1", calls)
	}
	if first != second {
		t.Error("Get() returned different instances for the same name")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	c := NewContainer()
	token := NewToken[*fakeService]("test:service")

	RegisterToken(c, token, func(sr ServiceRegistry) *fakeService {
		return &fakeService{name: "typed"}
	})

	got := GetToken(c, token)
	if got.name != "typed" {
		t.Errorf("GetToken() = %q, want %q", got.name, "typed")
	}
}

func TestFactoryCanResolveDependencies(t *testing.T) {
	c := NewContainer()
	c.Register("dep", &fakeService{name: "dep"})
	c.RegisterFactory("svc", func(sr ServiceRegistry) any {
		dep := sr.Get("dep").(*fakeService)
		return &fakeService{name: "uses-" + dep.name}
	})

	got := c.Get("svc").(*fakeService)
	if got.name != "uses-dep" {
		t.Errorf("Get() = %q, want %q", got.name, "uses-dep")
	}
}

func TestGetUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Get() on unknown name did not panic")
		}
	}()
	NewContainer().Get("missing")
}
