package gnrccoap

import "testing"

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.EphemeralMin = 30100
	cfg.EphemeralMax = 30103
	return cfg
}

func TestRegisterServerAndLookup(t *testing.T) {
	m := NewModule(testConfig())
	endpoints := NewServerEndpointSet()
	l, err := m.RegisterServer(0, endpoints)
	if err != nil {
		t.Fatalf("RegisterServer: %v", err)
	}
	defer l.conn.Close()

	found, ok := m.Lookup(l.Port())
	if !ok || found != l {
		t.Fatalf("Lookup(%d) = %v, %v; want %v, true", l.Port(), found, ok, l)
	}
}

func TestRegisterServerAlreadyRegistered(t *testing.T) {
	m := NewModule(testConfig())
	l, err := m.RegisterServer(0, NewServerEndpointSet())
	if err != nil {
		t.Fatalf("RegisterServer: %v", err)
	}
	defer l.conn.Close()

	// Force a port collision against the already-registered listener.
	if _, err := m.RegisterServer(l.Port(), NewServerEndpointSet()); err != ErrAlreadyRegistered {
		t.Fatalf("second RegisterServer on same port = %v; want ErrAlreadyRegistered", err)
	}
}

// TestEphemeralPortCollision is spec §8 scenario 5: three clients
// registered in sequence get sequential ports from the configured
// range, assuming no external binding.
func TestEphemeralPortCollision(t *testing.T) {
	m := NewModule(testConfig())

	var listeners []*Listener
	for i := 0; i < 3; i++ {
		l, err := m.RegisterClient(NewSender(nil))
		if err != nil {
			t.Fatalf("RegisterClient #%d: %v", i, err)
		}
		defer l.conn.Close()
		listeners = append(listeners, l)
	}

	for i, l := range listeners {
		want := m.cfg.EphemeralMin + i
		if l.Port() != want {
			t.Errorf("listener %d got port %d, want %d", i, l.Port(), want)
		}
		found, ok := m.Lookup(l.Port())
		if !ok || found != l {
			t.Errorf("Lookup(%d) = %v, %v; want listener %d", l.Port(), found, ok, i)
		}
	}
}

func TestEphemeralPortExhaustion(t *testing.T) {
	cfg := testConfig()
	cfg.EphemeralMin = 30200
	cfg.EphemeralMax = 30200
	m := NewModule(cfg)

	l, err := m.RegisterClient(NewSender(nil))
	if err != nil {
		t.Fatalf("first RegisterClient: %v", err)
	}
	defer l.conn.Close()

	if _, err := m.RegisterClient(NewSender(nil)); err != ErrNoPortAvailable {
		t.Fatalf("second RegisterClient = %v; want ErrNoPortAvailable", err)
	}
}

func TestModuleInitAlreadyStarted(t *testing.T) {
	m := NewModule(testConfig())
	if err := m.Init(); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if err := m.Init(); err != ErrAlreadyStarted {
		t.Fatalf("second Init = %v; want ErrAlreadyStarted", err)
	}
}
