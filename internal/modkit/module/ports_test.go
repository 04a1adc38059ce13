package module

import (
	"testing"

	"scribe/internal/platform/testkit"
)

type hiddenPorts struct {
	rec recorderPort
}

func TestPortsOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		ports any
		want  string
		ok    bool
	}{
		{name: "nil bundle", ports: nil},
		{name: "bundle is the port", ports: recorder{id: "direct"}, want: "direct", ok: true},
		{name: "exported field", ports: logPorts{Recorder: recorder{id: "field"}, Limit: 1}, want: "field", ok: true},
		{name: "nil exported field", ports: logPorts{Limit: 1}},
		{name: "unexported field skipped", ports: hiddenPorts{rec: recorder{id: "hidden"}}},
		{name: "not a struct", ports: 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := PortsOf[recorderPort](namedModule{name: "querylog", ports: tc.ports})
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got.Record() != tc.want {
				t.Fatalf("Record() = %q, want %q", got.Record(), tc.want)
			}
		})
	}
}

func TestMustPortsOf(t *testing.T) {
	t.Parallel()

	m := namedModule{name: "querylog", ports: logPorts{Recorder: recorder{id: "ok"}}}
	if got := MustPortsOf[recorderPort](m).Record(); got != "ok" {
		t.Fatalf("got %q", got)
	}

	defer func() {
		r := recover()
		msg, _ := r.(string)
		testkit.MustContain(t, msg, "requested port not found on module ingest")
	}()
	MustPortsOf[recorderPort](namedModule{name: "ingest", ports: struct{}{}})
}
