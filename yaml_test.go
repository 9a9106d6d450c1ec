package mapedit

import (
	"errors"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

func unifiedDiff(before, after string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

func TestParseErrorsOnNonMappingTopLevel(t *testing.T) {
	for _, in := range []string{"- 1\n- 2\n", "just a string\n", "null\n"} {
		_, err := Parse([]byte(in))
		if !errors.Is(err, ErrNotMapping) {
			t.Fatalf("Parse(%q) err = %v; want ErrNotMapping", in, err)
		}
	}
}

func TestParseErrorsOnInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("a: [1, 2\n")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEmptyDataCreatesEmptyMap(t *testing.T) {
	for _, in := range []string{"", "   \n"} {
		m, err := Parse([]byte(in))
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", in, err)
		}
		if m == nil || len(m) != 0 {
			t.Fatalf("Parse(%q) = %v; want empty map", in, m)
		}
	}
}

func TestParseNormalizesNestedMappings(t *testing.T) {
	in := []byte(`service:
  enabled: true
  routes:
    - host: app.example.com
      port: 80
  limits:
    cpu: 100
`)
	m, err := Parse(in)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	svc, ok := m["service"].(Map)
	if !ok {
		t.Fatalf("service is %T; want Map", m["service"])
	}
	if _, ok := svc["limits"].(Map); !ok {
		t.Fatalf("limits is %T; want Map", svc["limits"])
	}
	routes, ok := svc["routes"].([]any)
	if !ok || len(routes) != 1 {
		t.Fatalf("routes = %#v", svc["routes"])
	}
	if _, ok := routes[0].(Map); !ok {
		t.Fatalf("route entry is %T; want Map", routes[0])
	}

	if v, ok := Get(m, Keys{"service", "limits", "cpu"}); !ok || v != 100 {
		t.Fatalf("cpu = %v, %v", v, ok)
	}
}

func TestMarshalSortsKeys(t *testing.T) {
	m := Map{
		"zeta":  1,
		"alpha": Map{"b": "two", "a": true},
		"list":  []any{Map{"z": 1, "x": 2}, "plain"},
	}
	out, err := Marshal(m)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	s := string(out)

	order := []string{"alpha:", "a: true", "b: two", "list:", "x: 2", "z: 1", "plain", "zeta: 1"}
	last := -1
	for _, want := range order {
		idx := strings.Index(s, want)
		if idx <= last {
			t.Fatalf("%q out of order in:\n%s", want, s)
		}
		last = idx
	}

	again, err := Marshal(m)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(again) != s {
		t.Fatalf("output not deterministic:\n%s", unifiedDiff(s, string(again)))
	}

	round, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse roundtrip: %v\n%s", err, s)
	}
	if v, _ := Get(round, Keys{"alpha", "b"}); v != "two" {
		t.Fatalf("alpha.b = %v after roundtrip", v)
	}
}

func TestParseMarshalRoundTripAfterEdit(t *testing.T) {
	in := []byte(`resources:
  cpu: 100
  memory: 256
name: api
`)
	m, err := Parse(in)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	edited := Set(m, Keys{"resources", "cpu"}, 150)
	edited = Unset(edited, Key("name"))

	out, err := Marshal(edited)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var round map[string]any
	if err := yaml.Unmarshal(out, &round); err != nil {
		t.Fatalf("yaml unmarshal: %v\n%s", err, out)
	}
	if _, ok := round["name"]; ok {
		t.Fatalf("name should be removed:\n%s", out)
	}
	if !strings.Contains(string(out), "cpu: 150") {
		t.Fatalf("expected cpu: 150 in output, got:\n%s", out)
	}

	orig, _ := Marshal(m)
	if !strings.Contains(string(orig), "cpu: 100") || !strings.Contains(string(orig), "name: api") {
		t.Fatalf("original changed:\n%s", orig)
	}
}
