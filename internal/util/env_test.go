package util

import (
	"reflect"
	"testing"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("NODEGEN_SET", "value")
	t.Setenv("NODEGEN_EMPTY", "")

	if got := GetEnvString("NODEGEN_SET", "fallback"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
	if got := GetEnvString("NODEGEN_EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for empty variable, got %q", got)
	}
	if got := GetEnvString("NODEGEN_UNSET_XYZ", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for unset variable, got %q", got)
	}
}

func TestGetEnvNumeric(t *testing.T) {
	t.Setenv("NODEGEN_NUM", " 2.5 ")
	t.Setenv("NODEGEN_BAD", "abc")

	if got := GetEnvNumeric("NODEGEN_NUM", 1); got != 2.5 {
		t.Fatalf("expected 2.5, got %v", got)
	}
	if got := GetEnvNumeric("NODEGEN_BAD", 7); got != 7 {
		t.Fatalf("expected default for unparsable value, got %v", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("NODEGEN_TRUE", "true")
	t.Setenv("NODEGEN_ODD", "yes")

	if !GetEnvBool("NODEGEN_TRUE", false) {
		t.Fatal("expected true")
	}
	if !GetEnvBool("NODEGEN_ODD", true) {
		t.Fatal("expected default for unrecognised value")
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("NODEGEN_LIST", " http://a , ,http://b")

	got := GetEnvList("NODEGEN_LIST", nil)
	want := []string{"http://a", "http://b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	def := []string{"x"}
	if got := GetEnvList("NODEGEN_LIST_UNSET", def); !reflect.DeepEqual(got, def) {
		t.Fatalf("expected default %v, got %v", def, got)
	}
}
