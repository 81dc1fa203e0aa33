package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/openswoop/gpasheet/pkg/course"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Parallelism != 50 {
		t.Fatalf("expected default parallelism 50, got %d", c.Parallelism)
	}
	if c.BaseUrl != course.SyllabusUrl {
		t.Fatalf("expected default base url %q, got %q", course.SyllabusUrl, c.BaseUrl)
	}
	if err := c.Validate(); !errors.Is(err, course.ErrConfiguration) {
		t.Fatalf("expected defaults without courses to be invalid, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.yaml")
	configYAML := strings.TrimSpace(`
parallelism: 8
timeout: 5s
courses:
  - CE 302
  - MATH 250
  - ENG 310
`)
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}
	c := Default()
	if err := c.LoadFile(path); err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if c.Parallelism != 8 || c.Timeout != 5*time.Second {
		t.Fatalf("expected parallelism 8 and timeout 5s, got %d and %v", c.Parallelism, c.Timeout)
	}
	if !reflect.DeepEqual(c.Courses, []string{"CE 302", "MATH 250", "ENG 310"}) {
		t.Fatalf("unexpected courses %v", c.Courses)
	}
	if c.Output != "grades.xlsx" {
		t.Fatalf("expected output to keep its default, got %q", c.Output)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected config to be valid, got %v", err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	c := Default()
	if err := c.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, course.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing file, got %v", err)
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("parallelism: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := c.LoadFile(path); !errors.Is(err, course.ErrConfiguration) {
		t.Fatalf("expected configuration error for bad yaml, got %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("GPASHEET_TIMEOUT=12s\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvBaseUrl, "http://localhost:8080/id/")
	t.Setenv(EnvParallelism, "4")
	t.Setenv(EnvTimeout, "")
	os.Unsetenv(EnvTimeout)

	c := Default()
	if err := c.LoadEnv(envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnv returned error: %v", err)
	}
	if c.BaseUrl != "http://localhost:8080/id/" || c.Parallelism != 4 || c.Timeout != 12*time.Second {
		t.Fatalf("unexpected config %+v", c)
	}

	t.Setenv(EnvParallelism, "many")
	if err := Default().LoadEnv(); !errors.Is(err, course.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
