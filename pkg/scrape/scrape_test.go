package scrape

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/openswoop/gpasheet/pkg/course"
)

func newCollector(t *testing.T, parallelism int) *colly.Collector {
	t.Helper()
	c, err := NewCollector(parallelism, 5*time.Second)
	if err != nil {
		t.Fatalf("NewCollector returned error: %v", err)
	}
	return c
}

func TestFetchKeepsInputOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/"))
		// Later pages answer first
		time.Sleep(time.Duration(10-n) * 5 * time.Millisecond)
		fmt.Fprintf(w, "page %d", n)
	}))
	defer srv.Close()

	var urls []string
	for i := 0; i < 10; i++ {
		urls = append(urls, fmt.Sprintf("%s/%d", srv.URL, i))
	}
	bodies, err := Fetch(newCollector(t, 10), urls)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	for i, body := range bodies {
		if expected := fmt.Sprintf("page %d", i); string(body) != expected {
			t.Errorf("Expected body %d to be %q, got %q", i, expected, body)
		}
	}
}

func TestFetchLimitsParallelism(t *testing.T) {
	var inFlight, peak int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	urls := make([]string, 12)
	for i := range urls {
		urls[i] = srv.URL + "/same"
	}
	bodies, err := Fetch(newCollector(t, 3), urls)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(bodies) != len(urls) {
		t.Fatalf("Expected %d bodies, got %d", len(urls), len(bodies))
	}
	if p := atomic.LoadInt32(&peak); p > 3 {
		t.Errorf("Expected at most 3 requests in flight, got %d", p)
	}
}

func TestFetchFailsWholeBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			http.Error(w, "gone", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	bodies, err := Fetch(newCollector(t, 2), []string{srv.URL + "/a", srv.URL + "/broken", srv.URL + "/b"})
	if !errors.Is(err, course.ErrNetwork) {
		t.Fatalf("Expected network error, got %v", err)
	}
	if bodies != nil {
		t.Errorf("Expected no partial result, got %d bodies", len(bodies))
	}
	if !strings.Contains(err.Error(), "/broken") {
		t.Errorf("Expected error to name the failing url, got %v", err)
	}
}

func TestFetchTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		fmt.Fprint(w, "too late")
	}))
	defer srv.Close()

	c, err := NewCollector(2, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewCollector returned error: %v", err)
	}
	bodies, err := Fetch(c, []string{srv.URL + "/slow"})
	if !errors.Is(err, course.ErrNetwork) {
		t.Fatalf("Expected network error, got %v", err)
	}
	if bodies != nil {
		t.Errorf("Expected no bodies after a timeout, got %d", len(bodies))
	}
}

func TestGetCourses(t *testing.T) {
	pages := map[string]string{
		"/id/CE+302":   syllabusPage("Software Engineering", "6", row("Midterm", "1", "40"), row("Final", "1", "60")),
		"/id/MATH+250": syllabusPage("Linear Algebra", "5", row("Quiz", "3", "-"), row("Final", "1", "100")),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	table, err := course.NewTable(srv.URL+"/id/", []string{"MATH 250", "CE 302"})
	if err != nil {
		t.Fatal(err)
	}
	resolved, err := GetCourses(newCollector(t, 50), table)
	if err != nil {
		t.Fatalf("GetCourses returned error: %v", err)
	}
	if resolved[0].Name != "Linear Algebra" || resolved[1].Name != "Software Engineering" {
		t.Errorf("Expected courses in input order, got %q, %q", resolved[0].Name, resolved[1].Name)
	}
	if len(resolved[0].Evaluations) != 1 || len(resolved[1].Evaluations) != 2 {
		t.Errorf("Unexpected evaluations: %v / %v", resolved[0].Evaluations, resolved[1].Evaluations)
	}
	if table[0].Name != "" {
		t.Errorf("Expected input table to be left untouched, got %q", table[0].Name)
	}

	missing, err := course.NewTable(srv.URL+"/id/", []string{"CE 302", "ENG 101"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := GetCourses(newCollector(t, 50), missing); !errors.Is(err, course.ErrNetwork) {
		t.Errorf("Expected network error for unknown course, got %v", err)
	}
}
