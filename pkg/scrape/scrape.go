package scrape

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/golang/glog"
	"github.com/openswoop/gpasheet/pkg/course"
)

const (
	DefaultParallelism = 50
	DefaultTimeout     = 30 * time.Second

	indexKey = "index"
)

type Unmarshaler interface {
	UnmarshalDoc(doc *goquery.Document) error
}

// NewCollector returns an async collector that never has more than
// parallelism requests in flight, across every host.
func NewCollector(parallelism int, timeout time.Duration) (*colly.Collector, error) {
	if parallelism < 1 {
		parallelism = DefaultParallelism
	}
	c := colly.NewCollector(colly.Async(true), colly.AllowURLRevisit())
	if timeout > 0 {
		c.SetRequestTimeout(timeout)
	}
	err := c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: parallelism})
	if err != nil {
		return nil, fmt.Errorf("%w: invalid parallelism %d: %v", course.ErrConfiguration, parallelism, err)
	}
	return c, nil
}

// Fetch downloads every url and returns the bodies in the order of urls.
// A single failed request fails the whole batch.
func Fetch(c *colly.Collector, urls []string) ([][]byte, error) {
	c = c.Clone() // same collector but without old callbacks
	c.Async = true
	c.AllowURLRevisit = true

	bodies := make([][]byte, len(urls))
	var mu sync.Mutex
	failures := make(map[int]error)
	fail := func(i int, err error) {
		mu.Lock()
		defer mu.Unlock()
		failures[i] = fmt.Errorf("%w: %s: %v", course.ErrNetwork, urls[i], err)
	}

	c.OnResponse(func(res *colly.Response) {
		i, _ := strconv.Atoi(res.Ctx.Get(indexKey))
		bodies[i] = res.Body
	})
	c.OnError(func(res *colly.Response, err error) {
		i, _ := strconv.Atoi(res.Ctx.Get(indexKey))
		fail(i, err)
	})

	for i, url := range urls {
		ctx := colly.NewContext()
		ctx.Put(indexKey, strconv.Itoa(i))
		if err := c.Request("GET", url, nil, ctx, nil); err != nil {
			fail(i, err)
		}
	}
	c.Wait()

	// Report the earliest course so reruns fail the same way
	for i := range urls {
		if err, ok := failures[i]; ok {
			return nil, err
		}
	}
	return bodies, nil
}

func Unmarshal(body []byte, u Unmarshaler) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", course.ErrParse, err)
	}
	return u.UnmarshalDoc(doc)
}

// GetCourses fetches the syllabus of every course in the table and returns a
// resolved copy, in the same order. The input table is left untouched.
func GetCourses(c *colly.Collector, table course.Table) (course.Table, error) {
	glog.Infof("Fetching %d syllabus pages", len(table))
	bodies, err := Fetch(c, table.Urls())
	if err != nil {
		return nil, err
	}

	resolved := make(course.Table, len(table))
	for i := range table {
		resolved[i] = table[i]
		if err := Unmarshal(bodies[i], Syllabus{&resolved[i]}); err != nil {
			return nil, err
		}
		glog.Infof("%s: %q, %d ECTS, %d evaluations", resolved[i].Code,
			resolved[i].Name, resolved[i].Credits, len(resolved[i].Evaluations))
	}
	return resolved, nil
}
