package readiness

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Topic is a study topic known to the catalog.
type Topic struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
}

// MockTest describes a mock test and the topics it exercises.
type MockTest struct {
	ID              string   `yaml:"id" json:"id"`
	Name            string   `yaml:"name" json:"name"`
	Company         string   `yaml:"company" json:"company"`
	Questions       int      `yaml:"questions" json:"questions"`
	DurationMinutes int      `yaml:"duration_minutes" json:"duration_minutes"`
	TopicIDs        []string `yaml:"topics" json:"topic_ids"`
}

// Catalog holds the topics and mock tests used to seed and tag aggregation.
// A Catalog is read-only after loading.
type Catalog struct {
	Topics    []Topic    `yaml:"topics" json:"topics"`
	MockTests []MockTest `yaml:"mock_tests" json:"mock_tests"`

	topics    map[string]Topic
	mockTests map[string]MockTest
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(bytes.NewReader(defaultCatalogYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// LoadCatalogFile reads a catalog from a YAML file. An empty path yields the default catalog.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// LoadCatalog decodes and indexes a YAML catalog.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	c.topics = make(map[string]Topic, len(c.Topics))
	for _, t := range c.Topics {
		if t.ID == "" {
			return fmt.Errorf("catalog topic without id")
		}
		if _, dup := c.topics[t.ID]; dup {
			return fmt.Errorf("duplicate catalog topic %q", t.ID)
		}
		c.topics[t.ID] = t
	}

	c.mockTests = make(map[string]MockTest, len(c.MockTests))
	for _, m := range c.MockTests {
		if m.ID == "" {
			return fmt.Errorf("catalog mock test without id")
		}
		if _, dup := c.mockTests[m.ID]; dup {
			return fmt.Errorf("duplicate catalog mock test %q", m.ID)
		}
		for _, topicID := range m.TopicIDs {
			if _, ok := c.topics[topicID]; !ok {
				return fmt.Errorf("mock test %q references unknown topic %q", m.ID, topicID)
			}
		}
		c.mockTests[m.ID] = m
	}
	return nil
}

// Topic looks up a topic by id.
func (c *Catalog) Topic(id string) (Topic, bool) {
	if c == nil {
		return Topic{}, false
	}
	t, ok := c.topics[id]
	return t, ok
}

// MockTest looks up a mock test by id.
func (c *Catalog) MockTest(id string) (MockTest, bool) {
	if c == nil {
		return MockTest{}, false
	}
	m, ok := c.mockTests[id]
	return m, ok
}

// TopicsForMockTest returns the topics an attempt at the given mock test is tagged to.
func (c *Catalog) TopicsForMockTest(id string) []string {
	m, ok := c.MockTest(id)
	if !ok {
		return nil
	}
	return m.TopicIDs
}

// Categories returns the distinct topic categories, sorted.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, t := range c.Topics {
		seen[t.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for category := range seen {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Companies returns the distinct mock test companies, sorted.
func (c *Catalog) Companies() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, m := range c.MockTests {
		seen[m.Company] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for company := range seen {
		out = append(out, company)
	}
	sort.Strings(out)
	return out
}
