package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Ext is the file extension of template files.
const Ext = ".md"

const descriptionLimit = 100

// ErrNotFound is returned when a template does not exist.
var ErrNotFound = errors.New("template not found")

var (
	titlePattern       = regexp.MustCompile(`(?m)^#\s+(.+)`)
	descriptionPattern = regexp.MustCompile(`(?m)^#.+\n+([^#\n].+)`)
	variablePattern    = regexp.MustCompile(`\{\{([^}]+)\}\}`)
)

// Template describes one template file.
type Template struct {
	Name        string `json:"name"`
	File        string `json:"file"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Category    string `json:"category"`
}

// Category is a configured category and the templates found in it.
type Category struct {
	Name      string     `json:"name"`
	Templates []Template `json:"templates"`
}

// Document is a template with its content and placeholder names.
type Document struct {
	Template
	Content   string   `json:"content"`
	Variables []string `json:"variables"`
}

// Library is a directory of templates, one subdirectory per category.
type Library struct {
	root       string
	categories []string
}

// NewLibrary returns a library rooted at root with the given categories in
// display order.
func NewLibrary(root string, categories []string) *Library {
	return &Library{root: root, categories: categories}
}

// Root returns the library directory.
func (l *Library) Root() string { return l.root }

// Categories returns the configured categories.
func (l *Library) Categories() []string { return l.categories }

// List returns the templates of every category whose name contains filter,
// case-insensitively. An empty filter selects all categories. A category
// whose directory is missing or unreadable is listed with no templates.
func (l *Library) List(filter string) []Category {
	filter = strings.ToLower(filter)

	result := []Category{}
	for _, name := range l.categories {
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		templates, err := l.scan(name)
		if err != nil {
			templates = []Template{}
		}
		result = append(result, Category{Name: name, Templates: templates})
	}
	return result
}

func (l *Library) scan(category string) ([]Template, error) {
	dir := filepath.Join(l.root, category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	templates := []Template{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Ext) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", path, err)
		}
		name := strings.TrimSuffix(entry.Name(), Ext)
		templates = append(templates, Template{
			Name:        name,
			File:        entry.Name(),
			Title:       title(string(content), name),
			Description: description(string(content)),
			Path:        path,
			Category:    category,
		})
	}
	return templates, nil
}

// Get reads a template. name may include the .md extension.
func (l *Library) Get(category, name string) (*Document, error) {
	file := name
	if !strings.HasSuffix(file, Ext) {
		file += Ext
	}
	path := filepath.Join(l.root, category, file)

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, category, name)
		}
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	text := string(content)
	return &Document{
		Template: Template{
			Name:        name,
			File:        file,
			Title:       title(text, name),
			Description: description(text),
			Path:        path,
			Category:    category,
		},
		Content:   text,
		Variables: Variables(text),
	}, nil
}

// Variables returns the distinct {{placeholder}} names in content, in order
// of first appearance.
func Variables(content string) []string {
	vars := []string{}
	seen := map[string]bool{}
	for _, m := range variablePattern.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			vars = append(vars, m[1])
		}
	}
	return vars
}

// Missing returns the variables that have no non-empty value in values.
func Missing(variables []string, values map[string]string) []string {
	var missing []string
	for _, v := range variables {
		if values[v] == "" {
			missing = append(missing, v)
		}
	}
	return missing
}

// Generate replaces every {{key}} in content with its value. Placeholders
// without a value are left in place.
func Generate(content string, values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		content = strings.ReplaceAll(content, "{{"+k+"}}", values[k])
	}
	return content
}

// ParseVars turns key=value pairs into a map. The value is everything after
// the first '='; pairs without '=' or with an empty key are ignored.
func ParseVars(pairs []string) map[string]string {
	values := map[string]string{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

func title(content, fallback string) string {
	if m := titlePattern.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return fallback
}

func description(content string) string {
	m := descriptionPattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	d := m[1]
	if utf8.RuneCountInString(d) > descriptionLimit {
		d = string([]rune(d)[:descriptionLimit])
	}
	return strings.TrimSpace(d)
}
