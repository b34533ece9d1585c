package export

import (
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/retain"
	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/component"
	"github.com/vango-dev/retain/pkg/dom/memdom"
	"github.com/vango-dev/retain/pkg/scheduler"
)

// Options control a static render.
type Options struct {
	// RootTag is the element the tree is mounted in. Default "body".
	RootTag string

	// MaxSteps bounds the scheduled functions run while settling.
	// Default 10000.
	MaxSteps int

	// MaxFollowUpPasses is passed to the App. Default 16.
	MaxFollowUpPasses int

	Logger *slog.Logger
}

func (o *Options) applyDefaults() {
	if o.RootTag == "" {
		o.RootTag = "body"
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = 10000
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Result is a settled render.
type Result struct {
	HTML   string // inner HTML of the root element
	Passes uint64
	Steps  int
	Live   int // component instances alive at the end
}

// Render mounts root, settles it and returns the inner HTML of the mount
// point.
func Render(root component.Prefab, opts Options) (string, error) {
	res, err := RenderResult(root, opts)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// RenderResult is Render with pass and step counts.
func RenderResult(root component.Prefab, opts Options) (*Result, error) {
	opts.applyDefaults()
	logger := opts.Logger.With("component", "export")

	doc, mount := memdom.NewWithRoot(opts.RootTag)
	q := scheduler.NewQueue(opts.Logger)
	app := retain.New(doc, q, retain.Config{
		MaxFollowUpPasses: opts.MaxFollowUpPasses,
		Logger:            opts.Logger,
	})

	app.Mount(mount, root)
	steps := q.FlushN(opts.MaxSteps)
	if q.Len() > 0 {
		return nil, errors.New("E150").
			With("steps", steps).
			With("pending", q.Len()).
			WithDetail("The component tree kept scheduling work and never settled.")
	}

	res := &Result{
		HTML:   doc.InnerHTML(mount),
		Passes: app.Passes(),
		Steps:  steps,
		Live:   app.Live(),
	}
	logger.Debug("rendered", "passes", res.Passes, "steps", steps, "bytes", len(res.HTML))
	return res, nil
}

// Document wraps body in a minimal HTML page.
func Document(title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n</head>\n<body>", html.EscapeString(title))
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// WriteFile writes page to path, creating parent directories.
func WriteFile(path, page string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New("E150").Wrap(err).With("path", path)
		}
	}
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return errors.New("E150").Wrap(err).With("path", path)
	}
	return nil
}
