package export

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/retain/internal/demo"
	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/internal/logging"
	"github.com/vango-dev/retain/pkg/component"
)

func TestRenderSettlesTasks(t *testing.T) {
	res, err := RenderResult(demo.Page("Static", "one", "two"), Options{Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("RenderResult() error = %v", err)
	}
	for _, want := range []string{"<h1>Static</h1>", "<span>one</span>", "<span>two</span>", "count 0, 2 open"} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("HTML missing %q:\n%s", want, res.HTML)
		}
	}
	if res.Passes < 2 {
		t.Errorf("Passes = %d, want at least 2 (initial and after load)", res.Passes)
	}
	if res.Live == 0 {
		t.Error("Live = 0, want the settled tree")
	}
}

// restless starts a task from every update, so it never settles.
type restless struct{}

func newRestless(struct{}) *restless { return &restless{} }

func (r *restless) OnAssemble(struct{}) component.Cmd[int, struct{}] { return r.again() }

func (r *restless) Update(struct{}, int) component.Cmd[int, struct{}] { return r.again() }

func (r *restless) Render(struct{}, []component.Html) component.Html {
	return component.Text("busy")
}

func (r *restless) again() component.Cmd[int, struct{}] {
	return component.Task[int, struct{}](func(resolve func(int)) { resolve(1) })
}

func TestRenderGivesUp(t *testing.T) {
	_, err := Render(component.Root[int, struct{}](newRestless, struct{}{}),
		Options{MaxSteps: 50, Logger: logging.NewNop()})
	if !errors.HasCode(err, "E150") {
		t.Errorf("Render() error = %v, want E150", err)
	}
}

func TestDocumentAndWriteFile(t *testing.T) {
	page := Document("A & B", "<p>x</p>")
	if !strings.Contains(page, "<title>A &amp; B</title>") || !strings.Contains(page, "<body><p>x</p></body>") {
		t.Errorf("Document() = %s", page)
	}

	path := filepath.Join(t.TempDir(), "out", "index.html")
	if err := WriteFile(path, page); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != page {
		t.Errorf("file = %q, %v", got, err)
	}
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Upload(t *testing.T) {
	fake := &fakeS3{}
	up := NewS3Uploader(fake, "site", "pages/")

	if err := up.Upload(context.Background(), "index.html", "<p>hi</p>"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if got := aws.ToString(fake.in.Bucket); got != "site" {
		t.Errorf("Bucket = %q, want site", got)
	}
	if got := aws.ToString(fake.in.Key); got != "pages/index.html" {
		t.Errorf("Key = %q, want pages/index.html", got)
	}
	if got := aws.ToString(fake.in.ContentType); !strings.HasPrefix(got, "text/html") {
		t.Errorf("ContentType = %q", got)
	}
	if fake.body != "<p>hi</p>" {
		t.Errorf("body = %q", fake.body)
	}

	fake.err = stderrors.New("denied")
	if err := up.Upload(context.Background(), "x", ""); !errors.HasCode(err, "E150") {
		t.Errorf("Upload() error = %v, want E150", err)
	}
}

func TestS3Key(t *testing.T) {
	tests := []struct{ prefix, name, want string }{
		{"", "a.html", "a.html"},
		{"/", "a.html", "a.html"},
		{"site", "a.html", "site/a.html"},
		{"site/", "/nested/a.html", "site/nested/a.html"},
	}
	for _, tt := range tests {
		if got := NewS3Uploader(nil, "b", tt.prefix).Key(tt.name); got != tt.want {
			t.Errorf("Key(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}

func TestNewS3Client(t *testing.T) {
	c := NewS3Client(S3Config{Region: "eu-west-1", Endpoint: "http://localhost:9000", UsePathStyle: true})
	o := c.Options()
	if o.Region != "eu-west-1" || aws.ToString(o.BaseEndpoint) != "http://localhost:9000" || !o.UsePathStyle {
		t.Errorf("Options() = %+v", o)
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "")
	if _, err := envCredentials(context.Background()); err == nil {
		t.Error("envCredentials() without keys succeeded")
	}
	t.Setenv("AWS_ACCESS_KEY_ID", "id")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	creds, err := envCredentials(context.Background())
	if err != nil || creds.AccessKeyID != "id" {
		t.Errorf("envCredentials() = %+v, %v", creds, err)
	}
}
