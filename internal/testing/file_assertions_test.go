package testing

import "testing"

func TestFileAssertions(t *testing.T) {
	p := NewProject(t).WriteFiles(map[string]string{
		"out/index.html":   "<p>hi</p>",
		"out/blog/a.html":  "<p>a</p>",
		"out/assets/x.css": "body{}",
	})

	fa := p.Assert("out")
	fa.AssertFileExists("index.html").
		AssertFileNotExists("missing.html").
		AssertDirExists("blog").
		AssertFileContains("blog/a.html", "<p>a").
		AssertFileEquals("assets/x.css", "body{}").
		AssertFiles("index.html", "blog/a.html", "assets/x.css").
		AssertNoFileContains("{{")

	snap := fa.Snapshot()
	if len(snap) != 3 || snap["index.html"] != "<p>hi</p>" {
		t.Fatalf("unexpected snapshot: %v", snap)
	}
	if got := p.Assert("missing").ListFiles(); got != nil {
		t.Fatalf("expected nil listing, got %v", got)
	}
}
