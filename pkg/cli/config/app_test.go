package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/jirabridge/pkg/cli/config"
)

const sampleConfig = `
[epic]
probe_keys = ["{project}-1", "{project}-100"]
browse_size = 50
probe_timeout = "5s"

[sprint]
preferred = "Sprint 42"
variants = ["QA Sprint"]

[bulk]
delay = "250ms"

[translate]
source = "vi"
target = "en"
`

func TestApp_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jirabridge.toml")
	gt.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0600))

	app := &config.App{Path: path}
	file, err := app.Load()
	gt.NoError(t, err)

	gt.A(t, file.Epic.ProbeKeys).Length(2)
	gt.V(t, file.Epic.ProbeKeys[0]).Equal("{project}-1")
	gt.V(t, file.Epic.BrowseSize).Equal(50)
	gt.V(t, time.Duration(file.Epic.ProbeTimeout)).Equal(5 * time.Second)
	gt.V(t, file.Sprint.Preferred).Equal("Sprint 42")
	gt.V(t, time.Duration(file.Bulk.Delay)).Equal(250 * time.Millisecond)
	gt.V(t, file.Translate.Source).Equal("vi")

	gt.A(t, file.JiraOptions()).Length(3)
}

func TestApp_LoadDefaults(t *testing.T) {
	app := &config.App{}
	file, err := app.Load()
	gt.NoError(t, err)
	gt.V(t, file.Epic.BrowseSize).Equal(0)
	gt.A(t, file.JiraOptions()).Length(1)
}

func TestParseAppFile_Errors(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		_, err := config.ParseAppFile([]byte("[epic]\nprobe_kyes = []\n"))
		gt.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := config.ParseAppFile([]byte("[bulk]\ndelay = \"soon\"\n"))
		gt.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		app := &config.App{Path: filepath.Join(t.TempDir(), "nope.toml")}
		_, err := app.Load()
		gt.Error(t, err)
	})
}

func TestServer_ListenAddr(t *testing.T) {
	cases := map[string]struct {
		cfg        config.Server
		production bool
		want       string
	}{
		"default":           {cfg: config.Server{}, want: "localhost:3001"},
		"port overrides":    {cfg: config.Server{Addr: "localhost:3001", Port: "8080"}, want: "localhost:8080"},
		"production":        {cfg: config.Server{Addr: "localhost:3001"}, production: true, want: ":3001"},
		"production + port": {cfg: config.Server{Port: "9000"}, production: true, want: ":9000"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			gt.V(t, tc.cfg.ListenAddr(tc.production)).Equal(tc.want)
		})
	}
}

func TestConfluence_Credential(t *testing.T) {
	gt.True(t, (&config.Confluence{URL: "https://x.atlassian.net"}).Credential() == nil)

	cred := (&config.Confluence{URL: "https://x.atlassian.net", Email: "a@b.c", Token: "t"}).Credential()
	gt.True(t, cred != nil)
	gt.V(t, cred.Email).Equal("a@b.c")
}

func TestUpload_LocalDir(t *testing.T) {
	t.Setenv("VERCEL", "")
	gt.V(t, (&config.Upload{}).LocalDir()).Equal("uploads")
	gt.V(t, (&config.Upload{Dir: "/data"}).LocalDir()).Equal("/data")

	t.Setenv("VERCEL", "1")
	gt.V(t, (&config.Upload{}).LocalDir()).Equal("/tmp/uploads")
}
