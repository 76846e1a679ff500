// Package download fetches the browsers and WebDriver servers the browser
// tests run against.
package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"regexp"

	"cloud.google.com/go/storage"
	"github.com/blang/semver"
	"github.com/golang/glog"
	"github.com/google/go-github/v27/github"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

// MinGeckoDriver is the oldest geckodriver that speaks the W3C protocol the
// enhanced elements rely on.
var MinGeckoDriver = semver.MustParse("0.26.0")

// File is one artifact to download into the destination directory.
type File struct {
	URL  string
	Name string
	// SHA256 is the expected hex digest. Empty disables verification and
	// always downloads.
	SHA256 string
	// Browser marks files skipped when browsers are not requested.
	Browser bool
	// Rename moves Rename[0] to Rename[1] after extraction.
	Rename []string
}

// LatestGithubRelease returns the asset of the latest release of owner/repo
// whose name matches assetName, saved as localName, along with the release
// version. A nil client uses the public API.
func LatestGithubRelease(ctx context.Context, client *github.Client, owner, repo, assetName, localName string) (File, semver.Version, error) {
	if client == nil {
		client = github.NewClient(nil)
	}
	re, err := regexp.Compile(assetName)
	if err != nil {
		return File{}, semver.Version{}, fmt.Errorf("invalid asset name regular expression %q: %v", assetName, err)
	}
	rel, _, err := client.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return File{}, semver.Version{}, err
	}
	v, err := semver.ParseTolerant(rel.GetTagName())
	if err != nil {
		return File{}, semver.Version{}, fmt.Errorf("%s/%s: release tag %q: %v", owner, repo, rel.GetTagName(), err)
	}
	for _, a := range rel.Assets {
		if !re.MatchString(a.GetName()) {
			continue
		}
		u := a.GetBrowserDownloadURL()
		if u == "" {
			return File{}, v, fmt.Errorf("%s does not have a download URL", a.GetName())
		}
		return File{Name: localName, URL: u}, v, nil
	}
	return File{}, v, fmt.Errorf("release for %s not found at https://github.com/%s/%s/releases", assetName, owner, repo)
}

// GeckoDriver returns the latest linux64 geckodriver release, rejecting
// releases older than MinGeckoDriver.
func GeckoDriver(ctx context.Context, client *github.Client) (File, error) {
	f, v, err := LatestGithubRelease(ctx, client, "mozilla", "geckodriver", "geckodriver-.*linux64.tar.gz$", "geckodriver.tar.gz")
	if err != nil {
		return File{}, err
	}
	if v.LT(MinGeckoDriver) {
		return File{}, fmt.Errorf("geckodriver %s is older than the required %s", v, MinGeckoDriver)
	}
	glog.Infof("Using geckodriver %s", v)
	return f, nil
}

// Chromium returns the Chromium snapshot and matching ChromeDriver for build.
// An empty build selects the latest snapshot.
func Chromium(ctx context.Context, build string, opts ...option.ClientOption) ([]File, error) {
	const (
		bucket             = "chromium-browser-snapshots"
		prefix             = "Linux_x64"
		lastChange         = "Linux_x64/LAST_CHANGE"
		chromeArchive      = "chrome-linux.zip"
		chromeDriverZip    = "chromedriver_linux64.zip"
		chromeDriverTarget = "chromedriver.zip"
	)
	if len(opts) == 0 {
		opts = []option.ClientOption{option.WithHTTPClient(http.DefaultClient)}
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create a storage client: %v", err)
	}
	defer client.Close()
	bkt := client.Bucket(bucket)

	if build == "" {
		r, err := bkt.Object(lastChange).NewReader(ctx)
		if err != nil {
			return nil, fmt.Errorf("cannot read gs://%s/%s: %v", bucket, lastChange, err)
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("cannot read gs://%s/%s: %v", bucket, lastChange, err)
		}
		build = string(data)
	}

	var files []File
	for _, f := range []struct {
		object string
		file   File
	}{
		{path.Join(prefix, build, chromeArchive), File{Name: chromeArchive, Browser: true}},
		{path.Join(prefix, build, chromeDriverZip), File{Name: chromeDriverTarget, Rename: []string{"chromedriver_linux64/chromedriver", "chromedriver"}}},
	} {
		attrs, err := bkt.Object(f.object).Attrs(ctx)
		if err != nil {
			return nil, fmt.Errorf("cannot get gs://%s/%s attrs: %v", bucket, f.object, err)
		}
		f.file.URL = attrs.MediaLink
		files = append(files, f.file)
	}
	return files, nil
}

// Firefox returns the Firefox release version, or the latest nightly when
// version is empty.
func Firefox(version string) File {
	if version == "" {
		return File{
			URL:     "https://download.mozilla.org/?product=firefox-nightly-latest-ssl&os=linux64&lang=en-US",
			Name:    "firefox-nightly.tar.bz2",
			Browser: true,
		}
	}
	v := url.PathEscape(version)
	return File{
		URL:     "https://download-installer.cdn.mozilla.net/pub/firefox/releases/" + v + "/linux-x86_64/en-US/firefox-" + v + ".tar.bz2",
		Name:    "firefox.tar.bz2",
		Browser: true,
	}
}

// Fetcher downloads and unpacks files into Dir.
type Fetcher struct {
	Dir      string
	Client   *http.Client
	Browsers bool
	// Extract unpacks archives after download. Tests turn it off.
	Extract bool
}

// Fetch handles all files concurrently and returns the first error.
func (f *Fetcher) Fetch(ctx context.Context, files []File) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := f.handle(ctx, file); err != nil {
				return fmt.Errorf("error handling %s: %v", file.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (f *Fetcher) handle(ctx context.Context, file File) error {
	if file.Browser && !f.Browsers {
		glog.Infof("Skipping %q because browsers were not requested.", file.Name)
		return nil
	}
	dst := filepath.Join(f.Dir, file.Name)
	if file.SHA256 != "" && sameHash(dst, file.SHA256) {
		glog.Infof("Skipping file %q which has already been downloaded.", file.Name)
	} else {
		glog.Infof("Downloading %q from %q", file.Name, file.URL)
		if err := f.download(ctx, file, dst); err != nil {
			return err
		}
	}
	if !f.Extract {
		return nil
	}
	if err := f.extract(ctx, file.Name); err != nil {
		return err
	}
	if len(file.Rename) == 2 {
		from, to := filepath.Join(f.Dir, file.Rename[0]), filepath.Join(f.Dir, file.Rename[1])
		glog.Infof("Renaming %q to %q", from, to)
		os.RemoveAll(to) // Ignore error.
		if err := os.Rename(from, to); err != nil {
			glog.Warningf("Error renaming %q to %q: %v", from, to, err)
		}
	}
	return nil
}

func (f *Fetcher) extract(ctx context.Context, name string) error {
	var cmd *exec.Cmd
	switch path.Ext(name) {
	case ".zip":
		cmd = exec.CommandContext(ctx, "unzip", "-o", name)
	case ".gz":
		cmd = exec.CommandContext(ctx, "tar", "-xzf", name)
	case ".bz2":
		cmd = exec.CommandContext(ctx, "tar", "-xjf", name)
	default:
		return nil
	}
	glog.Infof("Unpacking %q", name)
	cmd.Dir = f.Dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("error unpacking %q: %v: %s", name, err, out)
	}
	return nil
}

func (f *Fetcher) download(ctx context.Context, file File, dst string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.URL, nil)
	if err != nil {
		return err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error downloading %q: %v", file.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error downloading %q: %s", file.URL, resp.Status)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("error creating %q: %v", dst, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing %q: %v", dst, closeErr)
		}
	}()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), resp.Body); err != nil {
		return fmt.Errorf("error downloading %q: %v", file.URL, err)
	}
	if file.SHA256 == "" {
		return nil
	}
	if sum := hex.EncodeToString(h.Sum(nil)); sum != file.SHA256 {
		return fmt.Errorf("got sha256 %q, want %q", sum, file.SHA256)
	}
	return nil
}

func sameHash(name, want string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return false
	}
	if sum := hex.EncodeToString(h.Sum(nil)); sum != want {
		glog.Warningf("File %q: got hash %q, expect hash %q", name, sum, want)
		return false
	}
	return true
}
