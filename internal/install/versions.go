package install

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// versionArchiveRe recognizes the Linux binary archives on the mirror index,
// e.g. "doxygen-1.9.8.linux.bin.tar.gz". One published Linux archive per
// release makes it a reliable census of available versions.
var versionArchiveRe = regexp.MustCompile(`^doxygen-([0-9]+(?:\.[0-9]+)*)\.linux\.bin\.tar\.gz$`)

// ListAvailable fetches the mirror's index page and returns the versions
// with a published binary archive, newest first.
func (i *Installer) ListAvailable(ctx context.Context) ([]string, error) {
	resp, err := i.get(ctx, i.mirror()+"/")
	if err != nil {
		return nil, fmt.Errorf("fetch mirror index: %w", err)
	}
	defer resp.Body.Close()

	node, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse mirror index: %w", err)
	}
	versions := collectVersions(node)
	sort.Slice(versions, func(a, b int) bool {
		return compareVersions(versions[a], versions[b]) > 0
	})
	return versions, nil
}

// collectVersions walks the parsed index and extracts version numbers from
// anchor hrefs, deduplicated.
func collectVersions(root *html.Node) []string {
	seen := make(map[string]bool)
	var versions []string

	var dfs func(*html.Node)
	dfs = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				name := path.Base(attr.Val)
				if m := versionArchiveRe.FindStringSubmatch(name); m != nil && !seen[m[1]] {
					seen[m[1]] = true
					versions = append(versions, m[1])
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(root)
	return versions
}

// compareVersions orders dotted version strings numerically, so that 1.10.0
// sorts above 1.9.8.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for idx := 0; idx < len(as) || idx < len(bs); idx++ {
		var an, bn int
		if idx < len(as) {
			an, _ = strconv.Atoi(as[idx])
		}
		if idx < len(bs) {
			bn, _ = strconv.Atoi(bs[idx])
		}
		if an != bn {
			return an - bn
		}
	}
	return 0
}
