// Package probe derives target options from the environment a snippet is
// going to run in.
package probe

import (
	"log/slog"
	"regexp"
	"strconv"

	"github.com/panyam/snippet/decl"
)

// None is used outside of browser contexts and reports nothing.
type None struct{}

func (None) Probe() decl.Options {
	return decl.Options{}
}

// Browser picks the newest script target a browser is known to run natively
// from its user agent string.
type Browser struct {
	UserAgent string
}

type engine struct {
	pattern *regexp.Regexp
	// major version -> target, highest first
	targets []threshold
}

type threshold struct {
	version int
	target  string
}

// Order matters: Edge and Opera also claim Chrome, Chrome also claims Safari.
var engines = []engine{
	{regexp.MustCompile(`Chrom(?:e|ium)/(\d+)`), []threshold{
		{94, "es2022"}, {85, "es2021"}, {80, "es2020"}, {66, "es2019"}, {64, "es2018"}, {58, "es2017"}, {52, "es2016"},
	}},
	{regexp.MustCompile(`Firefox/(\d+)`), []threshold{
		{93, "es2022"}, {79, "es2021"}, {74, "es2020"}, {62, "es2019"}, {58, "es2018"}, {52, "es2017"},
	}},
	{regexp.MustCompile(`Version/(\d+)[\d.]* (?:Mobile/\S+ )?Safari/`), []threshold{
		{16, "es2022"}, {14, "es2021"}, {13, "es2019"}, {12, "es2018"}, {11, "es2017"}, {10, "es2016"},
	}},
}

// Probe returns a fragment with only Target set, or an empty fragment for
// unknown agents.
func (b Browser) Probe() decl.Options {
	for _, e := range engines {
		m := e.pattern.FindStringSubmatch(b.UserAgent)
		if m == nil {
			continue
		}
		major, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		target := "es2015"
		for _, th := range e.targets {
			if major >= th.version {
				target = th.target
				break
			}
		}
		slog.Debug("Probed browser target", "version", major, "target", target)
		return decl.Options{Target: target}
	}
	return decl.Options{}
}
