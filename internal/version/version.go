package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Build information; overridden at link time via -ldflags -X.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Banner returns "yulc <version> (<commit>, <date>)"; the version numbers are
// colorised when color output is enabled.
func Banner() string {
	var sb strings.Builder
	sb.WriteString("yulc ")
	sb.WriteString(colorize(Version))
	var extra []string
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		extra = append(extra, commit)
	}
	if BuildDate != "" {
		extra = append(extra, BuildDate)
	}
	if len(extra) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(extra, ", "))
	}
	return sb.String()
}

// colorize paints major.minor.patch; any suffix is left as is.
func colorize(v string) string {
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
