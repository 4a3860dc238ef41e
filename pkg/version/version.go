package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

const (
	devVersion     = "0.0.0-dev"
	latestRelease  = "https://api.github.com/repos/diillson/retail-sales-analytics-go/releases/latest"
	installCommand = "go install github.com/diillson/retail-sales-analytics-go/cmd/retail-analytics@latest"
)

// Preenchidos por ldflags; quando vazios, vêm do build info.
var (
	Version   = devVersion
	Commit    = ""
	BuildTime = ""
)

func init() {
	fillFromBuildInfo(debug.ReadBuildInfo())
}

// fillFromBuildInfo completa Commit, BuildTime e Version a partir das chaves vcs.* do binário.
// Values set through ldflags win.
func fillFromBuildInfo(bi *debug.BuildInfo, ok bool) {
	if Version != "" && Version != devVersion {
		return
	}
	if !ok || bi == nil {
		return
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}
	if ts, err := time.Parse(time.RFC3339, settings["vcs.time"]); BuildTime == "" && err == nil {
		BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
	}
	if tag := strings.TrimPrefix(settings["vcs.tag"], "v"); tag != "" {
		Version = tag
		if strings.EqualFold(settings["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

// shouldCheck informa se vale consultar a última release: só builds de release limpos.
func shouldCheck(currentVersion string) bool {
	if currentVersion == "" || currentVersion == devVersion {
		return false
	}
	_, suffix, hasSuffix := strings.Cut(currentVersion, "-")
	if hasSuffix && (suffix == "dev" || suffix == "dirty" || strings.HasSuffix(suffix, "dev")) {
		return false
	}
	_, ok := parseSemver(currentVersion)
	return ok
}

// CheckLatestVersion avisa quando há uma release mais nova. Falhas de rede são ignoradas.
func CheckLatestVersion(currentVersion string) {
	if !shouldCheck(currentVersion) {
		return
	}

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(latestRelease)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return
	}

	latestVersion := strings.TrimPrefix(release.TagName, "v")
	if isNewer(latestVersion, currentVersion) {
		pterm.Warning.Printfln("A new version of Retail Sales Analytics is available: %s", latestVersion)
		pterm.Info.Printfln("Please update using: %s", installCommand)
	}
}

// isNewer compara versões semânticas "major.minor.patch", ignorando sufixos como "-dirty".
func isNewer(latest, current string) bool {
	lp, lok := parseSemver(latest)
	cp, cok := parseSemver(current)
	if !lok || !cok {
		return false
	}
	for i := range lp {
		if lp[i] != cp[i] {
			return lp[i] > cp[i]
		}
	}
	return false
}

func parseSemver(v string) ([3]int, bool) {
	var parts [3]int
	v, _, _ = strings.Cut(v, "-")
	fields := strings.Split(v, ".")
	if len(fields) == 0 || len(fields) > 3 {
		return parts, false
	}
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return parts, false
		}
		parts[i] = n
	}
	return parts, true
}

// FormatVersion monta a versão exibida, ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)".
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}

	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", ver)
	case Commit == "":
		return fmt.Sprintf("%s (commit: development, built at: %s)", ver, BuildTime)
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	default:
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
	}
}
