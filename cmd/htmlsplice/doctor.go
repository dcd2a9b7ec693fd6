package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	htmlsplice "github.com/alnah/go-htmlsplice"
	"github.com/alnah/go-htmlsplice/internal/config"
	"github.com/alnah/go-htmlsplice/internal/fileutil"
	"github.com/alnah/go-htmlsplice/internal/hints"
	"github.com/alnah/go-htmlsplice/internal/pipeline"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string        `json:"status"` // "ready", "warnings", "errors"
	Site     siteInfo      `json:"site"`
	Targets  []targetCheck `json:"targets"`
	Env      envInfo       `json:"environment"`
	Warnings []string      `json:"warnings,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
}

// siteInfo holds the resolved site settings.
type siteInfo struct {
	Root   string `json:"root"`
	Locale string `json:"locale"`
}

// targetCheck holds the checks of one target.
type targetCheck struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	Source        string `json:"source"`
	SourceFound   bool   `json:"source_found"`
	Document      string `json:"document"`
	DocumentFound bool   `json:"document_found"`
	Writable      bool   `json:"writable"`
	Strategy      string `json:"strategy,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS             string `json:"os"`
	Arch           string `json:"arch"`
	Container      bool   `json:"container"`
	CI             bool   `json:"ci"`
	MaxUserWatches int    `json:"max_user_watches,omitempty"`
}

// maxUserWatchesPath exposes the inotify limit on Linux.
var maxUserWatchesPath = "/proc/sys/fs/inotify/max_user_watches"

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	f, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		return report(err, env)
	}

	cfg, err := resolveConfig(&f.common, loadEnvConfig())
	if err != nil {
		return report(err, env)
	}

	result := runDoctor(cfg)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks without writing any document.
func runDoctor(cfg *config.Config) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Site:   siteInfo{Root: cfg.Root, Locale: cfg.Locale},
		Env:    envInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	for _, t := range htmlsplice.TargetsFromConfig(cfg) {
		result.Targets = append(result.Targets, checkTarget(result, cfg.Root, t))
	}
	checkEnvironment(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkTarget verifies the files of t and finds its injection point.
func checkTarget(result *doctorResult, root string, t htmlsplice.Target) targetCheck {
	c := targetCheck{
		Name:     t.Name,
		Kind:     string(t.Kind),
		Source:   fileutil.ResolvePath(root, t.Source),
		Document: fileutil.ResolvePath(root, t.Document),
	}

	c.SourceFound = fileutil.FileExists(c.Source)
	if !c.SourceFound {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: %s not found, target will be skipped", t.Name, c.Source))
	}

	doc, err := os.ReadFile(c.Document) // #nosec G304 -- document path comes from the site config
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: cannot read %s", t.Name, c.Document))
		return c
	}
	c.DocumentFound = true

	c.Writable = dirWritable(filepath.Dir(c.Document))
	if !c.Writable {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s: directory of %s is not writable", t.Name, c.Document))
	}

	_, strategy, err := pipeline.Splice(string(doc), pipeline.Injection{
		ContainerID: t.ContainerID,
		Placeholder: t.Placeholder,
	}, "")
	if errors.Is(err, pipeline.ErrContainerNotFound) {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: no injection point in %s: %s",
			t.Name, c.Document, hints.Plain(hints.ForMissingContainer(t.ContainerID, t.Placeholder))))
		return c
	}
	c.Strategy = strategy.String()

	return c
}

// dirWritable reports whether a file can be created in dir.
func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".htmlsplice-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// checkEnvironment detects container and CI environments and the
// inotify watch limit used by the watch command.
func checkEnvironment(result *doctorResult) {
	result.Env.Container = hints.IsInContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if runtime.GOOS != "linux" {
		return
	}
	data, err := os.ReadFile(maxUserWatchesPath)
	if err != nil {
		return
	}
	if n, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil {
		result.Env.MaxUserWatches = n
		if n < len(result.Targets) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("inotify max_user_watches is %d, watch may miss changes", n))
		}
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "htmlsplice doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Site")
	root := r.Site.Root
	if root == "" {
		root = "."
	}
	fmt.Fprintf(w, "  [OK] Root: %s\n", root)
	fmt.Fprintf(w, "  [OK] Locale: %s\n", r.Site.Locale)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Targets")
	for _, t := range r.Targets {
		switch {
		case !t.DocumentFound, !t.Writable, t.Strategy == "":
			fmt.Fprintf(w, "  [ERROR] %s (%s): %s\n", t.Name, t.Kind, t.Document)
		case !t.SourceFound:
			fmt.Fprintf(w, "  [WARN] %s (%s): %s not found\n", t.Name, t.Kind, t.Source)
		default:
			fmt.Fprintf(w, "  [OK] %s (%s): %s -> %s via %s\n", t.Name, t.Kind, t.Source, t.Document, t.Strategy)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if r.Env.MaxUserWatches > 0 {
		fmt.Fprintf(w, "  [OK] inotify watches: %d\n", r.Env.MaxUserWatches)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to build")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
