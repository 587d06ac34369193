package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
)

// Check levels, from best to worst.
const (
	levelOK    = "ok"
	levelWarn  = "warn"
	levelError = "error"
)

// check is one diagnostic line.
type check struct {
	Name   string `json:"name"`
	Level  string `json:"level"`
	Detail string `json:"detail"`
}

// diagnosis is the doctor report. HTML conversion needs nothing external;
// every check concerns --pdf.
type diagnosis struct {
	Version string  `json:"version"`
	OS      string  `json:"os"`
	Arch    string  `json:"arch"`
	Engines string  `json:"engines"`
	Status  string  `json:"status"`
	Checks  []check `json:"checks"`
}

// status returns the worst level among the checks.
func (d *diagnosis) status() string {
	worst := levelOK
	for _, c := range d.Checks {
		switch {
		case c.Level == levelError:
			return levelError
		case c.Level == levelWarn:
			worst = levelWarn
		}
	}
	return worst
}

func (d *diagnosis) add(name, level, detail string) {
	d.Checks = append(d.Checks, check{Name: name, Level: level, Detail: detail})
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 4 = PDF export will fail.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "print the report as JSON")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return ExitSuccess
		}
		return ExitUsage
	}

	d := diagnose(env)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(d)
	} else {
		printDiagnosis(env.Stdout, d)
	}

	if d.Status == levelError {
		return ExitBrowser
	}
	return ExitSuccess
}

// diagnose runs every check.
func diagnose(env *Environment) *diagnosis {
	d := &diagnosis{
		Version: Version,
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
		Engines: strings.Join(md2html.Engines(), ", "),
	}

	checkBrowser(d, env)
	checkSandbox(d, env)
	checkTempDir(d)
	d.Status = d.status()

	return d
}

// lookPath locates Chrome; replaced in tests.
var lookPath = launcher.LookPath

// checkBrowser locates Chrome the way PDF export does.
func checkBrowser(d *diagnosis, env *Environment) {
	bin := env.Getenv("ROD_BROWSER_BIN")
	if bin == "" {
		var found bool
		if bin, found = lookPath(); !found {
			d.add("browser", levelError, "Chrome/Chromium not found; install it or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(bin); err != nil {
		d.add("browser", levelError, fmt.Sprintf("%s: %v", bin, err))
		return
	}
	d.add("browser", levelOK, bin)

	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- browser path from env or launcher
	if err != nil {
		d.add("browser version", levelWarn, fmt.Sprintf("could not run %s --version: %v", bin, err))
		return
	}
	d.add("browser version", levelOK, strings.TrimSpace(string(out)))
}

// checkSandbox warns when Chrome's sandbox is likely to fail.
func checkSandbox(d *diagnosis, env *Environment) {
	container, hint := detectContainer(env)
	ci := detectCI(env)
	noSandbox := env.Getenv("ROD_NO_SANDBOX") == "1"

	switch {
	case noSandbox:
		d.add("sandbox", levelOK, "disabled (ROD_NO_SANDBOX=1)")
	case container:
		d.add("sandbox", levelWarn, "container detected ("+hint+"); set ROD_NO_SANDBOX=1")
	case ci:
		d.add("sandbox", levelOK, "CI detected; PDF export disables the sandbox")
	default:
		d.add("sandbox", levelOK, "enabled")
	}
}

// detectContainer reports whether the process runs in a container and which
// signal gave it away.
func detectContainer(env *Environment) (bool, string) {
	if env.Getenv("MD2HTML_CONTAINER") == "1" {
		return true, "MD2HTML_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := env.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if env.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

func detectCI(env *Environment) bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if env.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// checkTempDir verifies Chrome can write its profile.
func checkTempDir(d *diagnosis) {
	dir := os.TempDir()
	f, err := os.CreateTemp(dir, "md2html-doctor-*")
	if err != nil {
		d.add("temp dir", levelError, fmt.Sprintf("%s is not writable: %v", dir, err))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	d.add("temp dir", levelOK, filepath.Clean(dir))
}

// printDiagnosis writes the human-readable report.
func printDiagnosis(w io.Writer, d *diagnosis) {
	fmt.Fprintf(w, "md2html doctor (%s, %s/%s)\n", d.Version, d.OS, d.Arch)
	fmt.Fprintf(w, "Engines: %s\n\n", d.Engines)

	for _, c := range d.Checks {
		fmt.Fprintf(w, "  [%-5s] %-16s %s\n", strings.ToUpper(c.Level), c.Name, c.Detail)
	}
	fmt.Fprintln(w)

	switch d.Status {
	case levelOK:
		fmt.Fprintln(w, "Status: ready for --pdf")
	case levelWarn:
		fmt.Fprintln(w, "Status: ready for --pdf with warnings")
	default:
		fmt.Fprintln(w, "Status: HTML conversion works; --pdf will fail (see errors above)")
	}
}
