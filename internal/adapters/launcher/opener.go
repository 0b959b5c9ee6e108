package launcher

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"launchtree/internal/application"
	"launchtree/internal/domain"
)

// Opener implements ports.Launcher with the platform's default handler
type Opener struct {
	goos string
	run  func(name string, args ...string) error
}

// NewOpener creates an opener for the running OS
func NewOpener() *Opener {
	return &Opener{
		goos: runtime.GOOS,
		run:  runCommand,
	}
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Open hands a path or url node to the OS
func (o *Opener) Open(node *domain.Node) error {
	name, args, err := o.Command(node)
	if err != nil {
		return err
	}
	if err := o.run(name, args...); err != nil {
		return &application.LaunchError{NodeID: node.ID, Target: node.Target, Err: err}
	}
	return nil
}

// Command returns the program and arguments Open would run
func (o *Opener) Command(node *domain.Node) (string, []string, error) {
	target := strings.TrimSpace(node.Target)
	if target == "" {
		return "", nil, &application.LaunchError{NodeID: node.ID, Err: application.ErrMissingTarget}
	}

	switch node.Type {
	case domain.NodeTypePath:
	case domain.NodeTypeURL:
		if err := ValidateURL(target); err != nil {
			return "", nil, &application.LaunchError{NodeID: node.ID, Target: target, Err: err}
		}
	default:
		return "", nil, &application.LaunchError{NodeID: node.ID, Err: application.ErrNotLaunchable}
	}

	switch o.goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", target}, nil
	default:
		return "", nil, &application.LaunchError{
			NodeID: node.ID,
			Target: target,
			Err:    fmt.Errorf("%w: %s", application.ErrUnsupportedPlatform, o.goos),
		}
	}
}

// ValidateURL accepts absolute http, https and file URLs. Web URLs need a host.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidTarget, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%w: missing host in %s", application.ErrInvalidTarget, raw)
		}
	case "file":
		if u.Path == "" && u.Opaque == "" {
			return fmt.Errorf("%w: missing path in %s", application.ErrInvalidTarget, raw)
		}
	case "":
		return fmt.Errorf("%w: not an absolute url: %s", application.ErrInvalidTarget, raw)
	default:
		return fmt.Errorf("%w: unsupported scheme %s", application.ErrInvalidTarget, u.Scheme)
	}
	return nil
}
