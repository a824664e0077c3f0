package infrastructure

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"website-mcp-server/internal/domain"
)

// whitespaceRuns matches one or more consecutive whitespace characters.
var whitespaceRuns = regexp.MustCompile(`\s+`)

// VercelDeployer simulates a deployment. It waits the configured delay,
// then fabricates the site URL from the name. It never contacts a real
// hosting provider; the token and the SiteSpec.Domain field are accepted
// but unused so a real integration can slot in without changing callers.
type VercelDeployer struct {
	domainSuffix string
	delay        time.Duration
	token        string
}

// NewVercelDeployer creates a deployer from the deploy configuration.
func NewVercelDeployer(cfg domain.DeployConfig) *VercelDeployer {
	suffix := cfg.DomainSuffix
	if suffix == "" {
		suffix = ".vercel.app"
	}

	return &VercelDeployer{
		domainSuffix: suffix,
		delay:        time.Duration(cfg.DelayMS) * time.Millisecond,
		token:        cfg.Token,
	}
}

// Deploy waits the artificial delay and returns the derived URL.
// The wait honors context cancellation so an abandoned request does not
// hold a goroutine for the full delay.
func (d *VercelDeployer) Deploy(ctx context.Context, spec domain.SiteSpec) (*domain.DeployResult, error) {
	if d.delay > 0 {
		timer := time.NewTimer(d.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return &domain.DeployResult{
		URL:          "https://" + Slugify(spec.SiteName) + d.domainSuffix,
		DeploymentID: uuid.NewString(),
	}, nil
}

// Slugify derives the URL host label from a site name: lowercase, with
// each run of whitespace collapsed to a single hyphen.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	return whitespaceRuns.ReplaceAllString(slug, "-")
}
