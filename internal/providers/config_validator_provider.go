package providers

import (
	"fmt"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %w", v.Errors)
	}

	for i, sub := range c.conf.Reddit.Subreddits {
		if sub == "" {
			return fmt.Errorf("invalid config: reddit.subreddits[%d] is empty", i)
		}
	}

	if c.conf.Metrics.Enabled && c.conf.Metrics.TextfilePath == "" {
		return fmt.Errorf("invalid config: metrics.textfilePath is required when metrics are enabled")
	}
	return nil
}
