package providers

import (
	"errors"
	"sidebard/internal/structures"

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
	v.StopOnError = false
	if !v.Validate() {
		return errors.New(v.Errors.String())
	}
	if c.conf.Cache.Enabled && c.conf.Cache.Size <= 0 {
		return errors.New("cache.size must be positive when cache is enabled")
	}
	if c.conf.Upstream.RateLimit < 0 {
		return errors.New("upstream.rateLimit must not be negative")
	}
	return nil
}
