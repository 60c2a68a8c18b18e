package providers

import (
	"fmt"
	"time"
	"zoodash/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	// Cross-field rules the tag validators cannot express.
	if _, err := time.LoadLocation(cv.conf.Backend.Timezone); err != nil {
		return fmt.Errorf("backend.timezone: unknown timezone %q", cv.conf.Backend.Timezone)
	}
	if cv.conf.Polling.AlertsInterval < time.Second {
		return fmt.Errorf("polling.alertsInterval: must be at least 1s, got %s", cv.conf.Polling.AlertsInterval)
	}
	if cv.conf.Polling.BehaviorInterval < time.Second {
		return fmt.Errorf("polling.behaviorInterval: must be at least 1s, got %s", cv.conf.Polling.BehaviorInterval)
	}
	return nil
}
