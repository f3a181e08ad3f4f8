package fire

type matcherCfg struct {
	argCount        int
	spaceAssignment bool
	strict          bool
}

// MatcherOpt configures a Matcher at construction time.
type MatcherOpt func(*matcherCfg)

// WithArgCount sets how many declarations the run will make. The deferred
// error slot and leftover-token validation are flushed once that many typed
// values have been produced.
func WithArgCount(n int) MatcherOpt {
	return func(c *matcherCfg) {
		c.argCount = n
	}
}

// WithSpaceAssignment controls whether a value-less named token may consume
// the following token as its value ("--name value"). When disabled, any
// positional token is a usage error.
func WithSpaceAssignment(enable bool) MatcherOpt {
	return func(c *matcherCfg) {
		c.spaceAssignment = enable
	}
}

// WithStrict controls error aggregation. In strict mode user-input faults
// are deferred until the end of the run and leftover tokens are validated;
// otherwise the first fault terminates the run immediately.
func WithStrict(enable bool) MatcherOpt {
	return func(c *matcherCfg) {
		c.strict = enable
	}
}
