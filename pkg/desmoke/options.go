package desmoke

type options struct {
	format  string
	summary bool
	only    bool
	color   bool
}

// Option configures a Run call.
type Option func(*options)

// WithFormat forces a log format: "resmoke" or "cppunit".
// Default: guess from the first line.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithSummary appends the run report after the reformatted stream.
func WithSummary() Option {
	return func(o *options) {
		o.summary = true
	}
}

// WithOnly suppresses passthrough lines so only desmoke's own lines appear.
func WithOnly() Option {
	return func(o *options) {
		o.only = true
	}
}

// WithColor colorizes the summary block.
func WithColor() Option {
	return func(o *options) {
		o.color = true
	}
}

func defaultOptions() options {
	return options{format: "auto"}
}
