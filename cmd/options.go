package cmd

// Options holds the shared command-line options for the refbot CLI.
// Zero values (and -1 for MinBareNumber) defer to the config file.
type Options struct {
	Format        string
	Verbosity     int
	Repo          string // owner/repo
	LinkMode      string
	Workers       int
	MinBareNumber int
	Channel       string
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		MinBareNumber: -1,
		Channel:       "cli",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat sets the output format (text, json).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithRepo sets the home repository as owner/repo.
func WithRepo(repo string) Option {
	return func(o *Options) {
		o.Repo = repo
	}
}

// WithLinkMode sets how references become links (api, static).
func WithLinkMode(mode string) Option {
	return func(o *Options) {
		o.LinkMode = mode
	}
}

// WithWorkers sets the number of concurrent lookups.
func WithWorkers(workers int) Option {
	return func(o *Options) {
		o.Workers = workers
	}
}

// WithMinBareNumber sets the low-number filter threshold.
func WithMinBareNumber(n int) Option {
	return func(o *Options) {
		o.MinBareNumber = n
	}
}

// WithChannel sets the channel used by the metric commands.
func WithChannel(channel string) Option {
	return func(o *Options) {
		o.Channel = channel
	}
}
