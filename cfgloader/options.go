package cfgloader

// Options holds configuration options for Load.
type Options struct {
	// Silent disables logging of the loaded configuration.
	Silent bool

	// Dir is the directory holding the ${ENVIRONMENT}.yaml files.
	Dir string
}

// Option is a functional option for Load.
type Option func(*Options)

// WithSilent disables logging of the loaded configuration.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

// WithDir reads configuration files from dir instead of ./config.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}
