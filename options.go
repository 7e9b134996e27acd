package xmlscene

// Options configure an Importer.
type Options struct {
	Logger Logger
	// LenientTransforms skips unknown transform tags instead of failing.
	LenientTransforms bool
	// KeepExisting leaves the host scene's current objects in place.
	KeepExisting bool
}

// Option mutates Options.
type Option func(*Options)

func WithLogger(l Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func WithLenientTransforms(lenient bool) Option {
	return func(o *Options) { o.LenientTransforms = lenient }
}

func WithKeepExisting(keep bool) Option {
	return func(o *Options) { o.KeepExisting = keep }
}

// normalize fills in defaults.
func (o Options) normalize() Options {
	if o.Logger == nil {
		o.Logger = NewNopLogger()
	}
	return o
}
