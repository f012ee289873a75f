package provider

import (
	"context"
)

// Producer turns a long-form text into a fully produced podcast episode
// hosted by the provider. Production is asynchronous on the provider side and
// may take minutes.
type Producer interface {
	Produce(ctx context.Context, input string, options *ProduceOptions) (*Production, error)
}

type ProduceOptions struct {
}

type Production struct {
	ID string

	URL        string
	Transcript string
}
