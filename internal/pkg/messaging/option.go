package messaging

type consumeOptions struct {
	concurrency int
	autoAck     bool
	queueGroup  string
}

// ConsumeOption configures Consume.
type ConsumeOption func(*consumeOptions)

func newConsumeOptions(opts ...ConsumeOption) consumeOptions {
	co := consumeOptions{concurrency: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}
	if co.concurrency <= 0 {
		co.concurrency = 1
	}
	return co
}

// WithConcurrency sets how many handler goroutines run in parallel.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithQueueGroup load-balances a subject across consumers sharing the group.
func WithQueueGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.queueGroup = group }
}

// WithAutoAck acks or naks after the handler returns, unless it already responded.
func WithAutoAck(autoAck bool) ConsumeOption {
	return func(o *consumeOptions) { o.autoAck = autoAck }
}
