package kafka

// Config holds connection parameters for the event stream.
type Config struct {
	Brokers []string
	Topic   string
}
