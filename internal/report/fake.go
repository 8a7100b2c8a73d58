package report

// FakePublisher records every published Message so tests can inspect them.
type FakePublisher struct {
	Messages     []Message
	PublishError error
	Closed       bool
}

func (f *FakePublisher) Publish(msg Message) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Messages = append(f.Messages, msg)
	return nil
}

func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// Find returns the first Message whose Topic matches.
func (f *FakePublisher) Find(topic string) (Message, bool) {
	for _, m := range f.Messages {
		if m.Topic == topic {
			return m, true
		}
	}
	return Message{}, false
}
