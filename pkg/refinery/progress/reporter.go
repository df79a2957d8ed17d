package progress

import (
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Topic carries progress events from running pipelines to whoever mirrors
// them into the task store.
const Topic = "pipeline.progress"

// Event is one discrete progress update for a task: how many units are done,
// out of how many, and a human label for the current step.
type Event struct {
	TaskId  string `json:"task_id"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Label   string `json:"label"`
}

// Reporter is the narrow channel a pipeline emits progress through. It is
// deliberately decoupled from task storage; the store only mirrors events.
type Reporter interface {
	Report(event Event)
}

// Publisher reports progress onto a watermill topic.
type Publisher struct {
	publisher message.Publisher
}

var _ Reporter = &Publisher{}

func NewPublisher(pub message.Publisher) *Publisher {
	return &Publisher{publisher: pub}
}

func (p *Publisher) Report(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	// Best-effort: a dropped progress event never fails a run.
	_ = p.publisher.Publish(Topic, message.NewMessage(watermill.NewUUID(), payload))
}

// Recorder collects events in memory for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ Reporter = &Recorder{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Report(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
